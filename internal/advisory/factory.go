package advisory

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"tsel/internal/config"
)

// New returns the suggester for the configured provider, or nil for ProviderNone.
func New(ctx context.Context, cfg config.Advisory) (Suggester, error) {
	switch cfg.Provider {
	case config.ProviderNone:
		return nil, nil
	case config.ProviderGemini:
		g, err := NewGemini(ctx, cfg, newHTTPClient(cfg.Timeout))
		if err != nil {
			return nil, err
		}
		return g, nil
	case config.ProviderGroq:
		return NewGroq(cfg, newHTTPClient(cfg.Timeout)), nil
	}
	return nil, fmt.Errorf("unsupported advisory provider %q", cfg.Provider)
}

// Unavailable returns a Suggester for a provider that could not be set up.
// Every Suggest call fails with err, so the run records the provider as
// unavailable instead of disabled.
func Unavailable(provider config.Provider, err error) Suggester {
	return &unavailable{provider: provider, err: err}
}

type unavailable struct {
	provider config.Provider
	err      error
}

func (u *unavailable) Name() string {
	return string(u.provider)
}

func (u *unavailable) Suggest(context.Context, string) (Response, error) {
	return Response{}, fmt.Errorf("%s provider setup failed: %w", u.provider, u.err)
}

func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = config.DefaultTimeout
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   5 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			ForceAttemptHTTP2:     true,
			MaxIdleConns:          10,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		},
	}
}

// truncate limits a response body kept for diagnostics.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
