package config

import (
	"fmt"
	"strings"
)

// Provider names an advisory backend.
type Provider string

const (
	ProviderGemini Provider = "gemini"
	ProviderGroq   Provider = "groq"
	ProviderNone   Provider = "none"
)

// Providers lists every supported provider in display order.
var Providers = []Provider{ProviderGemini, ProviderGroq, ProviderNone}

// ParseProvider maps a user supplied name onto a Provider.
func ParseProvider(name string) (Provider, error) {
	p := Provider(strings.ToLower(strings.TrimSpace(name)))
	switch p {
	case ProviderGemini, ProviderGroq, ProviderNone:
		return p, nil
	case "":
		return DefaultProvider, nil
	case "off", "disabled":
		return ProviderNone, nil
	}
	return "", &Error{
		Field: "provider",
		Msg:   fmt.Sprintf("unknown advisory provider %q", name),
		Hint:  fmt.Sprintf("use one of: %s", providerList()),
	}
}

// CredentialEnv returns the environment variable holding the provider's API key.
func (p Provider) CredentialEnv() string {
	switch p {
	case ProviderGemini:
		return "GEMINI_API_KEY"
	case ProviderGroq:
		return "GROQ_API_KEY"
	}
	return ""
}

// DefaultModel returns the model used when no override is configured.
func (p Provider) DefaultModel() string {
	switch p {
	case ProviderGemini:
		return "gemini-2.5-flash"
	case ProviderGroq:
		return "llama-3.3-70b-versatile"
	}
	return ""
}

// KeyURL points at the page where a credential for the provider can be created.
func (p Provider) KeyURL() string {
	switch p {
	case ProviderGemini:
		return "https://aistudio.google.com/apikey"
	case ProviderGroq:
		return "https://console.groq.com/keys"
	}
	return ""
}

func providerList() string {
	names := make([]string, len(Providers))
	for i, p := range Providers {
		names[i] = string(p)
	}
	return strings.Join(names, ", ")
}
