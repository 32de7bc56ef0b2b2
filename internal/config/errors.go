package config

import "strings"

// Error is a fatal configuration problem. It is the only error kind the
// select command lets cross the process boundary.
type Error struct {
	Field string
	Msg   string
	Hint  string
	Err   error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Msg)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	if e.Hint != "" {
		b.WriteString("\n")
		b.WriteString(e.Hint)
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}
