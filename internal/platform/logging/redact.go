package logging

import (
	"log/slog"
	"regexp"

	"github.com/m-mizutani/masq"
)

// bearerPattern matches Bearer credentials, including admin session tokens.
var bearerPattern = regexp.MustCompile(`(?i)^bearer\s+.+$`)

// DefaultRedactOptions returns the masq options for secret redaction.
// The admin secret travels as "password" on unlock and "secret" on update;
// both must never appear in log output.
func DefaultRedactOptions() []masq.Option {
	return []masq.Option{
		masq.WithFieldName("password"),
		masq.WithFieldName("secret"),
		masq.WithFieldName("token"),
		masq.WithFieldName("authorization"),
		masq.WithFieldName("auth"),
		masq.WithFieldName("bearer"),
		masq.WithFieldName("session"),

		masq.WithFieldPrefix("secret"),

		masq.WithRegex(bearerPattern),
	}
}

// NewReplaceAttr creates a ReplaceAttr function for slog.HandlerOptions
// that redacts sensitive data.
func NewReplaceAttr(opts ...masq.Option) func(groups []string, a slog.Attr) slog.Attr {
	allOpts := append(DefaultRedactOptions(), opts...)
	return masq.New(allOpts...)
}
