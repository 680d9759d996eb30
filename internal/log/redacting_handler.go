/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package log

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
)

const (
	redacted       = "[REDACTED]"
	maskedPassword = "xxxxx"
)

// Attribute names are compared after lowercasing and dropping '_', '-' and '.', so
// "secret_key", "SecretKey" and "AWS_SECRET_KEY" all end in "secretkey".
var sensitiveSuffixes = []string{
	"secretkey",
	"accesskey",
	"token",
	"password",
	"secret",
	"credentials",
}

// RedactingHandler hides credentials before records reach the wrapped handler.
// Attributes whose name ends in a sensitive suffix are replaced, LogValuers such as
// config.StoreConfig are resolved and searched, and passwords embedded in URL
// values (ws://user:pass@host) are masked.
type RedactingHandler struct {
	inner slog.Handler
}

func NewRedactingHandler(inner slog.Handler) *RedactingHandler {
	return &RedactingHandler{inner: inner}
}

func (h *RedactingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *RedactingHandler) Handle(ctx context.Context, record slog.Record) error {
	out := slog.NewRecord(record.Time, record.Level, record.Message, record.PC)
	record.Attrs(func(attr slog.Attr) bool {
		out.AddAttrs(redactAttr(attr))
		return true
	})
	return h.inner.Handle(ctx, out)
}

func (h *RedactingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make([]slog.Attr, len(attrs))
	for i, attr := range attrs {
		out[i] = redactAttr(attr)
	}
	return &RedactingHandler{inner: h.inner.WithAttrs(out)}
}

func (h *RedactingHandler) WithGroup(name string) slog.Handler {
	return &RedactingHandler{inner: h.inner.WithGroup(name)}
}

func redactAttr(attr slog.Attr) slog.Attr {
	value := attr.Value.Resolve()
	if isSensitive(attr.Key) {
		if value.Kind() == slog.KindString && value.String() == "" {
			return slog.String(attr.Key, "")
		}
		return slog.String(attr.Key, redacted)
	}

	switch value.Kind() {
	case slog.KindGroup:
		group := value.Group()
		out := make([]slog.Attr, len(group))
		for i, nested := range group {
			out[i] = redactAttr(nested)
		}
		return slog.Attr{Key: attr.Key, Value: slog.GroupValue(out...)}
	case slog.KindString:
		return slog.String(attr.Key, maskURLPassword(value.String()))
	}
	return slog.Attr{Key: attr.Key, Value: value}
}

func isSensitive(name string) bool {
	normalized := strings.Map(func(r rune) rune {
		switch r {
		case '_', '-', '.':
			return -1
		}
		return r
	}, strings.ToLower(name))
	for _, suffix := range sensitiveSuffixes {
		if strings.HasSuffix(normalized, suffix) {
			return true
		}
	}
	return false
}

// maskURLPassword hides the password of URLs with user info and returns any other
// string unchanged.
func maskURLPassword(s string) string {
	if !strings.Contains(s, "@") || !strings.Contains(s, "://") {
		return s
	}
	u, err := url.Parse(s)
	if err != nil || u.User == nil {
		return s
	}
	if _, ok := u.User.Password(); !ok {
		return s
	}
	u.User = url.UserPassword(u.User.Username(), maskedPassword)
	return u.String()
}
