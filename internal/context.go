package internal

import (
	"context"
	"time"
)

type ctxKey string

const (
	contextClientIPKey  ctxKey = "clientIP"
	contextUserAgentKey ctxKey = "userAgent"
)

// ContextWithClientInfo stores the request's client address and user
// agent so the audit trail can record them without reaching back into
// the http.Request.
func ContextWithClientInfo(ctx context.Context, ip, userAgent string) context.Context {
	ctx = context.WithValue(ctx, contextClientIPKey, ip)
	return context.WithValue(ctx, contextUserAgentKey, userAgent)
}

func ClientIPFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if ip, ok := ctx.Value(contextClientIPKey).(string); ok {
		return ip
	}
	return ""
}

func UserAgentFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if ua, ok := ctx.Value(contextUserAgentKey).(string); ok {
		return ua
	}
	return ""
}

// WithTimeout returns a context with timeout, defaulting to 5 seconds if duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}
