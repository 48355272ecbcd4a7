package core

import "context"

type contextKey string

const (
	ctxKeyClientIP  contextKey = "render_client_ip"
	ctxKeyUserAgent contextKey = "render_user_agent"
)

// ContextWithClient attaches the requesting client to ctx so render history
// can record who asked for a map.
func ContextWithClient(ctx context.Context, ip, userAgent string) context.Context {
	ctx = context.WithValue(ctx, ctxKeyClientIP, ip)
	return context.WithValue(ctx, ctxKeyUserAgent, userAgent)
}

// ClientFromContext returns the client IP and User-Agent set by
// ContextWithClient. Both are empty for CLI renders.
func ClientFromContext(ctx context.Context) (ip, userAgent string) {
	ip, _ = ctx.Value(ctxKeyClientIP).(string)
	userAgent, _ = ctx.Value(ctxKeyUserAgent).(string)
	return ip, userAgent
}
