package api

import (
	"context"
	"net"
	"net/http"
	"strings"
)

type keyType string

const callerIDKey keyType = "callerID"

// ctxWithCallerID adds the rate-limit caller identity to the context.
func ctxWithCallerID(ctx context.Context, callerID string) context.Context {
	return context.WithValue(ctx, callerIDKey, callerID)
}

// ctxGetCallerID retrieves the caller identity, falling back to the global
// key when no per-caller identity was derived.
func ctxGetCallerID(ctx context.Context) string {
	if value, ok := ctx.Value(callerIDKey).(string); ok && value != "" {
		return value
	}
	return "global"
}

// callerIdentity derives an admission-control key from the request. The
// remote IP is the best identity available without authentication; when it
// cannot be parsed every caller shares the global window.
func callerIdentity(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		// First hop is the client when the header traverses proxies.
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil || host == "" {
		return "global"
	}
	return host
}
