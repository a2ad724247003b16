package httpkit

import (
	"net/http"
	"time"

	"einwurf/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack
type StackOptions struct {
	CORSOrigins []string      // nil means go-chi/cors defaults (any origin)
	HealthPath  string        // defaults to /health
	Slow        time.Duration // access log warn threshold, 0 disables
}

// CommonStack returns the baseline middleware, outermost first
// use it on the root router so the heartbeat and CORS preflight see unmatched paths
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	health := o.HealthPath
	if health == "" {
		health = "/health"
	}
	return []func(http.Handler) http.Handler{
		// correlation
		middleware.RequestID(),
		middleware.RealIP(),

		// observability, then safety so panics are logged with their 500
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: o.Slow}),
		middleware.Recover,

		middleware.CORS(middleware.CORSOptions{AllowedOrigins: o.CORSOrigins}),
		middleware.Heartbeat(health),
		middleware.NoCache(),
	}
}
