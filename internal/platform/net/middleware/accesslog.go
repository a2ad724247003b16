// Package middleware holds adapters and in house middlewares
package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"einwurf/internal/platform/logger"
)

// AccessLogOptions configures the zerolog access log
type AccessLogOptions struct {
	// Slow marks requests taking >= Slow as warn level, 0 disables slow marking
	Slow time.Duration
	// Log picks the logger per request, defaults to logger.C
	Log func(context.Context) *logger.Logger
}

type annotationsKey struct{}

// annotations collects per request fields for the access log line
type annotations struct {
	mu sync.Mutex
	kv [][2]string
}

// Annotate adds key=val to the access log line of the request carried by ctx
// it is a no-op outside AccessLogZerolog
func Annotate(ctx context.Context, key, val string) {
	a, ok := ctx.Value(annotationsKey{}).(*annotations)
	if !ok {
		return
	}
	a.mu.Lock()
	a.kv = append(a.kv, [2]string{key, val})
	a.mu.Unlock()
}

// captureWriter wraps the original ResponseWriter and records status & bytes
type captureWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	n, err := cw.ResponseWriter.Write(b)
	if n > 0 {
		cw.bytes += n
	}
	return n, err
}

// AccessLogZerolog logs method, path, status, elapsed, and bytes written
// uses the request scoped logger from our logger package
func AccessLogZerolog(opt AccessLogOptions) func(http.Handler) http.Handler {
	logFor := opt.Log
	if logFor == nil {
		logFor = logger.C
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cw := &captureWriter{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()

			ann := &annotations{}
			r = r.WithContext(context.WithValue(r.Context(), annotationsKey{}, ann))
			next.ServeHTTP(cw, r)

			elapsed := time.Since(start)
			log := logFor(r.Context())
			evt := log.Info()
			if opt.Slow > 0 && elapsed >= opt.Slow {
				evt = log.Warn()
			}
			evt = evt.Int("status", cw.status).
				Dur("elapsed", elapsed).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("remote", r.RemoteAddr).
				Int("bytes", cw.bytes)
			ann.mu.Lock()
			for _, f := range ann.kv {
				evt = evt.Str(f[0], f[1])
			}
			ann.mu.Unlock()
			evt.Msg("request done")
		})
	}
}
