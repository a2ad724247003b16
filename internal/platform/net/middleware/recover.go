package middleware

import (
	stdhttp "net/http"
	"runtime/debug"

	perr "einwurf/internal/platform/errors"
	"einwurf/internal/platform/logger"
	pnet "einwurf/internal/platform/net"
	phttp "einwurf/internal/platform/net/http"
)

var panicLog = logger.C // seam

// Recover converts panics into a plain 500 and logs the stack with the request id
// http.ErrAbortHandler is re-panicked so net/http can abort the connection
func Recover(next stdhttp.Handler) stdhttp.Handler {
	return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == stdhttp.ErrAbortHandler {
				panic(v)
			}
			reqID := pnet.RequestID(r.Context())
			err := perr.PanicErrf("handler panic: %v", v)
			panicLog(r.Context()).Error().
				Err(err).
				Str("code", perr.CodeOf(err).String()).
				Str("path", r.URL.Path).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")

			if reqID != "" {
				w.Header().Set("X-Request-ID", reqID)
			}
			phttp.Text(w, stdhttp.StatusInternalServerError, "")
		}()
		next.ServeHTTP(w, r)
	})
}
