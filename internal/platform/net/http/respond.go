// Package http provides the router seam, server lifecycle and response helpers
// for the browser-facing form endpoints
package http

import (
	stdhttp "net/http"
)

// HTML writes body as text/html with the given status
func HTML(w stdhttp.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// SeeOther redirects the client to location with 303 so a POST is followed by a GET
func SeeOther(w stdhttp.ResponseWriter, r *stdhttp.Request, location string) {
	stdhttp.Redirect(w, r, location, stdhttp.StatusSeeOther)
}

// Text writes a plain text body with the status text when body is empty
func Text(w stdhttp.ResponseWriter, status int, body string) {
	if body == "" {
		body = stdhttp.StatusText(status)
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
