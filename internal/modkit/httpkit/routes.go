// Package httpkit provides tiny HTTP helpers for modules
package httpkit

import (
	"net/http"

	phttp "einwurf/internal/platform/net/http"
	pstrings "einwurf/internal/platform/strings"
)

// Router is the platform router seam
type Router = phttp.Router

// MountUnder mounts routes at prefix with per-module middlewares
// an empty or "/" prefix mounts in a group on the parent so "/" itself stays routable
func MountUnder(r Router, prefix string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	scoped := func(sub Router) {
		if len(mw) > 0 {
			sub.Use(mw...)
		}
		mount(sub)
	}
	if p := pstrings.MustPrefix(prefix); p != "/" {
		r.Route(p, scoped)
		return
	}
	r.Group(scoped)
}
