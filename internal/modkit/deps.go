// Package modkit provides module wiring and core deps
package modkit

import (
	"net/http"

	"einwurf/internal/platform/config"
	"einwurf/internal/platform/logger"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log    *logger.Logger
	Cfg    config.Conf
	Client *http.Client // outbound client shared by every sink
}

// Logger returns Log or the named process logger when unset
func (d Deps) Logger(component string) *logger.Logger {
	if d.Log != nil {
		return d.Log
	}
	return logger.Named(component)
}
