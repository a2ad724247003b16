// Package module wires the relay sinks, dispatcher and form routes into a modkit module
package module

import (
	"net/http"

	"einwurf/internal/modkit"
	"einwurf/internal/modkit/httpkit"
	phttp "einwurf/internal/platform/net/http"
	str "einwurf/internal/platform/strings"

	"einwurf/internal/services/relay/domain"
	relayhttp "einwurf/internal/services/relay/http"
	"einwurf/internal/services/relay/service"
	"einwurf/internal/services/relay/sink"
)

// Ports exposed by the relay module
type Ports struct {
	Dispatcher domain.DispatcherPort
}

// Module implements modkit.Module for the relay
type Module struct {
	deps     modkit.Deps
	name     string
	prefix   string
	mws      []func(http.Handler) http.Handler
	register func(phttp.Router)
	ports    Ports
}

var _ modkit.Module = (*Module)(nil)

// New builds the sinks from cfg once and binds the dispatcher to cfg.Destination
func New(deps modkit.Deps, cfg domain.Config, opts ...modkit.Option) *Module {
	return newModule(deps, cfg, nil, opts...)
}

func newModule(deps modkit.Deps, cfg domain.Config, sinkOpts []sink.Option, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("relay"),
		modkit.WithPrefix("/"),
	}, opts...)...)

	sinks := sink.FromConfig(cfg, append([]sink.Option{sink.WithHTTPClient(deps.Client)}, sinkOpts...)...)

	m := &Module{
		deps:   deps,
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
		ports:  Ports{Dispatcher: service.New(cfg.Destination, sinks)},
	}
	if p, ok := b.Ports.(Ports); ok && p.Dispatcher != nil {
		m.ports = p
	}

	external := b.Register
	m.register = func(r phttp.Router) {
		relayhttp.Register(r, relayhttp.Deps{
			Dispatcher: m.ports.Dispatcher,
			Log:        deps.Logger("relay"),
		})
		external(r)
	}
	return m
}

// MountRoutes implements modkit.Module
func (m *Module) MountRoutes(r phttp.Router) {
	httpkit.MountUnder(r, m.prefix, m.mws, m.register)
}

// Name implements modkit.Module
func (m *Module) Name() string { return str.MustString(m.name, "relay") }

// Prefix returns the normalized mount path
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Ports implements modkit.Module
func (m *Module) Ports() any { return m.ports }
