// Package service routes a submission to the single configured destination
package service

import (
	"context"

	perr "einwurf/internal/platform/errors"
	"einwurf/internal/services/relay/domain"
)

// Sinks holds one runtime sink per destination, built once at startup
type Sinks struct {
	Mattermost domain.Sink
	Slack      domain.Sink
	Notion     domain.Sink
}

// Sink resolves the sink for d; ok is false for unknown tags or an unset slot
func (s Sinks) Sink(d domain.Destination) (domain.Sink, bool) {
	var out domain.Sink
	switch d {
	case domain.DestinationMattermost:
		out = s.Mattermost
	case domain.DestinationSlack:
		out = s.Slack
	case domain.DestinationNotion:
		out = s.Notion
	default:
		return nil, false
	}
	return out, out != nil
}

// Dispatcher forwards text unchanged to the sink of its destination
type Dispatcher struct {
	dest  domain.Destination
	sinks Sinks
}

var _ domain.DispatcherPort = (*Dispatcher)(nil)

// New returns a dispatcher bound to destination for the lifetime of the process
func New(destination domain.Destination, sinks Sinks) *Dispatcher {
	return &Dispatcher{dest: destination, sinks: sinks}
}

// Destination returns the configured destination
func (d *Dispatcher) Destination() domain.Destination { return d.dest }

// Dispatch calls exactly one sink; its error is returned as is
func (d *Dispatcher) Dispatch(ctx context.Context, text string) error {
	s, ok := d.sinks.Sink(d.dest)
	if !ok {
		return perr.WithOp(perr.InvalidArgf("no sink for destination %q", string(d.dest)), "dispatch")
	}
	return s.Deliver(ctx, text)
}
