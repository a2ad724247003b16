package sink

import (
	"einwurf/internal/services/relay/domain"
	"einwurf/internal/services/relay/service"
)

// FromConfig builds one sink per destination from the loaded settings
// all sinks share the outbound client given through opts
func FromConfig(cfg domain.Config, opts ...Option) service.Sinks {
	return service.Sinks{
		Mattermost: NewWebhook(domain.DestinationMattermost, cfg.Mattermost, opts...),
		Slack:      NewWebhook(domain.DestinationSlack, cfg.Slack, opts...),
		Notion:     NewNotion(cfg.Notion, opts...),
	}
}
