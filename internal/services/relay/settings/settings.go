// Package settings loads the relay configuration file into a validated domain.Config
package settings

import (
	"net/netip"

	"einwurf/internal/platform/config"
	perr "einwurf/internal/platform/errors"
	"einwurf/internal/platform/net/http/bind"
	"einwurf/internal/services/relay/domain"
)

// fileConfig mirrors the on-disk layout; both TOML and YAML use the same keys
type fileConfig struct {
	IPAddress   string `toml:"ip_address" yaml:"ip_address" validate:"required,ip"`
	Port        int    `toml:"port" yaml:"port" validate:"required,min=1,max=65535"`
	Destination string `toml:"destination" yaml:"destination" validate:"required,oneof=mattermost slack notion"`

	Mattermost webhookSection `toml:"mattermost" yaml:"mattermost"`
	Slack      webhookSection `toml:"slack" yaml:"slack"`
	Notion     notionSection  `toml:"notion" yaml:"notion"`
}

type webhookSection struct {
	WebhookURL string `toml:"webhook_url" yaml:"webhook_url" validate:"required,url"`
}

type notionSection struct {
	BearerToken string `toml:"bearer_token" yaml:"bearer_token" validate:"required"`
	PageID      string `toml:"page_id" yaml:"page_id" validate:"required"`
	BlockType   string `toml:"block_type" yaml:"block_type" validate:"required,oneof=paragraph to_do bulleted_list_item numbered_list_item"`
}

// Load reads and validates the config at path
// any failure is an ErrorCodeConfig error and no partial Config is returned
func Load(path string) (domain.Config, error) {
	var fc fileConfig
	if err := config.DecodeFile(path, &fc); err != nil {
		return domain.Config{}, perr.WithOp(err, "settings.load")
	}
	cfg, err := parse(fc)
	if err != nil {
		return domain.Config{}, perr.WithOp(err, "settings.load")
	}
	return cfg, nil
}

// parse validates a decoded file and maps it onto the domain model
func parse(fc fileConfig) (domain.Config, error) {
	if err := bind.Struct(fc); err != nil {
		field := ""
		if e, ok := perr.As(err); ok {
			field = e.Field()
		}
		return domain.Config{}, perr.WithField(perr.Wrap(err, perr.ErrorCodeConfig, "invalid config"), field)
	}

	addr, err := netip.ParseAddr(fc.IPAddress)
	if err != nil {
		return domain.Config{}, perr.WithField(perr.Wrap(err, perr.ErrorCodeConfig, "invalid config"), "ip_address")
	}

	return domain.Config{
		ListenAddress: addr,
		ListenPort:    uint16(fc.Port),
		Destination:   domain.Destination(fc.Destination),
		Mattermost:    domain.WebhookConfig{URL: fc.Mattermost.WebhookURL},
		Slack:         domain.WebhookConfig{URL: fc.Slack.WebhookURL},
		Notion: domain.NotionConfig{
			BearerToken: fc.Notion.BearerToken,
			PageID:      fc.Notion.PageID,
			BlockType:   domain.BlockType(fc.Notion.BlockType),
		},
	}, nil
}
