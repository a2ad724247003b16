package sink

import (
	"context"
	"net/http"

	perr "einwurf/internal/platform/errors"
	"einwurf/internal/services/relay/domain"
)

// Webhook posts {"text": ...} to a chat incoming webhook; Mattermost and Slack share the shape
type Webhook struct {
	dest   domain.Destination
	url    string
	client *http.Client
}

// NewWebhook builds a chat webhook sink for dest
func NewWebhook(dest domain.Destination, cfg domain.WebhookConfig, opts ...Option) *Webhook {
	o := buildOptions(opts)
	return &Webhook{dest: dest, url: cfg.URL, client: o.client}
}

// Destination returns the chat integration this sink serves
func (w *Webhook) Destination() domain.Destination { return w.dest }

// Deliver posts text to the webhook
func (w *Webhook) Deliver(ctx context.Context, text string) error {
	body, err := WebhookBody(text)
	if err != nil {
		return perr.WithOp(perr.Wrap(err, perr.ErrorCodeDelivery, "encode webhook body"), string(w.dest)+".deliver")
	}
	return send(ctx, w.client, string(w.dest)+".deliver", http.MethodPost, w.url, nil, body)
}

// WebhookBody renders the chat message payload
func WebhookBody(text string) ([]byte, error) {
	return encodeJSON(struct {
		Text string `json:"text"`
	}{Text: text})
}
