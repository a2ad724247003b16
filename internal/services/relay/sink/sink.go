// Package sink implements one domain.Sink per destination kind
// each sink only builds the destination's request shape and reports success or failure;
// no retries, no response body inspection
package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"

	perr "einwurf/internal/platform/errors"
)

// Option configures sink construction
type Option func(*options)

type options struct {
	client        *http.Client
	notionBaseURL string
}

func buildOptions(opts []Option) options {
	o := options{client: http.DefaultClient, notionBaseURL: NotionBaseURL}
	for _, fn := range opts {
		fn(&o)
	}
	o.client = noRedirects(o.client)
	return o
}

// noRedirects returns a copy of c that hands every 3xx back to the caller
// a followed 301/302/303 would turn the POST or PATCH into a bodiless GET
func noRedirects(c *http.Client) *http.Client {
	cp := *c
	cp.CheckRedirect = func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }
	return &cp
}

// WithHTTPClient sets the outbound client; the default client has no timeout
// redirects are never followed, whatever c.CheckRedirect says
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		if c != nil {
			o.client = c
		}
	}
}

// WithNotionBaseURL points the Notion sink at another API root, e.g. a test server
func WithNotionBaseURL(u string) Option {
	return func(o *options) {
		if u != "" {
			o.notionBaseURL = u
		}
	}
}

// encodeJSON marshals v without HTML escaping and without the encoder's trailing newline
func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// send issues one request and maps transport failures and non-2xx statuses to ErrorCodeDelivery
// the error never carries the target URL since webhook URLs are credentials
func send(ctx context.Context, c *http.Client, op, method, target string, header http.Header, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, method, target, bytes.NewReader(body))
	if err != nil {
		var ue *url.Error
		if errors.As(err, &ue) {
			err = ue.Err
		}
		return perr.WithOp(perr.Wrap(err, perr.ErrorCodeDelivery, "build request"), op)
	}
	for k, vv := range header {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Do(req)
	if err != nil {
		var ue *url.Error
		if errors.As(err, &ue) {
			err = ue.Err
		}
		return perr.WithOp(perr.Wrapf(err, perr.ErrorCodeDelivery, "%s request failed", method), op)
	}
	defer func() { _ = resp.Body.Close() }()
	// drain so the connection can be reused
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return perr.WithOp(perr.Deliveryf("destination responded %d %s", resp.StatusCode, http.StatusText(resp.StatusCode)), op)
	}
	return nil
}
