package sink

import (
	"context"
	"net/http"
	"net/url"

	perr "einwurf/internal/platform/errors"
	"einwurf/internal/services/relay/domain"
)

const (
	// NotionBaseURL is the public Notion API root
	NotionBaseURL = "https://api.notion.com/v1"

	// NotionVersion pins the API version the block payload is written against
	NotionVersion = "2022-06-28"

	notionVersionHeader = "Notion-Version"
)

// Notion appends one block per submission to a page
type Notion struct {
	token     string
	pageID    string
	blockType domain.BlockType
	baseURL   string
	client    *http.Client
}

// NewNotion builds a Notion block sink
func NewNotion(cfg domain.NotionConfig, opts ...Option) *Notion {
	o := buildOptions(opts)
	return &Notion{
		token:     cfg.BearerToken,
		pageID:    cfg.PageID,
		blockType: cfg.BlockType,
		baseURL:   o.notionBaseURL,
		client:    o.client,
	}
}

// ChildrenURL is the append-block-children endpoint for the configured page
func (n *Notion) ChildrenURL() string {
	return n.baseURL + "/blocks/" + url.PathEscape(n.pageID) + "/children"
}

// Deliver appends text as a block of the configured type
func (n *Notion) Deliver(ctx context.Context, text string) error {
	body, err := BlockBody(n.blockType, text)
	if err != nil {
		return perr.WithOp(perr.Wrap(err, perr.ErrorCodeDelivery, "encode block body"), "notion.deliver")
	}
	h := http.Header{}
	h.Set("Authorization", "Bearer "+n.token)
	h.Set(notionVersionHeader, NotionVersion)
	return send(ctx, n.client, "notion.deliver", http.MethodPatch, n.ChildrenURL(), h, body)
}

type richText struct {
	Type string `json:"type"`
	Text struct {
		Content string `json:"content"`
	} `json:"text"`
}

// BlockBody renders the append-children payload for one block
// the block type tag is both the "type" value and the key of the nested rich text object
func BlockBody(blockType domain.BlockType, text string) ([]byte, error) {
	tag := string(blockType)
	rt := richText{Type: "text"}
	rt.Text.Content = text

	block := map[string]any{
		"object": "block",
		"type":   tag,
	}
	block[tag] = map[string]any{"rich_text": []richText{rt}}
	return encodeJSON(map[string]any{"children": []any{block}})
}
