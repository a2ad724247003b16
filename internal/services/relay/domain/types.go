// Package domain holds the relay's configuration model and the sink port
package domain

import "net/netip"

// Destination names the one external service submissions are relayed to
type Destination string

const (
	// DestinationMattermost relays to a Mattermost incoming webhook
	DestinationMattermost Destination = "mattermost"
	// DestinationSlack relays to a Slack incoming webhook
	DestinationSlack Destination = "slack"
	// DestinationNotion appends a block to a Notion page
	DestinationNotion Destination = "notion"
)

// Destinations lists every supported destination
func Destinations() []Destination {
	return []Destination{DestinationMattermost, DestinationSlack, DestinationNotion}
}

// Valid reports whether d is a known destination tag
func (d Destination) Valid() bool {
	for _, k := range Destinations() {
		if d == k {
			return true
		}
	}
	return false
}

// BlockType is the Notion block shape applied to every delivered submission
// the tag value doubles as the JSON key holding the rich text payload
type BlockType string

const (
	BlockParagraph        BlockType = "paragraph"
	BlockToDo             BlockType = "to_do"
	BlockBulletedListItem BlockType = "bulleted_list_item"
	BlockNumberedListItem BlockType = "numbered_list_item"
)

// BlockTypes lists every supported block type
func BlockTypes() []BlockType {
	return []BlockType{BlockParagraph, BlockToDo, BlockBulletedListItem, BlockNumberedListItem}
}

// Valid reports whether b is a known block type tag
func (b BlockType) Valid() bool {
	for _, k := range BlockTypes() {
		if b == k {
			return true
		}
	}
	return false
}

// WebhookConfig holds a chat integration's incoming webhook
type WebhookConfig struct {
	URL string
}

// NotionConfig holds the Notion integration credentials and target
type NotionConfig struct {
	BearerToken string
	PageID      string
	BlockType   BlockType
}

// Config is the validated process configuration
// settings for every destination are present; only the selected one is used
type Config struct {
	ListenAddress netip.Addr
	ListenPort    uint16
	Destination   Destination

	Mattermost WebhookConfig
	Slack      WebhookConfig
	Notion     NotionConfig
}
