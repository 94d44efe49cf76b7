// Package chat implements the realtime layer: channel-scoped fan-out over
// persistent websocket connections. A Session is one connected client, the
// Registry tracks which sessions subscribed to which channel, and the
// Gateway bridges inbound wire events to the message store and registry.
package chat

import "github.com/Samayank/Renal-Tumor-Detection/internal/server/models"

// Wire event types of the symmetric JSON framing.
const (
	EventJoin      = "join"      // client → server
	EventSend      = "send"      // client → server
	EventHistory   = "history"   // server → client, once per join
	EventDelivered = "delivered" // server → client, per successful send
)

// ClientEvent is an inbound frame.
type ClientEvent struct {
	Type    string `json:"type"`
	Channel string `json:"channel,omitempty"`
	Content string `json:"content,omitempty"`
}

// ServerEvent is an outbound frame.
type ServerEvent struct {
	Type     string            `json:"type"`
	Channel  string            `json:"channel,omitempty"`
	Messages []*models.Message `json:"messages,omitempty"`
	Message  *models.Message   `json:"message,omitempty"`
}
