package models

import "time"

// Chat channels are a fixed set; a session may only join one of these.
const (
	ChannelGeneral     = "general"
	ChannelImaging     = "imaging"
	ChannelGenomics    = "genomics"
	ChannelIntegration = "integration"
)

// Channels lists every chat channel in a stable order, used for iteration
// (e.g. by the backup scheduler).
var Channels = []string{ChannelGeneral, ChannelImaging, ChannelGenomics, ChannelIntegration}

const (
	MessageTypeText   = "text"
	MessageTypeFile   = "file"
	MessageTypeSystem = "system"
)

// Message is one chat message. Immutable once stored; ordered by CreatedAt
// within its channel.
type Message struct {
	ID          string    `json:"id"`
	Sender      UserRef   `json:"sender"`
	Content     string    `json:"content"`
	MessageType string    `json:"messageType"`
	Channel     string    `json:"channel"`
	CreatedAt   time.Time `json:"createdAt"`
}

func ValidChannel(c string) bool {
	switch c {
	case ChannelGeneral, ChannelImaging, ChannelGenomics, ChannelIntegration:
		return true
	}
	return false
}
