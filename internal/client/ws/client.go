// Package ws is the realtime client: it dials the backend's websocket
// endpoint with a session token and exchanges the JSON events of the chat
// protocol.
package ws

import (
	"context"
	"net/url"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
)

// Message mirrors the stored chat record as delivered over the wire.
type Message struct {
	ID          string `json:"id"`
	Sender      Sender `json:"sender"`
	Content     string `json:"content"`
	MessageType string `json:"messageType"`
	Channel     string `json:"channel"`
	CreatedAt   string `json:"createdAt"`
}

type Sender struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Event is one inbound server frame: a history reply or a delivery.
type Event struct {
	Type     string     `json:"type"`
	Channel  string     `json:"channel,omitempty"`
	Messages []*Message `json:"messages,omitempty"`
	Message  *Message   `json:"message,omitempty"`
}

type clientEvent struct {
	Type    string `json:"type"`
	Channel string `json:"channel,omitempty"`
	Content string `json:"content,omitempty"`
}

// Client is one live websocket connection.
type Client struct {
	conn *websocket.Conn

	mu     sync.Mutex // guards writes
	events chan *Event
}

// Endpoint converts the backend base URL into the websocket URL carrying
// the session token.
func Endpoint(baseURL, token string) (string, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = "/ws"
	u.RawQuery = url.Values{"token": {token}}.Encode()
	return u.String(), nil
}

// Dial connects and starts the read loop. The returned client's Events
// channel closes when the connection drops.
func Dial(ctx context.Context, baseURL, token string) (*Client, error) {
	endpoint, err := Endpoint(baseURL, token)
	if err != nil {
		return nil, err
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, endpoint, nil)
	if err != nil {
		return nil, err
	}

	c := &Client{conn: conn, events: make(chan *Event, 16)}
	go c.readLoop()
	return c, nil
}

// Events is the stream of inbound server frames.
func (c *Client) Events() <-chan *Event {
	return c.events
}

// Join subscribes to a channel; the server replies with its history.
func (c *Client) Join(channel string) error {
	return c.write(&clientEvent{Type: "join", Channel: channel})
}

// Send posts a message to a channel.
func (c *Client) Send(channel, content string) error {
	return c.write(&clientEvent{Type: "send", Channel: channel, Content: content})
}

// Close tears the connection down; the read loop exits and Events closes.
func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) write(evt *clientEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(evt)
}

func (c *Client) readLoop() {
	defer close(c.events)
	for {
		evt := &Event{}
		if err := c.conn.ReadJSON(evt); err != nil {
			return
		}
		c.events <- evt
	}
}
