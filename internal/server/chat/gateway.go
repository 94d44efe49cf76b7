package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/Samayank/Renal-Tumor-Detection/internal/logging"
	"github.com/Samayank/Renal-Tumor-Detection/internal/server/models"
	"github.com/gorilla/websocket"
)

// MessageStore is the durable message log the gateway appends to and reads
// history from.
type MessageStore interface {
	Append(ctx context.Context, senderID, channel, content string) (*models.Message, error)
	List(ctx context.Context, channel string) ([]*models.Message, error)
}

// IdentityResolver turns the handshake token into an active user.
type IdentityResolver interface {
	Resolve(ctx context.Context, token string) (*models.User, error)
}

// Gateway bridges websocket connections to the registry and the message
// store. Identity is asserted once, at connect time, via the ?token=
// handshake parameter; a session whose token does not resolve is terminated
// immediately.
type Gateway struct {
	registry *Registry
	store    MessageStore
	identity IdentityResolver
	logger   logging.Logger
	upgrader websocket.Upgrader

	mu       sync.Mutex
	sessions map[*Session]struct{}
}

func NewGateway(registry *Registry, store MessageStore, identity IdentityResolver, logger logging.Logger) *Gateway {
	return &Gateway{
		registry: registry,
		store:    store,
		identity: identity,
		logger:   logger.With("module", "chat_gateway"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The web client is served from arbitrary origins, mirroring the
			// wide-open CORS policy of the REST surface.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		sessions: make(map[*Session]struct{}),
	}
}

// HandleWebSocket upgrades the request and runs the session until the
// client disconnects.
func (g *Gateway) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := g.identity.Resolve(ctx, r.URL.Query().Get("token"))
	if err != nil {
		http.Error(w, "invalid or missing token", http.StatusUnauthorized)
		return
	}

	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.Warn(ctx, "websocket upgrade failed", "error", err)
		return
	}

	session := newSession(user, conn)
	g.track(session)
	g.logger.Info(ctx, "user connected", "user", user.Name, "session", session.id)

	go session.writePump()
	g.readLoop(ctx, session)

	g.registry.UnsubscribeAll(session)
	g.untrack(session)
	session.close()
	g.logger.Info(ctx, "user disconnected", "user", user.Name, "session", session.id)
}

// Shutdown closes every live session.
func (g *Gateway) Shutdown() {
	g.mu.Lock()
	sessions := make([]*Session, 0, len(g.sessions))
	for s := range g.sessions {
		sessions = append(sessions, s)
	}
	g.mu.Unlock()

	for _, s := range sessions {
		s.close()
	}
}

func (g *Gateway) track(s *Session) {
	g.mu.Lock()
	g.sessions[s] = struct{}{}
	g.mu.Unlock()
}

func (g *Gateway) untrack(s *Session) {
	g.mu.Lock()
	delete(g.sessions, s)
	g.mu.Unlock()
}

func (g *Gateway) readLoop(ctx context.Context, s *Session) {
	s.conn.SetReadLimit(maxMessageSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				g.logger.Warn(ctx, "websocket read error", "user", s.user.Name, "error", err)
			}
			return
		}

		var evt ClientEvent
		if err := json.Unmarshal(raw, &evt); err != nil {
			g.logger.Warn(ctx, "invalid frame", "user", s.user.Name, "error", err)
			continue
		}

		switch evt.Type {
		case EventJoin:
			g.handleJoin(ctx, s, evt.Channel)
		case EventSend:
			g.handleSend(ctx, s, evt)
		default:
			g.logger.Warn(ctx, "unknown event type", "type", evt.Type, "user", s.user.Name)
		}
	}
}

// handleJoin subscribes the session and replies with the channel history as
// of join time. Joining an unknown channel is ignored.
func (g *Gateway) handleJoin(ctx context.Context, s *Session, channel string) {
	if !models.ValidChannel(channel) {
		g.logger.Warn(ctx, "join rejected: unknown channel", "channel", channel, "user", s.user.Name)
		return
	}

	g.registry.Subscribe(s, channel)

	history, err := g.store.List(ctx, channel)
	if err != nil {
		// Realtime path has no response contract; log and move on.
		g.logger.Error(ctx, "history fetch failed", "channel", channel, "error", err)
		return
	}
	if history == nil {
		history = []*models.Message{}
	}

	payload, err := json.Marshal(&ServerEvent{Type: EventHistory, Channel: channel, Messages: history})
	if err != nil {
		g.logger.Error(ctx, "history encoding failed", "channel", channel, "error", err)
		return
	}
	s.enqueue(payload)
}

// handleSend appends the message to the store and fans the stored record
// out to every subscriber, the sender included. Append failures are logged
// and dropped.
func (g *Gateway) handleSend(ctx context.Context, s *Session, evt ClientEvent) {
	msg, err := g.store.Append(ctx, s.user.ID, evt.Channel, evt.Content)
	if err != nil {
		g.logger.Warn(ctx, "send dropped", "channel", evt.Channel, "user", s.user.Name, "error", err)
		return
	}

	g.registry.Publish(evt.Channel, &ServerEvent{Type: EventDelivered, Message: msg})
}
