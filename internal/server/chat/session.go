package chat

import (
	"sync"
	"time"

	"github.com/Samayank/Renal-Tumor-Detection/internal/server/models"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 54 * time.Second
	maxMessageSize = 4096
	sendBufferSize = 256
)

// Session is the per-connection state: the resolved user plus the outbound
// queue. It exists only between connect and disconnect and owns no durable
// data.
type Session struct {
	id   string
	user *models.User
	conn *websocket.Conn

	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

func newSession(user *models.User, conn *websocket.Conn) *Session {
	return &Session{
		id:   uuid.NewString(),
		user: user,
		conn: conn,
		send: make(chan []byte, sendBufferSize),
		done: make(chan struct{}),
	}
}

// ID identifies this connection in logs; one user may hold several.
func (s *Session) ID() string {
	return s.id
}

// User returns the identity resolved at connect time.
func (s *Session) User() *models.User {
	return s.user
}

// enqueue hands a payload to the write pump without blocking. It reports
// false when the session is closed or its queue is full; the delivery is
// then simply dropped.
func (s *Session) enqueue(payload []byte) bool {
	select {
	case <-s.done:
		return false
	default:
	}

	select {
	case s.send <- payload:
		return true
	case <-s.done:
		return false
	default:
		return false
	}
}

// close tears the session down exactly once. Safe to call from any
// goroutine; both pumps observe the done channel.
func (s *Session) close() {
	s.closeOnce.Do(func() {
		close(s.done)
		_ = s.conn.Close()
	})
}

// writePump drains the outbound queue onto the wire and keeps the
// connection alive with periodic pings. It exits when the session closes.
func (s *Session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.close()
	}()

	for {
		select {
		case payload := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-s.done:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = s.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}
