package ws

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestEndpoint(t *testing.T) {
	tests := []struct {
		name string
		base string
		want string
	}{
		{"http", "http://127.0.0.1:8080", "ws://127.0.0.1:8080/ws?token=tok"},
		{"https", "https://chat.example.org", "wss://chat.example.org/ws?token=tok"},
		{"trailing slash", "http://127.0.0.1:8080/", "ws://127.0.0.1:8080/ws?token=tok"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Endpoint(tt.base, "tok")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDial_JoinSendAndReceive(t *testing.T) {
	upgrader := websocket.Upgrader{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ws" || r.URL.Query().Get("token") != "tok" {
			http.Error(w, "bad request", http.StatusUnauthorized)
			return
		}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		// echo join as an empty history, send as a delivery
		for {
			var evt clientEvent
			if err := conn.ReadJSON(&evt); err != nil {
				return
			}
			switch evt.Type {
			case "join":
				_ = conn.WriteJSON(&Event{Type: "history", Channel: evt.Channel, Messages: []*Message{}})
			case "send":
				_ = conn.WriteJSON(&Event{Type: "delivered", Message: &Message{
					Sender:  Sender{ID: "u-1", Name: "Sarthak"},
					Content: evt.Content,
					Channel: evt.Channel,
				}})
			}
		}
	}))
	defer srv.Close()

	base := "http" + strings.TrimPrefix(srv.URL, "http")
	c, err := Dial(context.Background(), base, "tok")
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer c.Close()

	if err := c.Join("general"); err != nil {
		t.Fatalf("join: %v", err)
	}

	select {
	case evt := <-c.Events():
		if evt.Type != "history" || evt.Channel != "general" {
			t.Fatalf("unexpected event: %+v", evt)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no history event")
	}

	if err := c.Send("general", "all on track"); err != nil {
		t.Fatalf("send: %v", err)
	}

	select {
	case evt := <-c.Events():
		if evt.Type != "delivered" || evt.Message.Content != "all on track" {
			t.Fatalf("unexpected event: %+v", evt)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no delivered event")
	}
}

func TestDial_RejectedToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "invalid or missing token", http.StatusUnauthorized)
	}))
	defer srv.Close()

	if _, err := Dial(context.Background(), srv.URL, "forged"); err == nil {
		t.Fatal("expected dial failure")
	}
}
