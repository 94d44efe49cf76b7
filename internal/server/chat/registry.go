package chat

import (
	"encoding/json"
	"sync"
)

// Registry maps channel name → set of subscribed sessions and performs
// fan-out delivery. It never persists anything; ordering across subscribers
// is not guaranteed, the stored message itself carries the channel order.
type Registry struct {
	mu   sync.RWMutex
	subs map[string]map[*Session]struct{}
}

func NewRegistry() *Registry {
	return &Registry{subs: make(map[string]map[*Session]struct{})}
}

// Subscribe adds the session to the channel's subscriber set. Subscribing
// twice is a no-op.
func (r *Registry) Subscribe(s *Session, channel string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.subs[channel]
	if !ok {
		set = make(map[*Session]struct{})
		r.subs[channel] = set
	}
	set[s] = struct{}{}
}

// Unsubscribe removes the session from the channel; safe to call when the
// session was never subscribed.
func (r *Registry) Unsubscribe(s *Session, channel string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if set, ok := r.subs[channel]; ok {
		delete(set, s)
		if len(set) == 0 {
			delete(r.subs, channel)
		}
	}
}

// UnsubscribeAll removes the session from every channel it joined.
func (r *Registry) UnsubscribeAll(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for channel, set := range r.subs {
		delete(set, s)
		if len(set) == 0 {
			delete(r.subs, channel)
		}
	}
}

// Publish delivers the event to every current subscriber of the channel,
// best effort: sessions with a full or closed outbound queue simply drop
// the delivery. Publish never blocks on a slow consumer.
func (r *Registry) Publish(channel string, evt *ServerEvent) int {
	payload, err := json.Marshal(evt)
	if err != nil {
		return 0
	}

	r.mu.RLock()
	targets := make([]*Session, 0, len(r.subs[channel]))
	for s := range r.subs[channel] {
		targets = append(targets, s)
	}
	r.mu.RUnlock()

	delivered := 0
	for _, s := range targets {
		if s.enqueue(payload) {
			delivered++
		}
	}
	return delivered
}

// Subscribers reports the current subscriber count for a channel.
func (r *Registry) Subscribers(channel string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.subs[channel])
}
