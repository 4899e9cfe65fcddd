package notify

import (
	"context"
	"log"
	"time"
)

// Notification is one push payload fanned out to a set of device tokens.
type Notification struct {
	Title  string
	Body   string
	Tokens []string
	Data   map[string]string
}

// Sender delivers a notification to a push provider.
type Sender interface {
	Send(ctx context.Context, n Notification) error
}

// Dispatcher decouples push delivery from the request path. Delivery is
// best-effort: failures go to the log sink and are never retried or
// surfaced to the caller, so persisting a message can never fail because
// the push provider is unreachable.
type Dispatcher struct {
	sender  Sender
	timeout time.Duration
}

func NewDispatcher(sender Sender) *Dispatcher {
	return &Dispatcher{sender: sender, timeout: 30 * time.Second}
}

// Dispatch sends the notification on a detached goroutine and returns
// immediately. Empty token sets short-circuit with no call made. Safe to
// call on a nil dispatcher (no provider configured).
func (d *Dispatcher) Dispatch(n Notification) {
	if d == nil || d.sender == nil || len(n.Tokens) == 0 {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()
		if err := d.sender.Send(ctx, n); err != nil {
			log.Printf("notify: dispatch failed (%d tokens): %v", len(n.Tokens), err)
		}
	}()
}

// Send delivers synchronously, for the few call sites that await delivery.
func (d *Dispatcher) Send(ctx context.Context, n Notification) error {
	if d == nil || d.sender == nil || len(n.Tokens) == 0 {
		return nil
	}
	return d.sender.Send(ctx, n)
}

// TokenSet accumulates device tokens preserving uniqueness and insertion
// order. Call sites collect into a set before dispatching.
type TokenSet struct {
	seen   map[string]struct{}
	tokens []string
}

func NewTokenSet() *TokenSet {
	return &TokenSet{seen: make(map[string]struct{})}
}

func (s *TokenSet) Add(tokens ...string) {
	for _, t := range tokens {
		if t == "" {
			continue
		}
		if _, ok := s.seen[t]; ok {
			continue
		}
		s.seen[t] = struct{}{}
		s.tokens = append(s.tokens, t)
	}
}

func (s *TokenSet) Tokens() []string {
	return s.tokens
}

func (s *TokenSet) Len() int {
	return len(s.tokens)
}
