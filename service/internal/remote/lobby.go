// internal/remote/lobby.go
package remote

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/sirupsen/logrus"
)

// Lobby is an http.Handler that signs up websocket players until the table
// is full. The handler holds each connection open until its chooser is
// closed.
type Lobby struct {
	timeout time.Duration
	log     logrus.FieldLogger

	mu       sync.Mutex
	capacity int
	seated   int
	signups  chan *Chooser
}

// NewLobby returns a lobby seating up to capacity players. timeout bounds
// the sign-up and, later, every request to the player.
func NewLobby(capacity int, timeout time.Duration, log logrus.FieldLogger) *Lobby {
	return &Lobby{
		timeout:  timeout,
		log:      log,
		capacity: capacity,
		signups:  make(chan *Chooser, capacity),
	}
}

func (l *Lobby) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		l.log.WithError(err).Warn("Websocket accept failed.")
		return
	}
	ch, err := SignUp(r.Context(), conn, l.timeout, l.log)
	if err != nil {
		l.log.WithError(err).Warn("Sign-up failed.")
		_ = conn.Close(websocket.StatusPolicyViolation, "sign-up failed")
		return
	}

	l.mu.Lock()
	full := l.seated >= l.capacity
	if !full {
		l.seated++
	}
	l.mu.Unlock()
	if full {
		ch.Close(websocket.StatusTryAgainLater, "table full")
		return
	}

	l.signups <- ch
	l.log.WithFields(logrus.Fields{"conn": ch.ID, "info": ch.Info}).Info("Player signed up.")
	select {
	case <-ch.Done():
	case <-r.Context().Done():
		ch.Close(websocket.StatusGoingAway, "server shutting down")
	}
}

// Wait returns the first n players to sign up, in sign-up order.
func (l *Lobby) Wait(ctx context.Context, n int) ([]*Chooser, error) {
	if n > l.capacity {
		return nil, fmt.Errorf("waiting for %d players in a lobby of %d", n, l.capacity)
	}
	out := make([]*Chooser, 0, n)
	for len(out) < n {
		select {
		case ch := <-l.signups:
			out = append(out, ch)
		case <-ctx.Done():
			for _, ch := range out {
				ch.Close(websocket.StatusGoingAway, "not enough players")
			}
			return nil, fmt.Errorf("%d of %d players signed up: %w", len(out), n, ctx.Err())
		}
	}
	return out, nil
}
