// internal/remote/chooser.go

// Package remote connects engine choosers to players over websockets.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
	engine "github.com/nixpulvis/hell/engine"
	"github.com/nixpulvis/hell/service/internal/wire"
	"github.com/sirupsen/logrus"
)

// ErrSignUp is returned when a connection does not sign up properly.
var ErrSignUp = errors.New("sign-up failed")

// Chooser is the dealer's end of one remote player. Each request writes
// one message and, except for start, reads exactly one reply within the
// chooser's timeout. Timeouts, transport errors and unreadable replies are
// returned as errors, which eject the player.
type Chooser struct {
	ID   uuid.UUID
	Info string

	conn    *websocket.Conn
	timeout time.Duration
	log     logrus.FieldLogger

	closeOnce sync.Once
	done      chan struct{}
}

var _ engine.Chooser = (*Chooser)(nil)

// SignUp reads the player's info string and answers "ok".
func SignUp(ctx context.Context, conn *websocket.Conn, timeout time.Duration, log logrus.FieldLogger) (*Chooser, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var info string
	if err := wsjson.Read(ctx, conn, &info); err != nil {
		return nil, fmt.Errorf("%w: read info: %w", ErrSignUp, err)
	}
	if err := wsjson.Write(ctx, conn, wire.SignUpOK); err != nil {
		return nil, fmt.Errorf("%w: write ok: %w", ErrSignUp, err)
	}
	id := uuid.New()
	return &Chooser{
		ID:      id,
		Info:    info,
		conn:    conn,
		timeout: timeout,
		log:     log.WithFields(logrus.Fields{"conn": id, "info": info}),
		done:    make(chan struct{}),
	}, nil
}

// SetTimeout changes the per-request timeout.
func (c *Chooser) SetTimeout(d time.Duration) { c.timeout = d }

// Done is closed once the chooser is closed.
func (c *Chooser) Done() <-chan struct{} { return c.done }

// Close ends the connection with the given status and reason.
func (c *Chooser) Close(code websocket.StatusCode, reason string) {
	c.closeOnce.Do(func() {
		_ = c.conn.Close(code, reason)
		close(c.done)
	})
}

// request writes msg and, when reply is not nil, reads one message into it.
func (c *Chooser) request(ctx context.Context, msg any, reply *json.RawMessage) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	if err := wsjson.Write(ctx, c.conn, msg); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	if reply == nil {
		return nil
	}
	if err := wsjson.Read(ctx, c.conn, reply); err != nil {
		return fmt.Errorf("read: %w", err)
	}
	return nil
}

// Start sends the post-deal notification.
func (c *Chooser) Start(ctx context.Context, obs engine.DealObservation) error {
	return c.request(ctx, wire.EncodeStart(obs), nil)
}

// ChooseAction sends an action request and decodes the Action4 reply.
func (c *Chooser) ChooseAction(ctx context.Context, obs engine.ActionObservation) (*engine.ActionChoice, error) {
	var reply json.RawMessage
	if err := c.request(ctx, wire.EncodeChoose(obs), &reply); err != nil {
		return nil, err
	}
	choice, err := wire.DecodeAction(reply)
	if err != nil {
		c.log.WithError(err).Debug("Unreadable action.")
		return nil, err
	}
	return &choice, nil
}

// ChooseFeed sends a feeding request and decodes the reply.
func (c *Chooser) ChooseFeed(ctx context.Context, obs engine.FeedObservation) (*engine.FeedChoice, error) {
	var reply json.RawMessage
	if err := c.request(ctx, wire.EncodeFeedState(obs), &reply); err != nil {
		return nil, err
	}
	choice, err := wire.DecodeFeedChoice(reply)
	if err != nil {
		c.log.WithError(err).Debug("Unreadable feed choice.")
		return nil, err
	}
	return choice, nil
}
