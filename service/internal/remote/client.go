// internal/remote/client.go
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	engine "github.com/nixpulvis/hell/engine"
	"github.com/nixpulvis/hell/service/internal/wire"
	"github.com/sirupsen/logrus"
)

// Client is the player's end of a dealer connection. It answers the
// dealer's requests with a local engine.Chooser.
type Client struct {
	conn    *websocket.Conn
	chooser engine.Chooser
	log     logrus.FieldLogger

	self *engine.Player // state from the last start message
}

// Dial connects to a dealer and signs up with info.
func Dial(ctx context.Context, url, info string, chooser engine.Chooser, log logrus.FieldLogger) (*Client, error) {
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	if err := wsjson.Write(ctx, conn, info); err != nil {
		_ = conn.Close(websocket.StatusInternalError, "sign-up failed")
		return nil, fmt.Errorf("%w: write info: %w", ErrSignUp, err)
	}
	var ok string
	if err := wsjson.Read(ctx, conn, &ok); err != nil || ok != wire.SignUpOK {
		_ = conn.Close(websocket.StatusInternalError, "sign-up failed")
		return nil, fmt.Errorf("%w: dealer answered %q: %v", ErrSignUp, ok, err)
	}
	return &Client{conn: conn, chooser: chooser, log: log.WithField("info", info)}, nil
}

// Close ends the connection.
func (c *Client) Close() error {
	return c.conn.Close(websocket.StatusNormalClosure, "bye")
}

// Play answers requests until the dealer closes the connection. A normal
// closure returns nil.
func (c *Client) Play(ctx context.Context) error {
	for {
		var msg json.RawMessage
		if err := wsjson.Read(ctx, c.conn, &msg); err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure {
				return nil
			}
			return fmt.Errorf("read: %w", err)
		}
		reply, err := c.handle(ctx, msg)
		if err != nil {
			return err
		}
		if reply == nil {
			continue
		}
		if err := wsjson.Write(ctx, c.conn, reply.v); err != nil {
			return fmt.Errorf("write: %w", err)
		}
	}
}

// response wraps a reply so that a JSON null can be sent.
type response struct{ v any }

// handle tells the three requests apart by their element count.
func (c *Client) handle(ctx context.Context, msg json.RawMessage) (*response, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(msg, &elems); err != nil {
		return nil, fmt.Errorf("%w: %s", wire.ErrMalformed, msg)
	}
	switch len(elems) {
	case 4:
		obs, err := wire.DecodeStart(msg)
		if err != nil {
			return nil, err
		}
		c.self = obs.Player
		if err := c.chooser.Start(ctx, obs); err != nil {
			c.log.WithError(err).Debug("Start failed.")
		}
		return nil, nil

	case 2:
		if c.self == nil {
			return nil, errors.New("action requested before start")
		}
		before, after, err := wire.DecodeChoose(msg)
		if err != nil {
			return nil, err
		}
		choice, err := c.chooser.ChooseAction(ctx, engine.ActionObservation{Player: c.self, Before: before, After: after})
		if err != nil {
			return nil, fmt.Errorf("choose action: %w", err)
		}
		if choice == nil {
			return &response{v: nil}, nil
		}
		return &response{v: wire.EncodeAction(*choice)}, nil

	case 5:
		obs, err := wire.DecodeFeedState(msg)
		if err != nil {
			return nil, err
		}
		choice, err := c.chooser.ChooseFeed(ctx, obs)
		if err != nil {
			return nil, fmt.Errorf("choose feed: %w", err)
		}
		return &response{v: wire.EncodeFeedChoice(choice)}, nil
	}
	return nil, fmt.Errorf("%w: unknown request %s", wire.ErrMalformed, msg)
}
