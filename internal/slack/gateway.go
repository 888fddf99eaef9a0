package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Handler receives each deliverable inbound message. Returned errors are the
// caller's to log; they do not tear down the gateway connection.
type Handler func(ctx context.Context, ev MessageEvent) error

type GatewayOptions struct {
	HandshakeTimeout time.Duration
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
}

func (o GatewayOptions) withDefaults() GatewayOptions {
	if o.HandshakeTimeout <= 0 {
		o.HandshakeTimeout = 10 * time.Second
	}
	if o.ReadTimeout <= 0 {
		o.ReadTimeout = 60 * time.Second
	}
	if o.WriteTimeout <= 0 {
		o.WriteTimeout = 10 * time.Second
	}
	return o
}

// RunGatewayOnce opens a Socket Mode connection and pumps events until the
// connection drops, Slack asks for a reconnect, or ctx is canceled.
func (c *Client) RunGatewayOnce(ctx context.Context, handler Handler, opts GatewayOptions) error {
	if handler == nil {
		return fmt.Errorf("handler is required")
	}
	opts = opts.withDefaults()

	wsURL, err := c.ConnectionsOpen(ctx)
	if err != nil {
		return err
	}

	dialer := websocket.Dialer{HandshakeTimeout: opts.HandshakeTimeout}
	conn, _, err := dialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	var writeMu sync.Mutex
	sendJSON := func(v any) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		_ = conn.SetWriteDeadline(time.Now().Add(opts.WriteTimeout))
		return conn.WriteJSON(v)
	}

	conn.SetPingHandler(func(appData string) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		return conn.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(opts.WriteTimeout))
	})

	stop := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "shutdown"), time.Now().Add(2*time.Second))
			_ = conn.Close()
		case <-stop:
		}
	}()
	defer close(stop)

	for {
		_ = conn.SetReadDeadline(time.Now().Add(opts.ReadTimeout))
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}

		var env envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			continue
		}

		switch env.Type {
		case "hello":
			// connection established
		case "disconnect":
			return fmt.Errorf("gateway disconnect requested: %s", env.Reason)
		case "events_api":
			// Ack before handling: Slack redelivers unacked envelopes after
			// a few seconds, and a slow oracle call would blow that window.
			if env.EnvelopeID != "" {
				if err := sendJSON(ack{EnvelopeID: env.EnvelopeID}); err != nil {
					return err
				}
			}
			ev, ok, err := decodeMessageEvent(env.Payload)
			if err != nil || !ok {
				continue
			}
			if err := handler(ctx, ev); err != nil {
				return err
			}
		default:
		}
	}
}

// decodeMessageEvent extracts a deliverable user message from an events_api
// payload. Non-message events, message subtypes (edits, joins) and the bot's
// own messages are filtered out here.
func decodeMessageEvent(payload json.RawMessage) (MessageEvent, bool, error) {
	if len(payload) == 0 {
		return MessageEvent{}, false, nil
	}

	var cb eventCallback
	if err := json.Unmarshal(payload, &cb); err != nil {
		return MessageEvent{}, false, err
	}
	if cb.Type != "event_callback" || len(cb.Event) == 0 {
		return MessageEvent{}, false, nil
	}

	var ev MessageEvent
	if err := json.Unmarshal(cb.Event, &ev); err != nil {
		return MessageEvent{}, false, err
	}
	if ev.Type != "message" || ev.Subtype != "" || ev.BotID != "" {
		return MessageEvent{}, false, nil
	}
	if strings.TrimSpace(ev.User) == "" || strings.TrimSpace(ev.Channel) == "" {
		return MessageEvent{}, false, nil
	}
	return ev, true, nil
}
