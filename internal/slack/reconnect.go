package slack

import (
	"context"
	"time"
)

type ReconnectOptions struct {
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	OnDisconnect   func(err error, nextBackoff time.Duration)
}

// RunGatewayWithReconnect keeps a Socket Mode connection alive, redialing
// with capped exponential backoff until ctx is canceled. Slack rotates
// websocket URLs, so every attempt goes back through apps.connections.open.
func (c *Client) RunGatewayWithReconnect(
	ctx context.Context,
	handler Handler,
	gatewayOpts GatewayOptions,
	reconnectOpts ReconnectOptions,
) error {
	backoff := reconnectOpts.InitialBackoff
	if backoff <= 0 {
		backoff = 500 * time.Millisecond
	}

	maxBackoff := reconnectOpts.MaxBackoff
	if maxBackoff <= 0 {
		maxBackoff = 10 * time.Second
	}

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		err := c.RunGatewayOnce(ctx, handler, gatewayOpts)
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if reconnectOpts.OnDisconnect != nil {
			reconnectOpts.OnDisconnect(err, backoff)
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		if backoff < maxBackoff {
			backoff *= 2
			if backoff > maxBackoff {
				backoff = maxBackoff
			}
		}
	}
}
