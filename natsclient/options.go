package natsclient

import (
	"log/slog"
	"time"
)

// ClientOption configures a Client
type ClientOption func(*Client)

// WithLogger sets the structured logger for connection lifecycle events
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithClientName sets the connection name visible in NATS monitoring
func WithClientName(name string) ClientOption {
	return func(c *Client) {
		c.clientName = name
	}
}

// WithMaxReconnects sets the maximum reconnect attempts (-1 for infinite)
func WithMaxReconnects(max int) ClientOption {
	return func(c *Client) {
		c.maxReconnects = max
	}
}

// WithReconnectWait sets the delay between reconnect attempts
func WithReconnectWait(wait time.Duration) ClientOption {
	return func(c *Client) {
		c.reconnectWait = wait
	}
}

// WithTimeout sets the connection dial timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithDisconnectCallback registers a callback invoked on disconnect
func WithDisconnectCallback(fn func(error)) ClientOption {
	return func(c *Client) {
		c.onDisconnect = fn
	}
}

// WithReconnectCallback registers a callback invoked on reconnect
func WithReconnectCallback(fn func()) ClientOption {
	return func(c *Client) {
		c.onReconnect = fn
	}
}
