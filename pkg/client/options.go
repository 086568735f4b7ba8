package client

import (
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-wishform/pkg/model"
)

// Observer receives one callback per completed exchange.
type Observer interface {
	ObserveRequest(op Operation, status int, elapsed time.Duration, err error)
}

// Option configures the Client.
type Option func(*Client)

// WithBaseURL sets the scheme/host (and optional prefix such as "/api") that
// endpoint paths are appended to.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(strings.TrimSpace(base), "/")
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

// WithAPIKey sends the key in the X-Api-Key header on every request.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = strings.TrimSpace(key)
	}
}

// WithClock overrides the clock used to stamp date_joined.
func WithClock(clock model.Clock) Option {
	return func(c *Client) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithLogger sets the logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// WithObserver registers an exchange observer.
func WithObserver(observer Observer) Option {
	return func(c *Client) {
		c.observer = observer
	}
}
