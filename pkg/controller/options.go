package controller

import (
	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-wishform/pkg/logger"
)

// StaleHook is told about responses dropped because a newer action was issued
// for the same resource.
type StaleHook func(resource string, action Action)

type config struct {
	status       Status
	table        Table
	log          logrus.FieldLogger
	silentCreate bool
	onStale      StaleHook
}

// Option configures a controller.
type Option func(*config)

// WithStatus sets the status region.
func WithStatus(status Status) Option {
	return func(cfg *config) {
		if status != nil {
			cfg.status = status
		}
	}
}

// WithTable sets the results table for list actions.
func WithTable(table Table) Option {
	return func(cfg *config) {
		if table != nil {
			cfg.table = table
		}
	}
}

// WithLogger sets the logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(cfg *config) {
		if log != nil {
			cfg.log = log
		}
	}
}

// WithSilentCreateFailures restores the legacy behaviour where a failed
// create leaves the status region untouched.
func WithSilentCreateFailures() Option {
	return func(cfg *config) {
		cfg.silentCreate = true
	}
}

// WithStaleHook registers a callback for discarded responses.
func WithStaleHook(hook StaleHook) Option {
	return func(cfg *config) {
		cfg.onStale = hook
	}
}

func newConfig(options []Option) config {
	cfg := config{
		status: discardStatus{},
		table:  discardTable{},
		log:    logger.Discard(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}
