package controller

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-wishform/pkg/form"
)

// ErrSuperseded is returned when a response arrived after a newer action was
// issued for the same resource and was therefore not rendered.
var ErrSuperseded = errors.New("controller: response superseded by a newer action")

// ErrUnknownAction is returned by Do for actions a controller does not offer.
var ErrUnknownAction = errors.New("controller: unknown action")

// sequencer hands out in-flight tokens and serialises rendering so that only
// the latest token can write.
type sequencer struct {
	mu     sync.Mutex
	latest uint64
}

func (s *sequencer) issue() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest++
	return s.latest
}

// commit runs render only if token is still the latest issued.
func (s *sequencer) commit(token uint64, render func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.latest {
		return false
	}
	render()
	return true
}

// resource is the part shared by both controllers.
type resource struct {
	config
	group form.Group
	port  form.Port
	seq   sequencer
	msgs  messages
}

func newResource(group form.Group, port form.Port, msgs messages, options []Option) *resource {
	return &resource{
		config: newConfig(options),
		group:  group,
		port:   port,
		msgs:   msgs,
	}
}

func (r *resource) field(name string) string {
	if r.port == nil {
		return ""
	}
	return r.port.Value(name)
}

// clear resets the group and the status region; it counts as an issued
// action so in-flight responses no longer render.
func (r *resource) clear() {
	r.status.Clear()
	token := r.seq.issue()
	r.seq.commit(token, func() {
		form.Clear(r.port, r.group)
	})
}

// dispatch runs one action: clear status, issue a token, call the API and
// render the outcome if the token is still current.
func dispatch[T any](ctx context.Context, r *resource, action Action, call func(context.Context) (T, error), success func(T), failure func(error)) error {
	r.status.Clear()
	token := r.seq.issue()
	log := r.log.WithFields(logrus.Fields{"resource": r.group.Resource, "action": action, "token": token})
	log.Debug("action dispatched")

	value, err := call(ctx)

	applied := r.seq.commit(token, func() {
		if err != nil {
			failure(err)
			return
		}
		success(value)
	})
	if !applied {
		log.Debug("stale response discarded")
		if r.onStale != nil {
			r.onStale(r.group.Resource, action)
		}
		return ErrSuperseded
	}
	if err != nil {
		log.WithError(err).Warn("action failed")
		return err
	}
	log.Debug("action rendered")
	return nil
}

type none struct{}

func noValue(fn func(context.Context) error) func(context.Context) (none, error) {
	return func(ctx context.Context) (none, error) {
		return none{}, fn(ctx)
	}
}
