package form

import (
	"sort"
	"sync"
)

// State is an in-memory Port. It is safe for concurrent use since responses
// for different resources can complete on different goroutines.
type State struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewState seeds the state with prefilled values.
func NewState(prefill map[string]string) *State {
	values := make(map[string]string, len(prefill))
	for k, v := range prefill {
		values[k] = v
	}
	return &State{values: values}
}

// Value returns the current value of a field, or "" when unset.
func (s *State) Value(name string) string {
	if s == nil {
		return ""
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[name]
}

// SetValue writes a field value.
func (s *State) SetValue(name, value string) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.values == nil {
		s.values = make(map[string]string)
	}
	s.values[name] = value
}

// Snapshot returns a copy of all values.
func (s *State) Snapshot() map[string]string {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Names lists the fields that have been written, sorted.
func (s *State) Names() []string {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.values))
	for name := range s.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var _ Port = (*State)(nil)
