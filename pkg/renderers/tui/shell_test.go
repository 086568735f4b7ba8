package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-wishform/internal/apitest"
	"github.com/goliatone/go-wishform/pkg/client"
	"github.com/goliatone/go-wishform/pkg/form"
	"github.com/goliatone/go-wishform/pkg/orchestrator"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	confirm      []bool
	infoMessages []string
	inputConfigs []InputConfig
	inputPos     int
	selectPos    int
	confirmPos   int
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	s.inputConfigs = append(s.inputConfigs, cfg)
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, _ SelectConfig) (int, error) {
	if s.selectPos >= len(s.selectIdx) {
		return -1, ErrAborted
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func newConsole(srv *apitest.Server) *orchestrator.Orchestrator {
	api := client.New(
		client.WithBaseURL(srv.URL),
		client.WithClock(func() time.Time { return time.Date(2024, time.March, 7, 8, 0, 0, 0, time.Local) }),
	)
	return orchestrator.New(api)
}

func TestShellCreatesWishlistThenQuits(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	console := newConsole(srv)

	driver := &stubDriver{
		// resource=wishlist, action=create, then quit
		selectIdx: []int{0, 1, 2},
		inputs:    []string{"Birthday", "alice"},
	}
	shell, err := New(console, WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new shell: %v", err)
	}
	if err := shell.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	want := `{"name":"Birthday","date_joined":"2024-03-07","products":[],"owner":"alice"}`
	if got := srv.LastRequest().Body; got != want {
		t.Fatalf("body = %s", got)
	}
	if len(driver.infoMessages) != 1 || !strings.HasPrefix(driver.infoMessages[0], "Success") {
		t.Fatalf("info = %v", driver.infoMessages)
	}
	if console.State().Value(form.WishlistID) == "" {
		t.Fatalf("id not populated")
	}
	labels := []string{driver.inputConfigs[0].Message, driver.inputConfigs[1].Message}
	if diff := cmp.Diff([]string{"Name", "Owner"}, labels); diff != "" {
		t.Fatalf("prompt labels mismatch (-want +got):\n%s", diff)
	}
}

func TestShellPrefillsPromptsAndPassesDatesThrough(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	console := newConsole(srv)
	console.State().SetValue(form.WishlistOwner, "bob")

	driver := &stubDriver{
		selectIdx: []int{0, 0},
		inputs:    []string{"bob", "2024-13-01", ""},
	}
	shell, err := New(console, WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new shell: %v", err)
	}
	more, err := shell.Step(context.Background())
	if err != nil || !more {
		t.Fatalf("step = %v, %v", more, err)
	}

	if driver.inputConfigs[0].Default != "bob" {
		t.Fatalf("owner default = %q", driver.inputConfigs[0].Default)
	}
	for _, cfg := range driver.inputConfigs {
		if cfg.Validator != nil {
			t.Fatalf("prompt %q has a validator", cfg.Message)
		}
	}
	if req := srv.LastRequest(); req.RawQuery != "owner=bob&start=2024-13-01" {
		t.Fatalf("query = %q", req.RawQuery)
	}
}

func TestShellBlankInputEmptiesPrefilledField(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	console := newConsole(srv)
	console.State().SetValue(form.WishlistOwner, "bob")
	console.State().SetValue(form.StartFilter, "2024-01-01")

	driver := &stubDriver{
		// list with owner blanked, start kept, end empty
		selectIdx: []int{0, 0},
		inputs:    []string{BlankInput, "2024-01-01", ""},
	}
	shell, err := New(console, WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new shell: %v", err)
	}
	if _, err := shell.Step(context.Background()); err != nil {
		t.Fatalf("step: %v", err)
	}

	if got := console.State().Value(form.WishlistOwner); got != "" {
		t.Fatalf("owner = %q", got)
	}
	if req := srv.LastRequest(); req.RawQuery != "start=2024-01-01" {
		t.Fatalf("query = %q", req.RawQuery)
	}
	if !strings.Contains(driver.inputConfigs[0].Help, BlankInput) {
		t.Fatalf("help = %q", driver.inputConfigs[0].Help)
	}
}

func TestShellConfirmsDeletes(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	srv.SeedWishlist("Sports", "alice", "2024-01-01")
	console := newConsole(srv)

	driver := &stubDriver{
		// wishlist, delete (index 5), declined
		selectIdx: []int{0, 5},
		inputs:    []string{"1"},
		confirm:   []bool{false},
	}
	shell, err := New(console, WithPromptDriver(driver), WithConfirmDeletes(true), WithTheme(Theme{InfoPrefix: "> "}))
	if err != nil {
		t.Fatalf("new shell: %v", err)
	}
	if _, err := shell.Step(context.Background()); err != nil {
		t.Fatalf("step: %v", err)
	}
	if len(srv.Requests()) != 0 {
		t.Fatalf("declined delete reached the server")
	}
	if diff := cmp.Diff([]string{"> Cancelled"}, driver.infoMessages); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
}

func TestShellRequiresConsole(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Fatalf("expected error")
	}
}
