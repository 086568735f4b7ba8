// Package tui drives the console interactively from a terminal: pick a
// resource, pick an action, answer one prompt per field the action reads and
// read the rendered outcome.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-wishform/pkg/form"
	"github.com/goliatone/go-wishform/pkg/orchestrator"
	"github.com/goliatone/go-wishform/pkg/render"
)

const quitOption = "quit"

// BlankInput typed at a prompt sets the field to "". An empty answer keeps
// the prefilled value.
const BlankInput = "-"

// Console is the orchestrator surface the shell needs.
type Console interface {
	Resources() []string
	Actions(resource string) ([]string, error)
	Inputs(resource, action string) ([]string, error)
	State() *form.State
	Run(ctx context.Context, req orchestrator.Request) (orchestrator.Outcome, error)
}

var _ Console = (*orchestrator.Orchestrator)(nil)

// Shell is the interactive loop.
type Shell struct {
	console        Console
	driver         PromptDriver
	theme          Theme
	confirmDeletes bool
	renderer       string
}

// New constructs a shell over console. Without WithPromptDriver the shell
// talks to the real terminal through survey.
func New(console Console, options ...Option) (*Shell, error) {
	if console == nil {
		return nil, errors.New("tui: console is required")
	}
	s := &Shell{console: console, renderer: "text"}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver(nil)
	}
	return s, nil
}

// Run loops until the operator quits or aborts, or ctx is done.
func (s *Shell) Run(ctx context.Context) error {
	for {
		more, err := s.Step(ctx)
		if errors.Is(err, ErrAborted) {
			return nil
		}
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
}

// Step runs one resource/action round. It reports false once the operator
// chose to quit.
func (s *Shell) Step(ctx context.Context) (bool, error) {
	resources := s.console.Resources()
	if len(resources) == 0 {
		return false, ErrNoResources
	}

	idx, err := s.driver.Select(ctx, SelectConfig{
		Message: s.theme.PromptPrefix + "Resource",
		Options: append(append([]string(nil), resources...), quitOption),
	})
	if err != nil {
		return false, err
	}
	if idx < 0 || idx >= len(resources) {
		return false, nil
	}
	resource := resources[idx]

	actions, err := s.console.Actions(resource)
	if err != nil {
		return false, err
	}
	idx, err = s.driver.Select(ctx, SelectConfig{
		Message: s.theme.PromptPrefix + "Action",
		Options: actions,
	})
	if err != nil {
		return false, err
	}
	if idx < 0 || idx >= len(actions) {
		return true, nil
	}
	action := actions[idx]

	values, err := s.collect(ctx, resource, action)
	if err != nil {
		return false, err
	}

	if action == "delete" && s.confirmDeletes {
		ok, err := s.driver.Confirm(ctx, ConfirmConfig{
			Message: fmt.Sprintf("%sDelete this %s?", s.theme.PromptPrefix, resource),
		})
		if err != nil {
			return false, err
		}
		if !ok {
			return true, s.driver.Info(ctx, s.theme.InfoPrefix+"Cancelled")
		}
	}

	outcome, err := s.console.Run(ctx, orchestrator.Request{
		Resource: resource,
		Action:   action,
		Values:   values,
		Renderer: s.renderer,
	})
	if err != nil {
		return true, s.driver.Info(ctx, s.theme.ErrorPrefix+err.Error())
	}
	return true, s.driver.Info(ctx, s.theme.InfoPrefix+strings.TrimRight(string(outcome.Output), "\n"))
}

func (s *Shell) collect(ctx context.Context, resource, action string) (map[string]string, error) {
	inputs, err := s.console.Inputs(resource, action)
	if err != nil {
		return nil, err
	}
	state := s.console.State()
	values := make(map[string]string, len(inputs))
	for _, name := range inputs {
		cfg := InputConfig{
			Message: s.theme.PromptPrefix + render.FieldLabel(name),
			Default: state.Value(name),
			Help:    "enter " + BlankInput + " to leave the field empty",
		}
		if name == form.StartFilter || name == form.EndFilter {
			cfg.Help = "YYYY-MM-DD, " + BlankInput + " for no bound"
		}
		value, err := s.driver.Input(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(value) == BlankInput {
			value = ""
		}
		values[name] = value
	}
	return values, nil
}
