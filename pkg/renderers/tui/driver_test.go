package tui

import (
	"bytes"
	"context"
	"errors"
	"testing"
)

func TestStringValidatorPassesAnswerText(t *testing.T) {
	errEmpty := errors.New("empty")
	var seen []string
	validate := stringValidator(func(s string) error {
		seen = append(seen, s)
		if s == "" {
			return errEmpty
		}
		return nil
	})

	if err := validate("2024-03-07"); err != nil {
		t.Fatalf("validate string: %v", err)
	}
	if err := validate(42); !errors.Is(err, errEmpty) {
		t.Fatalf("validate non-string = %v", err)
	}
	if len(seen) != 2 || seen[0] != "2024-03-07" || seen[1] != "" {
		t.Fatalf("seen = %q", seen)
	}
}

func TestSurveyDriverInfoAndCancelledContext(t *testing.T) {
	var out bytes.Buffer
	driver := NewSurveyDriver(&out)

	if err := driver.Info(context.Background(), "Success"); err != nil {
		t.Fatalf("info: %v", err)
	}
	if out.String() != "Success\n" {
		t.Fatalf("out = %q", out.String())
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cfg := InputConfig{Message: "Owner", Validator: func(string) error { return nil }}
	if _, err := driver.Input(ctx, cfg); !errors.Is(err, context.Canceled) {
		t.Fatalf("input err = %v", err)
	}
	if _, err := driver.Confirm(ctx, ConfirmConfig{Message: "Delete?"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("confirm err = %v", err)
	}
	if _, err := driver.Select(ctx, SelectConfig{Message: "Resource", Options: []string{"wishlist"}}); !errors.Is(err, context.Canceled) {
		t.Fatalf("select err = %v", err)
	}
}

func TestIndexOf(t *testing.T) {
	options := []string{"wishlist", "product", quitOption}
	if got := indexOf(options, "product"); got != 1 {
		t.Fatalf("indexOf product = %d", got)
	}
	if got := indexOf(options, "missing"); got != -1 {
		t.Fatalf("indexOf missing = %d", got)
	}
}
