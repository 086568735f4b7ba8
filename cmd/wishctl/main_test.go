package main

import (
	"bytes"
	"context"
	"flag"
	"strings"
	"testing"

	"github.com/goliatone/go-wishform/internal/apitest"
	"github.com/goliatone/go-wishform/internal/config"
	"github.com/goliatone/go-wishform/pkg/logger"
	"github.com/goliatone/go-wishform/pkg/orchestrator"
)

func TestAssignments(t *testing.T) {
	values := assignments{}
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.Var(values, "set", "")
	if err := fs.Parse([]string{"-set", "wishlist_name=Gifts", "-set", "user_name=a=b"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if values["wishlist_name"] != "Gifts" || values["user_name"] != "a=b" {
		t.Fatalf("unexpected values %v", values)
	}
	if got := values.String(); got != "user_name=a=b,wishlist_name=Gifts" {
		t.Fatalf("String() = %q", got)
	}
	if err := values.Set("novalue"); err == nil {
		t.Fatal("expected error for missing '='")
	}
}

func TestConsoleRendersBothFormats(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	srv.SeedWishlist("Gifts", "alice", "2024-01-02", "Socks")

	cfg := config.Default()
	cfg.BaseURL = srv.URL
	var out bytes.Buffer
	console, err := newConsole(cfg, logger.Discard(), nil, &out)
	if err != nil {
		t.Fatalf("console: %v", err)
	}

	outcome, err := console.Run(context.Background(), orchestrator.Request{Resource: "wishlist", Action: "list"})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(string(outcome.Output), "Socks") {
		t.Fatalf("text output missing row:\n%s", outcome.Output)
	}

	page, contentType, err := console.Render(context.Background(), "html", orchestrator.Request{}.RenderOptions)
	if err != nil {
		t.Fatalf("render html: %v", err)
	}
	if contentType != "text/html; charset=utf-8" || !strings.Contains(string(page), "--wf-") {
		t.Fatalf("unexpected html page %s:\n%s", contentType, page)
	}
}
