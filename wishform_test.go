package wishform_test

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	"github.com/goliatone/go-wishform"
	"github.com/goliatone/go-wishform/internal/apitest"
	"github.com/goliatone/go-wishform/pkg/client"
	"github.com/goliatone/go-wishform/pkg/contract"
)

func TestEmbeddedFiles(t *testing.T) {
	if _, err := fs.Stat(wishform.EmbeddedTemplates(), "templates/console.tmpl"); err != nil {
		t.Fatalf("console template: %v", err)
	}
	data, err := fs.ReadFile(wishform.AssetsFS(), "wishform.css")
	if err != nil {
		t.Fatalf("stylesheet: %v", err)
	}
	if !strings.Contains(string(data), "--wf-") {
		t.Fatal("stylesheet does not use theme variables")
	}
}

func TestLoaderAndParserReadEmbeddedContract(t *testing.T) {
	ops, err := wishform.NewParser().Operations(context.Background(), contract.Embedded())
	if err != nil {
		t.Fatalf("operations: %v", err)
	}
	if len(ops) != len(client.Endpoints()) {
		t.Fatalf("got %d operations", len(ops))
	}
	if wishform.NewLoader() == nil {
		t.Fatal("nil loader")
	}
}

func TestNewConsoleRunsActions(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	srv.SeedWishlist("Gifts", "alice", "2024-01-02")

	console := wishform.NewConsole(client.New(client.WithBaseURL(srv.URL)))
	outcome, err := console.Run(context.Background(), wishform.Request{Resource: "wishlist", Action: "list"})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if outcome.ActionErr != nil || console.Status() != "Wishlists retrieved successfully" {
		t.Fatalf("unexpected outcome %v / %q", outcome.ActionErr, console.Status())
	}
}
