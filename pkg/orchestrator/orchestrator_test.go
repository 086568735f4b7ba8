package orchestrator_test

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-wishform/internal/apitest"
	"github.com/goliatone/go-wishform/pkg/client"
	"github.com/goliatone/go-wishform/pkg/controller"
	"github.com/goliatone/go-wishform/pkg/form"
	"github.com/goliatone/go-wishform/pkg/orchestrator"
	"github.com/goliatone/go-wishform/pkg/render"
)

func newOrchestrator(t *testing.T, srv *apitest.Server, opts ...orchestrator.Option) *orchestrator.Orchestrator {
	t.Helper()
	api := client.New(
		client.WithBaseURL(srv.URL),
		client.WithClock(func() time.Time { return time.Date(2024, time.March, 7, 12, 0, 0, 0, time.Local) }),
	)
	return orchestrator.New(api, opts...)
}

func TestRunCreateWishlistPopulatesForm(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	orch := newOrchestrator(t, srv)

	outcome, err := orch.Run(context.Background(), orchestrator.Request{
		Resource: "wishlist",
		Action:   "create",
		Values: map[string]string{
			form.WishlistName:  "Birthday",
			form.WishlistOwner: "alice",
			"unknown_field":    "ignored",
		},
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if outcome.ActionErr != nil {
		t.Fatalf("action error: %v", outcome.ActionErr)
	}

	want := `{"name":"Birthday","date_joined":"2024-03-07","products":[],"owner":"alice"}`
	if got := srv.LastRequest().Body; got != want {
		t.Fatalf("body = %s", got)
	}
	if orch.State().Value(form.WishlistID) == "" {
		t.Fatalf("id not populated: %v", orch.State().Snapshot())
	}
	if orch.State().Value("unknown_field") != "" {
		t.Fatalf("unowned field applied")
	}
	if orch.Status() != "Success" {
		t.Fatalf("status = %q", orch.Status())
	}
	if outcome.ContentType != "text/plain; charset=utf-8" {
		t.Fatalf("content type = %q", outcome.ContentType)
	}
	if !strings.Contains(string(outcome.Output), "Success") {
		t.Fatalf("output missing status:\n%s", outcome.Output)
	}
}

func TestRunListRendersTables(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	id := srv.SeedWishlist("Sports", "alice", "2024-01-01", "Ball", "Bat")
	orch := newOrchestrator(t, srv)

	outcome, err := orch.Run(context.Background(), orchestrator.Request{
		Resource: "product",
		Action:   "LIST",
		Values:   map[string]string{form.ProductWishlistID: strconv.Itoa(id)},
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if outcome.ActionErr != nil {
		t.Fatalf("action error: %v", outcome.ActionErr)
	}

	snap := orch.Snapshot()
	table, ok := snap.Table("product")
	if !ok {
		t.Fatalf("product table missing")
	}
	if diff := cmp.Diff(controller.ProductColumns, table.Columns); diff != "" {
		t.Fatalf("columns mismatch (-want +got):\n%s", diff)
	}
	if len(table.Rows) != 2 || table.Rows[0][2] != "Ball" || table.Rows[1][2] != "Bat" {
		t.Fatalf("rows = %v", table.Rows)
	}
	if !strings.Contains(string(outcome.Output), "Products retrieved successfully") {
		t.Fatalf("output:\n%s", outcome.Output)
	}
}

func TestRunSurfacesActionFailure(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	srv.Fail(http.MethodGet, "/wishlists/42", apitest.Failure{Status: http.StatusNotFound, Body: `{"message":"not found"}`})
	orch := newOrchestrator(t, srv)

	outcome, err := orch.Run(context.Background(), orchestrator.Request{
		Resource: "wishlist",
		Action:   "retrieve",
		Values:   map[string]string{form.WishlistID: "42", form.WishlistName: "stale"},
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if client.StatusOf(outcome.ActionErr) != http.StatusNotFound {
		t.Fatalf("action error = %v", outcome.ActionErr)
	}
	if orch.Status() != "not found" {
		t.Fatalf("status = %q", orch.Status())
	}
	if orch.State().Value(form.WishlistID) != "" || orch.State().Value(form.WishlistName) != "" {
		t.Fatalf("form not cleared: %v", orch.State().Snapshot())
	}
}

func TestRunRejectsUnknownTargets(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	orch := newOrchestrator(t, srv)

	if _, err := orch.Run(context.Background(), orchestrator.Request{Resource: "basket", Action: "list"}); !errors.Is(err, orchestrator.ErrUnknownResource) {
		t.Fatalf("expected unknown resource, got %v", err)
	}
	if _, err := orch.Run(context.Background(), orchestrator.Request{Resource: "product", Action: "copy"}); !errors.Is(err, controller.ErrUnknownAction) {
		t.Fatalf("expected unknown action, got %v", err)
	}
	if _, err := orch.Run(context.Background(), orchestrator.Request{
		Resource: "product",
		Action:   "list",
		Renderer: "pdf",
		Values:   map[string]string{form.ProductWishlistID: "1"},
	}); err == nil {
		t.Fatalf("expected unknown renderer error")
	}
	if len(srv.Requests()) != 1 {
		t.Fatalf("only the pdf request should reach the server, got %d", len(srv.Requests()))
	}
}

func TestIntrospection(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	orch := newOrchestrator(t, srv)

	if diff := cmp.Diff([]string{"wishlist", "product"}, orch.Resources()); diff != "" {
		t.Fatalf("resources mismatch (-want +got):\n%s", diff)
	}
	actions, err := orch.Actions("product")
	if err != nil {
		t.Fatalf("actions: %v", err)
	}
	if diff := cmp.Diff([]string{"list", "create", "update", "retrieve", "delete", "clear"}, actions); diff != "" {
		t.Fatalf("actions mismatch (-want +got):\n%s", diff)
	}
	inputs, err := orch.Inputs("wishlist", "list")
	if err != nil {
		t.Fatalf("inputs: %v", err)
	}
	if diff := cmp.Diff([]string{form.WishlistOwner, form.StartFilter, form.EndFilter}, inputs); diff != "" {
		t.Fatalf("inputs mismatch (-want +got):\n%s", diff)
	}
}

type captureRenderer struct {
	options render.RenderOptions
}

func (r *captureRenderer) Name() string        { return "capture" }
func (r *captureRenderer) ContentType() string { return "text/capture" }
func (r *captureRenderer) Render(_ context.Context, snap render.Snapshot, opts render.RenderOptions) ([]byte, error) {
	r.options = opts
	return []byte(snap.Status), nil
}

func TestRunUsesRegistryAndFocus(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()

	renderer := &captureRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)
	orch := newOrchestrator(t, srv,
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer("capture"),
		orchestrator.WithControllerOptions(controller.WithSilentCreateFailures()),
	)
	srv.Fail(http.MethodPost, "/wishlists", apitest.Failure{Status: http.StatusBadRequest, Body: `{"message":"bad"}`})

	outcome, err := orch.Run(context.Background(), orchestrator.Request{Resource: "wishlist", Action: "create"})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if outcome.ActionErr == nil {
		t.Fatalf("expected action error")
	}
	if string(outcome.Output) != "" {
		t.Fatalf("silenced create rendered status %q", outcome.Output)
	}
	if renderer.options.Focus != "wishlist" {
		t.Fatalf("focus = %q", renderer.options.Focus)
	}
}
