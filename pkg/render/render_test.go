package render_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-wishform/pkg/controller"
	"github.com/goliatone/go-wishform/pkg/form"
	"github.com/goliatone/go-wishform/pkg/render"
)

type namedRenderer string

func (n namedRenderer) Name() string        { return string(n) }
func (n namedRenderer) ContentType() string { return "text/" + string(n) }
func (n namedRenderer) Render(context.Context, render.Snapshot, render.RenderOptions) ([]byte, error) {
	return []byte(n), nil
}

func TestRegistry(t *testing.T) {
	reg := render.NewRegistry()
	reg.MustRegister(namedRenderer("text"))
	reg.MustRegister(namedRenderer("html"))

	if err := reg.Register(namedRenderer("text")); err == nil || !strings.Contains(err.Error(), "already registered") {
		t.Fatalf("expected duplicate error, got %v", err)
	}
	if err := reg.Register(nil); err == nil {
		t.Fatalf("expected nil renderer error")
	}
	if diff := cmp.Diff([]string{"html", "text"}, reg.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}

	got, err := reg.Resolve("", "html")
	if err != nil || got.Name() != "html" {
		t.Fatalf("Resolve fallback = %v, %v", got, err)
	}
	if _, err := reg.Get("pdf"); err == nil {
		t.Fatalf("expected missing renderer error")
	}
	if diff := cmp.Diff(map[string]string{"html": "text/html", "text": "text/text"}, reg.ContentTypes()); diff != "" {
		t.Fatalf("content types mismatch (-want +got):\n%s", diff)
	}
}

func TestBuffersSatisfyControllerPorts(t *testing.T) {
	var _ controller.Table = render.NewTableBuffer()
	var _ controller.Status = render.NewStatusLine()

	table := render.NewTableBuffer()
	table.Reset([]string{"ID"})
	row := []string{"1"}
	table.Append(row)
	row[0] = "mutated"

	view := table.View()
	if diff := cmp.Diff(render.Table{Columns: []string{"ID"}, Rows: [][]string{{"1"}}}, view); diff != "" {
		t.Fatalf("view mismatch (-want +got):\n%s", diff)
	}

	table.Reset([]string{"ID", "Name"})
	if rows := table.View().Rows; len(rows) != 0 {
		t.Fatalf("reset kept rows: %v", rows)
	}

	status := render.NewStatusLine()
	status.Flash("Success")
	status.Clear()
	if status.Text() != "" {
		t.Fatalf("status = %q", status.Text())
	}
}

func TestCapture(t *testing.T) {
	state := form.NewState(map[string]string{
		form.WishlistID:    "7",
		form.WishlistOwner: "alice",
		form.ProductName:   "Ball",
	})
	status := render.NewStatusLine()
	status.Flash("Success")
	table := render.NewTableBuffer()
	table.Reset(controller.WishlistColumns)
	table.Append([]string{"7", "Sports", "Ball, Bat"})

	snap := render.Capture(state, status,
		render.Section{Group: form.WishlistGroup(), Actions: []string{"list", "clear"}, Table: table},
		render.Section{Group: form.ProductGroup()},
	)

	if snap.Status != "Success" {
		t.Fatalf("status = %q", snap.Status)
	}
	if len(snap.Groups) != 2 || len(snap.Tables) != 1 {
		t.Fatalf("unexpected shape: %+v", snap)
	}
	wishlist := snap.Groups[0]
	if wishlist.Fields[0] != (render.Field{Name: form.WishlistID, Label: "Wishlist ID", Value: "7"}) {
		t.Fatalf("first field = %+v", wishlist.Fields[0])
	}
	if wishlist.Fields[2].Label != "Owner" || wishlist.Fields[2].Value != "alice" {
		t.Fatalf("owner field = %+v", wishlist.Fields[2])
	}
	products := snap.Groups[1]
	if products.Fields[2].Value != "Ball" {
		t.Fatalf("product name = %+v", products.Fields[2])
	}

	tbl, ok := snap.Table("wishlist")
	if !ok || tbl.Empty() {
		t.Fatalf("wishlist table missing: %+v", snap.Tables)
	}
	if _, ok := snap.Table("product"); ok {
		t.Fatalf("product table should be absent")
	}
}

func TestFieldLabelFallback(t *testing.T) {
	if got := render.FieldLabel("owner_id"); got != "Owner ID" {
		t.Fatalf("FieldLabel = %q", got)
	}
}
