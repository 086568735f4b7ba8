package text_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-wishform/pkg/render"
	"github.com/goliatone/go-wishform/pkg/renderers/text"
)

func snapshot() render.Snapshot {
	return render.Snapshot{
		Status: "Products retrieved successfully",
		Groups: []render.Group{{
			Resource: "product",
			Label:    "Product",
			Fields: []render.Field{
				{Name: "product_id", Label: "Product ID", Value: "3"},
				{Name: "product_name", Label: "Name", Value: "Ball"},
			},
		}},
		Tables: []render.Table{
			{Resource: "wishlist"},
			{
				Resource: "product",
				Columns:  []string{"ID", "Wishlist ID", "Name", "Quantity"},
				Rows:     [][]string{{"1", "7", "Ball", "2"}, {"2", "7", "Bat", "1"}},
			},
		},
	}
}

func TestRenderPlain(t *testing.T) {
	out, err := text.New().Render(context.Background(), snapshot(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := strings.Join([]string{
		"Products retrieved successfully",
		"ID  WISHLIST ID  NAME  QUANTITY",
		"1   7            Ball  2",
		"2   7            Bat   1",
		"",
	}, "\n")
	if diff := cmp.Diff(want, string(out)); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderFieldsAndFocus(t *testing.T) {
	out, err := text.New(text.WithFields()).Render(context.Background(), snapshot(), render.RenderOptions{Focus: "wishlist"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	got := string(out)
	if !strings.Contains(got, "[Product]\n") || !strings.Contains(got, "Product ID:  3") {
		t.Fatalf("fields missing:\n%s", got)
	}
	if strings.Contains(got, "Ball  2") {
		t.Fatalf("unfocused table rendered:\n%s", got)
	}
}

func TestColorDisabledForBuffers(t *testing.T) {
	r := text.New(text.WithColorFor(&bytes.Buffer{}))
	out, err := r.Render(context.Background(), render.Snapshot{Status: "Success"}, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(out) != "Success\n" {
		t.Fatalf("got %q", out)
	}

	colored, err := text.New(text.WithColor(true)).Render(context.Background(), render.Snapshot{Status: "Success"}, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(colored), "\x1b[") {
		t.Fatalf("expected ansi escape, got %q", colored)
	}
}
