package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestWishlistDecodeKeepsServerText(t *testing.T) {
	payload := `{"id":42,"name":"Birthday","owner":"alice","date_joined":"2024-03-07",
		"products":[{"id":"3","wishlist_id":42,"name":"Ball","quantity":2},{"id":4,"wishlist_id":42,"name":"Bat","quantity":null}]}`

	var got Wishlist
	if err := json.Unmarshal([]byte(payload), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	want := Wishlist{
		ID:         "42",
		Name:       "Birthday",
		Owner:      "alice",
		DateJoined: "2024-03-07",
		Products: []Product{
			{ID: "3", WishlistID: "42", Name: "Ball", Quantity: "2"},
			{ID: "4", WishlistID: "42", Name: "Bat"},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("wishlist mismatch (-want +got):\n%s", diff)
	}
	if names := got.ProductNames(); names != "Ball, Bat" {
		t.Fatalf("product names: got %q", names)
	}
}

func TestProductNamesEdgeCases(t *testing.T) {
	if got := (Wishlist{}).ProductNames(); got != "" {
		t.Fatalf("empty wishlist: got %q", got)
	}
	single := Wishlist{Products: []Product{{Name: "Ball"}}}
	if got := single.ProductNames(); got != "Ball" {
		t.Fatalf("single product: got %q", got)
	}
}

func TestScalarRejectsContainers(t *testing.T) {
	var s Scalar
	if err := json.Unmarshal([]byte(`{"a":1}`), &s); err == nil {
		t.Fatalf("expected error for object scalar")
	}
	if err := json.Unmarshal([]byte(`1.50`), &s); err != nil || s != "1.50" {
		t.Fatalf("number literal: got %q err %v", s, err)
	}
}

func TestTodayZeroPads(t *testing.T) {
	clock := func() time.Time { return time.Date(2024, time.March, 7, 12, 0, 0, 0, time.Local) }
	if got := Today(clock); got != "2024-03-07" {
		t.Fatalf("today: got %q", got)
	}
}
