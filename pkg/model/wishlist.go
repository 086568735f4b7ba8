package model

import (
	"strings"
	"time"
)

// DateLayout is the ISO 8601 calendar date layout used by date_joined and the
// list date filters.
const DateLayout = "2006-01-02"

// Wishlist mirrors the server representation returned by the wishlist
// endpoints. DateJoined is kept as received.
type Wishlist struct {
	ID         Scalar    `json:"id"`
	Name       string    `json:"name"`
	Owner      string    `json:"owner"`
	DateJoined string    `json:"date_joined"`
	Products   []Product `json:"products"`
}

// Product is a single entry in a wishlist.
type Product struct {
	ID         Scalar `json:"id"`
	WishlistID Scalar `json:"wishlist_id"`
	Name       string `json:"name"`
	Quantity   Scalar `json:"quantity"`
}

// ProductNames joins the display names of the wishlist products with ", ".
func (w Wishlist) ProductNames() string {
	if len(w.Products) == 0 {
		return ""
	}
	names := make([]string, len(w.Products))
	for i, product := range w.Products {
		names[i] = product.Name
	}
	return strings.Join(names, ", ")
}

// Fields exposes the wishlist attributes keyed by their JSON names so form
// adapters can bind them without reflection.
func (w Wishlist) Fields() map[string]string {
	return map[string]string{
		"id":          w.ID.String(),
		"name":        w.Name,
		"owner":       w.Owner,
		"date_joined": w.DateJoined,
	}
}

// Fields exposes the product attributes keyed by their JSON names.
func (p Product) Fields() map[string]string {
	return map[string]string{
		"id":          p.ID.String(),
		"wishlist_id": p.WishlistID.String(),
		"name":        p.Name,
		"quantity":    p.Quantity.String(),
	}
}

// Clock returns the current time. Tests substitute a fixed clock.
type Clock func() time.Time

// Today renders the local calendar date of the clock as YYYY-MM-DD.
func Today(clock Clock) string {
	if clock == nil {
		clock = time.Now
	}
	return clock().Local().Format(DateLayout)
}
