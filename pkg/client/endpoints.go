package client

import (
	"net/http"
	"net/url"
	"strings"
)

// Operation names a dispatcher operation. The values double as OpenAPI
// operationIds in the published contract.
type Operation string

const (
	OpListWishlists  Operation = "listWishlists"
	OpCreateWishlist Operation = "createWishlist"
	OpUpdateWishlist Operation = "updateWishlist"
	OpGetWishlist    Operation = "getWishlist"
	OpCopyWishlist   Operation = "copyWishlist"
	OpDeleteWishlist Operation = "deleteWishlist"
	OpListProducts   Operation = "listProducts"
	OpCreateProduct  Operation = "createProduct"
	OpUpdateProduct  Operation = "updateProduct"
	OpGetProduct     Operation = "getProduct"
	OpDeleteProduct  Operation = "deleteProduct"
)

// Endpoint is one row of the wire contract.
type Endpoint struct {
	Operation Operation
	Method    string
	Path      string
	HasBody   bool
}

var endpoints = []Endpoint{
	{OpListWishlists, http.MethodGet, "/wishlists", false},
	{OpCreateWishlist, http.MethodPost, "/wishlists", true},
	{OpUpdateWishlist, http.MethodPut, "/wishlists/{wishlist_id}", true},
	{OpGetWishlist, http.MethodGet, "/wishlists/{wishlist_id}", false},
	{OpCopyWishlist, http.MethodPost, "/wishlists/{wishlist_id}/copy", false},
	{OpDeleteWishlist, http.MethodDelete, "/wishlists/{wishlist_id}", false},
	{OpListProducts, http.MethodGet, "/wishlists/{wishlist_id}/products", false},
	{OpCreateProduct, http.MethodPost, "/wishlists/{wishlist_id}/products", true},
	{OpUpdateProduct, http.MethodPut, "/wishlists/{wishlist_id}/products/{product_id}", true},
	{OpGetProduct, http.MethodGet, "/wishlists/{wishlist_id}/products/{product_id}", false},
	{OpDeleteProduct, http.MethodDelete, "/wishlists/{wishlist_id}/products/{product_id}", false},
}

// Endpoints returns a copy of the endpoint table.
func Endpoints() []Endpoint {
	return append([]Endpoint(nil), endpoints...)
}

// Lookup returns the endpoint registered for op.
func Lookup(op Operation) (Endpoint, bool) {
	for _, ep := range endpoints {
		if ep.Operation == op {
			return ep, true
		}
	}
	return Endpoint{}, false
}

// Expand substitutes path parameters. Values are path-escaped.
func (e Endpoint) Expand(params map[string]string) string {
	path := e.Path
	for name, value := range params {
		path = strings.ReplaceAll(path, "{"+name+"}", url.PathEscape(value))
	}
	return path
}

var bodyFields = map[Operation][]string{
	OpCreateWishlist: {"name", "date_joined", "products", "owner"},
	OpUpdateWishlist: {"name", "date_joined", "products", "owner"},
	OpCreateProduct:  {"id", "wishlist_id", "name", "quantity"},
	OpUpdateProduct:  {"id", "wishlist_id", "name", "quantity"},
}

// BodyFields lists the JSON keys sent with op, or nil for bodiless calls.
func BodyFields(op Operation) []string {
	return append([]string(nil), bodyFields[op]...)
}
