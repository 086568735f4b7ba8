package controller

import (
	"context"

	"github.com/goliatone/go-wishform/pkg/client"
	"github.com/goliatone/go-wishform/pkg/model"
	"github.com/goliatone/go-wishform/pkg/query"
)

// Status is the region showing the outcome of the most recent action.
type Status interface {
	Clear()
	Flash(message string)
}

// Table is a results table rebuilt by list actions.
type Table interface {
	Reset(columns []string)
	Append(row []string)
}

// WishlistAPI is the subset of the dispatcher used by WishlistController.
type WishlistAPI interface {
	ListWishlists(ctx context.Context, filter query.Filter) ([]model.Wishlist, error)
	CreateWishlist(ctx context.Context, in client.WishlistInput) (model.Wishlist, error)
	UpdateWishlist(ctx context.Context, id string, in client.WishlistInput) (model.Wishlist, error)
	GetWishlist(ctx context.Context, id string) (model.Wishlist, error)
	CopyWishlist(ctx context.Context, id string) (model.Wishlist, error)
	DeleteWishlist(ctx context.Context, id string) error
}

// ProductAPI is the subset of the dispatcher used by ProductController.
type ProductAPI interface {
	ListProducts(ctx context.Context, wishlistID string) ([]model.Product, error)
	CreateProduct(ctx context.Context, in client.ProductInput) (model.Product, error)
	UpdateProduct(ctx context.Context, in client.ProductInput) (model.Product, error)
	GetProduct(ctx context.Context, wishlistID, productID string) (model.Product, error)
	DeleteProduct(ctx context.Context, wishlistID, productID string) error
}

var (
	_ WishlistAPI = (*client.Client)(nil)
	_ ProductAPI  = (*client.Client)(nil)
)

type discardStatus struct{}

func (discardStatus) Clear()        {}
func (discardStatus) Flash(string) {}

type discardTable struct{}

func (discardTable) Reset([]string)  {}
func (discardTable) Append([]string) {}
