package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-wishform/pkg/logger"
	"github.com/goliatone/go-wishform/pkg/model"
	"github.com/goliatone/go-wishform/pkg/query"
)

const (
	contentTypeJSON = "application/json"
	apiKeyHeader    = "X-Api-Key"
	maxErrorBody    = 64 << 10
)

// Client dispatches wishlist and product requests.
type Client struct {
	baseURL  string
	http     *http.Client
	apiKey   string
	clock    model.Clock
	log      logrus.FieldLogger
	observer Observer
}

// New constructs a Client. Without WithBaseURL, requests target relative
// paths, which only works with a transport that resolves them (tests).
func New(options ...Option) *Client {
	c := &Client{
		http:  http.DefaultClient,
		clock: time.Now,
		log:   logger.Discard(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// WishlistInput carries the wishlist fields an operator edits.
type WishlistInput struct {
	Name  string
	Owner string
}

// ProductInput carries the product fields an operator edits. Values are sent
// as typed; the server coerces quantity.
type ProductInput struct {
	ID         string
	WishlistID string
	Name       string
	Quantity   string
}

// wishlistBody is the create/update payload. Products is always an empty
// array: the update path never alters product membership (see
// MembershipUntouched).
type wishlistBody struct {
	Name       string          `json:"name"`
	DateJoined string          `json:"date_joined"`
	Products   []model.Product `json:"products"`
	Owner      string          `json:"owner"`
}

type productBody struct {
	ID         string `json:"id"`
	WishlistID string `json:"wishlist_id"`
	Name       string `json:"name"`
	Quantity   string `json:"quantity"`
}

// MembershipUntouched documents that wishlist create and update never carry
// product membership. Products are managed exclusively through the product
// endpoints.
const MembershipUntouched = true

func (c *Client) wishlistBody(in WishlistInput) wishlistBody {
	return wishlistBody{
		Name:       in.Name,
		DateJoined: model.Today(c.clock),
		Products:   []model.Product{},
		Owner:      in.Owner,
	}
}

// ListWishlists issues GET /wishlists with the optional filters.
func (c *Client) ListWishlists(ctx context.Context, filter query.Filter) ([]model.Wishlist, error) {
	ep := mustLookup(OpListWishlists)
	var out []model.Wishlist
	if err := c.do(ctx, ep, query.Endpoint(ep.Path, filter), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateWishlist issues POST /wishlists.
func (c *Client) CreateWishlist(ctx context.Context, in WishlistInput) (model.Wishlist, error) {
	ep := mustLookup(OpCreateWishlist)
	var out model.Wishlist
	err := c.do(ctx, ep, ep.Path, c.wishlistBody(in), &out)
	return out, err
}

// UpdateWishlist issues PUT /wishlists/{id}.
func (c *Client) UpdateWishlist(ctx context.Context, id string, in WishlistInput) (model.Wishlist, error) {
	ep := mustLookup(OpUpdateWishlist)
	var out model.Wishlist
	err := c.do(ctx, ep, ep.Expand(wishlistParams(id)), c.wishlistBody(in), &out)
	return out, err
}

// GetWishlist issues GET /wishlists/{id}.
func (c *Client) GetWishlist(ctx context.Context, id string) (model.Wishlist, error) {
	ep := mustLookup(OpGetWishlist)
	var out model.Wishlist
	err := c.do(ctx, ep, ep.Expand(wishlistParams(id)), nil, &out)
	return out, err
}

// CopyWishlist issues POST /wishlists/{id}/copy.
func (c *Client) CopyWishlist(ctx context.Context, id string) (model.Wishlist, error) {
	ep := mustLookup(OpCopyWishlist)
	var out model.Wishlist
	err := c.do(ctx, ep, ep.Expand(wishlistParams(id)), nil, &out)
	return out, err
}

// DeleteWishlist issues DELETE /wishlists/{id}.
func (c *Client) DeleteWishlist(ctx context.Context, id string) error {
	ep := mustLookup(OpDeleteWishlist)
	return c.do(ctx, ep, ep.Expand(wishlistParams(id)), nil, nil)
}

// ListProducts issues GET /wishlists/{wid}/products.
func (c *Client) ListProducts(ctx context.Context, wishlistID string) ([]model.Product, error) {
	ep := mustLookup(OpListProducts)
	var out []model.Product
	if err := c.do(ctx, ep, ep.Expand(wishlistParams(wishlistID)), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateProduct issues POST /wishlists/{wid}/products.
func (c *Client) CreateProduct(ctx context.Context, in ProductInput) (model.Product, error) {
	ep := mustLookup(OpCreateProduct)
	var out model.Product
	err := c.do(ctx, ep, ep.Expand(wishlistParams(in.WishlistID)), newProductBody(in), &out)
	return out, err
}

// UpdateProduct issues PUT /wishlists/{wid}/products/{pid}.
func (c *Client) UpdateProduct(ctx context.Context, in ProductInput) (model.Product, error) {
	ep := mustLookup(OpUpdateProduct)
	var out model.Product
	err := c.do(ctx, ep, ep.Expand(productParams(in.WishlistID, in.ID)), newProductBody(in), &out)
	return out, err
}

// GetProduct issues GET /wishlists/{wid}/products/{pid}.
func (c *Client) GetProduct(ctx context.Context, wishlistID, productID string) (model.Product, error) {
	ep := mustLookup(OpGetProduct)
	var out model.Product
	err := c.do(ctx, ep, ep.Expand(productParams(wishlistID, productID)), nil, &out)
	return out, err
}

// DeleteProduct issues DELETE /wishlists/{wid}/products/{pid}.
func (c *Client) DeleteProduct(ctx context.Context, wishlistID, productID string) error {
	ep := mustLookup(OpDeleteProduct)
	return c.do(ctx, ep, ep.Expand(productParams(wishlistID, productID)), nil, nil)
}

func newProductBody(in ProductInput) productBody {
	return productBody{
		ID:         in.ID,
		WishlistID: in.WishlistID,
		Name:       in.Name,
		Quantity:   in.Quantity,
	}
}

func wishlistParams(id string) map[string]string {
	return map[string]string{"wishlist_id": id}
}

func productParams(wishlistID, productID string) map[string]string {
	return map[string]string{"wishlist_id": wishlistID, "product_id": productID}
}

func mustLookup(op Operation) Endpoint {
	ep, ok := Lookup(op)
	if !ok {
		panic(fmt.Sprintf("client: operation %q not registered", op))
	}
	return ep
}

func (c *Client) do(ctx context.Context, ep Endpoint, path string, body any, out any) (err error) {
	started := time.Now()
	status := 0
	defer func() {
		if c.observer != nil {
			c.observer.ObserveRequest(ep.Operation, status, time.Since(started), err)
		}
	}()

	payload := []byte{}
	if body != nil {
		payload, err = json.Marshal(body)
		if err != nil {
			return &Error{Op: ep.Operation, Kind: KindTransport, Err: fmt.Errorf("encode body: %w", err)}
		}
	}

	req, err := http.NewRequestWithContext(ctx, ep.Method, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return &Error{Op: ep.Operation, Kind: KindTransport, Err: err}
	}
	req.Header.Set("Content-Type", contentTypeJSON)
	req.Header.Set("Accept", contentTypeJSON)
	if c.apiKey != "" {
		req.Header.Set(apiKeyHeader, c.apiKey)
	}

	log := c.log.WithFields(logrus.Fields{"op": ep.Operation, "method": ep.Method, "path": path})
	log.Debug("dispatch")

	resp, err := c.http.Do(req)
	if err != nil {
		log.WithError(err).Debug("transport failure")
		return &Error{Op: ep.Operation, Kind: KindTransport, Err: err}
	}
	defer resp.Body.Close()
	status = resp.StatusCode

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := decodeError(ep.Operation, resp)
		log.WithField("status", resp.StatusCode).Debug("request failed")
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return &Error{Op: ep.Operation, Kind: KindDecode, Status: resp.StatusCode, Err: err}
	}
	return nil
}

func decodeError(op Operation, resp *http.Response) *Error {
	apiErr := &Error{Op: op, Kind: KindServerNoMessage, Status: resp.StatusCode}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(bytes.TrimSpace(raw)) == 0 {
		return apiErr
	}
	var payload struct {
		Message any `json:"message"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return apiErr
	}
	if msg, ok := payload.Message.(string); ok && msg != "" {
		apiErr.Kind = KindServer
		apiErr.Message = msg
	}
	return apiErr
}
