package controller

import (
	"context"
	"fmt"

	"github.com/goliatone/go-wishform/pkg/client"
	"github.com/goliatone/go-wishform/pkg/form"
	"github.com/goliatone/go-wishform/pkg/model"
)

// ProductController drives the product field group.
type ProductController struct {
	api ProductAPI
	*resource
}

// NewProductController binds api to the product fields exposed by port.
func NewProductController(api ProductAPI, port form.Port, options ...Option) *ProductController {
	return &ProductController{
		api:      api,
		resource: newResource(form.ProductGroup(), port, productMessages, options),
	}
}

// Group returns the field group this controller owns.
func (c *ProductController) Group() form.Group {
	return c.group
}

func (c *ProductController) input() client.ProductInput {
	return client.ProductInput{
		ID:         c.field(form.ProductID),
		WishlistID: c.field(form.ProductWishlistID),
		Name:       c.field(form.ProductName),
		Quantity:   c.field(form.ProductQuantity),
	}
}

func (c *ProductController) populated(message string) func(model.Product) {
	return func(p model.Product) {
		form.Populate(c.port, c.group, p.Fields())
		c.status.Flash(message)
	}
}

func (c *ProductController) failed(err error) {
	c.status.Flash(client.MessageOf(err, GenericFailure))
}

// List fetches the products of the wishlist named by the wishlist id field.
func (c *ProductController) List(ctx context.Context) error {
	wid := c.field(form.ProductWishlistID)
	return dispatch(ctx, c.resource, ActionList,
		func(ctx context.Context) ([]model.Product, error) {
			return c.api.ListProducts(ctx, wid)
		},
		func(items []model.Product) {
			c.table.Reset(ProductColumns)
			for _, p := range items {
				c.table.Append([]string{p.ID.String(), p.WishlistID.String(), p.Name, p.Quantity.String()})
			}
			c.status.Flash(c.msgs.listed)
		},
		func(err error) {
			c.status.Flash(c.msgs.listFailedPfx + client.MessageOf(err, GenericFailure))
		},
	)
}

// Create posts a new product under the wishlist id field.
func (c *ProductController) Create(ctx context.Context) error {
	in := c.input()
	return dispatch(ctx, c.resource, ActionCreate,
		func(ctx context.Context) (model.Product, error) {
			return c.api.CreateProduct(ctx, in)
		},
		c.populated(c.msgs.created),
		func(err error) {
			if c.silentCreate {
				return
			}
			c.failed(err)
		},
	)
}

// Update replaces the product named by the id fields.
func (c *ProductController) Update(ctx context.Context) error {
	in := c.input()
	return dispatch(ctx, c.resource, ActionUpdate,
		func(ctx context.Context) (model.Product, error) {
			return c.api.UpdateProduct(ctx, in)
		},
		c.populated(c.msgs.updated),
		c.failed,
	)
}

// Retrieve loads the product named by the id fields. A failed lookup clears
// the group.
func (c *ProductController) Retrieve(ctx context.Context) error {
	wid := c.field(form.ProductWishlistID)
	pid := c.field(form.ProductID)
	return dispatch(ctx, c.resource, ActionRetrieve,
		func(ctx context.Context) (model.Product, error) {
			return c.api.GetProduct(ctx, wid, pid)
		},
		c.populated(c.msgs.retrieved),
		func(err error) {
			form.Clear(c.port, c.group)
			c.failed(err)
		},
	)
}

// Delete removes the product named by the id fields.
func (c *ProductController) Delete(ctx context.Context) error {
	wid := c.field(form.ProductWishlistID)
	pid := c.field(form.ProductID)
	return dispatch(ctx, c.resource, ActionDelete,
		noValue(func(ctx context.Context) error {
			return c.api.DeleteProduct(ctx, wid, pid)
		}),
		func(none) {
			form.Clear(c.port, c.group)
			c.status.Flash(c.msgs.deleted)
		},
		func(error) {
			c.status.Flash(GenericFailure)
		},
	)
}

// Clear empties the group and the status region.
func (c *ProductController) Clear(context.Context) error {
	c.clear()
	return nil
}

// Inputs lists the fields action reads, in prompt order.
func (c *ProductController) Inputs(action Action) []string {
	switch action {
	case ActionList:
		return []string{form.ProductWishlistID}
	case ActionCreate:
		return []string{form.ProductWishlistID, form.ProductName, form.ProductQuantity}
	case ActionUpdate:
		return []string{form.ProductWishlistID, form.ProductID, form.ProductName, form.ProductQuantity}
	case ActionRetrieve, ActionDelete:
		return []string{form.ProductWishlistID, form.ProductID}
	default:
		return nil
	}
}

// Actions lists the actions the controller supports.
func (c *ProductController) Actions() []Action {
	return []Action{ActionList, ActionCreate, ActionUpdate, ActionRetrieve, ActionDelete, ActionClear}
}

// Do runs the named action.
func (c *ProductController) Do(ctx context.Context, action Action) error {
	switch action {
	case ActionList:
		return c.List(ctx)
	case ActionCreate:
		return c.Create(ctx)
	case ActionUpdate:
		return c.Update(ctx)
	case ActionRetrieve:
		return c.Retrieve(ctx)
	case ActionDelete:
		return c.Delete(ctx)
	case ActionClear:
		return c.Clear(ctx)
	default:
		return fmt.Errorf("%w: %s %s", ErrUnknownAction, c.group.Resource, action)
	}
}
