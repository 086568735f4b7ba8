package controller

import (
	"context"
	"fmt"

	"github.com/goliatone/go-wishform/pkg/client"
	"github.com/goliatone/go-wishform/pkg/form"
	"github.com/goliatone/go-wishform/pkg/model"
	"github.com/goliatone/go-wishform/pkg/query"
)

// WishlistController drives the wishlist field group.
type WishlistController struct {
	api WishlistAPI
	*resource
}

// NewWishlistController binds api to the wishlist fields exposed by port.
func NewWishlistController(api WishlistAPI, port form.Port, options ...Option) *WishlistController {
	return &WishlistController{
		api:      api,
		resource: newResource(form.WishlistGroup(), port, wishlistMessages, options),
	}
}

// Group returns the field group this controller owns.
func (c *WishlistController) Group() form.Group {
	return c.group
}

func (c *WishlistController) input() client.WishlistInput {
	return client.WishlistInput{
		Name:  c.field(form.WishlistName),
		Owner: c.field(form.WishlistOwner),
	}
}

func (c *WishlistController) populated(message string) func(model.Wishlist) {
	return func(w model.Wishlist) {
		form.Populate(c.port, c.group, w.Fields())
		c.status.Flash(message)
	}
}

func (c *WishlistController) failed(err error) {
	c.status.Flash(client.MessageOf(err, GenericFailure))
}

// List fetches wishlists matching the owner and date filters and rebuilds
// the table.
func (c *WishlistController) List(ctx context.Context) error {
	filter := query.Filter{
		Owner: c.field(form.WishlistOwner),
		Start: c.field(form.StartFilter),
		End:   c.field(form.EndFilter),
	}
	return dispatch(ctx, c.resource, ActionList,
		func(ctx context.Context) ([]model.Wishlist, error) {
			return c.api.ListWishlists(ctx, filter)
		},
		func(items []model.Wishlist) {
			c.table.Reset(WishlistColumns)
			for _, w := range items {
				c.table.Append([]string{w.ID.String(), w.Name, w.ProductNames()})
			}
			c.status.Flash(c.msgs.listed)
		},
		func(err error) {
			c.status.Flash(c.msgs.listFailedPfx + client.MessageOf(err, GenericFailure))
		},
	)
}

// Create posts a new wishlist from the name and owner fields.
func (c *WishlistController) Create(ctx context.Context) error {
	in := c.input()
	return dispatch(ctx, c.resource, ActionCreate,
		func(ctx context.Context) (model.Wishlist, error) {
			return c.api.CreateWishlist(ctx, in)
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

// Update replaces the wishlist named by the id field.
func (c *WishlistController) Update(ctx context.Context) error {
	id := c.field(form.WishlistID)
	in := c.input()
	return dispatch(ctx, c.resource, ActionUpdate,
		func(ctx context.Context) (model.Wishlist, error) {
			return c.api.UpdateWishlist(ctx, id, in)
		},
		c.populated(c.msgs.updated),
		c.failed,
	)
}

// Retrieve loads the wishlist named by the id field. A failed lookup clears
// the group.
func (c *WishlistController) Retrieve(ctx context.Context) error {
	id := c.field(form.WishlistID)
	return dispatch(ctx, c.resource, ActionRetrieve,
		func(ctx context.Context) (model.Wishlist, error) {
			return c.api.GetWishlist(ctx, id)
		},
		c.populated(c.msgs.retrieved),
		func(err error) {
			form.Clear(c.port, c.group)
			c.failed(err)
		},
	)
}

// Copy duplicates the wishlist named by the id field and shows the copy.
func (c *WishlistController) Copy(ctx context.Context) error {
	id := c.field(form.WishlistID)
	return dispatch(ctx, c.resource, ActionCopy,
		func(ctx context.Context) (model.Wishlist, error) {
			return c.api.CopyWishlist(ctx, id)
		},
		c.populated(c.msgs.copied),
		c.failed,
	)
}

// Delete removes the wishlist named by the id field.
func (c *WishlistController) Delete(ctx context.Context) error {
	id := c.field(form.WishlistID)
	return dispatch(ctx, c.resource, ActionDelete,
		noValue(func(ctx context.Context) error {
			return c.api.DeleteWishlist(ctx, id)
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
func (c *WishlistController) Clear(context.Context) error {
	c.clear()
	return nil
}

// Inputs lists the fields action reads, in prompt order.
func (c *WishlistController) Inputs(action Action) []string {
	switch action {
	case ActionList:
		return []string{form.WishlistOwner, form.StartFilter, form.EndFilter}
	case ActionCreate:
		return []string{form.WishlistName, form.WishlistOwner}
	case ActionUpdate:
		return []string{form.WishlistID, form.WishlistName, form.WishlistOwner}
	case ActionRetrieve, ActionCopy, ActionDelete:
		return []string{form.WishlistID}
	default:
		return nil
	}
}

// Actions lists the actions the controller supports.
func (c *WishlistController) Actions() []Action {
	return []Action{ActionList, ActionCreate, ActionUpdate, ActionRetrieve, ActionCopy, ActionDelete, ActionClear}
}

// Do runs the named action.
func (c *WishlistController) Do(ctx context.Context, action Action) error {
	switch action {
	case ActionList:
		return c.List(ctx)
	case ActionCreate:
		return c.Create(ctx)
	case ActionUpdate:
		return c.Update(ctx)
	case ActionRetrieve:
		return c.Retrieve(ctx)
	case ActionCopy:
		return c.Copy(ctx)
	case ActionDelete:
		return c.Delete(ctx)
	case ActionClear:
		return c.Clear(ctx)
	default:
		return fmt.Errorf("%w: %s %s", ErrUnknownAction, c.group.Resource, action)
	}
}
