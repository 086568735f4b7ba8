package controller

// GenericFailure is shown when the server supplies no message, and always for
// delete failures.
const GenericFailure = "Server error!"

// Action names an operator action.
type Action string

const (
	ActionList     Action = "list"
	ActionCreate   Action = "create"
	ActionUpdate   Action = "update"
	ActionRetrieve Action = "retrieve"
	ActionCopy     Action = "copy"
	ActionDelete   Action = "delete"
	ActionClear    Action = "clear"
)

type messages struct {
	created       string
	updated       string
	retrieved     string
	copied        string
	deleted       string
	listed        string
	listFailedPfx string
}

var wishlistMessages = messages{
	created:       "Success",
	updated:       "Success",
	retrieved:     "Success",
	copied:        "Success",
	deleted:       "Wishlist has been Deleted!",
	listed:        "Wishlists retrieved successfully",
	listFailedPfx: "Failed to retrieve wishlists: ",
}

var productMessages = messages{
	created:       "Product create Success",
	updated:       "Product update Success",
	retrieved:     "Retrieve product Success",
	deleted:       "Products has been Deleted!",
	listed:        "Products retrieved successfully",
	listFailedPfx: "Failed to retrieve products: ",
}

// WishlistColumns are the wishlist table headings.
var WishlistColumns = []string{"ID", "Name", "Products"}

// ProductColumns are the product table headings.
var ProductColumns = []string{"ID", "Wishlist ID", "Name", "Quantity"}
