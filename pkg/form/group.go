package form

// Field names used by the wishlist group.
const (
	WishlistID    = "wishlist_id"
	WishlistName  = "wishlist_name"
	WishlistOwner = "user_name"
	StartFilter   = "start_filter"
	EndFilter     = "end_filter"
)

// Field names used by the product group.
const (
	ProductID         = "product_id"
	ProductWishlistID = "product_wishlist_id"
	ProductName       = "product_name"
	ProductQuantity   = "product_quantity"
)

// Binding maps an entity attribute (JSON key) onto a form field.
type Binding struct {
	Key   string
	Field string
}

// Group is the fixed set of fields owned by one resource. Bindings lists the
// attributes written back from a server response; Fields lists everything a
// clear resets, including inputs that are never populated such as filters.
type Group struct {
	Resource string
	Label    string
	Fields   []string
	Bindings []Binding
}

// WishlistGroup returns the field group for wishlists.
func WishlistGroup() Group {
	return Group{
		Resource: "wishlist",
		Label:    "Wishlist",
		Fields:   []string{WishlistID, WishlistName, WishlistOwner, StartFilter, EndFilter},
		Bindings: []Binding{
			{Key: "id", Field: WishlistID},
			{Key: "name", Field: WishlistName},
			{Key: "owner", Field: WishlistOwner},
		},
	}
}

// ProductGroup returns the field group for products.
func ProductGroup() Group {
	return Group{
		Resource: "product",
		Label:    "Product",
		Fields:   []string{ProductID, ProductWishlistID, ProductName, ProductQuantity},
		Bindings: []Binding{
			{Key: "id", Field: ProductID},
			{Key: "name", Field: ProductName},
			{Key: "wishlist_id", Field: ProductWishlistID},
			{Key: "quantity", Field: ProductQuantity},
		},
	}
}

// Has reports whether the group owns the field.
func (g Group) Has(field string) bool {
	for _, name := range g.Fields {
		if name == field {
			return true
		}
	}
	return false
}

// Populate writes every bound attribute of entity into its field verbatim.
// Attributes missing from entity leave their field empty.
func Populate(port Port, group Group, entity map[string]string) {
	if port == nil {
		return
	}
	for _, binding := range group.Bindings {
		port.SetValue(binding.Field, entity[binding.Key])
	}
}

// Clear resets every field of the group to the empty string.
func Clear(port Port, group Group) {
	if port == nil {
		return
	}
	for _, name := range group.Fields {
		port.SetValue(name, "")
	}
}

// Read returns the current value of every field in the group.
func Read(port Port, group Group) map[string]string {
	out := make(map[string]string, len(group.Fields))
	if port == nil {
		return out
	}
	for _, name := range group.Fields {
		out[name] = port.Value(name)
	}
	return out
}
