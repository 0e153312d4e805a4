package cart

// Kind selects which product set on the user document is addressed.
// Cart and wishlist behave identically.
type Kind string

const (
	KindCart     Kind = "cart"
	KindWishlist Kind = "wishlist"
)

func (k Kind) Valid() bool {
	return k == KindCart || k == KindWishlist
}

type AddItemInput struct {
	UserEmail string `json:"userEmail"`
	ProductID string `json:"productId"`
}

type RemoveItemInput struct {
	UserID    string `json:"userId"`
	ProductID string `json:"productId"`
}
