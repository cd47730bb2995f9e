package model

type CartItem struct {
	ID        uint `json:"id"`
	UserID    uint `json:"user_id"`
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// CartLine is a cart item joined with its product snapshot. Product is
// nil when the referenced product has been deleted; readers must treat
// that as a representable state, not an error.
type CartLine struct {
	CartItem
	Product *Product `json:"product"`
}
