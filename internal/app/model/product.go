package model

import (
	"time"
)

type Product struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	ImageURL    string    `json:"image_url"`
	CategoryID  uint      `json:"category_id"`
	SellerID    uint      `json:"seller_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProductWithCategory is a product enriched with its category for list
// responses. Category is nil when the referenced category does not exist.
type ProductWithCategory struct {
	Product
	Category *Category `json:"category"`
}

// ProductDetail is the full single-product view with category and a
// reduced seller reference.
type ProductDetail struct {
	Product
	Category *Category      `json:"category"`
	Seller   *SellerSummary `json:"seller"`
}
