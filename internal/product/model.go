package product

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title       string             `bson:"title" json:"title"`
	Brand       string             `bson:"brand" json:"brand"`
	Price       float64            `bson:"price" json:"price"`
	Stock       *int               `bson:"stock,omitempty" json:"stock,omitempty"`
	Category    string             `bson:"category" json:"category"`
	Description string             `bson:"description" json:"description"`
	ImageURL    string             `bson:"imageURL,omitempty" json:"imageURL,omitempty"`
	SellerEmail string             `bson:"sellerEmail" json:"sellerEmail"`
}

type NewProductInput struct {
	Title       string  `json:"title"`
	Brand       string  `json:"brand"`
	Price       float64 `json:"price"`
	Stock       *int    `json:"stock,omitempty"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	ImageURL    string  `json:"imageURL,omitempty"`
}

// UpdateProductInput carries the only fields a product update may touch.
type UpdateProductInput struct {
	Title       *string  `json:"title,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Description *string  `json:"description,omitempty"`
}

func (in UpdateProductInput) HasAnyField() bool {
	return in.Title != nil || in.Price != nil || in.Description != nil
}

type SearchResult struct {
	Products      []Product `json:"products"`
	Brands        []string  `json:"brands"`
	Categories    []string  `json:"categories"`
	TotalProducts int64     `json:"totalProducts"`
}
