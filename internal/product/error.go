package product

import "errors"

var (
	// -- Validation & Input --
	ErrTitleRequired  = errors.New("title cannot be empty")
	ErrInvalidPrice   = errors.New("price cannot be negative")
	ErrInvalidStock   = errors.New("stock cannot be negative")
	ErrNoUpdateFields = errors.New("no fields to update")
	ErrSellerRequired = errors.New("seller email not found in context")

	// -- Resource State --
	ErrProductNotFound = errors.New("Product not found")

	// -- Database & Operation Failures --
	ErrFailedCreateProduct = errors.New("failed to create product")
	ErrFailedFindProducts  = errors.New("failed to find products")
	ErrFailedCountProducts = errors.New("failed to count products")
	ErrFailedUpdateProduct = errors.New("failed to update product")
	ErrFailedDeleteProduct = errors.New("failed to delete product")
)
