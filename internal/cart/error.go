package cart

import "errors"

var (
	// -- Validation & Input --
	ErrInvalidKind       = errors.New("invalid list kind")
	ErrUserEmailRequired = errors.New("userEmail cannot be empty")

	// -- Database & Operation Failures --
	ErrFailedAddItem     = errors.New("failed to add item")
	ErrFailedGetItems    = errors.New("failed to get items")
	ErrFailedRemoveItem  = errors.New("failed to remove item")
	ErrFailedPullProduct = errors.New("failed to pull product from lists")
)
