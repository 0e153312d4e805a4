package user

import "errors"

var (
	// -- Validation & Input --
	ErrEmailRequired = errors.New("email is required")
	ErrInvalidRole   = errors.New("invalid role")
	ErrInvalidStatus = errors.New("invalid status")

	// -- Resource State --
	ErrUserExists   = errors.New("User already exists")
	ErrUserNotFound = errors.New("user not found")

	// -- Database & Operation Failures --
	ErrFailedFindUser   = errors.New("failed to find user")
	ErrFailedListUsers  = errors.New("failed to list users")
	ErrFailedCreateUser = errors.New("failed to create user")
	ErrFailedUpdateUser = errors.New("failed to update user")
	ErrFailedDeleteUser = errors.New("failed to delete user")
)
