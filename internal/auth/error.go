package auth

import "errors"

var (
	ErrUnauthenticated   = errors.New("unauthorized access")
	ErrInvalidToken      = errors.New("invalid token")
	ErrForbidden         = errors.New("forbidden access")
	ErrSecretNotSet      = errors.New("ACCESS_KEY_TOKEN is not set")
	ErrInvalidIssuerKey  = errors.New("invalid issuer key")
	ErrClaimsNotAnObject = errors.New("claims must be a JSON object")
)
