package auth

import "errors"

// Common authentication service errors
var (
	// ErrInvalidToken indicates the token is malformed, uses an unexpected
	// algorithm, or its signature doesn't match.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired.
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrPasswordMismatch indicates a plaintext password does not match the stored hash.
	ErrPasswordMismatch = errors.New("password does not match")

	// ErrMissingSecret indicates the token service was built without a signing key.
	ErrMissingSecret = errors.New("jwt secret is required")
)
