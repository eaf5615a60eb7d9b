// Package auth issues and verifies the bearer tokens used by protected
// routes and hashes account passwords with bcrypt.
package auth
