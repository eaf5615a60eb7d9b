// Package mocks provides shared test doubles for the store, auth, image, and
// service interfaces.
//
// Most mocks use function fields: set the field for the behaviour a test
// needs and leave the rest nil to get the zero-value default. The store mocks
// embed testify's mock.Mock instead, so tests can assert on call arguments.
//
//	hasher := &mocks.MockPasswordHasher{
//	    CompareFn: func(hashed, plaintext string) error {
//	        return auth.ErrPasswordMismatch
//	    },
//	}
package mocks
