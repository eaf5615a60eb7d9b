package mocks

import "github.com/greenrise/greenrise-api/internal/service/auth"

// MockPasswordHasher implements auth.PasswordHasher for testing. By default
// Hash prefixes the plaintext with "hashed:" and Compare checks that form.
type MockPasswordHasher struct {
	HashFn    func(plaintext string) (string, error)
	CompareFn func(hashed, plaintext string) error

	HashCallCount    int
	CompareCallCount int
}

var _ auth.PasswordHasher = (*MockPasswordHasher)(nil)

// Hash implements the auth.PasswordHasher interface
func (m *MockPasswordHasher) Hash(plaintext string) (string, error) {
	m.HashCallCount++
	if m.HashFn != nil {
		return m.HashFn(plaintext)
	}
	return "hashed:" + plaintext, nil
}

// Compare implements the auth.PasswordHasher interface
func (m *MockPasswordHasher) Compare(hashed, plaintext string) error {
	m.CompareCallCount++
	if m.CompareFn != nil {
		return m.CompareFn(hashed, plaintext)
	}
	if hashed != "hashed:"+plaintext {
		return auth.ErrPasswordMismatch
	}
	return nil
}
