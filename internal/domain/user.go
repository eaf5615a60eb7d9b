package domain

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Password length bounds. 72 bytes is the most bcrypt will consider.
const (
	MinPasswordLength = 6
	MaxPasswordLength = 72
)

// DefaultProfileImage is assigned when a user registers without an image.
const DefaultProfileImage = "uploads/profile/arquivo.png"

// User validation errors
var (
	ErrEmptyUserID         = errors.New("user ID cannot be empty")
	ErrEmptyEmail          = errors.New("email cannot be empty")
	ErrEmptyFirstname      = errors.New("firstname cannot be empty")
	ErrEmptyLastname       = errors.New("lastname cannot be empty")
	ErrEmptyPhoneNumber    = errors.New("phone number cannot be empty")
	ErrPasswordTooShort    = fmt.Errorf("%w: must be at least 6 characters long", ErrInvalidPassword)
	ErrPasswordTooLong     = fmt.Errorf("%w: must be at most 72 characters long", ErrInvalidPassword)
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
)

// Gender is one of the fixed values accepted on a user profile.
type Gender string

const (
	GenderMale   Gender = "masculino"
	GenderFemale Gender = "feminino"
	GenderOther  Gender = "outro"
)

// Valid reports whether g is an accepted gender value.
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// User is a registered account of the garden tracker.
type User struct {
	ID             uuid.UUID `json:"id"`
	Firstname      string    `json:"firstname"`
	Lastname       string    `json:"lastname"`
	Email          string    `json:"email"`
	PhoneNumber    string    `json:"phoneNumber"`
	Password       string    `json:"-"` // plaintext, only held until hashed
	HashedPassword string    `json:"-"`
	Gender         Gender    `json:"gender"`
	ProfileImage   string    `json:"profileImage"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// UserParams carries the fields supplied at registration.
type UserParams struct {
	Firstname    string
	Lastname     string
	Email        string
	PhoneNumber  string
	Password     string
	Gender       Gender
	ProfileImage string
}

// UserPatch holds a partial update. Nil fields are left unchanged.
type UserPatch struct {
	Firstname    *string
	Lastname     *string
	Email        *string
	PhoneNumber  *string
	Password     *string
	Gender       *Gender
	ProfileImage *string
}

// NormalizeEmail trims surrounding whitespace and lower-cases the address.
// Lookups and uniqueness checks always operate on the normalized form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NewUser builds a User from registration input, normalizing text fields and
// assigning a fresh ID and timestamps.
//
// The plaintext password is kept on the returned value; the caller must hash it
// into HashedPassword and clear it before the user is persisted.
func NewUser(p UserParams) (*User, error) {
	now := time.Now().UTC()
	image := strings.TrimSpace(p.ProfileImage)
	if image == "" {
		image = DefaultProfileImage
	}

	user := &User{
		ID:           uuid.New(),
		Firstname:    strings.TrimSpace(p.Firstname),
		Lastname:     strings.TrimSpace(p.Lastname),
		Email:        NormalizeEmail(p.Email),
		PhoneNumber:  strings.TrimSpace(p.PhoneNumber),
		Password:     p.Password,
		Gender:       p.Gender,
		ProfileImage: image,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}
	return user, nil
}

// Validate checks every field of the user.
// Either a plaintext password or a stored hash must be present.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return NewValidationError("id", "cannot be empty", ErrEmptyUserID)
	}
	if u.Firstname == "" {
		return NewValidationError("firstname", "is required", ErrEmptyFirstname)
	}
	if u.Lastname == "" {
		return NewValidationError("lastname", "is required", ErrEmptyLastname)
	}
	if u.Email == "" {
		return NewValidationError("email", "is required", ErrEmptyEmail)
	}
	if !validateEmailFormat(u.Email) {
		return NewValidationError("email", "has invalid format", ErrInvalidEmail)
	}
	if u.PhoneNumber == "" {
		return NewValidationError("phoneNumber", "is required", ErrEmptyPhoneNumber)
	}
	if !u.Gender.Valid() {
		return NewValidationError("gender", "must be one of masculino, feminino, outro", ErrInvalidGender)
	}

	if u.Password != "" {
		return validatePassword(u.Password)
	}
	if u.HashedPassword == "" {
		return NewValidationError("password", "is required", ErrEmptyHashedPassword)
	}
	return nil
}

// Apply merges a partial update into the user and re-validates the result.
// A new password is placed in Password for the caller to hash.
func (u *User) Apply(p UserPatch) error {
	updated := *u

	if p.Firstname != nil {
		updated.Firstname = strings.TrimSpace(*p.Firstname)
	}
	if p.Lastname != nil {
		updated.Lastname = strings.TrimSpace(*p.Lastname)
	}
	if p.Email != nil {
		updated.Email = NormalizeEmail(*p.Email)
	}
	if p.PhoneNumber != nil {
		updated.PhoneNumber = strings.TrimSpace(*p.PhoneNumber)
	}
	if p.Gender != nil {
		updated.Gender = *p.Gender
	}
	if p.ProfileImage != nil && strings.TrimSpace(*p.ProfileImage) != "" {
		updated.ProfileImage = strings.TrimSpace(*p.ProfileImage)
	}
	if p.Password != nil {
		if err := validatePassword(*p.Password); err != nil {
			return err
		}
		updated.Password = *p.Password
	}

	if err := updated.Validate(); err != nil {
		return err
	}

	updated.UpdatedAt = time.Now().UTC()
	*u = updated
	return nil
}

func validatePassword(password string) error {
	switch {
	case len(password) < MinPasswordLength:
		return NewValidationError("password", "must be at least 6 characters", ErrPasswordTooShort)
	case len(password) > MaxPasswordLength:
		return NewValidationError("password", "must be at most 72 characters", ErrPasswordTooLong)
	}
	return nil
}

// validateEmailFormat accepts a bare address (no display name) with a dotted domain.
func validateEmailFormat(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}
	at := strings.LastIndexByte(email, '@')
	domainPart := email[at+1:]
	dot := strings.IndexByte(domainPart, '.')
	return dot > 0 && dot < len(domainPart)-1
}
