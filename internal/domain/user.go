package domain

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxPasswordLength is bcrypt's input limit in bytes.
const MaxPasswordLength = 72

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phonePattern = regexp.MustCompile(`^\d{10}$`)
)

// Common validation errors
var (
	ErrEmptyUserID         = NewValidationError("id", "user ID cannot be empty")
	ErrEmptyUsername       = NewValidationError("username", "username is required")
	ErrUsernameTooLong     = NewValidationError("username", "username must be at most 50 characters long")
	ErrEmptyEmail          = NewValidationError("email", "email is required")
	ErrInvalidEmail        = NewValidationError("email", "invalid email format")
	ErrInvalidPhone        = NewValidationError("phone", "phone number must be exactly 10 digits")
	ErrEmptyPassword       = NewValidationError("password", "password is required")
	ErrPasswordTooLong     = NewValidationError("password", "password must be at most 72 characters long")
	ErrEmptyHashedPassword = NewValidationError("password", "hashed password cannot be empty")
)

// User is a registered account. It owns categories and tasks.
type User struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Password       string    `json:"-"` // Plaintext, only set between signup and hashing
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser builds a validated User with a fresh ID. The email is normalized to
// lower case. The caller must hash Password before the user is stored.
func NewUser(username, email, phone, password string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:        uuid.New(),
		Username:  strings.TrimSpace(username),
		Email:     NormalizeEmail(email),
		Phone:     strings.TrimSpace(phone),
		Password:  password,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// NormalizeEmail trims and lower-cases an address for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	if u.Username == "" {
		return ErrEmptyUsername
	}
	if len(u.Username) > 50 {
		return ErrUsernameTooLong
	}

	if u.Email == "" {
		return ErrEmptyEmail
	}
	if !emailPattern.MatchString(u.Email) {
		return ErrInvalidEmail
	}

	if !phonePattern.MatchString(u.Phone) {
		return ErrInvalidPhone
	}

	// A stored user carries only the hash; a new one carries the plaintext.
	if u.Password != "" {
		if len(u.Password) > MaxPasswordLength {
			return ErrPasswordTooLong
		}
	} else if u.HashedPassword == "" {
		return ErrEmptyPassword
	}

	return nil
}
