package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// User validation errors
var (
	ErrEmptyUserID      = errors.New("user ID cannot be empty")
	ErrInvalidEmail     = errors.New("invalid email format")
	ErrEmptyEmail       = errors.New("email cannot be empty")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters long")
	ErrPasswordTooLong  = errors.New("password must be at most 72 characters long")
	ErrEmptyPassword    = errors.New("password cannot be empty")
	ErrFullNameTooLong  = errors.New("full name must be at most 200 characters long")
)

const (
	minPasswordLength = 8
	// bcrypt ignores everything past 72 bytes
	maxPasswordLength = 72
	maxFullNameLength = 200
)

var emailValidator = validator.New()

// User represents a registered member.
type User struct {
	ID             uuid.UUID  `json:"id"`
	Email          string     `json:"email"`
	FullName       string     `json:"full_name"`
	BirthDate      *time.Time `json:"birth_date,omitempty"`
	Password       string     `json:"-"` // Plaintext, only set during registration/updates
	HashedPassword string     `json:"-"`
	Plan           Plan       `json:"plan"`
	PlanSince      time.Time  `json:"plan_since"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// NewUser creates a new User on the free plan.
// The caller is responsible for hashing the password before storing the user.
func NewUser(email, password, fullName string, birthDate *time.Time) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:        uuid.New(),
		Email:     strings.TrimSpace(email),
		FullName:  strings.TrimSpace(fullName),
		BirthDate: birthDate,
		Password:  password,
		Plan:      PlanFree,
		PlanSince: now,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	if u.Email == "" {
		return ErrEmptyEmail
	}
	if err := emailValidator.Var(u.Email, "email"); err != nil {
		return ErrInvalidEmail
	}

	if len(u.FullName) > maxFullNameLength {
		return ErrFullNameTooLong
	}

	if !u.Plan.IsValid() {
		return ErrInvalidPlan
	}

	// A plaintext password is only present while registering or changing it;
	// persisted users carry the hash instead.
	if u.Password != "" {
		return ValidatePassword(u.Password)
	} else if u.HashedPassword == "" {
		return ErrEmptyPassword
	}

	return nil
}

// ValidatePassword checks the length rules for a plaintext password.
func ValidatePassword(password string) error {
	switch {
	case password == "":
		return ErrEmptyPassword
	case len(password) < minPasswordLength:
		return ErrPasswordTooShort
	case len(password) > maxPasswordLength:
		return ErrPasswordTooLong
	}
	return nil
}

// ChangePlan moves the user to a new plan and restarts PlanSince.
func (u *User) ChangePlan(p Plan, at time.Time) error {
	if !p.IsValid() {
		return ErrInvalidPlan
	}
	u.Plan = p
	u.PlanSince = at.UTC()
	u.UpdatedAt = at.UTC()
	return nil
}
