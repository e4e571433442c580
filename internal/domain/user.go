package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrEmptyExternalID is returned when a user has no identity-provider subject.
var ErrEmptyExternalID = errors.New("external ID cannot be empty")

// User is the local record for a person signed in through the external
// identity provider. ExternalID is the provider's subject identifier.
type User struct {
	ID         uuid.UUID `json:"id"`
	ExternalID string    `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewUser creates a user record for the given external identity.
func NewUser(externalID string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:         uuid.New(),
		ExternalID: externalID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}
	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrInvalidID
	}
	if u.ExternalID == "" {
		return ErrEmptyExternalID
	}
	return nil
}
