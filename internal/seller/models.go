package seller

import (
	"time"

	"veridev/pkg/domain"
	dErrors "veridev/pkg/domain-errors"
)

// Account is a seller profile keyed by caller identity.
//
// Invariants:
//   - Name and Location are non-empty after any successful write
//   - Registered is monotonic: set once at creation, never cleared
//   - Accounts are never deleted
type Account struct {
	Identity     domain.Identity `json:"identity"`
	Name         string          `json:"name"`
	Location     string          `json:"location"`
	Registered   bool            `json:"registered"`
	RegisteredAt time.Time       `json:"registered_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// NewAccount constructs a registered account, enforcing the non-empty field
// invariant at the boundary.
func NewAccount(identity domain.Identity, name, location string, now time.Time) (*Account, error) {
	if err := validateFields(name, location); err != nil {
		return nil, err
	}
	return &Account{
		Identity:     identity,
		Name:         name,
		Location:     location,
		Registered:   true,
		RegisteredAt: now,
		UpdatedAt:    now,
	}, nil
}

// ApplyUpdate overwrites both profile fields in place. The registered flag is
// untouched; registration never lapses through an update.
func (a *Account) ApplyUpdate(location, name string, now time.Time) error {
	if err := validateFields(name, location); err != nil {
		return err
	}
	a.Location = location
	a.Name = name
	a.UpdatedAt = now
	return nil
}

func validateFields(name, location string) error {
	if location == "" {
		return dErrors.New(dErrors.CodeEmptyField, "location cannot be empty")
	}
	if name == "" {
		return dErrors.New(dErrors.CodeEmptyField, "name cannot be empty")
	}
	return nil
}
