package user

import (
	"errors"
	"time"
)

// Column limits of the usuarios table.
const (
	MaxFullNameLength        = 50
	MaxEmailLength           = 100
	MaxResidentialZoneLength = 50
	MaxPhoneLength           = 20
)

// ErrEmailTaken is returned by the store when the email unique index rejects a write.
var ErrEmailTaken = errors.New("email already registered")

// User represents a user entity in the system.
type User struct {
	ID              int64     // ID is generated by the store on insert
	FullName        string    // FullName is the first and last name of the user
	Email           string    // Email is the unique email address of the user
	ResidentialZone string    // ResidentialZone is the zone the user lives in
	Phone           string    // Phone is the contact phone number
	CreatedAt       time.Time // CreatedAt is set on insert
	UpdatedAt       time.Time // UpdatedAt is set on insert
}
