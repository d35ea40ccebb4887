package entity

import (
	"time"
)

// UserStatus is the lifecycle state of an account.
// A user starts PENDING and becomes ACTIVE once the certification code
// emailed at sign-up is confirmed. There is no transition out of ACTIVE.
type UserStatus string

const (
	UserStatusPending UserStatus = "PENDING"
	UserStatusActive  UserStatus = "ACTIVE"
)

// User is the aggregate root for the account domain.
// CertificationCode is assigned once at creation and never regenerated;
// verification compares against it verbatim.
type User struct {
	ID                int64
	Email             string
	Nickname          string
	Address           string
	Status            UserStatus
	CertificationCode string
	LastLoginAt       *time.Time // nil until the first login
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
