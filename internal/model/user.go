// Package model defines the records persisted by the repository layer.
package model

import "time"

// User is a row of the users table.
//
// ID is the identity provider's subject (Clerk user id), so the
// authenticated user maps onto a row without a lookup table.
type User struct {
	ID              string     `json:"id" db:"id"`
	Name            string     `json:"name" db:"name"`
	Email           string     `json:"email" db:"email"`
	EmailVerifiedAt *time.Time `json:"email_verified_at" db:"email_verified_at"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" db:"updated_at"`
}

// IsEmailVerified reports whether the current email address was verified.
func (u *User) IsEmailVerified() bool {
	return u.EmailVerifiedAt != nil
}
