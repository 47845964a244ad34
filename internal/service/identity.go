package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/clerk/clerk-sdk-go/v2"
	"github.com/clerk/clerk-sdk-go/v2/user"
	"github.com/deppfellow/go-profile/internal/model"
)

// IdentityProvider resolves an authenticated subject into the profile it
// starts with on first access.
type IdentityProvider interface {
	Lookup(ctx context.Context, userID string) (*model.User, error)
}

// ClerkIdentityProvider reads users from the Clerk Backend API. The secret key
// is set by AuthService.
type ClerkIdentityProvider struct{}

func NewClerkIdentityProvider() *ClerkIdentityProvider {
	return &ClerkIdentityProvider{}
}

func (p *ClerkIdentityProvider) Lookup(ctx context.Context, userID string) (*model.User, error) {
	u, err := user.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetching clerk user %s: %w", userID, err)
	}
	return userFromClerk(u, time.Now().UTC())
}

const maxNameLength = 255

// userFromClerk maps a Clerk user onto a users row. The email is the primary
// address, lowercased; its verification carries over. The name falls back
// from first and last name to username to the email's local part.
func userFromClerk(u *clerk.User, now time.Time) (*model.User, error) {
	primary := primaryEmail(u)
	if primary == nil || primary.EmailAddress == "" {
		return nil, fmt.Errorf("clerk user %s has no primary email address", u.ID)
	}

	email := strings.ToLower(strings.TrimSpace(primary.EmailAddress))

	created := &model.User{
		ID:    u.ID,
		Name:  displayName(u, email),
		Email: email,
	}
	if primary.Verification != nil && primary.Verification.Status == "verified" {
		created.EmailVerifiedAt = &now
	}

	return created, nil
}

func primaryEmail(u *clerk.User) *clerk.EmailAddress {
	for _, addr := range u.EmailAddresses {
		if addr == nil {
			continue
		}
		if u.PrimaryEmailAddressID != nil && addr.ID == *u.PrimaryEmailAddressID {
			return addr
		}
	}
	if len(u.EmailAddresses) > 0 {
		return u.EmailAddresses[0]
	}
	return nil
}

func displayName(u *clerk.User, email string) string {
	var parts []string
	for _, p := range []*string{u.FirstName, u.LastName} {
		if p != nil && strings.TrimSpace(*p) != "" {
			parts = append(parts, strings.TrimSpace(*p))
		}
	}

	name := strings.Join(parts, " ")
	if name == "" && u.Username != nil {
		name = strings.TrimSpace(*u.Username)
	}
	if name == "" {
		name, _, _ = strings.Cut(email, "@")
	}

	if r := []rune(name); len(r) > maxNameLength {
		name = string(r[:maxNameLength])
	}
	return name
}
