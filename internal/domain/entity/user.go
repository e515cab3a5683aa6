// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"github.com/google/uuid"
)

// User is the core identity record of the catalog. A user owns acronyms and
// bearer tokens, and may carry external-identity markers for social login.
type User struct {
	ID             uuid.UUID // The unique identifier, generated at creation and immutable afterwards.
	Name           string    // The user's display name or real name.
	Username       string    // The login identifier. Unique across all users.
	PasswordHash   string    // Bcrypt hash of the password. Never exposed in responses.
	Email          string    // The user's contact email. Unique when present.
	SIWAIdentifier *string   // Sign-in-with-Apple subject identifier. Unique when present.
	ProfilePicture *string   // Filename of the uploaded profile picture, if any.
	TwitterURL     *string   // Optional social link, added in a later schema revision.
}

// PublicUser is the response shape for a user. It deliberately omits the
// password hash and every other credential field.
type PublicUser struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Username       string    `json:"username"`
	ProfilePicture *string   `json:"profilePicture,omitempty"`
}

// PublicUserV2 is the second revision of the user response shape.
// It extends PublicUser with the optional twitter link.
type PublicUserV2 struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Username       string    `json:"username"`
	ProfilePicture *string   `json:"profilePicture,omitempty"`
	TwitterURL     *string   `json:"twitterURL,omitempty"`
}

// Public converts the user to its V1 response shape.
func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:             u.ID,
		Name:           u.Name,
		Username:       u.Username,
		ProfilePicture: u.ProfilePicture,
	}
}

// PublicV2 converts the user to its V2 response shape.
func (u *User) PublicV2() *PublicUserV2 {
	return &PublicUserV2{
		ID:             u.ID,
		Name:           u.Name,
		Username:       u.Username,
		ProfilePicture: u.ProfilePicture,
		TwitterURL:     u.TwitterURL,
	}
}
