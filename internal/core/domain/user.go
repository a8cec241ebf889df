package domain

import (
	"errors"
	"strings"

	"github.com/SscSPs/blog_backend/internal/utils"
)

// Role is the authorization level of a user.
type Role int

const (
	RoleRegular Role = 0
	RoleAdmin   Role = 1
)

// AuthProvider records how an account was created.
type AuthProvider string

const (
	AuthProviderLocal  AuthProvider = "local"
	AuthProviderGoogle AuthProvider = "google"
)

// ErrEmptyPassword is returned by SetPassword for an empty plaintext.
var ErrEmptyPassword = errors.New("password must not be empty")

// User represents a user of the application in the domain.
// Salt and HashedPassword are only ever written together through SetPassword.
type User struct {
	UserID                string       `json:"_id"`
	Username              string       `json:"username"`
	Name                  string       `json:"name"`
	Email                 string       `json:"email"`
	Profile               string       `json:"profile"`
	About                 string       `json:"about,omitempty"`
	Role                  Role         `json:"role"`
	Salt                  string       `json:"-"`
	HashedPassword        string       `json:"-"`
	AuthProvider          AuthProvider `json:"-"`
	ProviderUserID        string       `json:"-"`
	PasswordLoginDisabled bool         `json:"-"`
	ResetPasswordLink     string       `json:"-"`
	IsAuthorOfTheMonth    bool         `json:"isAuthorOfTheMonth"`
	AuditFields
}

// PublicUser is the projection returned alongside a session.
type PublicUser struct {
	UserID   string `json:"_id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

// SetPassword regenerates the salt and derives the hash from it.
// A successful call also re-enables password login.
func (u *User) SetPassword(plaintext string) error {
	if plaintext == "" {
		return ErrEmptyPassword
	}
	salt := utils.MakeSalt()
	hash := utils.EncryptPassword(plaintext, salt)
	if hash == "" {
		return ErrEmptyPassword
	}
	u.Salt, u.HashedPassword = salt, hash
	u.PasswordLoginDisabled = false
	return nil
}

// DisablePasswordLogin clears the credential pair. Used for accounts provisioned by an identity provider.
func (u *User) DisablePasswordLogin() {
	u.Salt, u.HashedPassword = "", ""
	u.PasswordLoginDisabled = true
}

// Authenticate reports whether plaintext matches the stored credential.
func (u *User) Authenticate(plaintext string) bool {
	if u.PasswordLoginDisabled {
		return false
	}
	return utils.Authenticate(plaintext, u.Salt, u.HashedPassword)
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Public strips credential fields.
func (u *User) Public() PublicUser {
	return PublicUser{
		UserID:   u.UserID,
		Username: u.Username,
		Name:     u.Name,
		Email:    u.Email,
		Role:     u.Role,
	}
}

// NormalizeEmail lowercases and trims an address for lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ProfileURL builds the public profile link for username.
func ProfileURL(clientURL, username string) string {
	return strings.TrimRight(clientURL, "/") + "/profile/" + username
}

// AuthorRef is the author summary embedded in blog listings.
type AuthorRef struct {
	UserID   string `json:"_id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Profile  string `json:"profile,omitempty"`
	About    string `json:"about,omitempty"`
}

// UpdateProfile carries the fields a user may change about themselves.
type UpdateProfile struct {
	Name     *string
	Username *string
	About    *string
	Password *string
	Photo    *Photo
}
