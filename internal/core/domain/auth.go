package domain

import "time"

// PendingRegistration is the payload of an activation token. It is never persisted.
type PendingRegistration struct {
	Name     string
	Email    string
	Password string
}

// Session is an issued bearer credential and the user it belongs to.
type Session struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"-"`
	User      PublicUser `json:"user"`
}

// GoogleIdentity is what the identity provider vouches for after verifying an ID token.
type GoogleIdentity struct {
	Subject       string
	Email         string
	EmailVerified bool
	Name          string
	TokenID       string
}

// Email is a single outbound message.
type Email struct {
	To      []string
	From    string
	ReplyTo string
	Subject string
	HTML    string
	Text    string
}
