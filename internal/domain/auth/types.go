package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of transport/adapter concerns.

import (
	"strings"
	"time"
	"unicode"
)

// Role represents an application's authorization role.
// Keep string form for easy persistence and API payloads.
// Valid values are defined as constants below.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
	RoleUser  Role = "user"
)

// User is the authenticated user record as returned by the storefront API.
type User struct {
	ID               int64  `json:"id"`
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	Email            string `json:"email"`
	Role             Role   `json:"role"`
	PhoneCountryCode string `json:"phone_country_code,omitempty"`
	PhoneNumber      string `json:"phone_number,omitempty"`
	Street           string `json:"street,omitempty"`
	City             string `json:"city,omitempty"`
	State            string `json:"state,omitempty"`
	PostalCode       string `json:"postal_code,omitempty"`
	CountryCode      string `json:"country_code,omitempty"`
}

// FullName returns the user's display name.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Initial returns the uppercased first letter of the first name, or "".
func (u User) Initial() string {
	for _, r := range u.FirstName {
		return string(unicode.ToUpper(r))
	}
	return ""
}

// IsAdmin reports whether the user holds the admin role.
func (u User) IsAdmin() bool { return u.Role == RoleAdmin }

// IsStaff reports whether the user holds the staff role.
func (u User) IsStaff() bool { return u.Role == RoleStaff }

// Session is the locally persisted record for an authenticated user.
// Token is the opaque bearer credential issued at login.
type Session struct {
	Token     string    `json:"token"`
	User      User      `json:"user"`
	ExpiresAt time.Time `json:"expires_at,omitzero"`
}

// Valid reports whether the session carries a token that has not expired
// locally. A zero ExpiresAt means the server issued no expiry.
func (s Session) Valid(now time.Time) bool {
	if s.Token == "" {
		return false
	}
	return s.ExpiresAt.IsZero() || now.Before(s.ExpiresAt)
}
