// Package model defines the data structures used throughout the application.
package model

import "time"

// User represents a registered account.
//
// Users sign up with email + password, or arrive through GitHub social
// sign-in. Either way they get a numeric internal ID (assigned by the
// database) which is what ends up in the JWT subject claim and in
// Blog.AuthorID.
//
// WHY GitHubID int64 (and 0 = "not linked")?
// GitHub user IDs are integers. A local email/password account simply has
// GitHubID 0; the partial UNIQUE index on github_id skips zero rows, so one
// GitHub account maps to at most one local account.
//
// PasswordHash is the full bcrypt output (salt and cost embedded). It is
// empty for accounts created via GitHub sign-in and is never serialized.
type User struct {
	ID           int64     `json:"id"        db:"id"`
	Name         string    `json:"name"      db:"name"`  // Display name shown as author.name
	Email        string    `json:"email"     db:"email"` // Unique login identifier (may be empty for GitHub accounts)
	PasswordHash string    `json:"-"         db:"password_hash"`
	GitHubID     int64     `json:"-"         db:"github_id"` // 0 when not linked to GitHub
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}
