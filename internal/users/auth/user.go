// Copyright (c) 2026 EasyBuy. All rights reserved.

/*
Package auth implements account registration and login.

It owns the credential record (username, email, bcrypt hash) and turns a
successful login into a signed identity token. Everything after login is
stateless: protected routes only verify the token.
*/
package auth

import (
	"time"

	"github.com/easybuy/api/internal/platform/sec"
)

// # Domain Entities

// User is a registered account as stored in the users table.
type User struct {
	ID              int64     `json:"id"`
	Username        string    `json:"username"`
	Email           string    `json:"email"`
	PasswordHash    string    `json:"-"`
	DisplayName     *string   `json:"display_name"`
	ProfileImageURL *string   `json:"profile_image_url"`
	CreatedAt       time.Time `json:"created_at"`
}

// Identity returns the public attributes embedded in the user's token.
func (user *User) Identity() sec.Identity {
	return sec.Identity{ID: user.ID, Username: user.Username, Email: user.Email}
}

// # Field Identifiers

const (
	FieldUsername = "username"
	FieldEmail    = "email"
	FieldPassword = "password"
)

// # Constraints

const (
	UsernameMinLen = 3
	UsernameMaxLen = 40
	PasswordMinLen = 6
)

// # Client Messages

const (
	MsgUsernameTaken      = "Username is already taken"
	MsgEmailRegistered    = "Email is already registered"
	MsgRegistered         = "Registration successful"
	MsgInvalidCredentials = "Invalid email or password"
)

// Unique constraint names created by the initial migration.
const (
	constraintUsername = "users_username_key"
	constraintEmail    = "users_email_key"
)
