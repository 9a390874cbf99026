// Package models defines the database-backed entities of the lab website.
package models

import (
	"database/sql"
	"time"
)

// Roles assignable to accounts. RoleAdmin passes every role check.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User is an account that can sign in to the admin dashboard.
// PasswordHash is never serialized.
type User struct {
	ID           int64        `json:"id"`
	Username     string       `json:"username"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"`
	Role         string       `json:"roleType"`
	Name         string       `json:"name"`
	Avatar       string       `json:"avatar"`
	IsActive     bool         `json:"isActive"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
	LastLoginAt  sql.NullTime `json:"-"`
}

// IsAdmin reports whether the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
