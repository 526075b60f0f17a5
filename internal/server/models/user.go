package models

import (
	"fmt"
	"time"
)

// Role is the closed set of account roles. Only RoleUser exists today.
type Role string

const RoleUser Role = "USER"

// ParseRole maps a stored role label back to a Role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser:
		return RoleUser, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// User is a registered account. UserName is the identity: unique,
// case-sensitive and immutable once created.
type User struct {
	ID           string
	UserName     string
	PasswordHash string
	DisplayName  string
	Role         Role
	CreatedAt    time.Time
}
