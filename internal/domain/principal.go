package domain

import "time"

// Role identifies the kind of actor making a request.
type Role string

const (
	RoleCitizen   Role = "citizen"
	RolePolice    Role = "police"
	RoleCommunity Role = "community"
	// RoleAnonymous is never persisted and never authenticates.
	RoleAnonymous Role = "anonymous"
)

// ParseRole maps the wire value to a known role.
func ParseRole(raw string) (Role, bool) {
	switch Role(raw) {
	case RoleCitizen, RolePolice, RoleCommunity, RoleAnonymous:
		return Role(raw), true
	default:
		return "", false
	}
}

// Principal is a registered actor. Secrets are only ever held as hashes.
type Principal struct {
	ID           string
	Role         Role
	Name         string
	Phone        string
	BadgeHash    string
	AdminID      string
	PasswordHash string
	CreatedAt    time.Time
}
