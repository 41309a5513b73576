package domain

import "strings"

// Credentials is the role-specific payload of a register or login request.
// The set of implementations is closed; callers switch on the concrete type.
type Credentials interface {
	Role() Role
	// MissingFields lists required wire fields that are blank.
	MissingFields() []string
	isCredentials()
}

// AnonymousCredentials carries nothing. Anonymous callers never register or log in.
type AnonymousCredentials struct{}

// PoliceCredentials identifies an officer by name and badge secret.
type PoliceCredentials struct {
	Name        string
	BadgeSecret string
}

// CitizenCredentials identifies a citizen by name and phone. The phone acts as the shared secret.
type CitizenCredentials struct {
	Name  string
	Phone string
}

// CommunityCredentials identifies a community moderator.
type CommunityCredentials struct {
	AdminID  string
	Password string
}

func (AnonymousCredentials) Role() Role { return RoleAnonymous }
func (PoliceCredentials) Role() Role    { return RolePolice }
func (CitizenCredentials) Role() Role   { return RoleCitizen }
func (CommunityCredentials) Role() Role { return RoleCommunity }

func (AnonymousCredentials) MissingFields() []string { return nil }

func (c PoliceCredentials) MissingFields() []string {
	return missing(field{"name", c.Name}, field{"badgeSecret", c.BadgeSecret})
}

func (c CitizenCredentials) MissingFields() []string {
	return missing(field{"name", c.Name}, field{"phone", c.Phone})
}

func (c CommunityCredentials) MissingFields() []string {
	return missing(field{"adminId", c.AdminID}, field{"password", c.Password})
}

func (AnonymousCredentials) isCredentials() {}
func (PoliceCredentials) isCredentials()    {}
func (CitizenCredentials) isCredentials()   {}
func (CommunityCredentials) isCredentials() {}

type field struct {
	name  string
	value string
}

func missing(fields ...field) []string {
	var out []string
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			out = append(out, f.name)
		}
	}
	return out
}
