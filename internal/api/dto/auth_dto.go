package dto

import (
	"time"

	"github.com/copconnect/reporting-service/internal/domain"
	apperrors "github.com/copconnect/reporting-service/pkg/util"
)

// AuthRequest is the shared body of POST /register and POST /login.
type AuthRequest struct {
	Role        string `json:"role"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	BadgeSecret string `json:"badgeSecret"`
	AdminID     string `json:"adminId"`
	Password    string `json:"password"`
}

// Credentials decodes the request into the variant for its role.
// Fields that do not belong to the role are ignored.
func (r AuthRequest) Credentials() (domain.Credentials, error) {
	role, ok := domain.ParseRole(r.Role)
	if !ok {
		return nil, apperrors.NewInvalidRole(r.Role)
	}
	switch role {
	case domain.RoleAnonymous:
		return domain.AnonymousCredentials{}, nil
	case domain.RolePolice:
		return domain.PoliceCredentials{Name: r.Name, BadgeSecret: r.BadgeSecret}, nil
	case domain.RoleCitizen:
		return domain.CitizenCredentials{Name: r.Name, Phone: r.Phone}, nil
	case domain.RoleCommunity:
		return domain.CommunityCredentials{AdminID: r.AdminID, Password: r.Password}, nil
	default:
		return nil, apperrors.NewInvalidRole(r.Role)
	}
}

// RegisterResponse is returned with 201 by POST /register.
type RegisterResponse struct {
	PrincipalID string    `json:"principalId"`
	Token       string    `json:"token"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// LoginResponse is returned by POST /login.
type LoginResponse struct {
	Token     string            `json:"token"`
	ExpiresAt time.Time         `json:"expiresAt"`
	Principal PrincipalResponse `json:"principal"`
}

// PrincipalResponse is the public view of a principal. Secret hashes are never included.
type PrincipalResponse struct {
	ID        string      `json:"id"`
	Role      domain.Role `json:"role"`
	Name      string      `json:"name,omitempty"`
	Phone     string      `json:"phone,omitempty"`
	AdminID   string      `json:"adminId,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
}

// NewPrincipalResponse maps a principal to its public view.
func NewPrincipalResponse(p domain.Principal) PrincipalResponse {
	return PrincipalResponse{
		ID:        p.ID,
		Role:      p.Role,
		Name:      p.Name,
		Phone:     p.Phone,
		AdminID:   p.AdminID,
		CreatedAt: p.CreatedAt,
	}
}
