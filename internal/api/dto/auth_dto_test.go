package dto

import (
	"testing"

	"github.com/copconnect/reporting-service/internal/domain"
	apperrors "github.com/copconnect/reporting-service/pkg/util"
)

func TestAuthRequestCredentials(t *testing.T) {
	cases := []struct {
		name string
		req  AuthRequest
		want domain.Credentials
	}{
		{"anonymous", AuthRequest{Role: "anonymous", Name: "ignored"}, domain.AnonymousCredentials{}},
		{"police", AuthRequest{Role: "police", Name: "Rao", BadgeSecret: "MH-1", Phone: "ignored"}, domain.PoliceCredentials{Name: "Rao", BadgeSecret: "MH-1"}},
		{"citizen", AuthRequest{Role: "citizen", Name: "Asha", Phone: "999"}, domain.CitizenCredentials{Name: "Asha", Phone: "999"}},
		{"community", AuthRequest{Role: "community", AdminID: "ward-7", Password: "pw"}, domain.CommunityCredentials{AdminID: "ward-7", Password: "pw"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.req.Credentials()
			if err != nil {
				t.Fatalf("Credentials: %v", err)
			}
			if got != tc.want {
				t.Fatalf("Credentials() = %#v, want %#v", got, tc.want)
			}
		})
	}
}

func TestAuthRequestUnknownRole(t *testing.T) {
	for _, role := range []string{"", "alien", "POLICE"} {
		_, err := AuthRequest{Role: role}.Credentials()
		if apperrors.KindOf(err) != apperrors.KindInvalidRole {
			t.Fatalf("role %q: expected invalid role, got %v", role, err)
		}
	}
}

func TestNewPrincipalResponseOmitsSecrets(t *testing.T) {
	resp := NewPrincipalResponse(domain.Principal{ID: "p-1", Role: domain.RolePolice, Name: "Rao", BadgeHash: "$2a$10$x", PasswordHash: "$2a$10$y"})
	if resp.ID != "p-1" || resp.Name != "Rao" || resp.Role != domain.RolePolice {
		t.Fatalf("unexpected response %+v", resp)
	}
}
