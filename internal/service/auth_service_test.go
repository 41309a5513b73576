package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/copconnect/reporting-service/internal/auth"
	"github.com/copconnect/reporting-service/internal/config"
	"github.com/copconnect/reporting-service/internal/domain"
	"github.com/copconnect/reporting-service/internal/observability"
	"github.com/copconnect/reporting-service/internal/repository/repotest"
	apperrors "github.com/copconnect/reporting-service/pkg/util"
)

func newTestAuthService(t *testing.T) (*AuthService, *repotest.Principals) {
	t.Helper()
	store := repotest.NewPrincipals()
	svc := NewAuthService(config.Config{Auth: config.AuthConfig{JWTSecret: "unit-secret"}}, AuthDependencies{
		PrincipalRepo: store,
		Hasher:        auth.NewHasher(bcrypt.MinCost),
		Metrics:       observability.NewMetrics(),
	})
	return svc, store
}

func assertKind(t *testing.T, err error, want apperrors.Kind) {
	t.Helper()
	if got := apperrors.KindOf(err); got != want {
		t.Fatalf("error kind = %q, want %q (err: %v)", got, want, err)
	}
}

func TestPoliceRegisterThenLogin(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestAuthService(t)

	reg, err := svc.Register(ctx, domain.PoliceCredentials{Name: "Inspector Rao", BadgeSecret: "MH-1042"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if reg.Principal.ID == "" || reg.Token == "" {
		t.Fatalf("expected id and token, got %+v", reg)
	}
	if reg.Principal.BadgeHash == "MH-1042" || reg.Principal.BadgeHash == "" {
		t.Fatalf("badge must be stored hashed, got %q", reg.Principal.BadgeHash)
	}
	if store.Writes != 1 {
		t.Fatalf("expected one store write, got %d", store.Writes)
	}

	login, err := svc.Login(ctx, domain.PoliceCredentials{Name: "Inspector Rao", BadgeSecret: "MH-1042"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	claims, err := svc.TokenManager().ParseToken(login.Token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.Role != domain.RolePolice || claims.PrincipalID != reg.Principal.ID || claims.Name != "Inspector Rao" {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestPoliceLoginFailuresAreIndistinguishable(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAuthService(t)
	if _, err := svc.Register(ctx, domain.PoliceCredentials{Name: "Rao", BadgeSecret: "MH-1042"}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, wrongBadge := svc.Login(ctx, domain.PoliceCredentials{Name: "Rao", BadgeSecret: "MH-9999"})
	_, unknownName := svc.Login(ctx, domain.PoliceCredentials{Name: "Nobody", BadgeSecret: "MH-1042"})

	assertKind(t, wrongBadge, apperrors.KindInvalidCredentials)
	assertKind(t, unknownName, apperrors.KindInvalidCredentials)
	if wrongBadge.Error() != unknownName.Error() || wrongBadge.Error() != apperrors.InvalidCredentialsMessage {
		t.Fatalf("failure messages differ: %q vs %q", wrongBadge, unknownName)
	}
}

func TestCitizenRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAuthService(t)

	reg, err := svc.Register(ctx, domain.CitizenCredentials{Name: "Asha", Phone: "9990001111"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	claims, err := svc.TokenManager().ParseToken(reg.Token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.Role != domain.RoleCitizen || claims.Name != "Asha" || claims.Phone != "9990001111" {
		t.Fatalf("unexpected claims %+v", claims)
	}

	if _, err := svc.Login(ctx, domain.CitizenCredentials{Name: "Asha", Phone: "9990001111"}); err != nil {
		t.Fatalf("Login: %v", err)
	}

	_, err = svc.Login(ctx, domain.CitizenCredentials{Name: "Asha", Phone: "0000000000"})
	assertKind(t, err, apperrors.KindInvalidCredentials)
}

func TestCommunityRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAuthService(t)

	reg, err := svc.Register(ctx, domain.CommunityCredentials{AdminID: "ward-7", Password: "correct horse"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if reg.Principal.PasswordHash == "correct horse" {
		t.Fatalf("password stored in plaintext")
	}

	login, err := svc.Login(ctx, domain.CommunityCredentials{AdminID: "ward-7", Password: "correct horse"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	claims, err := svc.TokenManager().ParseToken(login.Token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.Role != domain.RoleCommunity || claims.AdminID != "ward-7" {
		t.Fatalf("unexpected claims %+v", claims)
	}

	_, err = svc.Login(ctx, domain.CommunityCredentials{AdminID: "ward-7", Password: "wrong"})
	assertKind(t, err, apperrors.KindInvalidCredentials)
	_, err = svc.Login(ctx, domain.CommunityCredentials{AdminID: "ward-8", Password: "correct horse"})
	assertKind(t, err, apperrors.KindInvalidCredentials)
}

func TestAnonymousNeverRegistersOrLogsIn(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestAuthService(t)

	_, err := svc.Register(ctx, domain.AnonymousCredentials{})
	assertKind(t, err, apperrors.KindRoleNotRegistrable)

	_, err = svc.Login(ctx, domain.AnonymousCredentials{})
	assertKind(t, err, apperrors.KindLoginNotRequired)

	if store.Writes != 0 {
		t.Fatalf("anonymous caused %d writes", store.Writes)
	}
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		name  string
		creds domain.Credentials
	}{
		{"police without badge", domain.PoliceCredentials{Name: "Rao"}},
		{"police without name", domain.PoliceCredentials{BadgeSecret: "MH-1"}},
		{"citizen without phone", domain.CitizenCredentials{Name: "Asha"}},
		{"community without password", domain.CommunityCredentials{AdminID: "ward-7"}},
		{"police badge over 72 bytes", domain.PoliceCredentials{Name: "Rao", BadgeSecret: strings.Repeat("B", 80)}},
		{"community password over 72 bytes", domain.CommunityCredentials{AdminID: "ward-7", Password: strings.Repeat("p", 73)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, store := newTestAuthService(t)
			_, err := svc.Register(ctx, tc.creds)
			assertKind(t, err, apperrors.KindValidation)
			if store.Writes != 0 {
				t.Fatalf("validation failure wrote to the store")
			}

			_, err = svc.Login(ctx, tc.creds)
			assertKind(t, err, apperrors.KindValidation)
		})
	}
}

func TestRegisterDuplicate(t *testing.T) {
	ctx := context.Background()
	cases := []domain.Credentials{
		domain.PoliceCredentials{Name: "Rao", BadgeSecret: "MH-1"},
		domain.CitizenCredentials{Name: "Asha", Phone: "9990001111"},
		domain.CommunityCredentials{AdminID: "ward-7", Password: "pw"},
	}
	for _, creds := range cases {
		t.Run(string(creds.Role()), func(t *testing.T) {
			svc, store := newTestAuthService(t)
			if _, err := svc.Register(ctx, creds); err != nil {
				t.Fatalf("first Register: %v", err)
			}
			_, err := svc.Register(ctx, creds)
			assertKind(t, err, apperrors.KindConflict)
			if store.Writes != 1 {
				t.Fatalf("expected a single write, got %d", store.Writes)
			}
		})
	}
}

func TestRegisterRaceHitsUniqueIndex(t *testing.T) {
	ctx := context.Background()
	cases := []domain.Credentials{
		domain.PoliceCredentials{Name: "Rao", BadgeSecret: "MH-1"},
		domain.CitizenCredentials{Name: "Asha", Phone: "9990001111"},
		domain.CommunityCredentials{AdminID: "ward-7", Password: "pw"},
	}
	for _, creds := range cases {
		t.Run(string(creds.Role()), func(t *testing.T) {
			svc, store := newTestAuthService(t)
			if _, err := svc.Register(ctx, creds); err != nil {
				t.Fatalf("first Register: %v", err)
			}
			store.LookupMisses = true

			_, err := svc.Register(ctx, creds)
			assertKind(t, err, apperrors.KindConflict)
			if store.Writes != 1 {
				t.Fatalf("expected a single write, got %d", store.Writes)
			}
		})
	}
}

func TestCitizenSameNameDifferentPhoneIsDistinct(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestAuthService(t)
	if _, err := svc.Register(ctx, domain.CitizenCredentials{Name: "Asha", Phone: "1"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := svc.Register(ctx, domain.CitizenCredentials{Name: "Asha", Phone: "2"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if store.Writes != 2 {
		t.Fatalf("expected two principals, got %d", store.Writes)
	}
}

func TestStoreFailureIsStoreUnavailable(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestAuthService(t)
	cause := errors.New("connection reset by peer")
	store.Err = cause

	_, err := svc.Register(ctx, domain.CitizenCredentials{Name: "Asha", Phone: "1"})
	assertKind(t, err, apperrors.KindStoreUnavailable)
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to be wrapped")
	}

	_, err = svc.Login(ctx, domain.PoliceCredentials{Name: "Rao", BadgeSecret: "x"})
	assertKind(t, err, apperrors.KindStoreUnavailable)

	_, err = svc.ListPolice(ctx)
	assertKind(t, err, apperrors.KindStoreUnavailable)
}

func TestListPolice(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAuthService(t)
	for _, creds := range []domain.Credentials{
		domain.PoliceCredentials{Name: "Singh", BadgeSecret: "1"},
		domain.CitizenCredentials{Name: "Asha", Phone: "1"},
		domain.PoliceCredentials{Name: "Iyer", BadgeSecret: "2"},
	} {
		if _, err := svc.Register(ctx, creds); err != nil {
			t.Fatalf("Register: %v", err)
		}
	}

	officers, err := svc.ListPolice(ctx)
	if err != nil {
		t.Fatalf("ListPolice: %v", err)
	}
	if len(officers) != 2 || officers[0].Name != "Iyer" || officers[1].Name != "Singh" {
		t.Fatalf("unexpected officers %+v", officers)
	}
}
