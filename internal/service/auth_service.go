package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/copconnect/reporting-service/internal/auth"
	"github.com/copconnect/reporting-service/internal/config"
	"github.com/copconnect/reporting-service/internal/domain"
	"github.com/copconnect/reporting-service/internal/observability"
	"github.com/copconnect/reporting-service/internal/repository"
	apperrors "github.com/copconnect/reporting-service/pkg/util"
)

// AuthResult is returned by a successful register or login.
type AuthResult struct {
	Principal *domain.Principal
	Token     string
	ExpiresAt time.Time
}

// AuthService coordinates registration and login flows.
type AuthService struct {
	principals repository.PrincipalRepository
	tokenMgr   *auth.TokenManager
	hasher     *auth.Hasher
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	PrincipalRepo repository.PrincipalRepository
	TokenManager  *auth.TokenManager
	Hasher        *auth.Hasher
	Metrics       *observability.Metrics
	Logger        *zap.Logger
}

// NewAuthService builds the service. Token manager and hasher default from cfg when not supplied.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	tokens := deps.TokenManager
	if tokens == nil {
		tokens = auth.NewTokenManager(cfg.Auth.JWTSecret)
	}
	hasher := deps.Hasher
	if hasher == nil {
		hasher = auth.NewHasher(cfg.Auth.BcryptCost)
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		principals: deps.PrincipalRepo,
		tokenMgr:   tokens,
		hasher:     hasher,
		metrics:    deps.Metrics,
		logger:     logger,
	}
}

// Register validates role-specific fields, stores a new principal and issues its first token.
func (s *AuthService) Register(ctx context.Context, creds domain.Credentials) (*AuthResult, error) {
	result, err := s.register(ctx, creds)
	s.record("register", creds, err)
	return result, err
}

func (s *AuthService) register(ctx context.Context, creds domain.Credentials) (*AuthResult, error) {
	if err := requireFields(creds); err != nil {
		return nil, err
	}

	principal := &domain.Principal{ID: uuid.NewString(), Role: creds.Role()}

	switch c := creds.(type) {
	case domain.AnonymousCredentials:
		return nil, apperrors.NewRoleNotRegistrable("anonymous users do not need to register")
	case domain.PoliceCredentials:
		if err := ensureAbsent(s.principals.FindPoliceByName(ctx, c.Name)); err != nil {
			return nil, err
		}
		hash, err := s.hashSecret(c.BadgeSecret)
		if err != nil {
			return nil, err
		}
		principal.Name = c.Name
		principal.BadgeHash = hash
	case domain.CitizenCredentials:
		if err := ensureAbsent(s.principals.FindCitizen(ctx, c.Name, c.Phone)); err != nil {
			return nil, err
		}
		principal.Name = c.Name
		principal.Phone = c.Phone
	case domain.CommunityCredentials:
		if err := ensureAbsent(s.principals.FindCommunityByAdminID(ctx, c.AdminID)); err != nil {
			return nil, err
		}
		hash, err := s.hashSecret(c.Password)
		if err != nil {
			return nil, err
		}
		principal.AdminID = c.AdminID
		principal.PasswordHash = hash
	default:
		return nil, apperrors.NewInvalidRole(string(creds.Role()))
	}

	if err := s.principals.Create(ctx, principal); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, duplicatePrincipal()
		}
		return nil, apperrors.NewStoreUnavailable(err)
	}

	return s.issue(principal)
}

// Login verifies role-specific credentials and issues a token.
func (s *AuthService) Login(ctx context.Context, creds domain.Credentials) (*AuthResult, error) {
	result, err := s.login(ctx, creds)
	s.record("login", creds, err)
	return result, err
}

func (s *AuthService) login(ctx context.Context, creds domain.Credentials) (*AuthResult, error) {
	if _, ok := creds.(domain.AnonymousCredentials); ok {
		return nil, apperrors.NewLoginNotRequired("anonymous users do not need login")
	}
	if err := requireFields(creds); err != nil {
		return nil, err
	}

	var principal *domain.Principal

	switch c := creds.(type) {
	case domain.PoliceCredentials:
		found, err := s.principals.FindPoliceByName(ctx, c.Name)
		if err != nil {
			if repository.IsNotFound(err) {
				s.hasher.Burn(c.BadgeSecret)
				return nil, apperrors.NewInvalidCredentials()
			}
			return nil, apperrors.NewStoreUnavailable(err)
		}
		if !s.hasher.Verify(c.BadgeSecret, found.BadgeHash) {
			return nil, apperrors.NewInvalidCredentials()
		}
		principal = found
	case domain.CitizenCredentials:
		// The phone number is the citizen's only secret.
		found, err := s.principals.FindCitizen(ctx, c.Name, c.Phone)
		if err != nil {
			if repository.IsNotFound(err) {
				return nil, apperrors.NewInvalidCredentials()
			}
			return nil, apperrors.NewStoreUnavailable(err)
		}
		principal = found
	case domain.CommunityCredentials:
		found, err := s.principals.FindCommunityByAdminID(ctx, c.AdminID)
		if err != nil {
			if repository.IsNotFound(err) {
				s.hasher.Burn(c.Password)
				return nil, apperrors.NewInvalidCredentials()
			}
			return nil, apperrors.NewStoreUnavailable(err)
		}
		if !s.hasher.Verify(c.Password, found.PasswordHash) {
			return nil, apperrors.NewInvalidCredentials()
		}
		principal = found
	default:
		return nil, apperrors.NewInvalidRole(string(creds.Role()))
	}

	return s.issue(principal)
}

// ListPolice returns every registered officer.
func (s *AuthService) ListPolice(ctx context.Context) ([]domain.Principal, error) {
	officers, err := s.principals.ListByRole(ctx, domain.RolePolice)
	if err != nil {
		return nil, apperrors.NewStoreUnavailable(err)
	}
	return officers, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) hashSecret(secret string) (string, error) {
	hash, err := s.hasher.Hash(secret)
	if errors.Is(err, auth.ErrSecretTooLong) {
		return "", secretTooLong()
	}
	if err != nil {
		return "", apperrors.NewInternalError(err)
	}
	return hash, nil
}

func (s *AuthService) issue(principal *domain.Principal) (*AuthResult, error) {
	token, exp, err := s.tokenMgr.GenerateToken(principal)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &AuthResult{Principal: principal, Token: token, ExpiresAt: exp}, nil
}

// ensureAbsent turns a lookup result into a conflict when a principal already exists.
func ensureAbsent(_ *domain.Principal, err error) error {
	switch {
	case err == nil:
		return duplicatePrincipal()
	case repository.IsNotFound(err):
		return nil
	default:
		return apperrors.NewStoreUnavailable(err)
	}
}

func (s *AuthService) record(operation string, creds domain.Credentials, err error) {
	outcome := observability.OutcomeSuccess
	if err != nil {
		outcome = observability.OutcomeFailure
		s.logger.Debug("auth attempt rejected",
			zap.String("operation", operation),
			zap.String("role", string(creds.Role())),
			zap.String("kind", string(apperrors.KindOf(err))),
		)
	}
	s.metrics.RecordAuth(operation, string(creds.Role()), outcome)
}

func requireFields(creds domain.Credentials) error {
	missing := creds.MissingFields()
	if len(missing) > 0 {
		return apperrors.NewValidationError(
			string(creds.Role())+" must provide "+strings.Join(missing, " and "),
			map[string]any{"missing": missing},
		)
	}

	var secret string
	switch c := creds.(type) {
	case domain.PoliceCredentials:
		secret = c.BadgeSecret
	case domain.CommunityCredentials:
		secret = c.Password
	}
	if len(secret) > auth.MaxSecretBytes {
		return secretTooLong()
	}
	return nil
}

func secretTooLong() error {
	return apperrors.NewValidationError(
		"secret must be at most 72 bytes",
		map[string]any{"maxBytes": auth.MaxSecretBytes},
	)
}

func duplicatePrincipal() error {
	return apperrors.NewConflict("principal already registered", nil)
}
