package services

import (
	"context"
	"fmt"
	"time"

	"saasnotes/internal/common"
	"saasnotes/internal/models"
	"saasnotes/internal/repositories"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost matches the work factor used by the seed tooling.
const bcryptCost = 10

// AuthService verifies credentials and encodes/decodes identity tokens.
type AuthService interface {
	HashPassword(password string) (string, error)
	VerifyPassword(password, hash string) bool

	GenerateToken(identity *common.Identity) (string, error)
	// ValidateToken returns the identity carried by a token, or ok=false for
	// any failure: bad signature, malformed structure, or expiry. Callers
	// cannot distinguish the failure reasons.
	ValidateToken(token string) (*common.Identity, bool)

	Login(ctx context.Context, email, password string) (*LoginResult, error)
}

// TokenClaims is the signed identity assertion. Role and tenant fields are
// frozen at issuance and not re-checked against live user state per request.
type TokenClaims struct {
	UserID     string `json:"user_id"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	TenantID   string `json:"tenant_id"`
	TenantSlug string `json:"tenant_slug"`
	jwt.RegisteredClaims
}

// LoginResult bundles the issued token with the authenticated user.
type LoginResult struct {
	Token      string
	User       *models.User
	TenantSlug string
}

type authService struct {
	userRepo   repositories.UserRepository
	tenantRepo repositories.TenantRepository
	jwtSecret  []byte
	tokenTTL   time.Duration
}

// NewAuthService creates an auth service. The signing key is injected here
// rather than read from a process-wide global so tests can run with distinct
// keys.
func NewAuthService(userRepo repositories.UserRepository, tenantRepo repositories.TenantRepository, jwtSecret string, tokenTTL time.Duration) AuthService {
	return &authService{
		userRepo:   userRepo,
		tenantRepo: tenantRepo,
		jwtSecret:  []byte(jwtSecret),
		tokenTTL:   tokenTTL,
	}
}

func (s *authService) HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// VerifyPassword compares through bcrypt only. A malformed digest is a
// verification failure, not a fault.
func (s *authService) VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func (s *authService) GenerateToken(identity *common.Identity) (string, error) {
	now := time.Now()
	claims := TokenClaims{
		UserID:     identity.UserID.String(),
		Email:      identity.Email,
		Role:       string(identity.Role),
		TenantID:   identity.TenantID.String(),
		TenantSlug: identity.TenantSlug,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.UserID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *authService) ValidateToken(tokenString string) (*common.Identity, bool) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, false
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok {
		return nil, false
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, false
	}
	tenantID, err := uuid.Parse(claims.TenantID)
	if err != nil {
		return nil, false
	}

	return &common.Identity{
		UserID:     userID,
		Email:      claims.Email,
		Role:       models.Role(claims.Role),
		TenantID:   tenantID,
		TenantSlug: claims.TenantSlug,
	}, true
}

// Login authenticates an email/password pair and issues a token. Unknown
// email and wrong password collapse into the same error.
func (s *authService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, models.ErrInvalidCredentials
	}

	if !s.VerifyPassword(password, user.PasswordHash) {
		return nil, models.ErrInvalidCredentials
	}

	tenant, err := s.tenantRepo.GetByID(ctx, user.TenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve tenant for user %s: %w", user.ID, err)
	}

	token, err := s.GenerateToken(&common.Identity{
		UserID:     user.ID,
		Email:      user.Email,
		Role:       user.Role,
		TenantID:   user.TenantID,
		TenantSlug: tenant.Slug,
	})
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:      token,
		User:       user,
		TenantSlug: tenant.Slug,
	}, nil
}
