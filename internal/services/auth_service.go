package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"kubramarket/internal/caching"
	"kubramarket/internal/common"
	"kubramarket/internal/models"
	"kubramarket/internal/repositories"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	sessionTTL        = 7 * 24 * time.Hour
	loginRateLimit    = 10
	loginRateWindow   = time.Minute
	minPasswordLength = 6
)

// AuthService owns signup, login and the cookie session lifecycle. A session
// is an HMAC-signed JWT whose jti keys a redis entry; deleting that entry
// revokes the session before the token expires.
type AuthService interface {
	Signup(ctx context.Context, req *models.RegisterRequest) (*models.Merchant, string, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.Merchant, string, error)
	Logout(ctx context.Context, sessionID string) error
	Resolve(ctx context.Context, token string) (int64, string, error)
	CurrentMerchant(ctx context.Context, merchantID int64) (*models.Merchant, error)
}

// SessionClaims represents the session token claims
type SessionClaims struct {
	MerchantID int64 `json:"merchant_id"`
	jwt.RegisteredClaims
}

type authService struct {
	merchantRepo  repositories.MerchantRepository
	cacheSvc      caching.CacheService
	sessionSecret []byte
}

func NewAuthService(merchantRepo repositories.MerchantRepository, cacheSvc caching.CacheService, sessionSecret string) AuthService {
	return &authService{
		merchantRepo:  merchantRepo,
		cacheSvc:      cacheSvc,
		sessionSecret: []byte(sessionSecret),
	}
}

func (s *authService) Signup(ctx context.Context, req *models.RegisterRequest) (*models.Merchant, string, error) {
	if err := common.ValidateRequiredString(req.Username, "username"); err != nil {
		return nil, "", common.NewFieldValidationError("username", err.Error())
	}
	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return nil, "", common.NewFieldValidationError("name", err.Error())
	}
	if len(req.Password) < minPasswordLength {
		return nil, "", common.NewFieldValidationError("password", fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	existing, err := s.merchantRepo.GetByUsername(ctx, req.Username)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", common.NewUnexpectedError("failed to check username", err)
	}
	if existing != nil {
		return nil, "", common.NewFieldValidationError("username", "username is already taken")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", common.NewUnexpectedError("failed to hash password", err)
	}

	merchant := &models.Merchant{
		Username:     req.Username,
		PasswordHash: string(hash),
		Name:         req.Name,
		Phone:        req.Phone,
		Email:        req.Email,
	}
	if err := s.merchantRepo.Create(ctx, merchant); err != nil {
		return nil, "", common.NewUnexpectedError("failed to create merchant", err)
	}

	token, err := s.issueSession(ctx, merchant.ID)
	if err != nil {
		return nil, "", err
	}
	return merchant, token, nil
}

func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.Merchant, string, error) {
	if req.Username == "" || req.Password == "" {
		return nil, "", common.NewValidationError("username and password are required")
	}

	limited, err := s.cacheSvc.IsRateLimited(ctx, "login:"+req.Username, loginRateLimit, loginRateWindow)
	if err == nil && limited {
		return nil, "", common.NewAuthenticationError("too many login attempts, try again later")
	}

	merchant, err := s.merchantRepo.GetByUsername(ctx, req.Username)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, "", common.NewAuthenticationError("invalid username or password")
	}
	if err != nil {
		return nil, "", common.NewUnexpectedError("failed to load merchant", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(merchant.PasswordHash), []byte(req.Password)) != nil {
		return nil, "", common.NewAuthenticationError("invalid username or password")
	}

	token, err := s.issueSession(ctx, merchant.ID)
	if err != nil {
		return nil, "", err
	}
	return merchant, token, nil
}

func (s *authService) Logout(ctx context.Context, sessionID string) error {
	if err := s.cacheSvc.DeleteSession(ctx, sessionID); err != nil {
		return common.NewUnexpectedError("failed to delete session", err)
	}
	return nil
}

// Resolve verifies the session token and confirms the backing redis entry is
// still present, returning the merchant id and the session id.
func (s *authService) Resolve(ctx context.Context, token string) (int64, string, error) {
	claims := &SessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.sessionSecret, nil
	})
	if err != nil || !parsed.Valid {
		return 0, "", common.NewAuthenticationError("invalid session")
	}

	stored, err := s.cacheSvc.GetSession(ctx, claims.ID)
	if err != nil {
		return 0, "", common.NewUnexpectedError("failed to check session", err)
	}
	if stored == "" || stored != strconv.FormatInt(claims.MerchantID, 10) {
		return 0, "", common.NewAuthenticationError("session expired")
	}
	return claims.MerchantID, claims.ID, nil
}

func (s *authService) CurrentMerchant(ctx context.Context, merchantID int64) (*models.Merchant, error) {
	merchant, err := s.merchantRepo.GetByID(ctx, merchantID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.NewAuthenticationError("merchant no longer exists")
	}
	if err != nil {
		return nil, common.NewUnexpectedError("failed to load merchant", err)
	}
	return merchant, nil
}

func (s *authService) issueSession(ctx context.Context, merchantID int64) (string, error) {
	now := time.Now()
	sessionID := uuid.NewString()

	claims := SessionClaims{
		MerchantID: merchantID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "kubramarket",
			Subject:   strconv.FormatInt(merchantID, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        sessionID,
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.sessionSecret)
	if err != nil {
		return "", common.NewUnexpectedError("failed to sign session token", err)
	}

	if err := s.cacheSvc.SetSession(ctx, sessionID, strconv.FormatInt(merchantID, 10), sessionTTL); err != nil {
		return "", common.NewUnexpectedError("failed to store session", err)
	}
	return token, nil
}
