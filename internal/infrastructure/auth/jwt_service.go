package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/manishadtanii/varalobackendv.0/domain"
)

// TokenTTLs holds the lifetime of each token purpose
type TokenTTLs struct {
	Access            time.Duration
	LoginSession      time.Duration
	ChangePasswordOTP time.Duration
	ChangePassword    time.Duration
	ResetPassword     time.Duration
}

// DefaultTokenTTLs are the lifetimes used when none are configured
var DefaultTokenTTLs = TokenTTLs{
	Access:            7 * 24 * time.Hour,
	LoginSession:      15 * time.Minute,
	ChangePasswordOTP: 10 * time.Minute,
	ChangePassword:    15 * time.Minute,
	ResetPassword:     15 * time.Minute,
}

type tokenClaims struct {
	UserID  uint                `json:"user_id"`
	Email   string              `json:"email"`
	Role    string              `json:"role"`
	Purpose domain.TokenPurpose `json:"purpose"`
	jwt.RegisteredClaims
}

// JWTServiceImpl implements domain.TokenService with HS256 tokens
type JWTServiceImpl struct {
	secretKey []byte
	issuer    string
	ttls      map[domain.TokenPurpose]time.Duration
	now       func() time.Time
}

// NewJWTService creates a new JWT service
func NewJWTService(secretKey, issuer string, ttls TokenTTLs) *JWTServiceImpl {
	return &JWTServiceImpl{
		secretKey: []byte(secretKey),
		issuer:    issuer,
		ttls: map[domain.TokenPurpose]time.Duration{
			domain.PurposeAccess:            ttls.Access,
			domain.PurposeLoginSession:      ttls.LoginSession,
			domain.PurposeChangePasswordOTP: ttls.ChangePasswordOTP,
			domain.PurposeChangePassword:    ttls.ChangePassword,
			domain.PurposeResetPassword:     ttls.ResetPassword,
		},
		now: time.Now,
	}
}

// randRead is swapped in tests
var randRead = rand.Read

// generateJTI creates a unique JWT ID
func (j *JWTServiceImpl) generateJTI() (string, error) {
	bytes := make([]byte, 16)
	if _, err := randRead(bytes); err != nil {
		return "", fmt.Errorf("failed to generate token id: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// GenerateAccessToken implements domain.TokenService
func (j *JWTServiceImpl) GenerateAccessToken(user *domain.User) (string, error) {
	return j.GenerateScopedToken(user, domain.PurposeAccess)
}

// GenerateScopedToken implements domain.TokenService
func (j *JWTServiceImpl) GenerateScopedToken(user *domain.User, purpose domain.TokenPurpose) (string, error) {
	ttl, ok := j.ttls[purpose]
	if !ok || ttl <= 0 {
		return "", fmt.Errorf("no lifetime configured for token purpose %q", purpose)
	}

	jti, err := j.generateJTI()
	if err != nil {
		return "", err
	}

	now := j.now()
	claims := tokenClaims{
		UserID:  user.ID,
		Email:   user.Email,
		Role:    user.Role,
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    j.issuer,
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        jti,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secretKey)
}

// Validate checks signature, expiry and issuer, then requires the purpose claim
// to equal purpose.
func (j *JWTServiceImpl) Validate(tokenString string, purpose domain.TokenPurpose) (*domain.TokenClaims, error) {
	if tokenString == "" {
		return nil, domain.ErrTokenMissing
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(j.now),
		jwt.WithExpirationRequired(),
	}
	if j.issuer != "" {
		opts = append(opts, jwt.WithIssuer(j.issuer))
	}

	var claims tokenClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		return j.secretKey, nil
	}, opts...)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, domain.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, domain.ErrTokenMalformed
		default:
			return nil, domain.ErrTokenInvalid
		}
	}
	if !token.Valid {
		return nil, domain.ErrTokenInvalid
	}
	if claims.UserID == 0 || claims.Email == "" {
		return nil, domain.ErrTokenMalformed
	}
	if claims.Purpose != purpose {
		return nil, domain.ErrTokenPurpose
	}

	return &domain.TokenClaims{
		UserID:    claims.UserID,
		Email:     claims.Email,
		Role:      claims.Role,
		Purpose:   claims.Purpose,
		IssuedAt:  claims.IssuedAt.Unix(),
		ExpiresAt: claims.ExpiresAt.Unix(),
	}, nil
}

var _ domain.TokenService = (*JWTServiceImpl)(nil)
