package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Shamanth-8/drones/internal/constants"
)

const DefaultTokenTTL = 24 * time.Hour

// TokenSigner issues and verifies HS256 operator tokens
type TokenSigner struct {
	secretKey []byte
	now       func() time.Time
}

func NewTokenSigner(secretKey []byte) *TokenSigner {
	return &TokenSigner{secretKey: secretKey, now: time.Now}
}

// Issue signs a token for subject with the given role
func (s *TokenSigner) Issue(subject string, role constants.OperatorRole, ttl time.Duration) (string, time.Time, error) {
	if subject == "" {
		return "", time.Time{}, errors.New("subject is required")
	}
	if role != constants.RoleOperator && role != constants.RoleViewer {
		return "", time.Time{}, fmt.Errorf("unknown role %q", role)
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	issuedAt := s.now()
	expiresAt := issuedAt.Add(ttl)

	claims := jwt.MapClaims{
		"sub":  subject,
		"role": string(role),
		"jti":  uuid.New().String(),
		"exp":  expiresAt.Unix(),
		"iat":  issuedAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, expiresAt, nil
}

// Verify checks the signature and expiry and returns the operator claims
func (s *TokenSigner) Verify(tokenString string) (*OperatorClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.MapClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	subject, ok := (*claims)["sub"].(string)
	if !ok || subject == "" {
		return nil, errors.New("missing or invalid sub claim")
	}
	role, ok := (*claims)["role"].(string)
	if !ok {
		return nil, errors.New("missing or invalid role claim")
	}
	tokenID, _ := (*claims)["jti"].(string)

	return &OperatorClaims{
		SubjectValue: subject,
		RoleValue:    constants.OperatorRole(role),
		TokenIDValue: tokenID,
	}, nil
}
