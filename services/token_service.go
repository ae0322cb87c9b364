package services

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Maharshi2203/Sattys-main/models"
	"github.com/golang-jwt/jwt/v4"
)

// AdminTokenTTL is how long an admin session lasts.
const AdminTokenTTL = 7 * 24 * time.Hour

const adminTokenType = "admin"

// AdminClaims is what an admin token proves.
type AdminClaims struct {
	UserID   uint   `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// TokenService issues and verifies HS256 admin tokens.
type TokenService struct {
	secretKey []byte
	ttl       time.Duration
	now       func() time.Time
}

// NewTokenService creates a TokenService. The secret must not be empty.
func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is empty")
	}
	if ttl <= 0 {
		ttl = AdminTokenTTL
	}
	return &TokenService{secretKey: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// TTL is the lifetime of issued tokens.
func (s *TokenService) TTL() time.Duration { return s.ttl }

// Generate signs a token for user.
func (s *TokenService) Generate(user *models.AdminUser) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(user.ID), 10),
		"username": user.Username,
		"role":     user.Role,
		"typ":      adminTokenType,
		"iat":      now.Unix(),
		"exp":      now.Add(s.ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secretKey)
}

// ValidateToken parses tokenStr and returns its admin claims.
func (s *TokenService) ValidateToken(tokenStr string) (*AdminClaims, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return s.secretKey, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}
	if typ, _ := claims["typ"].(string); typ != adminTokenType {
		return nil, fmt.Errorf("invalid token type")
	}
	sub, _ := claims["sub"].(string)
	id, err := strconv.ParseUint(sub, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid token subject")
	}
	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)
	return &AdminClaims{UserID: uint(id), Username: username, Role: role}, nil
}
