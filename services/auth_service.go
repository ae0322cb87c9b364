package services

import (
	"context"
	"net/http"
	"strings"

	"github.com/Maharshi2203/Sattys-main/models"
	"github.com/Maharshi2203/Sattys-main/repository"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const invalidLoginMessage = "Invalid username or password"

// AuthService logs admins in.
type AuthService interface {
	Login(ctx context.Context, req *models.LoginRequest) (string, *models.AdminSession, *ServiceError)
	EnsureAdmin(ctx context.Context, username, password string) error
}

type authServiceImpl struct {
	admins repository.AdminRepository
	tokens *TokenService
	logger *zap.Logger
}

func NewAuthService(admins repository.AdminRepository, tokens *TokenService, logger *zap.Logger) AuthService {
	return &authServiceImpl{admins: admins, tokens: tokens, logger: logger}
}

func (s *authServiceImpl) Login(ctx context.Context, req *models.LoginRequest) (string, *models.AdminSession, *ServiceError) {
	unauthorized := &ServiceError{StatusCode: http.StatusUnauthorized, Message: invalidLoginMessage}

	user, err := s.admins.FindByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if isNotFound(err) {
			// Unknown users cost one bcrypt compare, same as a wrong password.
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(req.Password))
			return "", nil, unauthorized
		}
		s.logger.Error("Failed to load admin user", zap.Error(err))
		return "", nil, internal("Login failed")
	}
	if !CheckPassword(user.PasswordHash, req.Password) {
		s.logger.Warn("Admin login rejected", zap.String("username", user.Username))
		return "", nil, unauthorized
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		s.logger.Error("Failed to sign admin token", zap.Error(err))
		return "", nil, internal("Login failed")
	}
	s.logger.Info("Admin logged in", zap.String("username", user.Username))
	return token, &models.AdminSession{ID: user.ID, Username: user.Username, Role: user.Role}, nil
}

// EnsureAdmin creates the bootstrap admin when it does not exist yet. An
// existing user is never modified.
func (s *authServiceImpl) EnsureAdmin(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return nil
	}
	if _, err := s.admins.FindByUsername(ctx, username); err == nil {
		return nil
	} else if !isNotFound(err) {
		return err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	if err := s.admins.Create(ctx, &models.AdminUser{Username: username, PasswordHash: hash, Role: "admin"}); err != nil {
		return err
	}
	s.logger.Info("Bootstrap admin created", zap.String("username", username))
	return nil
}

var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)

// HashPassword bcrypt-hashes a password.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword reports whether password matches hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
