package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/gym-service/internal/auth"
	"github.com/spec-kit/gym-service/internal/config"
	"github.com/spec-kit/gym-service/internal/domain"
	"github.com/spec-kit/gym-service/internal/repository"
	"github.com/spec-kit/gym-service/pkg/util"
)

// SessionService authenticates back-office admins.
type SessionService struct {
	admins     repository.AdminRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
	bootstrap  config.AuthConfig
	logger     *zap.Logger
}

// NewSessionService builds the service.
func NewSessionService(cfg config.AuthConfig, admins repository.AdminRepository, logger *zap.Logger) *SessionService {
	return &SessionService{
		admins:     admins,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
		bcryptCost: cfg.BcryptCost,
		bootstrap:  cfg,
		logger:     logger,
	}
}

// Login authenticates an admin by email and password. Unknown email and
// wrong password produce the same error.
func (s *SessionService) Login(ctx context.Context, email, password string) (*domain.AdminUser, string, time.Time, error) {
	admin, err := s.admins.GetByEmail(ctx, email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, "", time.Time{}, util.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, util.MapError(err)
	}
	if err := auth.ComparePassword(admin.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, util.NewUnauthorized("invalid credentials")
	}

	token, exp, err := s.tokenMgr.GenerateToken(admin.ID, admin.Name)
	if err != nil {
		return nil, "", time.Time{}, util.NewInternalError(err)
	}
	return admin, token, exp, nil
}

// EnsureDefaultAdmin creates the bootstrap admin when configured and no
// admin with that email exists yet.
func (s *SessionService) EnsureDefaultAdmin(ctx context.Context) error {
	if s.bootstrap.BootstrapAdminEmail == "" || s.bootstrap.BootstrapAdminPass == "" {
		return nil
	}

	hash, err := auth.HashPassword(s.bootstrap.BootstrapAdminPass, s.bcryptCost)
	if err != nil {
		return err
	}

	admin := &domain.AdminUser{
		Name:         s.bootstrap.BootstrapAdminName,
		Email:        s.bootstrap.BootstrapAdminEmail,
		PasswordHash: hash,
	}
	if err := s.admins.Create(ctx, admin); err != nil {
		// Conflict on email means the admin already exists.
		if err == pgx.ErrNoRows {
			return nil
		}
		return err
	}
	if s.logger != nil {
		s.logger.Info("bootstrap admin created", zap.String("email", admin.Email))
	}
	return nil
}

// TokenManager exposes the underlying token manager for middleware wiring.
func (s *SessionService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
