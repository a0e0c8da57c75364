package usecase

import (
	"context"
	"fmt"
	"time"

	"wellness-booking/internal/data/entity"
	"wellness-booking/internal/data/repository"
	"wellness-booking/internal/dto/request"
	"wellness-booking/internal/dto/response"
	"wellness-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	Logout(ctx context.Context, token string) error
}

type authService struct {
	repo           *repository.Repository
	bootstrapToken string
	sessionExpiry  time.Duration
	log            *zap.Logger
}

func NewAuthService(repo *repository.Repository, bootstrapToken string, sessionExpiryHours int, log *zap.Logger) AuthService {
	if sessionExpiryHours < 1 {
		sessionExpiryHours = 24
	}

	return &authService{
		repo:           repo,
		bootstrapToken: bootstrapToken,
		sessionExpiry:  time.Duration(sessionExpiryHours) * time.Hour,
		log:            log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	if existing, err := s.repo.User.FindByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, fmt.Errorf("validation failed: email %s is already registered", req.Email)
	}
	if existing, err := s.repo.User.FindByUsername(ctx, req.Username); err == nil && existing != nil {
		return nil, fmt.Errorf("validation failed: username %s is already taken", req.Username)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role := entity.RoleStaff
	if s.bootstrapToken != "" && req.BootstrapToken == s.bootstrapToken {
		role = entity.RoleAdmin
	}

	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
		zap.String("role", string(user.Role)),
	)

	session, err := s.openSession(ctx, user)
	if err != nil {
		return nil, err
	}

	return authResponseFor(user, session), nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil || user == nil {
		return nil, fmt.Errorf("unauthorized: invalid credentials")
	}
	if !user.IsActive {
		return nil, fmt.Errorf("unauthorized: account is disabled")
	}
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Login rejected", zap.String("email", req.Email))
		return nil, fmt.Errorf("unauthorized: invalid credentials")
	}

	session, err := s.openSession(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
	)

	return authResponseFor(user, session), nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if err := s.repo.Session.Revoke(ctx, token); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}

	s.log.Info("Session revoked")
	return nil
}

func (s *authService) openSession(ctx context.Context, user *entity.User) (*entity.Session, error) {
	session := &entity.Session{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		UserID:    user.ID,
		Token:     uuid.New(),
		ExpiresAt: time.Now().Add(s.sessionExpiry),
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	return session, nil
}

func authResponseFor(user *entity.User, session *entity.Session) *response.AuthResponse {
	return &response.AuthResponse{
		UserID:    user.ID.String(),
		Username:  user.Username,
		Email:     user.Email,
		Role:      user.Role,
		Token:     session.Token.String(),
		ExpiresAt: &session.ExpiresAt,
	}
}
