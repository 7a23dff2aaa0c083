package service

import (
	"context"
	"errors"

	"fees-api/internal/apperrors"
	"fees-api/internal/config"
	"fees-api/internal/models"
	"fees-api/internal/repository"
	"fees-api/internal/utils"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type AuthService struct {
	users repository.UserRepository
	cfg   *config.Config
}

func NewAuthService(users repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		users: users,
		cfg:   cfg,
	}
}

func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, errors.New("failed to hash password")
	}

	return s.users.Create(ctx, &models.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Age:      req.Age,
		Password: passwordHash,
	})
}

func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || !utils.CheckPasswordHash(req.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(user)
}

func (s *AuthService) Refresh(ctx context.Context, req models.RefreshRequest) (*models.AuthResponse, error) {
	claims, err := utils.ValidateToken(req.RefreshToken, s.cfg.JWTRefreshSecret)
	if err != nil {
		return nil, errors.New("invalid refresh token")
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("invalid refresh token")
	}

	return s.issueTokens(user)
}

func (s *AuthService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrNotFound
	}
	return user, nil
}

func (s *AuthService) ValidateToken(tokenString string) (*utils.JWTClaims, error) {
	return utils.ValidateToken(tokenString, s.cfg.JWTSecret)
}

func (s *AuthService) issueTokens(user *models.User) (*models.AuthResponse, error) {
	accessToken, err := utils.GenerateToken(user.ID, user.Email, user.Name, s.cfg.JWTSecret, s.cfg.JWTAccessExpire)
	if err != nil {
		return nil, errors.New("failed to generate access token")
	}

	refreshToken, err := utils.GenerateToken(user.ID, user.Email, user.Name, s.cfg.JWTRefreshSecret, s.cfg.JWTRefreshExpire)
	if err != nil {
		return nil, errors.New("failed to generate refresh token")
	}

	return &models.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    s.cfg.JWTAccessExpire.String(),
		TokenType:    "Bearer",
		User:         *user,
	}, nil
}
