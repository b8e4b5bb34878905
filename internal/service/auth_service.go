package service

import (
	"context"
	"errors"
	"strconv"

	"github.com/kanjidojo/kanji-backend/internal/common"
	"github.com/kanjidojo/kanji-backend/internal/domain"
	"github.com/kanjidojo/kanji-backend/internal/repository"
	"github.com/kanjidojo/kanji-backend/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// AuthService authentication business logic
type AuthService interface {
	Login(ctx context.Context, username, password string) (*LoginResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error)
	Me(ctx context.Context, userID uint64) (*domain.User, error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtManager *jwt.Manager
}

// LoginResponse login response
type LoginResponse struct {
	User         *domain.User `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}

// TokenPair token pair
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, jwtManager *jwt.Manager) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
	}
}

// Login authenticates user and returns tokens
func (s *authService) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	// 1. Find user
	user, err := s.userRepo.FindByUsername(ctx, username)
	if errors.Is(err, common.ErrUserNotFound) {
		return nil, common.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	// 2. Verify password
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, common.ErrInvalidCredentials
	}

	// 3. Generate JWT tokens
	tokens, err := s.issue(user)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		User:         user,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// RefreshToken exchanges a refresh token for a new pair
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.jwtManager.VerifyTokenType(refreshToken, jwt.TokenTypeRefresh)
	if err != nil {
		return nil, common.ErrUnauthorized
	}

	id, err := strconv.ParseUint(claims.UserID, 10, 64)
	if err != nil {
		return nil, common.ErrUnauthorized
	}

	// the account may have been removed since the token was issued
	user, err := s.userRepo.FindByID(ctx, id)
	if errors.Is(err, common.ErrUserNotFound) {
		return nil, common.ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}

	return s.issue(user)
}

// Me returns the signed-in user's account
func (s *authService) Me(ctx context.Context, userID uint64) (*domain.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}

func (s *authService) issue(user *domain.User) (*TokenPair, error) {
	userID := strconv.FormatUint(user.ID, 10)

	accessToken, err := s.jwtManager.GenerateAccessToken(userID, user.Nickname)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.jwtManager.GenerateRefreshToken(userID)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
