package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"fishhook/internal/models"
	"fishhook/internal/repositories"
	"fishhook/utils"
)

const (
	RoleUser  = "user"
	RoleModel = "model"
)

type UserService struct {
	UserRepo     *repositories.UserRepository
	SessionRepo  *repositories.SessionRepository
	TokenManager *utils.Manager
	AccessTTL    time.Duration
	RefreshTTL   time.Duration
}

func (s *UserService) SignUp(ctx context.Context, req models.SignUpRequest) (models.User, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return models.User{}, fmt.Errorf("%w: name, email and password are required", models.ErrValidation)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}
	u := models.User{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Phone:     req.Phone,
		Email:     req.Email,
		Password:  string(hash),
		CreatedAt: time.Now().UTC(),
	}
	created, err := s.UserRepo.CreateUser(ctx, u)
	if err != nil {
		return models.User{}, err
	}
	created.Password = ""
	return created, nil
}

func (s *UserService) SignIn(ctx context.Context, req models.SignInRequest) (models.Tokens, error) {
	u, err := s.UserRepo.GetUserByEmail(ctx, req.Email)
	if errors.Is(err, models.ErrUserNotFound) {
		return models.Tokens{}, models.ErrInvalidCredentials
	}
	if err != nil {
		return models.Tokens{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)) != nil {
		return models.Tokens{}, models.ErrInvalidCredentials
	}
	return issueTokens(ctx, s.SessionRepo, s.TokenManager, u.ID, RoleUser, s.AccessTTL, s.RefreshTTL)
}

func (s *UserService) GetUserByID(ctx context.Context, id string) (models.User, error) {
	return s.UserRepo.GetUserByID(ctx, id)
}

func issueTokens(ctx context.Context, sessions *repositories.SessionRepository, tm *utils.Manager, accountID, role string, accessTTL, refreshTTL time.Duration) (models.Tokens, error) {
	access, err := tm.NewAccessToken(accountID, role, accessTTL)
	if err != nil {
		return models.Tokens{}, err
	}
	refresh, err := tm.NewRefreshToken()
	if err != nil {
		return models.Tokens{}, err
	}
	session := models.Session{
		AccountID:    accountID,
		Role:         role,
		RefreshToken: refresh,
		ExpiresAt:    time.Now().Add(refreshTTL),
	}
	if err := sessions.SaveSession(ctx, session); err != nil {
		return models.Tokens{}, err
	}
	return models.Tokens{AccessToken: access, RefreshToken: refresh}, nil
}
