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

// ModelService covers the model directory plus model account auth.
type ModelService struct {
	ModelRepo    *repositories.ModelRepository
	SessionRepo  *repositories.SessionRepository
	TokenManager *utils.Manager
	AccessTTL    time.Duration
	RefreshTTL   time.Duration
}

type ModelSignUpRequest struct {
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Password     string  `json:"password"`
	Bio          string  `json:"bio"`
	PricePerHour float64 `json:"price_per_hour"`
}

func (s *ModelService) SignUp(ctx context.Context, req ModelSignUpRequest) (models.Model, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return models.Model{}, fmt.Errorf("%w: name, email and password are required", models.ErrValidation)
	}
	if req.PricePerHour <= 0 {
		return models.Model{}, fmt.Errorf("%w: price per hour must be positive", models.ErrValidation)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.Model{}, err
	}
	m := models.Model{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		Password:     string(hash),
		Bio:          req.Bio,
		PricePerHour: req.PricePerHour,
		CreatedAt:    time.Now().UTC(),
	}
	created, err := s.ModelRepo.CreateModel(ctx, m)
	if err != nil {
		return models.Model{}, err
	}
	created.Password = ""
	return created, nil
}

func (s *ModelService) SignIn(ctx context.Context, req models.SignInRequest) (models.Tokens, error) {
	m, err := s.ModelRepo.GetModelByEmail(ctx, req.Email)
	if errors.Is(err, models.ErrModelNotFound) {
		return models.Tokens{}, models.ErrInvalidCredentials
	}
	if err != nil {
		return models.Tokens{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(m.Password), []byte(req.Password)) != nil {
		return models.Tokens{}, models.ErrInvalidCredentials
	}
	return issueTokens(ctx, s.SessionRepo, s.TokenManager, m.ID, RoleModel, s.AccessTTL, s.RefreshTTL)
}

func (s *ModelService) GetModelByID(ctx context.Context, id string) (models.Model, error) {
	return s.ModelRepo.GetModelByID(ctx, id)
}

func (s *ModelService) GetModels(ctx context.Context) ([]models.Model, error) {
	return s.ModelRepo.ListModels(ctx)
}

func (s *ModelService) SetOnline(ctx context.Context, modelID string, online bool) error {
	return s.ModelRepo.SetOnline(ctx, modelID, online)
}
