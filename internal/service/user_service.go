package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campuskit/campus-api/internal/models"
	"github.com/campuskit/campus-api/internal/repository"
	appErrors "github.com/campuskit/campus-api/pkg/errors"
)

type userRepository interface {
	Create(ctx context.Context, user models.User) (models.User, error)
	FindByID(ctx context.Context, id int64) (models.User, error)
	FindByUsername(ctx context.Context, username string) (models.User, error)
	List(ctx context.Context) []models.User
	Update(ctx context.Context, id int64, patch models.UserPatch) (models.User, error)
	Delete(ctx context.Context, id int64) bool
}

// CreateUserRequest describes the payload for account creation.
type CreateUserRequest struct {
	Username        string  `json:"username" validate:"required"`
	Password        string  `json:"password" validate:"required,min=6"`
	Email           string  `json:"email" validate:"required,email"`
	FullName        string  `json:"full_name" validate:"required"`
	Role            string  `json:"role" validate:"required"`
	ProfileImageURL *string `json:"profile_image_url,omitempty"`
}

// UserService orchestrates account management.
type UserService struct {
	repo      userRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewUserService constructs a UserService.
func NewUserService(repo userRepository, validate *validator.Validate, logger *zap.Logger) *UserService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{repo: repo, validator: validate, logger: logger}
}

// Create registers a new account.
func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.User{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid user payload")
	}
	role := models.UserRole(req.Role)
	if !role.Valid() {
		return models.User{}, appErrors.Clone(appErrors.ErrValidation, "unknown role")
	}

	user, err := s.repo.Create(ctx, models.User{
		Username:        req.Username,
		Password:        req.Password,
		Email:           req.Email,
		FullName:        req.FullName,
		Role:            role,
		ProfileImageURL: req.ProfileImageURL,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return models.User{}, appErrors.Clone(appErrors.ErrConflict, "username already taken")
		}
		return models.User{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create user")
	}
	return user, nil
}

// Get fetches an account by id.
func (s *UserService) Get(ctx context.Context, id int64) (models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return models.User{}, appErrors.Clone(appErrors.ErrNotFound, "user not found")
	}
	return user, nil
}

// GetByUsername fetches an account by its case-insensitive username.
func (s *UserService) GetByUsername(ctx context.Context, username string) (models.User, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return models.User{}, appErrors.Clone(appErrors.ErrNotFound, "user not found")
	}
	return user, nil
}

// List returns all accounts.
func (s *UserService) List(ctx context.Context) []models.User {
	return s.repo.List(ctx)
}

// Update merges a partial patch into the account.
func (s *UserService) Update(ctx context.Context, id int64, patch models.UserPatch) (models.User, error) {
	if patch.Role != nil && !patch.Role.Valid() {
		return models.User{}, appErrors.Clone(appErrors.ErrValidation, "unknown role")
	}
	user, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return models.User{}, appErrors.Clone(appErrors.ErrConflict, "username already taken")
		}
		return models.User{}, appErrors.Clone(appErrors.ErrNotFound, "user not found")
	}
	return user, nil
}

// Delete removes the account. Profiles referencing the user are left behind;
// the store does not cascade.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if !s.repo.Delete(ctx, id) {
		return appErrors.Clone(appErrors.ErrNotFound, "user not found")
	}
	return nil
}
