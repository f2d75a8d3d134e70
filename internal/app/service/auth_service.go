package service

import (
	"context"
	"errors"
	"fmt"

	"smart_edu_quiz/internal/app/form"
	"smart_edu_quiz/internal/common"
	"smart_edu_quiz/internal/common/security"
	"smart_edu_quiz/internal/domain/model"
	"smart_edu_quiz/internal/domain/repository"
	"smart_edu_quiz/internal/platform/logger"
)

type AuthService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

type AuthResponse struct {
	Viewer *model.Viewer
	Token  string
}

func (s *AuthService) Register(ctx context.Context, f form.RegisterForm) (*AuthResponse, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	hashedPassword, err := security.HashPassword(f.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:       f.Username,
		Email:          f.Email,
		FullName:       f.FullName,
		HashedPassword: hashedPassword,
	}
	profile := f.Profile()

	if err := s.userRepo.CreateWithProfile(ctx, user, profile); err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil, common.NewValidationError(common.FieldError{Field: "username", Message: "username is already taken"})
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	logger.Default.Info("user registered", user.Username, profile.Role)
	return s.issue(user, profile)
}

// Login checks username, password and the chosen role. A role that does not
// match the profile is reported exactly like a wrong password.
func (s *AuthService) Login(ctx context.Context, f form.LoginForm) (*AuthResponse, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByUsername(ctx, f.Username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized // Generic message for security
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !security.CheckPasswordHash(f.Password, user.HashedPassword) {
		return nil, common.ErrUnauthorized
	}

	profile, err := s.userRepo.FindProfileByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if profile.Role != model.Role(f.Role) {
		return nil, common.ErrUnauthorized
	}
	return s.issue(user, profile)
}

// Viewer resolves the authenticated user of a request from token claims.
func (s *AuthService) Viewer(ctx context.Context, userID int64, role model.Role) (*model.Viewer, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	profile, err := s.userRepo.FindProfileByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if profile.Role != role {
		return nil, common.ErrUnauthorized
	}
	user.HashedPassword = ""
	return &model.Viewer{User: *user, Profile: *profile}, nil
}

func (s *AuthService) issue(user *model.User, profile *model.Profile) (*AuthResponse, error) {
	token, err := security.GenerateToken(user.ID, profile.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	user.HashedPassword = "" // Clear password before returning
	return &AuthResponse{Viewer: &model.Viewer{User: *user, Profile: *profile}, Token: token}, nil
}
