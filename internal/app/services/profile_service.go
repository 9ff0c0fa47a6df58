package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Adoxcol/uniplanfinal/internal/app/models"
	"github.com/Adoxcol/uniplanfinal/internal/app/models/dto"
	"github.com/Adoxcol/uniplanfinal/internal/app/repositories"
	"github.com/Adoxcol/uniplanfinal/internal/pkg/apperrors"
	"github.com/Adoxcol/uniplanfinal/internal/pkg/validation"
)

// ProfileService defines the interface for profile operations
type ProfileService interface {
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
	UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*models.Profile, error)
}

// profileServiceImpl implements the ProfileService interface
type profileServiceImpl struct {
	profileRepo *repositories.ProfileRepository
}

// NewProfileService creates a new profile service instance
func NewProfileService(profileRepo *repositories.ProfileRepository) ProfileService {
	return &profileServiceImpl{profileRepo: profileRepo}
}

// GetProfile returns the user's profile
func (s *profileServiceImpl) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	return s.profileRepo.GetProfileByUserID(ctx, userID)
}

// UpdateProfile replaces the caller's profile fields. The username must stay
// unique across all users.
func (s *profileServiceImpl) UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*models.Profile, error) {
	username := strings.TrimSpace(req.Username)
	if !validation.IsValidUsername(username) {
		return nil, fmt.Errorf("%w: username must be 3-30 characters, letters, digits and underscores", apperrors.ErrValidationFailed)
	}

	taken, err := s.profileRepo.UsernameExists(ctx, username, userID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.ErrUsernameAlreadyInUse
	}

	profile, err := s.profileRepo.GetProfileByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile.Username = username
	profile.FullName = req.FullName
	profile.Bio = req.Bio
	profile.Education = req.Education
	profile.Skills = req.Skills
	profile.AvatarURL = req.AvatarURL

	if err := s.profileRepo.UpdateProfile(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}
