package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Adoxcol/uniplanfinal/internal/app/models"
	"github.com/Adoxcol/uniplanfinal/internal/pkg/apperrors"
	"github.com/Adoxcol/uniplanfinal/internal/pkg/dberrors"
	"github.com/Adoxcol/uniplanfinal/internal/pkg/logger"
)

// ProfileRepository handles profile database operations
type ProfileRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateProfile inserts the profile row for a freshly registered user
func (r *ProfileRepository) CreateProfile(ctx context.Context, profile *models.Profile) error {
	now := time.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	sql, args, err := r.sb.Insert("profiles").
		Columns("user_id", "username", "full_name", "bio", "education", "skills", "avatar_url", "created_at", "updated_at").
		Values(profile.ID, profile.Username, profile.FullName, profile.Bio, profile.Education, profile.Skills, profile.AvatarURL, profile.CreatedAt, profile.UpdatedAt).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create profile SQL")
		return fmt.Errorf("failed to build create profile query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "profiles_username_key") {
			return apperrors.ErrUsernameAlreadyInUse
		}
		logger.Error().Err(err).Str("userID", profile.ID).Msg("Error executing create profile query")
		return fmt.Errorf("error creating profile: %w", err)
	}

	return nil
}

// GetProfileByUserID retrieves a profile by its owning user
func (r *ProfileRepository) GetProfileByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	sql, args, err := r.sb.Select("user_id", "username", "full_name", "bio", "education", "skills", "avatar_url", "created_at", "updated_at").
		From("profiles").
		Where(squirrel.Eq{"user_id": userID}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get profile SQL")
		return nil, fmt.Errorf("failed to build get profile query: %w", err)
	}

	profile := &models.Profile{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&profile.ID, &profile.Username, &profile.FullName, &profile.Bio,
		&profile.Education, &profile.Skills, &profile.AvatarURL,
		&profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		logger.Error().Err(err).Str("userID", userID).Msg("Error scanning profile row")
		return nil, fmt.Errorf("error getting profile: %w", err)
	}

	return profile, nil
}

// UpdateProfile replaces the mutable profile fields
func (r *ProfileRepository) UpdateProfile(ctx context.Context, profile *models.Profile) error {
	profile.UpdatedAt = time.Now()

	sql, args, err := r.sb.Update("profiles").
		Set("username", profile.Username).
		Set("full_name", profile.FullName).
		Set("bio", profile.Bio).
		Set("education", profile.Education).
		Set("skills", profile.Skills).
		Set("avatar_url", profile.AvatarURL).
		Set("updated_at", profile.UpdatedAt).
		Where(squirrel.Eq{"user_id": profile.ID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update profile SQL")
		return fmt.Errorf("failed to build update profile query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "profiles_username_key") {
			return apperrors.ErrUsernameAlreadyInUse
		}
		logger.Error().Err(err).Str("userID", profile.ID).Msg("Error executing update profile query")
		return fmt.Errorf("error updating profile: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}

	return nil
}

// UsernameExists checks whether a username is taken by another user
func (r *ProfileRepository) UsernameExists(ctx context.Context, username string, excludeUserID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM profiles WHERE username = $1 AND user_id <> $2)`,
		username, excludeUserID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking username existence: %w", err)
	}
	return exists, nil
}
