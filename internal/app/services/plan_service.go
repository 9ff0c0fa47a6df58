package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Adoxcol/uniplanfinal/internal/app/models"
	"github.com/Adoxcol/uniplanfinal/internal/app/models/dto"
	"github.com/Adoxcol/uniplanfinal/internal/pkg/apperrors"
)

// planStore is the slice of the plan repository the service needs
type planStore interface {
	CreatePlan(ctx context.Context, plan *models.Plan) error
	GetPlanByID(ctx context.Context, id string) (*models.Plan, error)
	GetPlansByOwner(ctx context.Context, ownerID string) ([]*models.Plan, error)
	CountPlansByOwner(ctx context.Context, ownerID string) (int, error)
	RenamePlan(ctx context.Context, id string, title string) error
	SetPlanVisibility(ctx context.Context, id string, isPublic bool) error
	DeletePlan(ctx context.Context, id string) error
	ListPublicPlans(ctx context.Context) ([]*models.Plan, error)
}

// courseStore is the slice of the course repository the service needs
type courseStore interface {
	GetCoursesByPlanID(ctx context.Context, planID string) ([]models.Course, error)
	UpsertCourse(ctx context.Context, course *models.Course) error
}

// PlanService defines the interface for plan management operations
type PlanService interface {
	CreatePlan(ctx context.Context, ownerID string, req *dto.CreatePlanRequest) (*models.Plan, error)
	GetPlan(ctx context.Context, userID string, planID string) (*models.Plan, []models.Course, error)
	ListPlans(ctx context.Context, ownerID string) ([]dto.PlanSummary, error)
	RenamePlan(ctx context.Context, userID string, planID string, req *dto.RenamePlanRequest) error
	SetVisibility(ctx context.Context, userID string, planID string, isPublic bool) error
	DeletePlan(ctx context.Context, userID string, planID string) error
	ListPublicPlans(ctx context.Context) ([]dto.PlanSummary, error)
	GetPublicPlan(ctx context.Context, planID string) (*models.Plan, []models.Course, error)
	DuplicatePlan(ctx context.Context, userID string, sourcePlanID string) (*models.Plan, error)
}

// planServiceImpl implements the PlanService interface
type planServiceImpl struct {
	plans   planStore
	courses courseStore
	logger  zerolog.Logger
}

// NewPlanService creates a new plan service instance
func NewPlanService(plans planStore, courses courseStore, logger zerolog.Logger) PlanService {
	return &planServiceImpl{
		plans:   plans,
		courses: courses,
		logger:  logger.With().Str("service", "plan").Logger(),
	}
}

// ownedPlan loads a plan and verifies the caller owns it
func (s *planServiceImpl) ownedPlan(ctx context.Context, userID string, planID string) (*models.Plan, error) {
	plan, err := s.plans.GetPlanByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	if plan.OwnerID != userID {
		return nil, apperrors.ErrPermissionDenied
	}
	return plan, nil
}

// CreatePlan creates an empty plan with the default semester sequence.
// Each user may hold at most models.MaxPlansPerUser plans.
func (s *planServiceImpl) CreatePlan(ctx context.Context, ownerID string, req *dto.CreatePlanRequest) (*models.Plan, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title cannot be empty", apperrors.ErrValidationFailed)
	}

	count, err := s.plans.CountPlansByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if count >= models.MaxPlansPerUser {
		return nil, apperrors.ErrPlanLimitReached
	}

	plan := &models.Plan{
		ID:            uuid.New().String(),
		OwnerID:       ownerID,
		Title:         title,
		University:    strings.TrimSpace(req.University),
		Semesters:     models.DefaultSemesters(),
		Notes:         []string{},
		CumulativeGPA: "0.00",
	}

	if err := s.plans.CreatePlan(ctx, plan); err != nil {
		return nil, err
	}

	s.logger.Info().Str("planID", plan.ID).Str("ownerID", ownerID).Msg("Plan created")
	return plan, nil
}

// GetPlan returns a plan with its courses, owner only
func (s *planServiceImpl) GetPlan(ctx context.Context, userID string, planID string) (*models.Plan, []models.Course, error) {
	plan, err := s.ownedPlan(ctx, userID, planID)
	if err != nil {
		return nil, nil, err
	}

	courses, err := s.courses.GetCoursesByPlanID(ctx, planID)
	if err != nil {
		return nil, nil, err
	}

	return plan, courses, nil
}

// ListPlans returns summaries of the user's plans
func (s *planServiceImpl) ListPlans(ctx context.Context, ownerID string) ([]dto.PlanSummary, error) {
	plans, err := s.plans.GetPlansByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return dto.NewPlanSummaries(plans), nil
}

// RenamePlan updates the plan title without touching the rest of the plan
func (s *planServiceImpl) RenamePlan(ctx context.Context, userID string, planID string, req *dto.RenamePlanRequest) error {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return fmt.Errorf("%w: title cannot be empty", apperrors.ErrValidationFailed)
	}

	if _, err := s.ownedPlan(ctx, userID, planID); err != nil {
		return err
	}

	return s.plans.RenamePlan(ctx, planID, title)
}

// SetVisibility flips the plan's public flag
func (s *planServiceImpl) SetVisibility(ctx context.Context, userID string, planID string, isPublic bool) error {
	if _, err := s.ownedPlan(ctx, userID, planID); err != nil {
		return err
	}
	return s.plans.SetPlanVisibility(ctx, planID, isPublic)
}

// DeletePlan removes a plan and its courses permanently
func (s *planServiceImpl) DeletePlan(ctx context.Context, userID string, planID string) error {
	if _, err := s.ownedPlan(ctx, userID, planID); err != nil {
		return err
	}

	if err := s.plans.DeletePlan(ctx, planID); err != nil {
		return err
	}

	s.logger.Info().Str("planID", planID).Str("userID", userID).Msg("Plan deleted")
	return nil
}

// ListPublicPlans returns summaries of every publicly shared plan
func (s *planServiceImpl) ListPublicPlans(ctx context.Context) ([]dto.PlanSummary, error) {
	plans, err := s.plans.ListPublicPlans(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewPlanSummaries(plans), nil
}

// GetPublicPlan returns a shared plan with its courses, no ownership needed
func (s *planServiceImpl) GetPublicPlan(ctx context.Context, planID string) (*models.Plan, []models.Course, error) {
	plan, err := s.plans.GetPlanByID(ctx, planID)
	if err != nil {
		return nil, nil, err
	}
	if !plan.IsPublic {
		return nil, nil, apperrors.ErrPlanNotPublic
	}

	courses, err := s.courses.GetCoursesByPlanID(ctx, planID)
	if err != nil {
		return nil, nil, err
	}

	return plan, courses, nil
}

// DuplicatePlan copies a public plan, or one of the caller's own plans,
// into the caller's account under fresh IDs. The copy counts against the
// caller's plan limit and always starts private.
func (s *planServiceImpl) DuplicatePlan(ctx context.Context, userID string, sourcePlanID string) (*models.Plan, error) {
	source, err := s.plans.GetPlanByID(ctx, sourcePlanID)
	if err != nil {
		return nil, err
	}
	if source.OwnerID != userID && !source.IsPublic {
		return nil, apperrors.ErrPlanNotPublic
	}

	count, err := s.plans.CountPlansByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	if count >= models.MaxPlansPerUser {
		return nil, apperrors.ErrPlanLimitReached
	}

	courses, err := s.courses.GetCoursesByPlanID(ctx, sourcePlanID)
	if err != nil {
		return nil, err
	}

	copied := source.Clone()
	copied.ID = uuid.New().String()
	copied.OwnerID = userID
	copied.IsPublic = false
	copied.Title = source.Title + " (copy)"

	if err := s.plans.CreatePlan(ctx, copied); err != nil {
		return nil, err
	}

	for i := range courses {
		course := courses[i]
		course.ID = uuid.New().String()
		course.PlanID = copied.ID
		if err := s.courses.UpsertCourse(ctx, &course); err != nil {
			// Roll the copy back so a half-duplicated plan never lingers
			if delErr := s.plans.DeletePlan(ctx, copied.ID); delErr != nil && !errors.Is(delErr, apperrors.ErrPlanNotFound) {
				s.logger.Error().Err(delErr).Str("planID", copied.ID).Msg("Failed to clean up partial duplicate")
			}
			return nil, err
		}
	}

	s.logger.Info().Str("sourceID", sourcePlanID).Str("planID", copied.ID).Str("userID", userID).Msg("Plan duplicated")
	return copied, nil
}
