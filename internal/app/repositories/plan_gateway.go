package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/Adoxcol/uniplanfinal/internal/app/models"
	"github.com/Adoxcol/uniplanfinal/internal/pkg/apperrors"
	"github.com/Adoxcol/uniplanfinal/internal/planner"
)

// DefaultStoreTimeout bounds a single gateway call when no configuration
// overrides it.
const DefaultStoreTimeout = 5 * time.Second

// PlanGateway adapts the plan and course repositories to the planner's
// store boundary. Not-found keeps its sentinel identity; every other
// failure is wrapped in a *planner.StoreError so sessions can show it
// without losing local edits.
type PlanGateway struct {
	plans   *PlanRepository
	courses *CourseRepository
	timeout time.Duration
}

// NewPlanGateway creates a gateway over the given repositories. A
// non-positive timeout falls back to DefaultStoreTimeout.
func NewPlanGateway(plans *PlanRepository, courses *CourseRepository, timeout time.Duration) *PlanGateway {
	if timeout <= 0 {
		timeout = DefaultStoreTimeout
	}
	return &PlanGateway{plans: plans, courses: courses, timeout: timeout}
}

func (g *PlanGateway) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, g.timeout)
}

// LoadPlan fetches a plan and its full course collection
func (g *PlanGateway) LoadPlan(ctx context.Context, id string) (*models.Plan, []models.Course, error) {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	plan, err := g.plans.GetPlanByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrPlanNotFound) {
			return nil, nil, err
		}
		return nil, nil, planner.NewStoreError("load plan", err)
	}

	courses, err := g.courses.GetCoursesByPlanID(ctx, id)
	if err != nil {
		return nil, nil, planner.NewStoreError("load courses", err)
	}

	return plan, courses, nil
}

// UpsertPlan inserts or replaces a plan keyed by ID
func (g *PlanGateway) UpsertPlan(ctx context.Context, plan *models.Plan) error {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	if err := g.plans.UpsertPlan(ctx, plan); err != nil {
		return planner.NewStoreError("upsert plan", err)
	}
	return nil
}

// UpsertCourses writes courses one by one. The batch is not atomic; on
// failure the StoreError reports how many rows were applied first.
func (g *PlanGateway) UpsertCourses(ctx context.Context, courses []models.Course) error {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	for i := range courses {
		if err := g.courses.UpsertCourse(ctx, &courses[i]); err != nil {
			return &planner.StoreError{Op: "upsert courses", Applied: i, Err: err}
		}
	}

	// Reconcile: rows the working copy no longer holds are removed, so the
	// stored collection mirrors what was just saved
	if len(courses) > 0 {
		keep := make([]string, len(courses))
		for i, c := range courses {
			keep[i] = c.ID
		}
		if err := g.courses.DeleteCoursesNotIn(ctx, courses[0].PlanID, keep); err != nil {
			return &planner.StoreError{Op: "upsert courses", Applied: len(courses), Err: err}
		}
	}

	return nil
}

// DeleteCourse removes a course by ID
func (g *PlanGateway) DeleteCourse(ctx context.Context, id string) error {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	if err := g.courses.DeleteCourseByID(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrCourseNotFound) {
			return err
		}
		return planner.NewStoreError("delete course", err)
	}
	return nil
}

// DeletePlan removes a plan and, through the cascade, its courses
func (g *PlanGateway) DeletePlan(ctx context.Context, id string) error {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	if err := g.plans.DeletePlan(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrPlanNotFound) {
			return err
		}
		return planner.NewStoreError("delete plan", err)
	}
	return nil
}

var _ planner.Gateway = (*PlanGateway)(nil)
