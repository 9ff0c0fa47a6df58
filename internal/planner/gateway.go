package planner

import (
	"context"
	"fmt"

	"github.com/Adoxcol/uniplanfinal/internal/app/models"
)

// Gateway is the boundary contract to the remote store. Implementations are
// stateless transports: they hold no plan state and perform no retries. Every
// failure other than not-found surfaces as a *StoreError; not-found surfaces
// as apperrors.ErrPlanNotFound so callers can render it distinctly.
type Gateway interface {
	// LoadPlan fetches a plan and its full course collection.
	LoadPlan(ctx context.Context, id string) (*models.Plan, []models.Course, error)

	// UpsertPlan inserts or replaces a plan keyed by ID. Full-replace
	// semantics: the caller supplies every field on each call.
	UpsertPlan(ctx context.Context, plan *models.Plan) error

	// UpsertCourses batch inserts-or-replaces courses. The batch is not
	// atomic; on failure some courses may already have been applied, and the
	// returned StoreError reports how many were.
	UpsertCourses(ctx context.Context, courses []models.Course) error

	// DeleteCourse removes a course by ID.
	DeleteCourse(ctx context.Context, id string) error

	// DeletePlan removes a plan and its courses. Terminal; no soft delete.
	DeletePlan(ctx context.Context, id string) error
}

// StoreError wraps a failure from the remote store (network, permission,
// constraint, timeout). It is always surfaced to the caller and never implies
// anything about whether the remote state changed.
type StoreError struct {
	Op      string // The gateway operation that failed
	Applied int    // For batch operations, how many items were applied before the failure
	Err     error
}

// Error implements error interface
func (e *StoreError) Error() string {
	if e.Applied > 0 {
		return fmt.Sprintf("store %s failed after %d applied: %v", e.Op, e.Applied, e.Err)
	}
	return fmt.Sprintf("store %s failed: %v", e.Op, e.Err)
}

// Unwrap implements errors.Unwrap interface
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError wraps err as a StoreError for the named operation.
func NewStoreError(op string, err error) *StoreError {
	return &StoreError{Op: op, Err: err}
}
