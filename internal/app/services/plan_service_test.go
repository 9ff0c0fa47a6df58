package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adoxcol/uniplanfinal/internal/app/models"
	"github.com/Adoxcol/uniplanfinal/internal/app/models/dto"
	"github.com/Adoxcol/uniplanfinal/internal/pkg/apperrors"
)

type fakePlanStore struct {
	plans     map[string]*models.Plan
	createErr error
}

func newFakePlanStore() *fakePlanStore {
	return &fakePlanStore{plans: make(map[string]*models.Plan)}
}

func (f *fakePlanStore) CreatePlan(ctx context.Context, plan *models.Plan) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.plans[plan.ID] = plan.Clone()
	return nil
}

func (f *fakePlanStore) GetPlanByID(ctx context.Context, id string) (*models.Plan, error) {
	plan, ok := f.plans[id]
	if !ok {
		return nil, apperrors.ErrPlanNotFound
	}
	return plan.Clone(), nil
}

func (f *fakePlanStore) GetPlansByOwner(ctx context.Context, ownerID string) ([]*models.Plan, error) {
	var out []*models.Plan
	for _, p := range f.plans {
		if p.OwnerID == ownerID {
			out = append(out, p.Clone())
		}
	}
	return out, nil
}

func (f *fakePlanStore) CountPlansByOwner(ctx context.Context, ownerID string) (int, error) {
	count := 0
	for _, p := range f.plans {
		if p.OwnerID == ownerID {
			count++
		}
	}
	return count, nil
}

func (f *fakePlanStore) RenamePlan(ctx context.Context, id string, title string) error {
	plan, ok := f.plans[id]
	if !ok {
		return apperrors.ErrPlanNotFound
	}
	plan.Title = title
	return nil
}

func (f *fakePlanStore) SetPlanVisibility(ctx context.Context, id string, isPublic bool) error {
	plan, ok := f.plans[id]
	if !ok {
		return apperrors.ErrPlanNotFound
	}
	plan.IsPublic = isPublic
	return nil
}

func (f *fakePlanStore) DeletePlan(ctx context.Context, id string) error {
	if _, ok := f.plans[id]; !ok {
		return apperrors.ErrPlanNotFound
	}
	delete(f.plans, id)
	return nil
}

func (f *fakePlanStore) ListPublicPlans(ctx context.Context) ([]*models.Plan, error) {
	var out []*models.Plan
	for _, p := range f.plans {
		if p.IsPublic {
			out = append(out, p.Clone())
		}
	}
	return out, nil
}

type fakeCourseStore struct {
	courses   map[string]models.Course
	upsertErr error
}

func newFakeCourseStore() *fakeCourseStore {
	return &fakeCourseStore{courses: make(map[string]models.Course)}
}

func (f *fakeCourseStore) GetCoursesByPlanID(ctx context.Context, planID string) ([]models.Course, error) {
	var out []models.Course
	for _, c := range f.courses {
		if c.PlanID == planID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCourseStore) UpsertCourse(ctx context.Context, course *models.Course) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.courses[course.ID] = *course
	return nil
}

func newTestPlanService(plans *fakePlanStore, courses *fakeCourseStore) PlanService {
	return NewPlanService(plans, courses, zerolog.Nop())
}

func TestCreatePlan(t *testing.T) {
	ctx := context.Background()

	t.Run("creates plan with default semester sequence", func(t *testing.T) {
		svc := newTestPlanService(newFakePlanStore(), newFakeCourseStore())

		plan, err := svc.CreatePlan(ctx, "user-1", &dto.CreatePlanRequest{Title: "CS Degree"})
		require.NoError(t, err)

		assert.NotEmpty(t, plan.ID)
		assert.Equal(t, "user-1", plan.OwnerID)
		assert.Len(t, plan.Semesters, models.DefaultSemesterCount)
		assert.False(t, plan.IsPublic)
		assert.Equal(t, "0.00", plan.CumulativeGPA)
	})

	t.Run("rejects blank title", func(t *testing.T) {
		svc := newTestPlanService(newFakePlanStore(), newFakeCourseStore())

		_, err := svc.CreatePlan(ctx, "user-1", &dto.CreatePlanRequest{Title: "   "})
		require.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("enforces plan limit per user", func(t *testing.T) {
		svc := newTestPlanService(newFakePlanStore(), newFakeCourseStore())

		for i := 0; i < models.MaxPlansPerUser; i++ {
			_, err := svc.CreatePlan(ctx, "user-1", &dto.CreatePlanRequest{Title: "Plan"})
			require.NoError(t, err)
		}

		_, err := svc.CreatePlan(ctx, "user-1", &dto.CreatePlanRequest{Title: "One too many"})
		require.ErrorIs(t, err, apperrors.ErrPlanLimitReached)

		// A different user is unaffected by the first user's plans
		_, err = svc.CreatePlan(ctx, "user-2", &dto.CreatePlanRequest{Title: "Plan"})
		require.NoError(t, err)
	})
}

func TestPlanOwnership(t *testing.T) {
	ctx := context.Background()
	plans := newFakePlanStore()
	svc := newTestPlanService(plans, newFakeCourseStore())

	plan, err := svc.CreatePlan(ctx, "owner", &dto.CreatePlanRequest{Title: "Mine"})
	require.NoError(t, err)

	t.Run("other users cannot read a private plan", func(t *testing.T) {
		_, _, err := svc.GetPlan(ctx, "stranger", plan.ID)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("other users cannot rename", func(t *testing.T) {
		err := svc.RenamePlan(ctx, "stranger", plan.ID, &dto.RenamePlanRequest{Title: "Stolen"})
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("other users cannot delete", func(t *testing.T) {
		err := svc.DeletePlan(ctx, "stranger", plan.ID)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("owner can rename", func(t *testing.T) {
		err := svc.RenamePlan(ctx, "owner", plan.ID, &dto.RenamePlanRequest{Title: "Renamed"})
		require.NoError(t, err)

		got, _, err := svc.GetPlan(ctx, "owner", plan.ID)
		require.NoError(t, err)
		assert.Equal(t, "Renamed", got.Title)
	})

	t.Run("missing plan reports not found", func(t *testing.T) {
		_, _, err := svc.GetPlan(ctx, "owner", "no-such-plan")
		assert.ErrorIs(t, err, apperrors.ErrPlanNotFound)
	})
}

func TestPublicPlans(t *testing.T) {
	ctx := context.Background()
	plans := newFakePlanStore()
	svc := newTestPlanService(plans, newFakeCourseStore())

	private, err := svc.CreatePlan(ctx, "owner", &dto.CreatePlanRequest{Title: "Private"})
	require.NoError(t, err)
	shared, err := svc.CreatePlan(ctx, "owner", &dto.CreatePlanRequest{Title: "Shared"})
	require.NoError(t, err)
	require.NoError(t, svc.SetVisibility(ctx, "owner", shared.ID, true))

	t.Run("listing returns only public plans", func(t *testing.T) {
		summaries, err := svc.ListPublicPlans(ctx)
		require.NoError(t, err)
		require.Len(t, summaries, 1)
		assert.Equal(t, shared.ID, summaries[0].ID)
	})

	t.Run("private plan is not readable publicly", func(t *testing.T) {
		_, _, err := svc.GetPublicPlan(ctx, private.ID)
		assert.ErrorIs(t, err, apperrors.ErrPlanNotPublic)
	})

	t.Run("public plan is readable by anyone", func(t *testing.T) {
		got, _, err := svc.GetPublicPlan(ctx, shared.ID)
		require.NoError(t, err)
		assert.Equal(t, "Shared", got.Title)
	})
}

func TestDuplicatePlan(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T) (PlanService, *fakePlanStore, *fakeCourseStore, *models.Plan) {
		t.Helper()
		plans := newFakePlanStore()
		courses := newFakeCourseStore()
		svc := newTestPlanService(plans, courses)

		source, err := svc.CreatePlan(ctx, "owner", &dto.CreatePlanRequest{Title: "Source"})
		require.NoError(t, err)
		require.NoError(t, svc.SetVisibility(ctx, "owner", source.ID, true))

		courses.courses["c1"] = models.Course{ID: "c1", PlanID: source.ID, Code: "CS101", Name: "Intro", Credits: 3, Semester: 1}
		return svc, plans, courses, source
	}

	t.Run("copies a public plan under fresh identifiers", func(t *testing.T) {
		svc, plans, courses, source := seed(t)

		copied, err := svc.DuplicatePlan(ctx, "copier", source.ID)
		require.NoError(t, err)

		assert.NotEqual(t, source.ID, copied.ID)
		assert.Equal(t, "copier", copied.OwnerID)
		assert.Equal(t, "Source (copy)", copied.Title)
		assert.False(t, copied.IsPublic, "copies always start private")

		stored, ok := plans.plans[copied.ID]
		require.True(t, ok)
		assert.Equal(t, "copier", stored.OwnerID)

		copiedCourses, err := courses.GetCoursesByPlanID(ctx, copied.ID)
		require.NoError(t, err)
		require.Len(t, copiedCourses, 1)
		assert.NotEqual(t, "c1", copiedCourses[0].ID)
		assert.Equal(t, "CS101", copiedCourses[0].Code)
	})

	t.Run("rejects duplicating a private plan of another user", func(t *testing.T) {
		svc, _, _, source := seed(t)
		require.NoError(t, svc.SetVisibility(ctx, "owner", source.ID, false))

		_, err := svc.DuplicatePlan(ctx, "copier", source.ID)
		assert.ErrorIs(t, err, apperrors.ErrPlanNotPublic)
	})

	t.Run("copy counts against the plan limit", func(t *testing.T) {
		svc, _, _, source := seed(t)

		for i := 0; i < models.MaxPlansPerUser; i++ {
			_, err := svc.CreatePlan(ctx, "copier", &dto.CreatePlanRequest{Title: "Filler"})
			require.NoError(t, err)
		}

		_, err := svc.DuplicatePlan(ctx, "copier", source.ID)
		assert.ErrorIs(t, err, apperrors.ErrPlanLimitReached)
	})

	t.Run("partial course copy rolls the new plan back", func(t *testing.T) {
		svc, plans, courses, source := seed(t)
		courses.upsertErr = assert.AnError

		_, err := svc.DuplicatePlan(ctx, "copier", source.ID)
		require.Error(t, err)

		for id, p := range plans.plans {
			assert.Equal(t, source.ID, id, "only the source plan should remain")
			assert.Equal(t, "owner", p.OwnerID)
		}
	})
}
