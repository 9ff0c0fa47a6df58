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
	"github.com/Adoxcol/uniplanfinal/internal/planner"
)

// fakeGateway keeps plans and courses in memory behind the store boundary
type fakeGateway struct {
	plans   map[string]*models.Plan
	courses map[string]models.Course

	upsertPlanErr    error
	upsertCoursesErr error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		plans:   make(map[string]*models.Plan),
		courses: make(map[string]models.Course),
	}
}

func (g *fakeGateway) LoadPlan(ctx context.Context, id string) (*models.Plan, []models.Course, error) {
	plan, ok := g.plans[id]
	if !ok {
		return nil, nil, apperrors.ErrPlanNotFound
	}
	var courses []models.Course
	for _, c := range g.courses {
		if c.PlanID == id {
			courses = append(courses, c)
		}
	}
	return plan.Clone(), courses, nil
}

func (g *fakeGateway) UpsertPlan(ctx context.Context, plan *models.Plan) error {
	if g.upsertPlanErr != nil {
		return planner.NewStoreError("upsert plan", g.upsertPlanErr)
	}
	g.plans[plan.ID] = plan.Clone()
	return nil
}

func (g *fakeGateway) UpsertCourses(ctx context.Context, courses []models.Course) error {
	if g.upsertCoursesErr != nil {
		return planner.NewStoreError("upsert courses", g.upsertCoursesErr)
	}
	for _, c := range courses {
		g.courses[c.ID] = c
	}
	return nil
}

func (g *fakeGateway) DeleteCourse(ctx context.Context, id string) error {
	delete(g.courses, id)
	return nil
}

func (g *fakeGateway) DeletePlan(ctx context.Context, id string) error {
	delete(g.plans, id)
	return nil
}

func newPlannerFixture(t *testing.T) (PlannerService, *fakeGateway, *models.Plan) {
	t.Helper()

	plan := &models.Plan{
		ID:        "plan-1",
		OwnerID:   "owner",
		Title:     "CS Degree",
		Semesters: []int{1, 2, 3},
		Notes:     []string{},
	}

	gw := newFakeGateway()
	gw.plans[plan.ID] = plan.Clone()

	plans := newFakePlanStore()
	plans.plans[plan.ID] = plan.Clone()

	svc := NewPlannerService(gw, plans, planner.DefaultPolicy(), 120, zerolog.Nop())
	return svc, gw, plan
}

func TestPlannerServiceOwnership(t *testing.T) {
	ctx := context.Background()
	svc, _, plan := newPlannerFixture(t)

	t.Run("owner can open a session", func(t *testing.T) {
		snap, err := svc.OpenSession(ctx, "owner", plan.ID)
		require.NoError(t, err)
		assert.Equal(t, planner.StateReady, snap.State)
	})

	t.Run("other users cannot open a session", func(t *testing.T) {
		_, err := svc.OpenSession(ctx, "stranger", plan.ID)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("missing plan reports not found", func(t *testing.T) {
		_, err := svc.OpenSession(ctx, "owner", "no-such-plan")
		assert.ErrorIs(t, err, apperrors.ErrPlanNotFound)
	})
}

func TestPlannerServiceSessionLifecycle(t *testing.T) {
	ctx := context.Background()

	t.Run("operations require an open session", func(t *testing.T) {
		svc, _, plan := newPlannerFixture(t)

		_, err := svc.AddSemester(ctx, "owner", plan.ID)
		assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

		_, err = svc.GetSnapshot(ctx, "owner", plan.ID)
		assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
	})

	t.Run("reopening returns the live session with its edits", func(t *testing.T) {
		svc, _, plan := newPlannerFixture(t)

		_, err := svc.OpenSession(ctx, "owner", plan.ID)
		require.NoError(t, err)

		_, err = svc.CommitCourse(ctx, "owner", plan.ID, &dto.CourseRequest{
			Semester: 1, Code: "CS101", Name: "Intro", Credits: 3,
		})
		require.NoError(t, err)

		snap, err := svc.OpenSession(ctx, "owner", plan.ID)
		require.NoError(t, err)
		assert.Len(t, snap.Courses, 1, "unsaved edits survive a reopen")
		assert.True(t, snap.Dirty)
	})

	t.Run("closing drops the session", func(t *testing.T) {
		svc, _, plan := newPlannerFixture(t)

		_, err := svc.OpenSession(ctx, "owner", plan.ID)
		require.NoError(t, err)

		require.NoError(t, svc.CloseSession(ctx, "owner", plan.ID))

		_, err = svc.GetSnapshot(ctx, "owner", plan.ID)
		assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

		err = svc.CloseSession(ctx, "owner", plan.ID)
		assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
	})
}

func TestPlannerServiceSave(t *testing.T) {
	ctx := context.Background()

	t.Run("save persists the working copy with fresh aggregates", func(t *testing.T) {
		svc, gw, plan := newPlannerFixture(t)

		_, err := svc.OpenSession(ctx, "owner", plan.ID)
		require.NoError(t, err)

		_, err = svc.CommitCourse(ctx, "owner", plan.ID, &dto.CourseRequest{
			Semester: 1, Code: "CS101", Name: "Intro", Credits: 3, Grade: "A",
		})
		require.NoError(t, err)

		snap, err := svc.Save(ctx, "owner", plan.ID)
		require.NoError(t, err)
		assert.False(t, snap.Dirty)

		stored := gw.plans[plan.ID]
		require.NotNil(t, stored)
		assert.Equal(t, 3.0, stored.TotalCredits)
		assert.Equal(t, "4.00", stored.CumulativeGPA)
		assert.Len(t, gw.courses, 1)
	})

	t.Run("failed save keeps local edits and reports the store error", func(t *testing.T) {
		svc, gw, plan := newPlannerFixture(t)
		gw.upsertCoursesErr = assert.AnError

		_, err := svc.OpenSession(ctx, "owner", plan.ID)
		require.NoError(t, err)

		_, err = svc.CommitCourse(ctx, "owner", plan.ID, &dto.CourseRequest{
			Semester: 1, Code: "CS101", Name: "Intro", Credits: 3,
		})
		require.NoError(t, err)

		snap, err := svc.Save(ctx, "owner", plan.ID)
		require.Error(t, err)

		var storeErr *planner.StoreError
		require.ErrorAs(t, err, &storeErr)
		assert.True(t, snap.Dirty, "local edits remain after a failed save")
		assert.Len(t, snap.Courses, 1)

		// The session is usable again; clearing the fault lets a retry succeed
		gw.upsertCoursesErr = nil
		snap, err = svc.Save(ctx, "owner", plan.ID)
		require.NoError(t, err)
		assert.False(t, snap.Dirty)
	})
}
