package planner

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adoxcol/uniplanfinal/internal/app/models"
	"github.com/Adoxcol/uniplanfinal/internal/pkg/apperrors"
)

const testUserID = "2e0a9b54-8c6d-4f11-aa4e-77b3c9d01234"

// fakeGateway is an in-memory Gateway for session tests.
type fakeGateway struct {
	mu      sync.Mutex
	plan    *models.Plan
	courses map[string]models.Course

	loadErr          error
	upsertPlanErr    error
	upsertCoursesErr error

	// When set, UpsertPlan blocks until the channel is closed.
	blockUpsert chan struct{}

	upsertPlanCalls    int
	upsertCoursesCalls int
}

func newFakeGateway(plan *models.Plan, courses []models.Course) *fakeGateway {
	g := &fakeGateway{plan: plan.Clone(), courses: map[string]models.Course{}}
	for _, c := range courses {
		g.courses[c.ID] = c
	}
	return g
}

func (g *fakeGateway) LoadPlan(ctx context.Context, id string) (*models.Plan, []models.Course, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.loadErr != nil {
		return nil, nil, g.loadErr
	}
	if g.plan == nil || g.plan.ID != id {
		return nil, nil, apperrors.ErrPlanNotFound
	}
	var courses []models.Course
	for _, c := range g.courses {
		courses = append(courses, c)
	}
	return g.plan.Clone(), courses, nil
}

func (g *fakeGateway) UpsertPlan(ctx context.Context, plan *models.Plan) error {
	if g.blockUpsert != nil {
		<-g.blockUpsert
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.upsertPlanCalls++
	if g.upsertPlanErr != nil {
		return g.upsertPlanErr
	}
	g.plan = plan.Clone()
	return nil
}

func (g *fakeGateway) UpsertCourses(ctx context.Context, courses []models.Course) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.upsertCoursesCalls++
	if g.upsertCoursesErr != nil {
		return g.upsertCoursesErr
	}
	for _, c := range courses {
		g.courses[c.ID] = c
	}
	return nil
}

func (g *fakeGateway) DeleteCourse(ctx context.Context, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.courses, id)
	return nil
}

func (g *fakeGateway) DeletePlan(ctx context.Context, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.plan = nil
	g.courses = map[string]models.Course{}
	return nil
}

func testPlan() *models.Plan {
	return &models.Plan{
		ID:        testPlanID,
		OwnerID:   testUserID,
		Title:     "Computer Science Degree",
		Semesters: models.DefaultSemesters(),
		CreatedAt: time.Now().UTC(),
	}
}

func TestOpenSession(t *testing.T) {
	t.Run("requires an authenticated user", func(t *testing.T) {
		gw := newFakeGateway(testPlan(), nil)
		_, err := OpenSession(context.Background(), gw, "  ", testPlanID, DefaultPolicy(), 120)
		assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
	})

	t.Run("load failure yields no session", func(t *testing.T) {
		gw := newFakeGateway(testPlan(), nil)
		gw.loadErr = NewStoreError("loadPlan", errors.New("connection refused"))

		_, err := OpenSession(context.Background(), gw, testUserID, testPlanID, DefaultPolicy(), 120)
		var storeErr *StoreError
		require.ErrorAs(t, err, &storeErr)
	})

	t.Run("unknown plan is NotFound, not a store failure", func(t *testing.T) {
		gw := newFakeGateway(testPlan(), nil)
		_, err := OpenSession(context.Background(), gw, testUserID, "missing", DefaultPolicy(), 120)
		assert.ErrorIs(t, err, apperrors.ErrPlanNotFound)
	})

	t.Run("success hydrates the working copy", func(t *testing.T) {
		gw := newFakeGateway(testPlan(), nil)
		s, err := OpenSession(context.Background(), gw, testUserID, testPlanID, DefaultPolicy(), 120)
		require.NoError(t, err)
		assert.Equal(t, StateReady, s.State())
		assert.False(t, s.Dirty())

		snap := s.Snapshot()
		assert.Equal(t, testPlanID, snap.Plan.ID)
		assert.Equal(t, "0.00", snap.Stats.GPA)
	})
}

func TestSessionSave(t *testing.T) {
	ctx := context.Background()

	openReady := func(t *testing.T, gw *fakeGateway) *Session {
		t.Helper()
		s, err := OpenSession(ctx, gw, testUserID, testPlanID, DefaultPolicy(), 120)
		require.NoError(t, err)
		return s
	}

	t.Run("recomputes denormalized aggregates and marks clean", func(t *testing.T) {
		gw := newFakeGateway(testPlan(), nil)
		s := openReady(t, gw)

		_, err := s.CommitCourse(CourseDraft{Semester: 1, Code: "CS101", Name: "Intro", Credits: 3, Grade: models.GradeA})
		require.NoError(t, err)
		_, err = s.CommitCourse(CourseDraft{Semester: 1, Code: "MA101", Name: "Calculus", Credits: 4, Grade: models.GradeB})
		require.NoError(t, err)
		require.True(t, s.Dirty())

		require.NoError(t, s.Save(ctx))
		assert.False(t, s.Dirty())
		assert.Equal(t, StateReady, s.State())

		assert.Equal(t, 7.0, gw.plan.TotalCredits)
		assert.Equal(t, "3.43", gw.plan.CumulativeGPA)
		assert.Len(t, gw.courses, 2)
	})

	t.Run("failure on course upsert keeps every local edit", func(t *testing.T) {
		gw := newFakeGateway(testPlan(), nil)
		s := openReady(t, gw)

		_, err := s.CommitCourse(CourseDraft{Semester: 1, Code: "CS101", Name: "Intro", Credits: 3})
		require.NoError(t, err)

		gw.upsertCoursesErr = NewStoreError("upsertCourses", errors.New("constraint violation"))
		err = s.Save(ctx)
		require.Error(t, err)

		var storeErr *StoreError
		require.ErrorAs(t, err, &storeErr)

		// The plan write went through, the course write did not; the session
		// is back in Ready with the working copy intact and still dirty.
		assert.Equal(t, 1, gw.upsertPlanCalls)
		assert.Equal(t, StateReady, s.State())
		assert.True(t, s.Dirty())

		snap := s.Snapshot()
		require.Len(t, snap.Courses, 1)
		assert.Equal(t, "CS101", snap.Courses[0].Code)
		assert.Equal(t, storeErr.Error(), snap.LastError)

		// Retrying after the store recovers succeeds with the same edits.
		gw.upsertCoursesErr = nil
		require.NoError(t, s.Save(ctx))
		assert.False(t, s.Dirty())
		assert.Len(t, gw.courses, 1)
	})

	t.Run("concurrent save is rejected", func(t *testing.T) {
		gw := newFakeGateway(testPlan(), nil)
		gw.blockUpsert = make(chan struct{})
		s := openReady(t, gw)

		firstDone := make(chan error, 1)
		go func() { firstDone <- s.Save(ctx) }()

		// Wait for the first save to enter the Saving state.
		require.Eventually(t, func() bool { return s.State() == StateSaving }, time.Second, time.Millisecond)

		err := s.Save(ctx)
		assert.ErrorIs(t, err, ErrSaveInProgress)

		close(gw.blockUpsert)
		require.NoError(t, <-firstDone)
		assert.Equal(t, StateReady, s.State())
	})

	t.Run("round-trip preserves identity fields", func(t *testing.T) {
		plan := testPlan()
		plan.University = "Stanford University"
		gw := newFakeGateway(plan, nil)

		s := openReady(t, gw)
		require.NoError(t, s.Save(ctx))

		reloaded, _, err := gw.LoadPlan(ctx, testPlanID)
		require.NoError(t, err)
		assert.Equal(t, plan.ID, reloaded.ID)
		assert.Equal(t, plan.OwnerID, reloaded.OwnerID)
		assert.Equal(t, plan.Title, reloaded.Title)
		assert.Equal(t, plan.University, reloaded.University)
	})

	t.Run("closed session refuses to save", func(t *testing.T) {
		gw := newFakeGateway(testPlan(), nil)
		s := openReady(t, gw)
		s.Close()
		assert.ErrorIs(t, s.Save(ctx), ErrSessionClosed)
	})
}

func TestSessionNotes(t *testing.T) {
	gw := newFakeGateway(testPlan(), nil)
	s, err := OpenSession(context.Background(), gw, testUserID, testPlanID, DefaultPolicy(), 120)
	require.NoError(t, err)

	require.NoError(t, s.AddNote("  take CS101 before CS102  "))
	assert.ErrorIs(t, s.AddNote("   "), apperrors.ErrValidationFailed)

	snap := s.Snapshot()
	require.Len(t, snap.Plan.Notes, 1)
	assert.Equal(t, "take CS101 before CS102", snap.Plan.Notes[0])

	require.NoError(t, s.RemoveNote(5)) // out of range: no-op
	require.NoError(t, s.RemoveNote(0))
	assert.Empty(t, s.Snapshot().Plan.Notes)
}

func TestSessionSemesterCap(t *testing.T) {
	plan := testPlan()
	gw := newFakeGateway(plan, nil)
	s, err := OpenSession(context.Background(), gw, testUserID, testPlanID, DefaultPolicy(), 120)
	require.NoError(t, err)

	// Default plans start with 12 semesters; three more reach the cap.
	for i := 0; i < models.MaxSemesters-models.DefaultSemesterCount; i++ {
		_, err := s.AddSemester()
		require.NoError(t, err)
	}
	_, err = s.AddSemester()
	assert.ErrorIs(t, err, ErrSemesterCapReached)
	assert.Len(t, s.Snapshot().Plan.Semesters, models.MaxSemesters)
}
