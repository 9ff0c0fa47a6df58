package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adoxcol/uniplanfinal/internal/app/models"
	"github.com/Adoxcol/uniplanfinal/internal/pkg/apperrors"
)

const testPlanID = "9f1c7e7e-6c7a-4f52-9e3b-2b1d6a0c4e11"

func TestAddSemester(t *testing.T) {
	t.Run("appends max plus one", func(t *testing.T) {
		e := NewEditor(testPlanID, []int{1, 2, 3}, nil)
		n, err := e.AddSemester()
		require.NoError(t, err)
		assert.Equal(t, 4, n)
		assert.Equal(t, []int{1, 2, 3, 4}, e.Semesters())
	})

	t.Run("starts at one when empty", func(t *testing.T) {
		e := NewEditor(testPlanID, nil, nil)
		n, err := e.AddSemester()
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("fifteen succeed, the sixteenth fails without mutating", func(t *testing.T) {
		e := NewEditor(testPlanID, nil, nil)
		for i := 1; i <= models.MaxSemesters; i++ {
			n, err := e.AddSemester()
			require.NoError(t, err)
			assert.Equal(t, i, n)
		}

		before := e.Semesters()
		_, err := e.AddSemester()
		require.ErrorIs(t, err, ErrSemesterCapReached)
		assert.Equal(t, before, e.Semesters())
	})
}

func TestBeginAddCourse(t *testing.T) {
	e := NewEditor(testPlanID, []int{1, 2}, nil)

	d, err := e.BeginAddCourse(2)
	require.NoError(t, err)
	assert.Equal(t, 2, d.Semester)
	assert.Empty(t, d.ID)

	_, err = e.BeginAddCourse(7)
	assert.ErrorIs(t, err, ErrUnknownSemester)
}

func TestCommitCourseValidation(t *testing.T) {
	e := NewEditor(testPlanID, []int{1}, nil)

	cases := []struct {
		name  string
		draft CourseDraft
	}{
		{"empty code", CourseDraft{Semester: 1, Name: "Intro", Credits: 3}},
		{"empty name", CourseDraft{Semester: 1, Code: "CS101", Credits: 3}},
		{"whitespace code", CourseDraft{Semester: 1, Code: "   ", Name: "Intro"}},
		{"negative credits", CourseDraft{Semester: 1, Code: "CS101", Name: "Intro", Credits: -1}},
		{"unknown grade", CourseDraft{Semester: 1, Code: "CS101", Name: "Intro", Grade: "Z"}},
		{"semester outside plan", CourseDraft{Semester: 9, Code: "CS101", Name: "Intro"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := e.CommitCourse(tc.draft)
			require.Error(t, err)
			assert.Empty(t, e.Courses(), "collection must stay unchanged on validation failure")
		})
	}
}

func TestCommitCourseAddAndEdit(t *testing.T) {
	e := NewEditor(testPlanID, []int{1, 2}, nil)

	added, err := e.CommitCourse(CourseDraft{
		Semester: 1,
		Code:     "CS101",
		Name:     "Introduction to Computer Science",
		Credits:  3,
		Grade:    models.GradeA,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, added.ID)
	assert.Equal(t, testPlanID, added.PlanID)
	assert.False(t, added.CreatedAt.IsZero())

	t.Run("edit replaces by identity", func(t *testing.T) {
		draft, err := e.BeginEditCourse(added.ID)
		require.NoError(t, err)
		assert.Equal(t, "CS101", draft.Code)

		draft.Grade = models.GradeB
		draft.Semester = 2
		updated, err := e.CommitCourse(draft)
		require.NoError(t, err)

		assert.Equal(t, added.ID, updated.ID)
		assert.Equal(t, models.GradeB, updated.Grade)
		assert.Equal(t, added.CreatedAt, updated.CreatedAt)
		assert.Len(t, e.Courses(), 1)
	})

	t.Run("editing an absent id fails", func(t *testing.T) {
		_, err := e.CommitCourse(CourseDraft{
			ID: "missing", Semester: 1, Code: "CS102", Name: "Data Structures",
		})
		assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
	})
}

func TestDeleteCourse(t *testing.T) {
	e := NewEditor(testPlanID, []int{1}, nil)
	added, err := e.CommitCourse(CourseDraft{Semester: 1, Code: "CS101", Name: "Intro"})
	require.NoError(t, err)

	assert.True(t, e.DeleteCourse(added.ID))
	assert.Empty(t, e.Courses())

	t.Run("absent id is a no-op", func(t *testing.T) {
		assert.False(t, e.DeleteCourse(added.ID))
	})
}

func TestCoursesBySemester(t *testing.T) {
	e := NewEditor(testPlanID, []int{1, 2}, nil)

	first, err := e.CommitCourse(CourseDraft{Semester: 1, Code: "CS101", Name: "Intro"})
	require.NoError(t, err)
	second, err := e.CommitCourse(CourseDraft{Semester: 1, Code: "MA101", Name: "Calculus"})
	require.NoError(t, err)
	third, err := e.CommitCourse(CourseDraft{Semester: 2, Code: "CS102", Name: "Data Structures"})
	require.NoError(t, err)

	grouped := e.CoursesBySemester()
	require.Len(t, grouped[1], 2)
	require.Len(t, grouped[2], 1)

	// Insertion order within a semester is preserved.
	assert.Equal(t, first.ID, grouped[1][0].ID)
	assert.Equal(t, second.ID, grouped[1][1].ID)
	assert.Equal(t, third.ID, grouped[2][0].ID)
}
