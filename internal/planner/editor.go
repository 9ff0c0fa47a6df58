package planner

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Adoxcol/uniplanfinal/internal/app/models"
	"github.com/Adoxcol/uniplanfinal/internal/pkg/apperrors"
)

// Editor error types
var (
	ErrSemesterCapReached = errors.New("maximum number of semesters reached")
	ErrUnknownSemester    = errors.New("semester is not part of the plan")
	ErrCourseValidation   = errors.New("course validation failed")
)

// Editor maintains the in-memory course collection of one plan: a flat course
// list plus the ordered semester sequence, with draft-based course CRUD. It is
// not safe for concurrent use; the owning session serializes access.
type Editor struct {
	planID    string
	semesters []int
	courses   []models.Course
}

// NewEditor creates an editor over a plan's current semesters and courses.
// The slices are copied; the caller keeps ownership of its own state.
func NewEditor(planID string, semesters []int, courses []models.Course) *Editor {
	return &Editor{
		planID:    planID,
		semesters: append([]int(nil), semesters...),
		courses:   append([]models.Course(nil), courses...),
	}
}

// Semesters returns a copy of the ordered semester sequence.
func (e *Editor) Semesters() []int {
	return append([]int(nil), e.semesters...)
}

// Courses returns a copy of the flat course collection in insertion order.
func (e *Editor) Courses() []models.Course {
	return append([]models.Course(nil), e.courses...)
}

// CoursesBySemester groups the collection by semester number, preserving
// insertion order within each group.
func (e *Editor) CoursesBySemester() map[int][]models.Course {
	grouped := make(map[int][]models.Course, len(e.semesters))
	for _, c := range e.courses {
		grouped[c.Semester] = append(grouped[c.Semester], c)
	}
	return grouped
}

// AddSemester appends the next semester number (max+1, or 1 when the sequence
// is empty) and returns it. Fails without mutating once the sequence holds
// models.MaxSemesters entries.
func (e *Editor) AddSemester() (int, error) {
	if len(e.semesters) >= models.MaxSemesters {
		return 0, fmt.Errorf("%w (%d)", ErrSemesterCapReached, models.MaxSemesters)
	}

	next := 1
	for _, s := range e.semesters {
		if s >= next {
			next = s + 1
		}
	}
	e.semesters = append(e.semesters, next)
	return next, nil
}

// hasSemester reports whether the semester number is in the sequence.
func (e *Editor) hasSemester(semester int) bool {
	for _, s := range e.semesters {
		if s == semester {
			return true
		}
	}
	return false
}

// CourseDraft is an uncommitted edit context. Drafts never touch the
// committed collection; only CommitCourse does.
type CourseDraft struct {
	ID         string       `json:"id,omitempty"` // Empty for a new course
	Semester   int          `json:"semester"`
	Code       string       `json:"code"`
	Name       string       `json:"name"`
	Credits    float64      `json:"credits"`
	Grade      models.Grade `json:"grade,omitempty"`
	Section    *string      `json:"section,omitempty"`
	Timing     *string      `json:"timing,omitempty"`
	Difficulty *int         `json:"difficulty,omitempty"`
}

// BeginAddCourse opens a draft with defaults for a new course in the given
// semester.
func (e *Editor) BeginAddCourse(semester int) (CourseDraft, error) {
	if !e.hasSemester(semester) {
		return CourseDraft{}, fmt.Errorf("%w: %d", ErrUnknownSemester, semester)
	}
	return CourseDraft{Semester: semester}, nil
}

// BeginEditCourse opens a draft pre-populated with the course's current
// values.
func (e *Editor) BeginEditCourse(id string) (CourseDraft, error) {
	for _, c := range e.courses {
		if c.ID == id {
			return CourseDraft{
				ID:         c.ID,
				Semester:   c.Semester,
				Code:       c.Code,
				Name:       c.Name,
				Credits:    c.Credits,
				Grade:      c.Grade,
				Section:    c.Section,
				Timing:     c.Timing,
				Difficulty: c.Difficulty,
			}, nil
		}
	}
	return CourseDraft{}, apperrors.ErrCourseNotFound
}

// validateDraft checks a draft before it may touch the collection.
func (e *Editor) validateDraft(d CourseDraft) error {
	if strings.TrimSpace(d.Code) == "" {
		return fmt.Errorf("%w: code cannot be empty", ErrCourseValidation)
	}
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrCourseValidation)
	}
	if d.Credits < 0 {
		return fmt.Errorf("%w: credits cannot be negative", ErrCourseValidation)
	}
	if d.Grade != "" && !d.Grade.IsKnown() {
		return fmt.Errorf("%w: unknown grade %q", ErrCourseValidation, d.Grade)
	}
	if d.Difficulty != nil && (*d.Difficulty < 1 || *d.Difficulty > 5) {
		return fmt.Errorf("%w: difficulty must be between 1 and 5", ErrCourseValidation)
	}
	if !e.hasSemester(d.Semester) {
		return fmt.Errorf("%w: %d", ErrUnknownSemester, d.Semester)
	}
	return nil
}

// CommitCourse validates the draft and applies it to the collection. A draft
// with an ID replaces the matching course; a draft without one is assigned a
// fresh identifier and appended. On any validation failure the collection is
// left unchanged.
func (e *Editor) CommitCourse(d CourseDraft) (models.Course, error) {
	if err := e.validateDraft(d); err != nil {
		return models.Course{}, err
	}

	now := time.Now().UTC()

	if d.ID != "" {
		for i, c := range e.courses {
			if c.ID == d.ID {
				updated := models.Course{
					ID:         c.ID,
					PlanID:     e.planID,
					Code:       strings.TrimSpace(d.Code),
					Name:       strings.TrimSpace(d.Name),
					Credits:    d.Credits,
					Semester:   d.Semester,
					Grade:      d.Grade,
					Section:    d.Section,
					Timing:     d.Timing,
					Difficulty: d.Difficulty,
					CreatedAt:  c.CreatedAt,
					UpdatedAt:  now,
				}
				e.courses[i] = updated
				return updated, nil
			}
		}
		return models.Course{}, apperrors.ErrCourseNotFound
	}

	created := models.Course{
		ID:         uuid.New().String(),
		PlanID:     e.planID,
		Code:       strings.TrimSpace(d.Code),
		Name:       strings.TrimSpace(d.Name),
		Credits:    d.Credits,
		Semester:   d.Semester,
		Grade:      d.Grade,
		Section:    d.Section,
		Timing:     d.Timing,
		Difficulty: d.Difficulty,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	e.courses = append(e.courses, created)
	return created, nil
}

// DeleteCourse removes a course by identity. Removing an absent id is a
// no-op, not an error; the returned flag says whether anything was removed.
func (e *Editor) DeleteCourse(id string) bool {
	for i, c := range e.courses {
		if c.ID == id {
			e.courses = append(e.courses[:i], e.courses[i+1:]...)
			return true
		}
	}
	return false
}
