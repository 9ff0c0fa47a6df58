package planner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Adoxcol/uniplanfinal/internal/app/models"
	"github.com/Adoxcol/uniplanfinal/internal/pkg/apperrors"
)

// Session error types
var (
	ErrSaveInProgress = errors.New("a save is already in progress")
	ErrSessionClosed  = errors.New("session is closed")
	ErrSessionFailed  = errors.New("session failed to load")
)

// State is the lifecycle state of an editing session.
type State string

const (
	StateLoading State = "LOADING"
	StateReady   State = "READY"
	StateSaving  State = "SAVING"
	StateError   State = "ERROR" // Initial load failed; terminal for this instance
	StateClosed  State = "CLOSED"
)

// Session owns the in-memory working copy of one plan for the duration of an
// editing interaction. All mutations go through it; the gateway is a stateless
// transport underneath. Local edits are the user's working copy and are never
// discarded because a remote write failed.
type Session struct {
	mu sync.Mutex

	userID     string
	plan       *models.Plan
	editor     *Editor
	gateway    Gateway
	policy     Policy
	maxCredits float64

	state   State
	dirty   bool
	lastErr error
}

// Snapshot is the read view a session exposes for rendering: the current
// plan, courses, derived stats, and session status.
type Snapshot struct {
	Plan      *models.Plan            `json:"plan"`
	Courses   []models.Course         `json:"courses"`
	Semesters map[int][]models.Course `json:"coursesBySemester"`
	Stats     Stats                   `json:"stats"`
	State     State                   `json:"state"`
	Dirty     bool                    `json:"dirty"`
	LastError string                  `json:"lastError,omitempty"`
}

// OpenSession loads the plan through the gateway and returns a Ready session.
// A non-empty authenticated user ID is required up front; the session fails
// fast rather than attempting store writes on behalf of nobody. A load
// failure leaves no usable session (StateError is terminal).
func OpenSession(ctx context.Context, gw Gateway, userID, planID string, policy Policy, maxCredits float64) (*Session, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperrors.ErrUnauthenticated
	}

	s := &Session{
		userID:     userID,
		gateway:    gw,
		policy:     policy,
		maxCredits: maxCredits,
		state:      StateLoading,
	}

	plan, courses, err := gw.LoadPlan(ctx, planID)
	if err != nil {
		s.state = StateError
		s.lastErr = err
		return nil, err
	}

	s.plan = plan.Clone()
	s.editor = NewEditor(plan.ID, plan.Semesters, courses)
	s.state = StateReady
	return s, nil
}

// UserID returns the authenticated user that owns this session.
func (s *Session) UserID() string {
	return s.userID
}

// State returns the current session state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dirty reports whether there are unsaved local edits.
func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// Snapshot returns the current working copy with freshly derived stats.
// Aggregates are always recomputed here; the persisted denormalized values
// are never trusted on read.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		State: s.state,
		Dirty: s.dirty,
	}
	if s.lastErr != nil {
		snap.LastError = s.lastErr.Error()
	}
	if s.plan == nil {
		return snap
	}

	courses := s.editor.Courses()
	plan := s.plan.Clone()
	plan.Semesters = s.editor.Semesters()

	stats := s.policy.Aggregate(courses, s.maxCredits)
	plan.TotalCredits = stats.TotalCredits
	plan.CumulativeGPA = stats.GPA

	snap.Plan = plan
	snap.Courses = courses
	snap.Semesters = s.editor.CoursesBySemester()
	snap.Stats = stats
	return snap
}

// guardMutable rejects mutations unless the session is Ready.
func (s *Session) guardMutable() error {
	switch s.state {
	case StateReady:
		return nil
	case StateSaving:
		return ErrSaveInProgress
	case StateClosed:
		return ErrSessionClosed
	default:
		return ErrSessionFailed
	}
}

// AddSemester appends the next semester number to the plan.
func (s *Session) AddSemester() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guardMutable(); err != nil {
		return 0, err
	}
	n, err := s.editor.AddSemester()
	if err != nil {
		return 0, err
	}
	s.dirty = true
	return n, nil
}

// BeginAddCourse opens a draft for a new course in the given semester.
func (s *Session) BeginAddCourse(semester int) (CourseDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guardMutable(); err != nil {
		return CourseDraft{}, err
	}
	return s.editor.BeginAddCourse(semester)
}

// BeginEditCourse opens a draft with the course's current values.
func (s *Session) BeginEditCourse(id string) (CourseDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guardMutable(); err != nil {
		return CourseDraft{}, err
	}
	return s.editor.BeginEditCourse(id)
}

// CommitCourse validates and applies a course draft to the working copy.
func (s *Session) CommitCourse(d CourseDraft) (models.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guardMutable(); err != nil {
		return models.Course{}, err
	}
	course, err := s.editor.CommitCourse(d)
	if err != nil {
		return models.Course{}, err
	}
	s.dirty = true
	return course, nil
}

// DeleteCourse removes a course from the working copy. Absent ids are a
// no-op and do not mark the session dirty.
func (s *Session) DeleteCourse(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guardMutable(); err != nil {
		return err
	}
	if s.editor.DeleteCourse(id) {
		s.dirty = true
	}
	return nil
}

// AddNote appends a trimmed non-empty note to the plan.
func (s *Session) AddNote(note string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guardMutable(); err != nil {
		return err
	}
	note = strings.TrimSpace(note)
	if note == "" {
		return fmt.Errorf("%w: note cannot be empty", apperrors.ErrValidationFailed)
	}
	s.plan.Notes = append(s.plan.Notes, note)
	s.dirty = true
	return nil
}

// RemoveNote deletes the note at the given index. Out-of-range indexes are a
// no-op.
func (s *Session) RemoveNote(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guardMutable(); err != nil {
		return err
	}
	if index < 0 || index >= len(s.plan.Notes) {
		return nil
	}
	s.plan.Notes = append(s.plan.Notes[:index], s.plan.Notes[index+1:]...)
	s.dirty = true
	return nil
}

// SetPublic toggles the plan's visibility flag in the working copy.
func (s *Session) SetPublic(public bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guardMutable(); err != nil {
		return err
	}
	if s.plan.IsPublic != public {
		s.plan.IsPublic = public
		s.dirty = true
	}
	return nil
}

// Save writes the working copy to the store: the plan first (with aggregates
// recomputed into the denormalized fields), then the full course collection.
// Only one save may be outstanding; a second Save while one is in flight is
// rejected with ErrSaveInProgress. On any failure the session returns to
// Ready with the error recorded and every local edit intact — a failed remote
// write never destroys the working copy.
func (s *Session) Save(ctx context.Context) error {
	s.mu.Lock()
	switch s.state {
	case StateSaving:
		s.mu.Unlock()
		return ErrSaveInProgress
	case StateClosed:
		s.mu.Unlock()
		return ErrSessionClosed
	case StateReady:
		// proceed
	default:
		s.mu.Unlock()
		return ErrSessionFailed
	}

	s.state = StateSaving

	courses := s.editor.Courses()
	plan := s.plan.Clone()
	plan.Semesters = s.editor.Semesters()

	stats := s.policy.Aggregate(courses, s.maxCredits)
	plan.TotalCredits = stats.TotalCredits
	plan.CumulativeGPA = stats.GPA
	plan.UpdatedAt = time.Now().UTC()
	s.mu.Unlock()

	err := s.gateway.UpsertPlan(ctx, plan)
	if err == nil {
		err = s.gateway.UpsertCourses(ctx, courses)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateReady
	s.lastErr = err
	if err != nil {
		return err
	}

	// The working copy now matches the store; adopt the written plan.
	s.plan = plan
	s.dirty = false
	return nil
}

// DeleteCourseRemote deletes a course from the store and, on success, from
// the working copy. Used for immediate deletes rather than save-batched ones.
func (s *Session) DeleteCourseRemote(ctx context.Context, id string) error {
	s.mu.Lock()
	if err := s.guardMutable(); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	if err := s.gateway.DeleteCourse(ctx, id); err != nil {
		s.mu.Lock()
		s.lastErr = err
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.editor.DeleteCourse(id)
	return nil
}

// Close ends the session. In-flight saves are not cancelled; navigating away
// during Saving is an accepted at-most-once risk, not something to mask.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateClosed
}
