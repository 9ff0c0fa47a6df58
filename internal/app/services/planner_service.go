package services

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Adoxcol/uniplanfinal/internal/app/models"
	"github.com/Adoxcol/uniplanfinal/internal/app/models/dto"
	"github.com/Adoxcol/uniplanfinal/internal/pkg/apperrors"
	"github.com/Adoxcol/uniplanfinal/internal/planner"
)

// PlannerService manages editing sessions over plans. One session exists
// per (user, plan) pair; reopening an already open plan returns the live
// session so edits are never forked.
type PlannerService interface {
	OpenSession(ctx context.Context, userID string, planID string) (planner.Snapshot, error)
	GetSnapshot(ctx context.Context, userID string, planID string) (planner.Snapshot, error)
	AddSemester(ctx context.Context, userID string, planID string) (int, error)
	CommitCourse(ctx context.Context, userID string, planID string, req *dto.CourseRequest) (models.Course, error)
	DeleteCourse(ctx context.Context, userID string, planID string, courseID string) error
	AddNote(ctx context.Context, userID string, planID string, note string) error
	RemoveNote(ctx context.Context, userID string, planID string, index int) error
	SetVisibility(ctx context.Context, userID string, planID string, isPublic bool) error
	Save(ctx context.Context, userID string, planID string) (planner.Snapshot, error)
	CloseSession(ctx context.Context, userID string, planID string) error
}

type sessionKey struct {
	userID string
	planID string
}

// plannerServiceImpl implements the PlannerService interface
type plannerServiceImpl struct {
	gateway    planner.Gateway
	plans      planStore
	policy     planner.Policy
	maxCredits float64
	logger     zerolog.Logger

	mu       sync.Mutex
	sessions map[sessionKey]*planner.Session
}

// NewPlannerService creates a new planner service instance
func NewPlannerService(gateway planner.Gateway, plans planStore, policy planner.Policy, maxCredits float64, logger zerolog.Logger) PlannerService {
	return &plannerServiceImpl{
		gateway:    gateway,
		plans:      plans,
		policy:     policy,
		maxCredits: maxCredits,
		logger:     logger.With().Str("service", "planner").Logger(),
		sessions:   make(map[sessionKey]*planner.Session),
	}
}

// checkOwnership verifies the plan exists and belongs to the caller
func (s *plannerServiceImpl) checkOwnership(ctx context.Context, userID string, planID string) error {
	plan, err := s.plans.GetPlanByID(ctx, planID)
	if err != nil {
		return err
	}
	if plan.OwnerID != userID {
		return apperrors.ErrPermissionDenied
	}
	return nil
}

// OpenSession opens (or returns the already open) editing session for the
// caller's plan and renders its first snapshot
func (s *plannerServiceImpl) OpenSession(ctx context.Context, userID string, planID string) (planner.Snapshot, error) {
	if err := s.checkOwnership(ctx, userID, planID); err != nil {
		return planner.Snapshot{}, err
	}

	key := sessionKey{userID: userID, planID: planID}

	s.mu.Lock()
	if existing, ok := s.sessions[key]; ok && existing.State() != planner.StateClosed {
		s.mu.Unlock()
		return existing.Snapshot(), nil
	}
	s.mu.Unlock()

	// Load outside the map lock; the store round trip can be slow
	session, err := planner.OpenSession(ctx, s.gateway, userID, planID, s.policy, s.maxCredits)
	if err != nil {
		return planner.Snapshot{}, err
	}

	s.mu.Lock()
	// A concurrent open may have won; prefer the session already registered
	if existing, ok := s.sessions[key]; ok && existing.State() != planner.StateClosed {
		s.mu.Unlock()
		session.Close()
		return existing.Snapshot(), nil
	}
	s.sessions[key] = session
	s.mu.Unlock()

	s.logger.Debug().Str("userID", userID).Str("planID", planID).Msg("Editing session opened")
	return session.Snapshot(), nil
}

// session returns the live session for the caller's plan
func (s *plannerServiceImpl) session(userID string, planID string) (*planner.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionKey{userID: userID, planID: planID}]
	if !ok {
		return nil, apperrors.ErrResourceNotFound
	}
	return session, nil
}

// GetSnapshot renders the current working copy with fresh aggregates
func (s *plannerServiceImpl) GetSnapshot(ctx context.Context, userID string, planID string) (planner.Snapshot, error) {
	session, err := s.session(userID, planID)
	if err != nil {
		return planner.Snapshot{}, err
	}
	return session.Snapshot(), nil
}

// AddSemester appends the next semester number to the working copy
func (s *plannerServiceImpl) AddSemester(ctx context.Context, userID string, planID string) (int, error) {
	session, err := s.session(userID, planID)
	if err != nil {
		return 0, err
	}
	return session.AddSemester()
}

// CommitCourse validates and applies a course draft. An empty request ID
// adds a course; a non-empty one edits by identity.
func (s *plannerServiceImpl) CommitCourse(ctx context.Context, userID string, planID string, req *dto.CourseRequest) (models.Course, error) {
	session, err := s.session(userID, planID)
	if err != nil {
		return models.Course{}, err
	}

	draft := planner.CourseDraft{
		ID:         req.ID,
		Semester:   req.Semester,
		Code:       req.Code,
		Name:       req.Name,
		Credits:    req.Credits,
		Grade:      models.Grade(req.Grade),
		Section:    req.Section,
		Timing:     req.Timing,
		Difficulty: req.Difficulty,
	}

	return session.CommitCourse(draft)
}

// DeleteCourse removes a course from the store and the working copy
func (s *plannerServiceImpl) DeleteCourse(ctx context.Context, userID string, planID string, courseID string) error {
	session, err := s.session(userID, planID)
	if err != nil {
		return err
	}
	return session.DeleteCourseRemote(ctx, courseID)
}

// AddNote appends a note to the working copy
func (s *plannerServiceImpl) AddNote(ctx context.Context, userID string, planID string, note string) error {
	session, err := s.session(userID, planID)
	if err != nil {
		return err
	}
	return session.AddNote(note)
}

// RemoveNote deletes the note at the given index from the working copy
func (s *plannerServiceImpl) RemoveNote(ctx context.Context, userID string, planID string, index int) error {
	session, err := s.session(userID, planID)
	if err != nil {
		return err
	}
	return session.RemoveNote(index)
}

// SetVisibility toggles the public flag on the working copy
func (s *plannerServiceImpl) SetVisibility(ctx context.Context, userID string, planID string, isPublic bool) error {
	session, err := s.session(userID, planID)
	if err != nil {
		return err
	}
	return session.SetPublic(isPublic)
}

// Save persists the working copy and returns the post-save snapshot. On
// failure the session keeps every local edit and the error is surfaced.
func (s *plannerServiceImpl) Save(ctx context.Context, userID string, planID string) (planner.Snapshot, error) {
	session, err := s.session(userID, planID)
	if err != nil {
		return planner.Snapshot{}, err
	}

	if err := session.Save(ctx); err != nil {
		s.logger.Warn().Err(err).Str("planID", planID).Msg("Plan save failed, local edits retained")
		return session.Snapshot(), err
	}

	s.logger.Info().Str("planID", planID).Str("userID", userID).Msg("Plan saved")
	return session.Snapshot(), nil
}

// CloseSession ends the editing session and drops it from the registry
func (s *plannerServiceImpl) CloseSession(ctx context.Context, userID string, planID string) error {
	key := sessionKey{userID: userID, planID: planID}

	s.mu.Lock()
	session, ok := s.sessions[key]
	if ok {
		delete(s.sessions, key)
	}
	s.mu.Unlock()

	if !ok {
		return apperrors.ErrResourceNotFound
	}

	session.Close()
	s.logger.Debug().Str("userID", userID).Str("planID", planID).Msg("Editing session closed")
	return nil
}
