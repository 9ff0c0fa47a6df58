package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Adoxcol/uniplanfinal/internal/app/models"
	"github.com/Adoxcol/uniplanfinal/internal/pkg/apperrors"
	"github.com/Adoxcol/uniplanfinal/internal/pkg/logger"
)

// CourseRepository handles course database operations
type CourseRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const courseColumns = "id, plan_id, code, name, credits, semester, grade, section, timing, difficulty, created_at, updated_at"

func scanCourse(row pgx.Row) (models.Course, error) {
	var course models.Course
	var grade string

	err := row.Scan(
		&course.ID, &course.PlanID, &course.Code, &course.Name,
		&course.Credits, &course.Semester, &grade,
		&course.Section, &course.Timing, &course.Difficulty,
		&course.CreatedAt, &course.UpdatedAt,
	)
	if err != nil {
		return models.Course{}, err
	}

	course.Grade = models.Grade(grade)
	return course, nil
}

// GetCoursesByPlanID retrieves every course of a plan in insertion order
func (r *CourseRepository) GetCoursesByPlanID(ctx context.Context, planID string) ([]models.Course, error) {
	query := fmt.Sprintf(`SELECT %s FROM courses WHERE plan_id = $1 ORDER BY created_at, id`, courseColumns)

	rows, err := r.db.Query(ctx, query, planID)
	if err != nil {
		logger.Error().Err(err).Str("planID", planID).Msg("Error querying courses by plan")
		return nil, fmt.Errorf("error getting courses by plan: %w", err)
	}
	defer rows.Close()

	var courses []models.Course
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating course rows: %w", err)
	}

	return courses, nil
}

// UpsertCourse writes a single course, replacing an existing row with the
// same ID
func (r *CourseRepository) UpsertCourse(ctx context.Context, course *models.Course) error {
	course.UpdatedAt = time.Now()
	if course.CreatedAt.IsZero() {
		course.CreatedAt = course.UpdatedAt
	}

	query := `
		INSERT INTO courses (id, plan_id, code, name, credits, semester, grade, section, timing, difficulty, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			code = EXCLUDED.code,
			name = EXCLUDED.name,
			credits = EXCLUDED.credits,
			semester = EXCLUDED.semester,
			grade = EXCLUDED.grade,
			section = EXCLUDED.section,
			timing = EXCLUDED.timing,
			difficulty = EXCLUDED.difficulty,
			updated_at = EXCLUDED.updated_at`

	_, err := r.db.Exec(ctx, query,
		course.ID, course.PlanID, course.Code, course.Name,
		course.Credits, course.Semester, string(course.Grade),
		course.Section, course.Timing, course.Difficulty,
		course.CreatedAt, course.UpdatedAt,
	)
	if err != nil {
		logger.Error().Err(err).Str("courseID", course.ID).Msg("Error executing upsert course query")
		return fmt.Errorf("error upserting course: %w", err)
	}

	return nil
}

// DeleteCourse removes a single course
func (r *CourseRepository) DeleteCourse(ctx context.Context, planID string, courseID string) error {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM courses WHERE id = $1 AND plan_id = $2`, courseID, planID)
	if err != nil {
		logger.Error().Err(err).Str("courseID", courseID).Msg("Error executing delete course query")
		return fmt.Errorf("error deleting course: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}

// DeleteCourseByID removes a course without requiring the plan ID
func (r *CourseRepository) DeleteCourseByID(ctx context.Context, courseID string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM courses WHERE id = $1`, courseID)
	if err != nil {
		logger.Error().Err(err).Str("courseID", courseID).Msg("Error executing delete course query")
		return fmt.Errorf("error deleting course: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}

// DeleteCoursesByPlanID removes all courses belonging to a plan
func (r *CourseRepository) DeleteCoursesByPlanID(ctx context.Context, planID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM courses WHERE plan_id = $1`, planID)
	if err != nil {
		logger.Error().Err(err).Str("planID", planID).Msg("Error executing delete courses query")
		return fmt.Errorf("error deleting courses for plan: %w", err)
	}
	return nil
}

// DeleteCoursesNotIn removes the plan's courses whose IDs are absent from
// keep. Used after a save so remotely stored courses mirror the session.
func (r *CourseRepository) DeleteCoursesNotIn(ctx context.Context, planID string, keep []string) error {
	if len(keep) == 0 {
		return r.DeleteCoursesByPlanID(ctx, planID)
	}

	sql, args, err := r.sb.Delete("courses").
		Where(squirrel.Eq{"plan_id": planID}).
		Where(squirrel.NotEq{"id": keep}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete stale courses SQL")
		return fmt.Errorf("failed to build delete stale courses query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Str("planID", planID).Msg("Error executing delete stale courses query")
		return fmt.Errorf("error deleting stale courses: %w", err)
	}

	return nil
}
