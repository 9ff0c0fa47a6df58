package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Adoxcol/uniplanfinal/internal/app/models"
	"github.com/Adoxcol/uniplanfinal/internal/pkg/apperrors"
	"github.com/Adoxcol/uniplanfinal/internal/pkg/logger"
)

// PlanRepository handles plan database operations. Semesters are stored as
// an integer array and notes as a JSON text column.
type PlanRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPlanRepository creates a new PlanRepository
func NewPlanRepository(db *pgxpool.Pool) *PlanRepository {
	return &PlanRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func encodeNotes(notes []string) (string, error) {
	if notes == nil {
		notes = []string{}
	}
	raw, err := json.Marshal(notes)
	if err != nil {
		return "", fmt.Errorf("failed to encode plan notes: %w", err)
	}
	return string(raw), nil
}

func decodeNotes(raw string) ([]string, error) {
	if raw == "" {
		return []string{}, nil
	}
	var notes []string
	if err := json.Unmarshal([]byte(raw), &notes); err != nil {
		return nil, fmt.Errorf("failed to decode plan notes: %w", err)
	}
	if notes == nil {
		notes = []string{}
	}
	return notes, nil
}

func semestersToDB(semesters []int) []int32 {
	out := make([]int32, len(semesters))
	for i, s := range semesters {
		out[i] = int32(s)
	}
	return out
}

func semestersFromDB(semesters []int32) []int {
	out := make([]int, len(semesters))
	for i, s := range semesters {
		out[i] = int(s)
	}
	return out
}

func (r *PlanRepository) scanPlan(row pgx.Row) (*models.Plan, error) {
	plan := &models.Plan{}
	var semesters []int32
	var rawNotes string

	err := row.Scan(
		&plan.ID, &plan.OwnerID, &plan.Title, &plan.University,
		&semesters, &plan.IsPublic, &rawNotes,
		&plan.TotalCredits, &plan.CumulativeGPA,
		&plan.CreatedAt, &plan.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	plan.Semesters = semestersFromDB(semesters)
	plan.Notes, err = decodeNotes(rawNotes)
	if err != nil {
		return nil, err
	}

	return plan, nil
}

const planColumns = "id, owner_id, title, university, semesters, is_public, notes, total_credits, cumulative_gpa, created_at, updated_at"

// CreatePlan inserts a new plan row
func (r *PlanRepository) CreatePlan(ctx context.Context, plan *models.Plan) error {
	now := time.Now()
	plan.CreatedAt = now
	plan.UpdatedAt = now

	rawNotes, err := encodeNotes(plan.Notes)
	if err != nil {
		return err
	}

	sql, args, err := r.sb.Insert("plans").
		Columns("id", "owner_id", "title", "university", "semesters", "is_public", "notes", "total_credits", "cumulative_gpa", "created_at", "updated_at").
		Values(plan.ID, plan.OwnerID, plan.Title, plan.University,
			semestersToDB(plan.Semesters), plan.IsPublic, rawNotes,
			plan.TotalCredits, plan.CumulativeGPA, plan.CreatedAt, plan.UpdatedAt).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create plan SQL")
		return fmt.Errorf("failed to build create plan query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Str("planID", plan.ID).Msg("Error executing create plan query")
		return fmt.Errorf("error creating plan: %w", err)
	}

	return nil
}

// GetPlanByID retrieves a plan by ID
func (r *PlanRepository) GetPlanByID(ctx context.Context, id string) (*models.Plan, error) {
	query := fmt.Sprintf(`SELECT %s FROM plans WHERE id = $1`, planColumns)

	plan, err := r.scanPlan(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPlanNotFound
		}
		logger.Error().Err(err).Str("planID", id).Msg("Error scanning plan row")
		return nil, fmt.Errorf("error getting plan by ID: %w", err)
	}

	return plan, nil
}

// GetPlansByOwner retrieves all plans owned by a user, newest first
func (r *PlanRepository) GetPlansByOwner(ctx context.Context, ownerID string) ([]*models.Plan, error) {
	query := fmt.Sprintf(`SELECT %s FROM plans WHERE owner_id = $1 ORDER BY created_at DESC`, planColumns)

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		logger.Error().Err(err).Str("ownerID", ownerID).Msg("Error querying plans by owner")
		return nil, fmt.Errorf("error getting plans by owner: %w", err)
	}
	defer rows.Close()

	var plans []*models.Plan
	for rows.Next() {
		plan, err := r.scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning plan row: %w", err)
		}
		plans = append(plans, plan)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating plan rows: %w", err)
	}

	return plans, nil
}

// CountPlansByOwner counts a user's plans, used to enforce the plan limit
func (r *PlanRepository) CountPlansByOwner(ctx context.Context, ownerID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM plans WHERE owner_id = $1`, ownerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting plans by owner: %w", err)
	}
	return count, nil
}

// UpsertPlan writes the full plan state. An existing row is replaced field
// by field so that a saved snapshot always matches the in-memory plan.
func (r *PlanRepository) UpsertPlan(ctx context.Context, plan *models.Plan) error {
	plan.UpdatedAt = time.Now()
	if plan.CreatedAt.IsZero() {
		plan.CreatedAt = plan.UpdatedAt
	}

	rawNotes, err := encodeNotes(plan.Notes)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO plans (id, owner_id, title, university, semesters, is_public, notes, total_credits, cumulative_gpa, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			university = EXCLUDED.university,
			semesters = EXCLUDED.semesters,
			is_public = EXCLUDED.is_public,
			notes = EXCLUDED.notes,
			total_credits = EXCLUDED.total_credits,
			cumulative_gpa = EXCLUDED.cumulative_gpa,
			updated_at = EXCLUDED.updated_at`

	_, err = r.db.Exec(ctx, query,
		plan.ID, plan.OwnerID, plan.Title, plan.University,
		semestersToDB(plan.Semesters), plan.IsPublic, rawNotes,
		plan.TotalCredits, plan.CumulativeGPA, plan.CreatedAt, plan.UpdatedAt,
	)
	if err != nil {
		logger.Error().Err(err).Str("planID", plan.ID).Msg("Error executing upsert plan query")
		return fmt.Errorf("error upserting plan: %w", err)
	}

	return nil
}

// RenamePlan updates only the plan title
func (r *PlanRepository) RenamePlan(ctx context.Context, id string, title string) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE plans SET title = $1, updated_at = $2 WHERE id = $3`,
		title, time.Now(), id)
	if err != nil {
		logger.Error().Err(err).Str("planID", id).Msg("Error executing rename plan query")
		return fmt.Errorf("error renaming plan: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrPlanNotFound
	}

	return nil
}

// SetPlanVisibility flips the public flag on a plan
func (r *PlanRepository) SetPlanVisibility(ctx context.Context, id string, isPublic bool) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE plans SET is_public = $1, updated_at = $2 WHERE id = $3`,
		isPublic, time.Now(), id)
	if err != nil {
		logger.Error().Err(err).Str("planID", id).Msg("Error executing set visibility query")
		return fmt.Errorf("error setting plan visibility: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrPlanNotFound
	}

	return nil
}

// DeletePlan removes a plan. Courses go with it through the cascade.
func (r *PlanRepository) DeletePlan(ctx context.Context, id string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM plans WHERE id = $1`, id)
	if err != nil {
		logger.Error().Err(err).Str("planID", id).Msg("Error executing delete plan query")
		return fmt.Errorf("error deleting plan: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrPlanNotFound
	}

	return nil
}

// ListPublicPlans retrieves all plans shared publicly, newest first
func (r *PlanRepository) ListPublicPlans(ctx context.Context) ([]*models.Plan, error) {
	query := fmt.Sprintf(`SELECT %s FROM plans WHERE is_public ORDER BY updated_at DESC`, planColumns)

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying public plans")
		return nil, fmt.Errorf("error listing public plans: %w", err)
	}
	defer rows.Close()

	var plans []*models.Plan
	for rows.Next() {
		plan, err := r.scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning plan row: %w", err)
		}
		plans = append(plans, plan)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating plan rows: %w", err)
	}

	return plans, nil
}
