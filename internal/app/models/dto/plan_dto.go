package dto

import (
	"time"

	"github.com/Adoxcol/uniplanfinal/internal/app/models"
)

// CreatePlanRequest represents a request to create a new degree plan
type CreatePlanRequest struct {
	Title      string `json:"title" binding:"required" example:"Computer Science Degree"`
	University string `json:"university,omitempty" example:"Stanford University"`
}

// RenamePlanRequest narrows an update to the title/university pair. Small
// edits made outside an editing session go through this instead of a full
// plan upsert.
type RenamePlanRequest struct {
	Title      string `json:"title" binding:"required" example:"CS Degree, revised"`
	University string `json:"university,omitempty" example:"Stanford University"`
}

// VisibilityRequest toggles a plan's public flag
type VisibilityRequest struct {
	IsPublic bool `json:"isPublic"`
}

// PlanSummary is the list view of a plan
type PlanSummary struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	University    string    `json:"university,omitempty"`
	TotalCredits  float64   `json:"totalCredits"`
	CumulativeGPA string    `json:"cumulativeGpa"`
	IsPublic      bool      `json:"isPublic"`
	CreatedAt     time.Time `json:"createdAt"`
}

// NewPlanSummary builds a summary from a plan model
func NewPlanSummary(p *models.Plan) PlanSummary {
	return PlanSummary{
		ID:            p.ID,
		Title:         p.Title,
		University:    p.University,
		TotalCredits:  p.TotalCredits,
		CumulativeGPA: p.CumulativeGPA,
		IsPublic:      p.IsPublic,
		CreatedAt:     p.CreatedAt,
	}
}

// NewPlanSummaries maps a plan slice to summaries
func NewPlanSummaries(plans []*models.Plan) []PlanSummary {
	out := make([]PlanSummary, 0, len(plans))
	for _, p := range plans {
		out = append(out, NewPlanSummary(p))
	}
	return out
}
