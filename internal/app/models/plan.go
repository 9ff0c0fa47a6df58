package models

import (
	"time"
)

// Plan defines the degree plan model based on the 'plans' table
type Plan struct {
	ID         string `json:"id" db:"id" example:"9f1c7e7e-6c7a-4f52-9e3b-2b1d6a0c4e11"`            // Unique identifier for the plan
	OwnerID    string `json:"ownerId" db:"owner_id" example:"2e0a9b54-8c6d-4f11-aa4e-77b3c9d01234"` // ID of the user who owns the plan
	Title      string `json:"title" db:"title" example:"Computer Science Degree"`                   // Title of the plan (required)
	University string `json:"university,omitempty" db:"university" example:"Stanford University"`   // University name (optional)
	Semesters  []int  `json:"semesters" db:"semesters"`                                             // Ordered semester sequence, 1..N, capped at MaxSemesters
	IsPublic   bool   `json:"isPublic" db:"is_public" example:"false"`                              // Whether the plan is publicly visible

	// Notes is the plan's ordered note list. Stored as a single JSON text
	// blob in the plans table; parsed at the persistence boundary.
	Notes []string `json:"notes" db:"notes"`

	// TotalCredits and CumulativeGPA are denormalized aggregates recomputed
	// from the course collection before every write. Never authoritative on
	// read; the aggregator output wins.
	TotalCredits  float64 `json:"totalCredits" db:"total_credits" example:"96"`
	CumulativeGPA string  `json:"cumulativeGpa" db:"cumulative_gpa" example:"3.43"`

	CreatedAt time.Time `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"` // Set once at creation
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"` // Timestamp of the last write
}

// Clone returns a deep copy of the plan.
func (p *Plan) Clone() *Plan {
	if p == nil {
		return nil
	}
	cp := *p
	cp.Semesters = append([]int(nil), p.Semesters...)
	cp.Notes = append([]string(nil), p.Notes...)
	return &cp
}
