package models

import (
	"time"
)

// Course represents one enrollment record within a plan.
type Course struct {
	ID         string  `json:"id" db:"id" example:"c2b8f1aa-3d0e-4f9b-8a77-5e1f2d3c4b5a"`          // Unique identifier, assigned at creation, immutable
	PlanID     string  `json:"planId" db:"plan_id" example:"9f1c7e7e-6c7a-4f52-9e3b-2b1d6a0c4e11"` // Owning plan
	Code       string  `json:"code" db:"code" example:"CS101"`                                     // Course code (required)
	Name       string  `json:"name" db:"name" example:"Introduction to Computer Science"`          // Course name (required)
	Credits    float64 `json:"credits" db:"credits" example:"3"`                                   // Non-negative credit weight
	Semester   int     `json:"semester" db:"semester" example:"1"`                                 // Semester index into the plan's semester list
	Grade      Grade   `json:"grade,omitempty" db:"grade" example:"A"`                             // Optional letter grade; empty = not graded
	Section    *string `json:"section,omitempty" db:"section" example:"01"`                        // Nullable
	Timing     *string `json:"timing,omitempty" db:"timing" example:"MWF 10:00 AM - 11:00 AM"`     // Nullable
	Difficulty *int    `json:"difficulty,omitempty" db:"difficulty" example:"3"`                   // Optional 1-5, display only

	CreatedAt time.Time `json:"createdAt" db:"created_at"` // Set by the editing layer
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"` // Set by the editing layer
}
