package planner

import (
	"fmt"
	"math"

	"github.com/Adoxcol/uniplanfinal/internal/app/models"
)

// Stats holds the derived statistics of a course collection.
type Stats struct {
	// TotalCredits is the sum of credits over all courses, graded or not.
	TotalCredits float64 `json:"totalCredits"`
	// GPA is the credit-weighted grade average over countable courses,
	// formatted to two decimals. "0.00" when nothing is countable.
	GPA string `json:"gpa"`
	// CompletionPercent is TotalCredits over the degree's required credits,
	// rounded to the nearest integer. Not clamped: a plan exceeding the
	// requirement legitimately reports more than 100.
	CompletionPercent int `json:"completionPercent"`
}

// Aggregate derives Stats from a course collection against the degree's
// required credit total. Pure and order-insensitive; safe to call on every
// snapshot.
func (p Policy) Aggregate(courses []models.Course, maxCredits float64) Stats {
	var totalCredits, qualityPoints, gpaCredits float64
	for _, c := range courses {
		totalCredits += c.Credits
		if p.Countable(c.Grade) {
			qualityPoints += p.PointsFor(c.Grade) * c.Credits
			gpaCredits += c.Credits
		}
	}

	gpa := "0.00"
	if gpaCredits > 0 {
		gpa = fmt.Sprintf("%.2f", qualityPoints/gpaCredits)
	}

	completion := 0
	if maxCredits > 0 {
		completion = int(math.Round(totalCredits / maxCredits * 100))
	}

	return Stats{
		TotalCredits:      totalCredits,
		GPA:               gpa,
		CompletionPercent: completion,
	}
}
