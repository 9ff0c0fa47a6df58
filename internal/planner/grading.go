package planner

import (
	"github.com/Adoxcol/uniplanfinal/internal/app/models"
)

// GradeWeight maps a grade symbol to quality points and says whether the
// symbol participates in the GPA denominator. "Contributes zero quality
// points" (F) and "does not count toward GPA" (W, unset) are different
// things and must stay separate.
type GradeWeight struct {
	Points    float64
	Countable bool
}

// Policy is an institution's grading policy: a mapping from grade symbol to
// weight. Policies are plain values so an institution-specific mapping can be
// swapped in wherever the default is used.
type Policy map[models.Grade]GradeWeight

// DefaultPolicy returns the standard 4.0-scale policy. W appears in the
// mapping but is not GPA-countable.
func DefaultPolicy() Policy {
	return Policy{
		models.GradeA: {Points: 4.0, Countable: true},
		models.GradeB: {Points: 3.0, Countable: true},
		models.GradeC: {Points: 2.0, Countable: true},
		models.GradeD: {Points: 1.0, Countable: true},
		models.GradeF: {Points: 0.0, Countable: true},
		models.GradeW: {Points: 0.0, Countable: false},
	}
}

// PointsFor returns the quality points for a grade. Any symbol outside the
// policy, including the empty (unset) grade, yields 0.
func (p Policy) PointsFor(grade models.Grade) float64 {
	w, ok := p[grade]
	if !ok {
		return 0
	}
	return w.Points
}

// Countable reports whether a grade participates in the GPA denominator.
// Unset grades and symbols outside the policy never count.
func (p Policy) Countable(grade models.Grade) bool {
	if grade == "" {
		return false
	}
	w, ok := p[grade]
	return ok && w.Countable
}
