package models

// Grade is a letter grade recorded for a course. An empty Grade means the
// course has not been graded yet.
type Grade string

// Letter grades recognized by the default grading policy.
const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
	GradeW Grade = "W" // Withdrawn; never counts toward GPA
)

// KnownGrades lists every grade symbol accepted on a course.
var KnownGrades = []Grade{GradeA, GradeB, GradeC, GradeD, GradeF, GradeW}

// IsKnown reports whether g is one of the recognized grade symbols.
// The empty grade is valid on a course but is not a known symbol.
func (g Grade) IsKnown() bool {
	for _, k := range KnownGrades {
		if g == k {
			return true
		}
	}
	return false
}

// DefaultSemesterCount is the number of semesters a new plan starts with.
const DefaultSemesterCount = 12

// MaxSemesters is the hard cap on the semester list of a plan.
const MaxSemesters = 15

// MaxPlansPerUser caps how many plans a single user may own.
const MaxPlansPerUser = 3

// DefaultSemesters returns the initial semester sequence [1..DefaultSemesterCount].
func DefaultSemesters() []int {
	s := make([]int, DefaultSemesterCount)
	for i := range s {
		s[i] = i + 1
	}
	return s
}
