package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Adoxcol/uniplanfinal/internal/app/models"
)

func course(credits float64, grade models.Grade) models.Course {
	return models.Course{Credits: credits, Grade: grade}
}

func TestAggregateNoGradedCourses(t *testing.T) {
	p := DefaultPolicy()

	t.Run("empty collection", func(t *testing.T) {
		stats := p.Aggregate(nil, 120)
		assert.Equal(t, 0.0, stats.TotalCredits)
		assert.Equal(t, "0.00", stats.GPA)
		assert.Equal(t, 0, stats.CompletionPercent)
	})

	t.Run("ungraded and withdrawn only", func(t *testing.T) {
		stats := p.Aggregate([]models.Course{
			course(3, ""),
			course(4, models.GradeW),
		}, 120)
		assert.Equal(t, 7.0, stats.TotalCredits)
		assert.Equal(t, "0.00", stats.GPA)
	})
}

func TestAggregateTotalCreditsIgnoresGrades(t *testing.T) {
	p := DefaultPolicy()
	courses := []models.Course{
		course(3, models.GradeA),
		course(4, ""),
		course(2, models.GradeW),
		course(1, models.GradeF),
	}

	stats := p.Aggregate(courses, 120)
	assert.Equal(t, 10.0, stats.TotalCredits)

	t.Run("insensitive to ordering", func(t *testing.T) {
		reversed := []models.Course{courses[3], courses[2], courses[1], courses[0]}
		assert.Equal(t, stats, p.Aggregate(reversed, 120))
	})
}

func TestAggregateAllA(t *testing.T) {
	p := DefaultPolicy()
	stats := p.Aggregate([]models.Course{
		course(3, models.GradeA),
		course(4, models.GradeA),
		course(5, models.GradeA),
	}, 120)
	assert.Equal(t, "4.00", stats.GPA)
}

func TestAggregateWeightedScenario(t *testing.T) {
	// (3x4.0 + 4x3.0) / (3+4) = 3.4285... -> "3.43"; W excluded entirely.
	p := DefaultPolicy()
	stats := p.Aggregate([]models.Course{
		course(3, models.GradeA),
		course(4, models.GradeB),
		course(3, models.GradeW),
	}, 120)

	assert.Equal(t, "3.43", stats.GPA)
	assert.Equal(t, 10.0, stats.TotalCredits)
}

func TestAggregateCompletionNotClamped(t *testing.T) {
	p := DefaultPolicy()
	stats := p.Aggregate([]models.Course{
		course(150, ""),
	}, 120)
	assert.Equal(t, 125, stats.CompletionPercent)
}

func TestAggregateCompletionRounds(t *testing.T) {
	p := DefaultPolicy()

	// 50/120 = 41.66% -> 42
	stats := p.Aggregate([]models.Course{course(50, "")}, 120)
	assert.Equal(t, 42, stats.CompletionPercent)
}

func TestAggregateIsIdempotent(t *testing.T) {
	p := DefaultPolicy()
	courses := []models.Course{
		course(3, models.GradeA),
		course(4, models.GradeC),
	}

	first := p.Aggregate(courses, 120)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, p.Aggregate(courses, 120))
	}
}
