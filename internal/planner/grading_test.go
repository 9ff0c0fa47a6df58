package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Adoxcol/uniplanfinal/internal/app/models"
)

func TestDefaultPolicyPoints(t *testing.T) {
	p := DefaultPolicy()

	assert.Equal(t, 4.0, p.PointsFor(models.GradeA))
	assert.Equal(t, 3.0, p.PointsFor(models.GradeB))
	assert.Equal(t, 2.0, p.PointsFor(models.GradeC))
	assert.Equal(t, 1.0, p.PointsFor(models.GradeD))
	assert.Equal(t, 0.0, p.PointsFor(models.GradeF))
	assert.Equal(t, 0.0, p.PointsFor(models.GradeW))
	assert.Equal(t, 0.0, p.PointsFor(""))
	assert.Equal(t, 0.0, p.PointsFor("X"))
}

func TestDefaultPolicyCountable(t *testing.T) {
	p := DefaultPolicy()

	t.Run("F counts toward GPA even though it is worth zero points", func(t *testing.T) {
		assert.True(t, p.Countable(models.GradeF))
	})

	t.Run("W and unset are excluded from the denominator", func(t *testing.T) {
		assert.False(t, p.Countable(models.GradeW))
		assert.False(t, p.Countable(""))
	})

	t.Run("unknown symbols never count", func(t *testing.T) {
		assert.False(t, p.Countable("P"))
	})
}

func TestCustomPolicy(t *testing.T) {
	// A pass/fail institution: P counts at full points, everything else is off.
	p := Policy{
		"P": {Points: 4.0, Countable: true},
		"N": {Points: 0.0, Countable: true},
	}

	assert.Equal(t, 4.0, p.PointsFor("P"))
	assert.True(t, p.Countable("N"))
	assert.False(t, p.Countable(models.GradeA))
	assert.Equal(t, 0.0, p.PointsFor(models.GradeA))
}
