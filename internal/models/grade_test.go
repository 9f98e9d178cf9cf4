package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateGradeThresholds(t *testing.T) {
	cases := []struct {
		mark int
		want Grade
	}{
		{0, GradeF},
		{49, GradeF},
		{50, GradeP},
		{64, GradeP},
		{65, GradeC},
		{74, GradeC},
		{75, GradeD},
		{84, GradeD},
		{85, GradeHD},
		{100, GradeHD},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CalculateGrade(tc.mark), "mark %d", tc.mark)
	}
}

func TestCalculateGradeMonotone(t *testing.T) {
	prev := CalculateGrade(0)
	for mark := 1; mark <= 100; mark++ {
		grade := CalculateGrade(mark)
		require.GreaterOrEqual(t, grade.Rank(), prev.Rank(), "grade must not decrease at mark %d", mark)
		prev = grade
	}
}

func TestGradeRankOrder(t *testing.T) {
	assert.Greater(t, GradeHD.Rank(), GradeD.Rank())
	assert.Greater(t, GradeD.Rank(), GradeC.Rank())
	assert.Greater(t, GradeC.Rank(), GradeP.Rank())
	assert.Greater(t, GradeP.Rank(), GradeF.Rank())
	assert.Less(t, GradeNA.Rank(), GradeF.Rank())
}
