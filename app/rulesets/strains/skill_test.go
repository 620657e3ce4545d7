package strains

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStrainPeaksSectioning(t *testing.T) {
	skill := NewSkill("test")

	// objects at 100, 300, 500 and 900ms fall into sections [0,400] and (400,800] and (800,1200]
	skill.AddStrain(100, 1)
	skill.AddStrain(300, 2)
	skill.AddStrain(500, 3)
	skill.AddStrain(900, 1.5)

	peaks := skill.StrainPeaks()

	assert.Equal(t, []float64{2, 3, 1.5}, peaks)
}

func TestStrainPeaksCarryInitialStrain(t *testing.T) {
	skill := NewSkill("test")
	skill.CalculateInitialStrain = func(sectionStart float64) float64 {
		return 10
	}

	skill.AddStrain(100, 1)
	// skips past two section borders, every new section seeded at 10
	skill.AddStrain(1300, 2)

	assert.Equal(t, []float64{1, 10, 10, 10}, skill.StrainPeaks())
}

func TestDifficultyValueWeighsPeaksDown(t *testing.T) {
	skill := NewSkill("test")
	skill.ReducedSectionCount = 0

	skill.AddStrain(100, 4)
	skill.AddStrain(500, 2)

	// 4*1 + 2*0.9
	assert.InDelta(t, 5.8, skill.DifficultyValue(), 1e-9)
}

func TestDifficultyValueEmpty(t *testing.T) {
	skill := NewSkill("test")

	assert.Equal(t, 0.0, skill.DifficultyValue())
	assert.Empty(t, skill.StrainPeaks())
	assert.Equal(t, 0.0, skill.CountDifficultStrains())
}

func TestCountDifficultStrains(t *testing.T) {
	skill := NewSkill("test")

	for i := 0; i < 10; i++ {
		skill.AddStrain(float64(i)*400+100, 10)
	}

	// every section sits at the maximum: 10 * 1.1/(1+e^-1.2)
	assert.InDelta(t, 8.45, skill.CountDifficultStrains(), 0.05)
}
