package skills

import (
	"math"

	"github.com/osukit/diffcalc/app/beatmap/difficulty"
	"github.com/osukit/diffcalc/app/rulesets/osu/preprocessing"
	"github.com/osukit/diffcalc/app/rulesets/strains"
)

const (
	flashlightSkillMultiplier float64 = 0.052
	flashlightStrainDecayBase float64 = 0.15

	// how many previous objects contribute to the memory component
	flashlightHistoryLength = 10
)

type Flashlight struct {
	*strains.Skill
	CurrentStrain float64

	hasHidden     bool
	lastStartTime float64
}

func NewFlashlightSkill(d *difficulty.Difficulty) *Flashlight {
	skill := &Flashlight{
		Skill:     strains.NewSkill("flashlight"),
		hasHidden: d.CheckModActive(difficulty.Hidden),
	}

	skill.CalculateInitialStrain = skill.flashlightInitialStrain

	return skill
}

func (skill *Flashlight) strainDecay(ms float64) float64 {
	return math.Pow(flashlightStrainDecayBase, ms/1000)
}

func (skill *Flashlight) flashlightInitialStrain(sectionStart float64) float64 {
	return skill.CurrentStrain * skill.strainDecay(sectionStart-skill.lastStartTime)
}

func (skill *Flashlight) Process(current *preprocessing.DifficultyObject) {
	skill.CurrentStrain *= skill.strainDecay(current.DeltaTime)
	skill.CurrentStrain += skill.evaluateFlashlight(current) * flashlightSkillMultiplier

	skill.AddStrain(current.StartTime, skill.CurrentStrain)
	skill.lastStartTime = current.StartTime
}

// evaluateFlashlight rewards jumps whose origin the player has to recall
// from memory, weighting recent objects by how long ago they were visible.
func (skill *Flashlight) evaluateFlashlight(current *preprocessing.DifficultyObject) float64 {
	if current.IsSpinner {
		return 0
	}

	result := 0.0
	cumulativeStrainTime := 0.0

	for i := 0; i < flashlightHistoryLength; i++ {
		previous := current.Previous(i)
		if previous == nil {
			break
		}

		cumulativeStrainTime += previous.StrainTime

		if previous.IsSpinner || cumulativeStrainTime == 0 {
			continue
		}

		result += previous.JumpDistance / cumulativeStrainTime
	}

	result += current.JumpDistance / current.StrainTime

	if skill.hasHidden {
		result *= 1.2
	}

	return result
}
