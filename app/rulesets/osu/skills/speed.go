package skills

import (
	"math"

	"github.com/osukit/diffcalc/app/beatmap/difficulty"
	"github.com/osukit/diffcalc/app/rulesets/osu/preprocessing"
	"github.com/osukit/diffcalc/app/rulesets/strains"
)

const (
	speedSkillMultiplier float64 = 1.375
	speedStrainDecayBase float64 = 0.3

	// deltas shorter than this get a tapping speed bonus
	minSpeedBonusTime    float64 = 75
	speedBalancingFactor float64 = 40

	singleSpacingThreshold float64 = 125
)

type SpeedSkill struct {
	*strains.Skill
	CurrentStrain float64

	lastStartTime float64
}

func NewSpeedSkill(d *difficulty.Difficulty) *SpeedSkill {
	skill := &SpeedSkill{Skill: strains.NewSkill("speed")}

	skill.CalculateInitialStrain = skill.speedInitialStrain

	return skill
}

func (skill *SpeedSkill) strainDecay(ms float64) float64 {
	return math.Pow(speedStrainDecayBase, ms/1000)
}

func (skill *SpeedSkill) speedInitialStrain(sectionStart float64) float64 {
	return skill.CurrentStrain * skill.strainDecay(sectionStart-skill.lastStartTime)
}

func (skill *SpeedSkill) Process(current *preprocessing.DifficultyObject) {
	skill.CurrentStrain *= skill.strainDecay(current.DeltaTime)
	skill.CurrentStrain += evaluateSpeed(current) * speedSkillMultiplier

	skill.AddStrain(current.StartTime, skill.CurrentStrain)
	skill.lastStartTime = current.StartTime
}

// RelevantNoteCount counts objects whose strain is comparable to the
// hardest tapping moments, an estimate of how much of the map is "fast".
func (skill *SpeedSkill) RelevantNoteCount() float64 {
	objectStrains := skill.ObjectStrains()

	maxStrain := 0.0
	for _, strain := range objectStrains {
		maxStrain = math.Max(maxStrain, strain)
	}

	if maxStrain == 0 {
		return 0
	}

	count := 0.0
	for _, strain := range objectStrains {
		count += 1.0 / (1.0 + math.Exp(-(strain/maxStrain*12.0 - 6.0)))
	}

	return count
}

func evaluateSpeed(current *preprocessing.DifficultyObject) float64 {
	if current.IsSpinner {
		return 0
	}

	speedBonus := 1.0
	if current.StrainTime < minSpeedBonusTime {
		excess := (minSpeedBonusTime - current.StrainTime) / speedBalancingFactor
		speedBonus = 1 + 0.75*excess*excess
	}

	distance := math.Min(current.JumpDistance, singleSpacingThreshold)
	distanceBonus := math.Pow(distance/singleSpacingThreshold, 3.5) * 0.5

	return (speedBonus + speedBonus*distanceBonus) * 1000 / current.StrainTime
}
