package skills

import (
	"math"

	"github.com/osukit/diffcalc/app/beatmap/difficulty"
	"github.com/osukit/diffcalc/app/rulesets/osu/preprocessing"
	"github.com/osukit/diffcalc/app/rulesets/strains"
)

const (
	aimSkillMultiplier  float64 = 23.55
	aimStrainDecayBase  float64 = 0.15
	wideAngleThreshold  float64 = math.Pi / 3
	wideAngleMultiplier float64 = 0.35
)

type AimSkill struct {
	*strains.Skill
	withSliders   bool
	CurrentStrain float64

	lastStartTime float64
}

func NewAimSkill(d *difficulty.Difficulty, withSliders bool) *AimSkill {
	skill := &AimSkill{Skill: strains.NewSkill("aim"), withSliders: withSliders}

	skill.CalculateInitialStrain = skill.aimInitialStrain

	return skill
}

func (skill *AimSkill) strainDecay(ms float64) float64 {
	return math.Pow(aimStrainDecayBase, ms/1000)
}

func (skill *AimSkill) aimInitialStrain(sectionStart float64) float64 {
	return skill.CurrentStrain * skill.strainDecay(sectionStart-skill.lastStartTime)
}

func (skill *AimSkill) Process(current *preprocessing.DifficultyObject) {
	skill.CurrentStrain *= skill.strainDecay(current.DeltaTime)
	skill.CurrentStrain += evaluateAim(current, skill.withSliders) * aimSkillMultiplier

	skill.AddStrain(current.StartTime, skill.CurrentStrain)
	skill.lastStartTime = current.StartTime
}

func evaluateAim(current *preprocessing.DifficultyObject, withSliders bool) float64 {
	if current.IsSpinner {
		return 0
	}

	velocity := current.JumpDistance / current.StrainTime

	if withSliders {
		if prev := current.Previous(0); prev != nil && prev.IsSlider {
			// following the previous slider body adds to the jump
			travelVelocity := (current.JumpDistance + prev.TravelDistance) / (current.StrainTime + prev.TravelTime)
			velocity = math.Max(velocity, travelVelocity)
		}
	}

	// sharp direction changes on spaced jumps are harder to aim
	if !math.IsNaN(current.Angle) && current.Angle > wideAngleThreshold && current.JumpDistance > preprocessing.NormalizedRadius {
		angleBonus := math.Sin((current.Angle - wideAngleThreshold) / (math.Pi - wideAngleThreshold) * math.Pi / 2)
		velocity += velocity * wideAngleMultiplier * angleBonus * angleBonus
	}

	return velocity
}
