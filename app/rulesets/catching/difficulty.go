package catching

import (
	"errors"
	"math"

	"github.com/osukit/diffcalc/app/beatmap"
	"github.com/osukit/diffcalc/app/beatmap/difficulty"
	"github.com/osukit/diffcalc/app/rulesets/api"
	"github.com/osukit/diffcalc/app/rulesets/strains"
)

const (
	CurrentVersion int = 20240412

	starScalingFactor  float64 = 0.153
	movementMultiplier float64 = 0.95
	movementDecayBase  float64 = 0.2

	// the catcher plate covers roughly this many osu!pixels at CS5
	baseCatcherWidth float64 = 106
)

// DifficultyCalculator rates fruit-catching maps on horizontal catcher
// movement. Only the x coordinate of each object matters.
type DifficultyCalculator struct {
	bMap *beatmap.Beatmap
	diff *difficulty.Difficulty

	movement *movementSkill

	processed  bool
	fruitCount int
}

func NewDifficultyCalculator(bMap *beatmap.Beatmap, diff *difficulty.Difficulty) (api.IDifficultyCalculator, error) {
	if bMap.Mode != 0 && bMap.Mode != 2 {
		return nil, errors.New("the map was made for another ruleset and cannot convert to catch")
	}

	return &DifficultyCalculator{
		bMap:     bMap,
		diff:     diff,
		movement: newMovementSkill(bMap.CircleSize),
	}, nil
}

func (diffCalc *DifficultyCalculator) Process() error {
	if diffCalc.processed {
		return errors.New("calculator state has already been built")
	}

	hitObjects := diffCalc.bMap.HitObjects
	speed := diffCalc.diff.Speed

	diffCalc.fruitCount = len(hitObjects)

	for i := 1; i < len(hitObjects); i++ {
		deltaTime := (hitObjects[i].GetStartTime() - hitObjects[i-1].GetStartTime()) / speed
		startTime := hitObjects[i].GetStartTime() / speed
		distance := math.Abs(hitObjects[i].GetStartPosition().X() - hitObjects[i-1].GetEndPosition().X())

		diffCalc.movement.process(startTime, deltaTime, distance)
	}

	diffCalc.processed = true

	return nil
}

func (diffCalc *DifficultyCalculator) Attributes() (api.Attributes, error) {
	if !diffCalc.processed {
		return api.Attributes{}, errors.New("calculator state has not been built yet")
	}

	total := math.Sqrt(diffCalc.movement.DifficultyValue()) * starScalingFactor

	attr := api.NewAttributes()
	attr.Set("star_rating", total)
	attr.Set("approach_rate", diffCalc.diff.ARReal())
	attr.Set("max_combo", float64(diffCalc.fruitCount))

	return attr, nil
}

func (diffCalc *DifficultyCalculator) SkillState() []api.ISkillTracker {
	return []api.ISkillTracker{diffCalc.movement.Skill}
}

type movementSkill struct {
	*strains.Skill

	catcherWidth  float64
	currentStrain float64
	lastStartTime float64
}

func newMovementSkill(circleSize float64) *movementSkill {
	skill := &movementSkill{
		Skill:        strains.NewSkill("movement"),
		catcherWidth: baseCatcherWidth * (1 - 0.7*(circleSize-5)/5),
	}

	skill.CalculateInitialStrain = func(sectionStart float64) float64 {
		return skill.currentStrain * math.Pow(movementDecayBase, (sectionStart-skill.lastStartTime)/1000)
	}

	return skill
}

// process scores movement beyond what the plate already covers, so stacked
// fruit cost nothing and full-playfield dashes cost the most.
func (skill *movementSkill) process(startTime, deltaTime, distance float64) {
	strainTime := math.Max(deltaTime, 40)

	effectiveDistance := math.Max(0, distance-skill.catcherWidth/2)

	skill.currentStrain *= math.Pow(movementDecayBase, deltaTime/1000)
	skill.currentStrain += effectiveDistance / strainTime * movementMultiplier * 10

	skill.AddStrain(startTime, skill.currentStrain)
	skill.lastStartTime = startTime
}
