package taiko

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

	starScalingFactor float64 = 0.084

	staminaSkillMultiplier float64 = 1.1
	staminaDecayBase       float64 = 0.4

	rhythmSkillMultiplier float64 = 0.35
	rhythmDecayBase       float64 = 0.2
)

// DifficultyCalculator rates drumming maps on tapping endurance and on how
// often the rhythm changes. osu!standard maps convert by keeping hit times.
type DifficultyCalculator struct {
	bMap *beatmap.Beatmap
	diff *difficulty.Difficulty

	stamina *staminaSkill
	rhythm  *rhythmSkill

	processed bool
	noteCount int
}

func NewDifficultyCalculator(bMap *beatmap.Beatmap, diff *difficulty.Difficulty) (api.IDifficultyCalculator, error) {
	if bMap.Mode != 0 && bMap.Mode != 1 {
		return nil, errors.New("the map was made for another ruleset and cannot convert to taiko")
	}

	return &DifficultyCalculator{
		bMap:    bMap,
		diff:    diff,
		stamina: newStaminaSkill(),
		rhythm:  newRhythmSkill(),
	}, nil
}

func (diffCalc *DifficultyCalculator) Process() error {
	if diffCalc.processed {
		return errors.New("calculator state has already been built")
	}

	hitObjects := diffCalc.bMap.HitObjects
	speed := diffCalc.diff.Speed

	diffCalc.noteCount = len(hitObjects)

	for i := 1; i < len(hitObjects); i++ {
		deltaTime := (hitObjects[i].GetStartTime() - hitObjects[i-1].GetStartTime()) / speed
		startTime := hitObjects[i].GetStartTime() / speed

		prevDelta := deltaTime
		if i > 1 {
			prevDelta = (hitObjects[i-1].GetStartTime() - hitObjects[i-2].GetStartTime()) / speed
		}

		diffCalc.stamina.process(startTime, deltaTime)
		diffCalc.rhythm.process(startTime, deltaTime, prevDelta)
	}

	diffCalc.processed = true

	return nil
}

func (diffCalc *DifficultyCalculator) Attributes() (api.Attributes, error) {
	if !diffCalc.processed {
		return api.Attributes{}, errors.New("calculator state has not been built yet")
	}

	staminaRating := math.Sqrt(diffCalc.stamina.DifficultyValue()) * starScalingFactor
	rhythmRating := math.Sqrt(diffCalc.rhythm.DifficultyValue()) * starScalingFactor

	total := math.Pow(math.Pow(staminaRating, 1.1)+math.Pow(rhythmRating, 1.1), 1/1.1) * 1.4

	attr := api.NewAttributes()
	attr.Set("star_rating", total)
	attr.Set("stamina_difficulty", staminaRating)
	attr.Set("rhythm_difficulty", rhythmRating)
	attr.Set("great_hit_window", diffCalc.diff.Hit300/diffCalc.diff.Speed)
	attr.Set("max_combo", float64(diffCalc.noteCount))

	return attr, nil
}

func (diffCalc *DifficultyCalculator) SkillState() []api.ISkillTracker {
	return []api.ISkillTracker{diffCalc.stamina.Skill, diffCalc.rhythm.Skill}
}

type staminaSkill struct {
	*strains.Skill
	currentStrain float64
	lastStartTime float64
}

func newStaminaSkill() *staminaSkill {
	skill := &staminaSkill{Skill: strains.NewSkill("stamina")}

	skill.CalculateInitialStrain = func(sectionStart float64) float64 {
		return skill.currentStrain * math.Pow(staminaDecayBase, (sectionStart-skill.lastStartTime)/1000)
	}

	return skill
}

func (skill *staminaSkill) process(startTime, deltaTime float64) {
	strainTime := math.Max(deltaTime, 25)

	skill.currentStrain *= math.Pow(staminaDecayBase, deltaTime/1000)
	skill.currentStrain += 1000 / strainTime * staminaSkillMultiplier

	skill.AddStrain(startTime, skill.currentStrain)
	skill.lastStartTime = startTime
}

type rhythmSkill struct {
	*strains.Skill
	currentStrain float64
	lastStartTime float64
}

func newRhythmSkill() *rhythmSkill {
	skill := &rhythmSkill{Skill: strains.NewSkill("rhythm")}

	skill.CalculateInitialStrain = func(sectionStart float64) float64 {
		return skill.currentStrain * math.Pow(rhythmDecayBase, (sectionStart-skill.lastStartTime)/1000)
	}

	return skill
}

// process rewards changes in note spacing: a steady beat contributes
// nothing, broken rhythms spike the strain.
func (skill *rhythmSkill) process(startTime, deltaTime, prevDelta float64) {
	ratio := 1.0
	if prevDelta > 0 && deltaTime > 0 {
		ratio = math.Max(deltaTime, prevDelta) / math.Min(deltaTime, prevDelta)
	}

	changeBonus := 0.0
	if ratio > 1.05 {
		changeBonus = math.Min(ratio-1, 1.5)
	}

	skill.currentStrain *= math.Pow(rhythmDecayBase, deltaTime/1000)
	skill.currentStrain += changeBonus * rhythmSkillMultiplier * 100

	skill.AddStrain(startTime, skill.currentStrain)
	skill.lastStartTime = startTime
}
