package mania

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

	starScalingFactor float64 = 0.11
	strainMultiplier  float64 = 1.0
	strainDecayBase   float64 = 0.3

	chordBonus float64 = 0.4
)

// DifficultyCalculator rates key-mania maps on note density, with chords
// (notes sharing a timestamp) weighted extra.
type DifficultyCalculator struct {
	bMap *beatmap.Beatmap
	diff *difficulty.Difficulty

	notes *noteSkill

	processed bool
	noteCount int
}

func NewDifficultyCalculator(bMap *beatmap.Beatmap, diff *difficulty.Difficulty) (api.IDifficultyCalculator, error) {
	if bMap.Mode != 0 && bMap.Mode != 3 {
		return nil, errors.New("the map was made for another ruleset and cannot convert to mania")
	}

	return &DifficultyCalculator{
		bMap:  bMap,
		diff:  diff,
		notes: newNoteSkill(),
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

		diffCalc.notes.process(startTime, deltaTime)
	}

	diffCalc.processed = true

	return nil
}

func (diffCalc *DifficultyCalculator) Attributes() (api.Attributes, error) {
	if !diffCalc.processed {
		return api.Attributes{}, errors.New("calculator state has not been built yet")
	}

	total := math.Sqrt(diffCalc.notes.DifficultyValue()) * starScalingFactor

	attr := api.NewAttributes()
	attr.Set("star_rating", total)
	attr.Set("great_hit_window", diffCalc.diff.Hit300/diffCalc.diff.Speed)
	attr.Set("max_combo", float64(diffCalc.noteCount))

	return attr, nil
}

func (diffCalc *DifficultyCalculator) SkillState() []api.ISkillTracker {
	return []api.ISkillTracker{diffCalc.notes.Skill}
}

type noteSkill struct {
	*strains.Skill
	currentStrain float64
	lastStartTime float64
}

func newNoteSkill() *noteSkill {
	skill := &noteSkill{Skill: strains.NewSkill("notes")}

	skill.CalculateInitialStrain = func(sectionStart float64) float64 {
		return skill.currentStrain * math.Pow(strainDecayBase, (sectionStart-skill.lastStartTime)/1000)
	}

	return skill
}

func (skill *noteSkill) process(startTime, deltaTime float64) {
	strainTime := math.Max(deltaTime, 1)

	value := 1000 / strainTime * strainMultiplier
	if deltaTime < 1 {
		// simultaneous notes form a chord
		value *= 1 + chordBonus
	}

	skill.currentStrain *= math.Pow(strainDecayBase, deltaTime/1000)
	skill.currentStrain += value

	skill.AddStrain(startTime, skill.currentStrain)
	skill.lastStartTime = startTime
}
