package osu

import (
	"errors"
	"math"

	"github.com/osukit/diffcalc/app/beatmap"
	"github.com/osukit/diffcalc/app/beatmap/difficulty"
	"github.com/osukit/diffcalc/app/beatmap/objects"
	"github.com/osukit/diffcalc/app/rulesets/api"
	"github.com/osukit/diffcalc/app/rulesets/osu/preprocessing"
)

const (
	// StarScalingFactor is a global stars multiplier
	StarScalingFactor float64 = 0.0675
	CurrentVersion    int     = 20240412

	performanceBaseMultiplier float64 = 1.14
)

// DifficultyCalculator drives the osu!standard strain skills over one map.
// Process accumulates skill state; Attributes reads it back out, so both
// must run on the same instance.
type DifficultyCalculator struct {
	bMap *beatmap.Beatmap
	diff *difficulty.Difficulty

	skills    *SkillsProcessor
	processed bool

	objectCount int
	circles     int
	sliders     int
	spinners    int
	maxCombo    int
}

func NewDifficultyCalculator(bMap *beatmap.Beatmap, diff *difficulty.Difficulty) (api.IDifficultyCalculator, error) {
	if bMap.Mode != 0 {
		return nil, errors.New("only maps made for osu!standard can be calculated with the osu! ruleset")
	}

	return &DifficultyCalculator{
		bMap:   bMap,
		diff:   diff,
		skills: NewSkillsProcessor(diff),
	}, nil
}

func (diffCalc *DifficultyCalculator) addObjectToAttribs(o objects.IHitObject) {
	if s, ok := o.(*objects.Slider); ok {
		diffCalc.sliders++
		diffCalc.maxCombo += s.ScorePoints
	} else if _, ok := o.(*objects.Circle); ok {
		diffCalc.circles++
	} else if _, ok := o.(*objects.Spinner); ok {
		diffCalc.spinners++
	}

	diffCalc.maxCombo++
	diffCalc.objectCount++
}

// Process runs the strain pass over the whole map.
func (diffCalc *DifficultyCalculator) Process() error {
	if diffCalc.processed {
		return errors.New("calculator state has already been built")
	}

	diffObjects := preprocessing.CreateDifficultyObjects(diffCalc.bMap.HitObjects, diffCalc.diff)

	diffCalc.addObjectToAttribs(diffCalc.bMap.HitObjects[0])

	for i, o := range diffObjects {
		diffCalc.addObjectToAttribs(diffCalc.bMap.HitObjects[i+1])

		diffCalc.skills.Process(o)
	}

	diffCalc.processed = true

	return nil
}

// Attributes converts the accumulated skill values to the final ratings.
func (diffCalc *DifficultyCalculator) Attributes() (api.Attributes, error) {
	if !diffCalc.processed {
		return api.Attributes{}, errors.New("calculator state has not been built yet")
	}

	diff := diffCalc.diff

	aimRating := math.Sqrt(diffCalc.skills.Aim.DifficultyValue()) * StarScalingFactor
	aimRatingNoSliders := math.Sqrt(diffCalc.skills.AimWithoutSliders.DifficultyValue()) * StarScalingFactor
	speedRating := math.Sqrt(diffCalc.skills.Speed.DifficultyValue()) * StarScalingFactor
	flashlightRating := math.Sqrt(diffCalc.skills.Flashlight.DifficultyValue()) * StarScalingFactor

	sliderFactor := 1.0
	if aimRating > 0.00001 {
		sliderFactor = aimRatingNoSliders / aimRating
	}

	if diff.CheckModActive(difficulty.TouchDevice) {
		aimRating = math.Pow(aimRating, 0.8)
		flashlightRating = math.Pow(flashlightRating, 0.8)
	}

	if diff.CheckModActive(difficulty.Relax) {
		aimRating *= 0.9
		speedRating = 0
		flashlightRating *= 0.7
	}

	baseAimPerformance := difficultyToPerformance(aimRating)
	baseSpeedPerformance := difficultyToPerformance(speedRating)

	baseFlashlightPerformance := 0.0
	if diff.CheckModActive(difficulty.Flashlight) {
		baseFlashlightPerformance = math.Pow(flashlightRating, 2) * 25.0
	}

	basePerformance := math.Pow(
		math.Pow(baseAimPerformance, 1.1)+
			math.Pow(baseSpeedPerformance, 1.1)+
			math.Pow(baseFlashlightPerformance, 1.1),
		1.0/1.1,
	)

	var total float64
	if basePerformance > 0.00001 {
		total = math.Cbrt(performanceBaseMultiplier) * 0.027 * (math.Cbrt(100000/math.Pow(2, 1/1.1)*basePerformance) + 4)
	}

	attr := api.NewAttributes()
	attr.Set("star_rating", total)
	attr.Set("aim_difficulty", aimRating)
	attr.Set("speed_difficulty", speedRating)
	attr.Set("speed_note_count", diffCalc.skills.Speed.RelevantNoteCount())
	attr.Set("flashlight_difficulty", flashlightRating)
	attr.Set("slider_factor", sliderFactor)
	attr.Set("approach_rate", diff.ARReal())
	attr.Set("overall_difficulty", diff.ODReal())
	attr.Set("max_combo", float64(diffCalc.maxCombo))

	return attr, nil
}

// SkillState exposes the strain trackers in their natural skill order.
func (diffCalc *DifficultyCalculator) SkillState() []api.ISkillTracker {
	return []api.ISkillTracker{
		diffCalc.skills.Aim,
		diffCalc.skills.Speed,
		diffCalc.skills.Flashlight,
	}
}

func difficultyToPerformance(diff float64) float64 {
	return math.Pow(5.0*math.Max(1.0, diff/0.0675)-4.0, 3.0) / 100000.0
}
