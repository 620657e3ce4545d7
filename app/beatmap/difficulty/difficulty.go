package difficulty

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	// PreemptMid is the approach duration at AR5, the pivot of both scaling branches
	PreemptMid  = 1200.0
	fadeInBase  = 400.0
	fadeInBelow = 450.0
)

// Difficulty holds a beatmap's base settings with modifiers applied.
// All derived values (windows, preempt, radius) are in unadjusted map
// time; consumers divide by Speed where rate-adjusted values are needed.
type Difficulty struct {
	Mods Modifier

	// Speed is the clock rate multiplier (1.5 for DT/NC, 0.75 for HT/DC)
	Speed float64

	HP float64
	CS float64
	OD float64
	AR float64

	Preempt    float64
	TimeFadeIn float64

	Hit300 float64
	Hit100 float64
	Hit50  float64

	CircleRadius float64
}

// NewDifficulty applies mods to the base HP/CS/OD/AR of a beatmap and
// derives the dependent gameplay values.
func NewDifficulty(hp, cs, od, ar float64, mods Modifier) *Difficulty {
	diff := &Difficulty{Mods: mods, Speed: 1}

	if mods.Active(DoubleTime | Nightcore) {
		diff.Speed = 1.5
	} else if mods.Active(HalfTime | Daycore) {
		diff.Speed = 0.75
	}

	scale := 1.0
	csScale := 1.0

	if mods.Active(HardRock) {
		scale = 1.4
		csScale = 1.3
	} else if mods.Active(Easy) {
		scale = 0.5
		csScale = 0.5
	}

	diff.HP = math.Min(hp*scale, 10)
	diff.CS = math.Min(cs*csScale, 10)
	diff.OD = math.Min(od*scale, 10)
	diff.AR = math.Min(ar*scale, 10)

	diff.Preempt = DifficultyRate(diff.AR, 1800, PreemptMid, 450)
	diff.TimeFadeIn = fadeInBase * math.Min(1, diff.Preempt/fadeInBelow)

	diff.Hit300 = 80 - 6*diff.OD
	diff.Hit100 = 140 - 8*diff.OD
	diff.Hit50 = 200 - 10*diff.OD

	diff.CircleRadius = 54.4 - 4.48*diff.CS

	return diff
}

func (diff *Difficulty) CheckModActive(mod Modifier) bool {
	return diff.Mods.Active(mod)
}

// ARReal returns the approach rate the map effectively plays at once the
// clock rate is accounted for.
func (diff *Difficulty) ARReal() float64 {
	return PreemptToAR(diff.Preempt / diff.Speed)
}

// ODReal is the rate-adjusted overall difficulty.
func (diff *Difficulty) ODReal() float64 {
	return (80 - diff.Hit300/diff.Speed) / 6
}

// DifficultyRate maps a 0-10 difficulty value onto its millisecond range,
// linear on both sides of value 5.
func DifficultyRate(value, min, mid, max float64) float64 {
	if value > 5 {
		return mid + (max-mid)*(value-5)/5
	}

	if value < 5 {
		return mid - (mid-min)*(5-value)/5
	}

	return mid
}

// PreemptToAR inverts DifficultyRate for the approach window.
func PreemptToAR(preempt float64) float64 {
	if preempt > PreemptMid {
		return 5 - (preempt-PreemptMid)/(1800-PreemptMid)*5
	}

	return 5 + (PreemptMid-preempt)/(PreemptMid-450)*5
}

// Clamp01 bounds v to the unit interval.
func Clamp01(v float64) float64 {
	return mgl64.Clamp(v, 0, 1)
}
