package beatmap

import (
	"fmt"

	"github.com/osukit/diffcalc/app/beatmap/objects"
)

// Beatmap is one parsed .osu difficulty.
type Beatmap struct {
	Path string
	MD5  string

	FormatVersion int

	// Mode is the legacy ruleset id the map was made for (0 osu!, 1 taiko,
	// 2 catch, 3 mania)
	Mode int

	Title   string
	Artist  string
	Creator string
	Version string

	ID    int64
	SetID int64

	HPDrainRate       float64
	CircleSize        float64
	OverallDifficulty float64
	ApproachRate      float64

	SliderMultiplier float64
	SliderTickRate   float64

	Timings    Timings
	HitObjects []objects.IHitObject
}

// Name returns the display name used in reports.
func (b *Beatmap) Name() string {
	return fmt.Sprintf("%s - %s [%s]", b.Artist, b.Title, b.Version)
}

// Length returns the drain time between the first and last object in ms.
func (b *Beatmap) Length() float64 {
	if len(b.HitObjects) == 0 {
		return 0
	}

	first := b.HitObjects[0]
	last := b.HitObjects[len(b.HitObjects)-1]

	return last.GetEndTime() - first.GetStartTime()
}

// TimingPoint is either an uninherited point (BeatLength > 0) or an
// inherited slider velocity change.
type TimingPoint struct {
	Time       float64
	BeatLength float64
	Inherited  bool
}

type Timings struct {
	points []TimingPoint
}

func (t *Timings) Add(point TimingPoint) {
	t.points = append(t.points, point)
}

// BeatLengthAt returns the active uninherited beat length at the given time.
func (t *Timings) BeatLengthAt(time float64) float64 {
	beatLength := 500.0

	for _, point := range t.points {
		if point.Inherited || point.Time > time {
			if point.Time > time {
				break
			}

			continue
		}

		beatLength = point.BeatLength
	}

	return beatLength
}

// VelocityAt returns the slider velocity multiplier active at the given time.
func (t *Timings) VelocityAt(time float64) float64 {
	velocity := 1.0

	for _, point := range t.points {
		if point.Time > time {
			break
		}

		if point.Inherited {
			velocity = -100 / point.BeatLength
		} else {
			velocity = 1.0
		}
	}

	return velocity
}
