package preprocessing

import (
	"math"

	"github.com/osukit/diffcalc/app/beatmap/difficulty"
	"github.com/osukit/diffcalc/app/beatmap/objects"
)

const (
	NormalizedRadius        = 50.0
	CircleSizeBuffThreshold = 30.0
	MinDeltaTime            = 25.0
)

// DifficultyObject is the strain-model view of one hit object: times are
// clock-rate adjusted and distances normalized to a circle radius of 50.
type DifficultyObject struct {
	listOfDiffs *[]*DifficultyObject
	Index       int

	Diff *difficulty.Difficulty

	BaseObject objects.IHitObject

	IsSlider  bool
	IsSpinner bool

	lastObject     objects.IHitObject
	lastLastObject objects.IHitObject

	DeltaTime  float64
	StartTime  float64
	EndTime    float64
	StrainTime float64

	JumpDistance   float64
	TravelDistance float64
	TravelTime     float64

	Angle float64

	GreatWindow float64
}

// CreateDifficultyObjects preprocesses every object after the first.
func CreateDifficultyObjects(hitObjects []objects.IHitObject, diff *difficulty.Difficulty) []*DifficultyObject {
	diffObjects := make([]*DifficultyObject, 0, max(0, len(hitObjects)-1))

	for i := 1; i < len(hitObjects); i++ {
		var lastLast objects.IHitObject
		if i > 1 {
			lastLast = hitObjects[i-2]
		}

		obj := newDifficultyObject(hitObjects[i], lastLast, hitObjects[i-1], diff, &diffObjects, i-1)
		diffObjects = append(diffObjects, obj)
	}

	return diffObjects
}

func newDifficultyObject(hitObject, lastLastObject, lastObject objects.IHitObject, diff *difficulty.Difficulty, listOfDiffs *[]*DifficultyObject, index int) *DifficultyObject {
	obj := &DifficultyObject{
		listOfDiffs:    listOfDiffs,
		Index:          index,
		Diff:           diff,
		BaseObject:     hitObject,
		lastObject:     lastObject,
		lastLastObject: lastLastObject,
		DeltaTime:      (hitObject.GetStartTime() - lastObject.GetStartTime()) / diff.Speed,
		StartTime:      hitObject.GetStartTime() / diff.Speed,
		EndTime:        hitObject.GetEndTime() / diff.Speed,
		Angle:          math.NaN(),
		GreatWindow:    diff.Hit300 / diff.Speed,
	}

	if _, ok := hitObject.(*objects.Spinner); ok {
		obj.IsSpinner = true
	}

	if _, ok := hitObject.(*objects.Slider); ok {
		obj.IsSlider = true
	}

	obj.StrainTime = math.Max(obj.DeltaTime, MinDeltaTime)

	obj.setDistances()

	return obj
}

func (o *DifficultyObject) Previous(backwardsIndex int) *DifficultyObject {
	index := o.Index - (backwardsIndex + 1)

	if index < 0 {
		return nil
	}

	return (*o.listOfDiffs)[index]
}

func (o *DifficultyObject) setDistances() {
	if slider, ok := o.BaseObject.(*objects.Slider); ok {
		// repeats beyond the first shorten the effective travel per span
		travelFactor := math.Pow(1+float64(slider.RepeatCount-1)/2.5, 1.0/2.5)
		o.TravelDistance = slider.PixelLength * travelFactor * o.scalingFactor()
		o.TravelTime = math.Max((slider.GetEndTime()-slider.GetStartTime())/o.Diff.Speed, MinDeltaTime)
	}

	_, currentIsSpinner := o.BaseObject.(*objects.Spinner)
	_, lastIsSpinner := o.lastObject.(*objects.Spinner)

	if currentIsSpinner || lastIsSpinner {
		return
	}

	scalingFactor := o.scalingFactor()

	lastPosition := o.lastObject.GetEndPosition()
	currentPosition := o.BaseObject.GetStartPosition()

	o.JumpDistance = currentPosition.Sub(lastPosition).Len() * scalingFactor

	if o.lastLastObject != nil {
		if _, ok := o.lastLastObject.(*objects.Spinner); ok {
			return
		}

		v1 := o.lastLastObject.GetEndPosition().Sub(o.lastObject.GetStartPosition())
		v2 := currentPosition.Sub(lastPosition)

		dot := v1.Dot(v2)
		det := v1.X()*v2.Y() - v1.Y()*v2.X()

		o.Angle = math.Abs(math.Atan2(det, dot))
	}
}

// scalingFactor normalizes distances so circle size stops mattering, with
// a small bonus for very small circles.
func (o *DifficultyObject) scalingFactor() float64 {
	scalingFactor := NormalizedRadius / o.Diff.CircleRadius

	if o.Diff.CircleRadius < CircleSizeBuffThreshold {
		smallCircleBonus := math.Min(CircleSizeBuffThreshold-o.Diff.CircleRadius, 5.0) / 50.0
		scalingFactor *= 1.0 + smallCircleBonus
	}

	return scalingFactor
}
