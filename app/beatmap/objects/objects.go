package objects

import (
	"github.com/go-gl/mathgl/mgl64"
)

// IHitObject is the common view of every playable object in a beatmap.
// Times are in milliseconds of raw map time, positions in osu!pixels.
type IHitObject interface {
	GetStartTime() float64
	GetEndTime() float64
	GetStartPosition() mgl64.Vec2
	GetEndPosition() mgl64.Vec2
	IsNewCombo() bool
}

type Circle struct {
	StartTime float64
	Position  mgl64.Vec2
	NewCombo  bool
}

func (c *Circle) GetStartTime() float64        { return c.StartTime }
func (c *Circle) GetEndTime() float64          { return c.StartTime }
func (c *Circle) GetStartPosition() mgl64.Vec2 { return c.Position }
func (c *Circle) GetEndPosition() mgl64.Vec2   { return c.Position }
func (c *Circle) IsNewCombo() bool             { return c.NewCombo }

type Slider struct {
	StartTime float64
	EndTime   float64
	Position  mgl64.Vec2
	EndPos    mgl64.Vec2
	NewCombo  bool

	// RepeatCount is the number of spans, 1 for a slider without repeats
	RepeatCount int
	PixelLength float64

	// ScorePoints is the number of non-head hittable points (ticks, repeat
	// arrows and the tail), each contributing to max combo
	ScorePoints int
}

func (s *Slider) GetStartTime() float64        { return s.StartTime }
func (s *Slider) GetEndTime() float64          { return s.EndTime }
func (s *Slider) GetStartPosition() mgl64.Vec2 { return s.Position }
func (s *Slider) GetEndPosition() mgl64.Vec2   { return s.EndPos }
func (s *Slider) IsNewCombo() bool             { return s.NewCombo }

// SpanDuration returns the duration of a single span of the slider.
func (s *Slider) SpanDuration() float64 {
	return (s.EndTime - s.StartTime) / float64(max(1, s.RepeatCount))
}

type Spinner struct {
	StartTime float64
	EndTime   float64
	NewCombo  bool
}

// Spinners are always considered to sit in the middle of the playfield.
func (s *Spinner) GetStartTime() float64 { return s.StartTime }
func (s *Spinner) GetEndTime() float64   { return s.EndTime }
func (s *Spinner) GetStartPosition() mgl64.Vec2 {
	return mgl64.Vec2{256, 192}
}
func (s *Spinner) GetEndPosition() mgl64.Vec2 { return mgl64.Vec2{256, 192} }
func (s *Spinner) IsNewCombo() bool           { return s.NewCombo }
