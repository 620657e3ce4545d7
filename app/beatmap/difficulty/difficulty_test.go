package difficulty

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDifficultyNoMod(t *testing.T) {
	diff := NewDifficulty(5, 4, 7, 9, None)

	assert.Equal(t, 1.0, diff.Speed)
	assert.Equal(t, 4.0, diff.CS)
	assert.InDelta(t, 600, diff.Preempt, 1e-9)
	assert.InDelta(t, 80-6*7, diff.Hit300, 1e-9)
	assert.InDelta(t, 54.4-4.48*4, diff.CircleRadius, 1e-9)
}

func TestHardRockScaling(t *testing.T) {
	diff := NewDifficulty(5, 4, 7, 9, HardRock)

	assert.InDelta(t, 5.2, diff.CS, 1e-9)
	assert.Equal(t, 10.0, diff.AR, "AR must cap at 10")
	assert.InDelta(t, 9.8, diff.OD, 1e-9)
	assert.Equal(t, 1.0, diff.Speed)
}

func TestEasyScaling(t *testing.T) {
	diff := NewDifficulty(5, 4, 7, 9, Easy)

	assert.InDelta(t, 2.0, diff.CS, 1e-9)
	assert.InDelta(t, 4.5, diff.AR, 1e-9)
	assert.InDelta(t, 3.5, diff.OD, 1e-9)
}

func TestClockRates(t *testing.T) {
	assert.Equal(t, 1.5, NewDifficulty(5, 5, 5, 5, DoubleTime).Speed)
	assert.Equal(t, 1.5, NewDifficulty(5, 5, 5, 5, Nightcore).Speed)
	assert.Equal(t, 0.75, NewDifficulty(5, 5, 5, 5, HalfTime).Speed)
	assert.Equal(t, 0.75, NewDifficulty(5, 5, 5, 5, Daycore).Speed)
}

func TestARRealUnderDoubleTime(t *testing.T) {
	diff := NewDifficulty(5, 5, 5, 9, DoubleTime)

	// AR9 preempt of 600ms plays like 400ms at 1.5x, which reads as AR10.33
	assert.InDelta(t, 10.33, diff.ARReal(), 0.01)
}

func TestPreemptRoundTrip(t *testing.T) {
	for _, ar := range []float64{0, 3, 5, 7.5, 9, 10} {
		preempt := DifficultyRate(ar, 1800, PreemptMid, 450)
		assert.InDelta(t, ar, PreemptToAR(preempt), 1e-9)
	}
}
