package strains

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	// SectionLength is the strain window size in ms of adjusted map time
	SectionLength float64 = 400

	decayWeight float64 = 0.9
)

// Skill accumulates per-object strain into fixed-length section peaks and
// folds the peaks into one difficulty value with exponentially decaying
// weights. Ruleset skills embed it and feed it their decayed strain.
type Skill struct {
	// ReducedSectionCount is the number of top sections eased towards
	// ReducedStrainBaseline before weighting
	ReducedSectionCount   int
	ReducedStrainBaseline float64

	// CalculateInitialStrain gives the strain carried into a new section,
	// usually the current strain decayed to the section start
	CalculateInitialStrain func(sectionStart float64) float64

	name string

	currentSectionPeak float64
	currentSectionEnd  float64
	started            bool

	strainPeaks   []float64
	objectStrains []float64
}

func NewSkill(name string) *Skill {
	return &Skill{
		name:                  name,
		ReducedSectionCount:   10,
		ReducedStrainBaseline: 0.75,
	}
}

func (skill *Skill) Name() string {
	return skill.name
}

// AddStrain records the strain an object produced at the given adjusted
// start time, closing sections the object skipped past.
func (skill *Skill) AddStrain(startTime, strain float64) {
	if !skill.started {
		skill.currentSectionEnd = math.Ceil(startTime/SectionLength) * SectionLength
		skill.started = true
	}

	for startTime > skill.currentSectionEnd {
		skill.strainPeaks = append(skill.strainPeaks, skill.currentSectionPeak)

		if skill.CalculateInitialStrain != nil {
			skill.currentSectionPeak = skill.CalculateInitialStrain(skill.currentSectionEnd)
		} else {
			skill.currentSectionPeak = 0
		}

		skill.currentSectionEnd += SectionLength
	}

	skill.currentSectionPeak = math.Max(strain, skill.currentSectionPeak)
	skill.objectStrains = append(skill.objectStrains, strain)
}

// StrainPeaks returns every closed section peak plus the one in progress.
func (skill *Skill) StrainPeaks() []float64 {
	peaks := make([]float64, len(skill.strainPeaks), len(skill.strainPeaks)+1)
	copy(peaks, skill.strainPeaks)

	if skill.started {
		peaks = append(peaks, skill.currentSectionPeak)
	}

	return peaks
}

// DifficultyValue weights the sorted strain peaks, easing the very highest
// sections so short bursts don't dominate the rating.
func (skill *Skill) DifficultyValue() float64 {
	peaks := skill.StrainPeaks()

	sort.Sort(sort.Reverse(sort.Float64Slice(peaks)))

	reduced := min(skill.ReducedSectionCount, len(peaks))
	for i := 0; i < reduced; i++ {
		scale := math.Log10(lerp(1, 10, mgl64.Clamp(float64(i)/float64(skill.ReducedSectionCount), 0, 1)))
		peaks[i] *= lerp(skill.ReducedStrainBaseline, 1, scale)
	}

	sort.Sort(sort.Reverse(sort.Float64Slice(peaks)))

	difficulty := 0.0
	weight := 1.0

	for _, peak := range peaks {
		difficulty += peak * weight
		weight *= decayWeight
	}

	return difficulty
}

// CountDifficultStrains counts sections comparable to the hardest parts of
// the map, used by relevant-note style attributes.
func (skill *Skill) CountDifficultStrains() float64 {
	peaks := skill.StrainPeaks()

	maxStrain := 0.0
	for _, peak := range peaks {
		maxStrain = math.Max(maxStrain, peak)
	}

	if maxStrain == 0 {
		return 0
	}

	count := 0.0
	for _, peak := range peaks {
		count += 1.1 / (1 + math.Exp(-10*(peak/maxStrain-0.88)))
	}

	return count
}

// ObjectStrains exposes the raw per-object strain history.
func (skill *Skill) ObjectStrains() []float64 {
	return skill.objectStrains
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
