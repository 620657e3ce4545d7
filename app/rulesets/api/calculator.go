package api

// IDifficultyCalculator computes the difficulty profile of one beatmap.
// Process runs the state-building pass over the map's objects and must be
// called before Attributes; both calls have to happen on the same instance
// because skill state is accumulated, not returned.
type IDifficultyCalculator interface {
	Process() error
	Attributes() (Attributes, error)
}

// ISkillTracker exposes the accumulated strain history of one skill.
// Peaks are one value per fixed-length section of map time.
type ISkillTracker interface {
	Name() string
	StrainPeaks() []float64
}

// ISkillStateProvider is an optional capability of calculators whose
// rulesets track per-skill strain. Trackers are returned in the ruleset's
// natural skill order.
type ISkillStateProvider interface {
	SkillState() []ISkillTracker
}
