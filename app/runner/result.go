package runner

import (
	"github.com/osukit/diffcalc/app/rulesets/api"
)

// MapResult is the difficulty profile of one successfully processed map.
// Immutable once built.
type MapResult struct {
	RulesetID  int            `json:"ruleset_id"`
	BeatmapID  int64          `json:"beatmap_id"`
	Beatmap    string         `json:"beatmap"`
	Mods       []string       `json:"mods"`
	Attributes api.Attributes `json:"attributes"`
	Strains    []float64      `json:"strains"`
}

// ResultSet collects every outcome of one invocation: exactly one entry,
// result or error, per input. Both lists keep processing order.
type ResultSet struct {
	Errors  []string    `json:"errors"`
	Results []MapResult `json:"results"`
}

func NewResultSet() *ResultSet {
	return &ResultSet{
		Errors:  []string{},
		Results: []MapResult{},
	}
}

func (set *ResultSet) AddResult(result MapResult) {
	set.Results = append(set.Results, result)
}

func (set *ResultSet) AddError(message string) {
	set.Errors = append(set.Errors, message)
}
