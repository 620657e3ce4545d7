package rulesets

import (
	"fmt"

	"github.com/osukit/diffcalc/app/beatmap"
	"github.com/osukit/diffcalc/app/beatmap/difficulty"
	"github.com/osukit/diffcalc/app/rulesets/api"
	"github.com/osukit/diffcalc/app/rulesets/catching"
	"github.com/osukit/diffcalc/app/rulesets/mania"
	"github.com/osukit/diffcalc/app/rulesets/osu"
	"github.com/osukit/diffcalc/app/rulesets/taiko"
)

// Ruleset binds a legacy ruleset id to its modifier catalog, its legacy
// mod conversion and its difficulty calculator factory.
type Ruleset struct {
	ID   int
	Name string

	// Version is the engine version, part of the result cache key
	Version int

	// Mods is the catalog of modifiers selectable in this ruleset
	Mods []difficulty.Modifier

	// ConvertToLegacyMods rewrites modern modifiers onto their closest
	// legacy-scoring equivalents; a pure function of the input list
	ConvertToLegacyMods func(mods []difficulty.Modifier) []difficulty.Modifier

	NewCalculator func(bMap *beatmap.Beatmap, diff *difficulty.Difficulty) (api.IDifficultyCalculator, error)
}

var commonMods = []difficulty.Modifier{
	difficulty.NoFail, difficulty.Easy, difficulty.Hidden, difficulty.HardRock,
	difficulty.SuddenDeath, difficulty.DoubleTime, difficulty.Nightcore,
	difficulty.HalfTime, difficulty.Daycore, difficulty.Flashlight,
	difficulty.Relax, difficulty.Autoplay,
}

var standardMods = append([]difficulty.Modifier{
	difficulty.TouchDevice, difficulty.SpunOut, difficulty.Autopilot,
}, commonMods...)

var registered = []*Ruleset{
	{
		ID:                  0,
		Name:                "osu!",
		Version:             osu.CurrentVersion,
		Mods:                standardMods,
		ConvertToLegacyMods: convertToLegacyMods,
		NewCalculator:       osu.NewDifficultyCalculator,
	},
	{
		ID:                  1,
		Name:                "osu!taiko",
		Version:             taiko.CurrentVersion,
		Mods:                commonMods,
		ConvertToLegacyMods: convertToLegacyMods,
		NewCalculator:       taiko.NewDifficultyCalculator,
	},
	{
		ID:                  2,
		Name:                "osu!catch",
		Version:             catching.CurrentVersion,
		Mods:                commonMods,
		ConvertToLegacyMods: convertToLegacyMods,
		NewCalculator:       catching.NewDifficultyCalculator,
	},
	{
		ID:                  3,
		Name:                "osu!mania",
		Version:             mania.CurrentVersion,
		Mods:                commonMods,
		ConvertToLegacyMods: convertToLegacyMods,
		NewCalculator:       mania.NewDifficultyCalculator,
	},
}

// FromLegacyID resolves a ruleset by its legacy id (0-3).
func FromLegacyID(id int) (*Ruleset, error) {
	for _, ruleset := range registered {
		if ruleset.ID == id {
			return ruleset, nil
		}
	}

	return nil, fmt.Errorf("unknown ruleset id %d", id)
}

// All returns every registered ruleset in id order.
func All() []*Ruleset {
	return registered
}

// convertToLegacyMods maps rate mods without a legacy score multiplier onto
// the legacy mods with the same clock behavior: DC becomes HT, and NC gains
// the explicit DT legacy scoring always stored alongside it.
func convertToLegacyMods(mods []difficulty.Modifier) []difficulty.Modifier {
	converted := make([]difficulty.Modifier, 0, len(mods))

	for _, mod := range mods {
		switch mod {
		case difficulty.Daycore:
			converted = append(converted, difficulty.HalfTime)
		case difficulty.Nightcore:
			converted = append(converted, difficulty.Nightcore, difficulty.DoubleTime)
		default:
			converted = append(converted, mod)
		}
	}

	return converted
}
