package runner

import (
	"fmt"

	"github.com/osukit/diffcalc/app/beatmap"
	"github.com/osukit/diffcalc/app/beatmap/difficulty"
	"github.com/osukit/diffcalc/app/rulesets"
	"github.com/osukit/diffcalc/app/rulesets/api"
)

// ComputeWithTrace runs the ruleset's difficulty engine over one map and
// returns the attributes together with the strain series of the first
// skill tracker.
//
// The engine accumulates skill state as a side effect of its processing
// pass, so the state-building call and the attribute read have to share
// one calculator instance; that protocol is fully contained here.
func ComputeWithTrace(bMap *beatmap.Beatmap, ruleset *rulesets.Ruleset, mods []difficulty.Modifier) (api.Attributes, []float64, error) {
	diff := difficulty.NewDifficulty(
		bMap.HPDrainRate, bMap.CircleSize, bMap.OverallDifficulty, bMap.ApproachRate,
		difficulty.Combine(mods),
	)

	calc, err := ruleset.NewCalculator(bMap, diff)
	if err != nil {
		return api.Attributes{}, nil, fmt.Errorf("calculation failed: %w", err)
	}

	if err := calc.Process(); err != nil {
		return api.Attributes{}, nil, fmt.Errorf("calculation failed: %w", err)
	}

	attr, err := calc.Attributes()
	if err != nil {
		return api.Attributes{}, nil, fmt.Errorf("calculation failed: %w", err)
	}

	// Strain state is an optional engine capability. When present, the
	// series of the first tracker in natural order is reported; rulesets
	// without trackers produce an empty series, not an error.
	strains := []float64{}

	if provider, ok := calc.(api.ISkillStateProvider); ok {
		if trackers := provider.SkillState(); len(trackers) > 0 {
			strains = trackers[0].StrainPeaks()
		}
	}

	return attr, strains, nil
}
