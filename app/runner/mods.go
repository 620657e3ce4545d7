package runner

import (
	"fmt"

	"github.com/osukit/diffcalc/app/beatmap/difficulty"
	"github.com/osukit/diffcalc/app/rulesets"
)

// InvalidModifierError reports the first token that did not resolve
// against the active ruleset's modifier catalog.
type InvalidModifierError struct {
	Token string
}

func (e *InvalidModifierError) Error() string {
	return fmt.Sprintf("invalid modifier: %q", e.Token)
}

// ResolveMods resolves acronym tokens against the ruleset's catalog,
// case-insensitively and preserving input order. Resolution is
// all-or-nothing: any unknown token fails the whole list. When
// applyClassic is set the resolved list is rewritten through the
// ruleset's legacy mod conversion.
func ResolveMods(ruleset *rulesets.Ruleset, tokens []string, applyClassic bool) ([]difficulty.Modifier, error) {
	resolved := make([]difficulty.Modifier, 0, len(tokens))

	for _, token := range tokens {
		mod, ok := difficulty.ParseAcronym(token)
		if ok {
			ok = false

			for _, available := range ruleset.Mods {
				if available == mod {
					ok = true
					break
				}
			}
		}

		if !ok {
			return nil, &InvalidModifierError{Token: token}
		}

		resolved = append(resolved, mod)
	}

	if applyClassic {
		resolved = ruleset.ConvertToLegacyMods(resolved)
	}

	return resolved, nil
}
