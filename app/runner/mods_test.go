package runner

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osukit/diffcalc/app/beatmap/difficulty"
	"github.com/osukit/diffcalc/app/rulesets"
)

func osuRuleset(t *testing.T) *rulesets.Ruleset {
	t.Helper()

	ruleset, err := rulesets.FromLegacyID(0)
	require.NoError(t, err)

	return ruleset
}

func TestResolveModsPreservesOrder(t *testing.T) {
	mods, err := ResolveMods(osuRuleset(t), []string{"hr", "DT"}, true)
	require.NoError(t, err)

	assert.Equal(t, []difficulty.Modifier{difficulty.HardRock, difficulty.DoubleTime}, mods)
}

func TestResolveModsEmpty(t *testing.T) {
	mods, err := ResolveMods(osuRuleset(t), nil, true)
	require.NoError(t, err)

	assert.Empty(t, mods)
}

func TestResolveModsKeepsDuplicates(t *testing.T) {
	mods, err := ResolveMods(osuRuleset(t), []string{"hd", "hd"}, true)
	require.NoError(t, err)

	assert.Equal(t, []difficulty.Modifier{difficulty.Hidden, difficulty.Hidden}, mods)
}

func TestResolveModsUnknownToken(t *testing.T) {
	mods, err := ResolveMods(osuRuleset(t), []string{"hr", "zz"}, true)

	var invalidErr *InvalidModifierError
	require.ErrorAs(t, err, &invalidErr)

	assert.Equal(t, "zz", invalidErr.Token)
	assert.Nil(t, mods, "no partial resolution on failure")
}

func TestResolveModsOutsideCatalog(t *testing.T) {
	taiko, err := rulesets.FromLegacyID(1)
	require.NoError(t, err)

	// autopilot exists, but only in the osu!standard catalog
	_, err = ResolveMods(taiko, []string{"ap"}, true)

	var invalidErr *InvalidModifierError
	assert.True(t, errors.As(err, &invalidErr))
}

func TestClassicConversion(t *testing.T) {
	converted, err := ResolveMods(osuRuleset(t), []string{"dc", "nc"}, true)
	require.NoError(t, err)

	assert.Equal(t, []difficulty.Modifier{
		difficulty.HalfTime,
		difficulty.Nightcore, difficulty.DoubleTime,
	}, converted)

	suppressed, err := ResolveMods(osuRuleset(t), []string{"dc", "nc"}, false)
	require.NoError(t, err)

	assert.Equal(t, []difficulty.Modifier{difficulty.Daycore, difficulty.Nightcore}, suppressed)
}

func TestSuppressionDoesNotChangeValidity(t *testing.T) {
	for _, token := range []string{"hr", "dc", "nc", "zz", "xx"} {
		_, errClassic := ResolveMods(osuRuleset(t), []string{token}, true)
		_, errRaw := ResolveMods(osuRuleset(t), []string{token}, false)

		assert.Equal(t, errClassic == nil, errRaw == nil, "token %q validity must not depend on the rewrite", token)
	}
}
