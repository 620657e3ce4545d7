package runner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osukit/diffcalc/app/beatmap"
	"github.com/osukit/diffcalc/app/config"
)

const testMapTemplate = `osu file format v14

[General]
Mode: %d

[Metadata]
Title:%s
Artist:someone
Version:Normal
BeatmapID:%d

[Difficulty]
HPDrainRate:5
CircleSize:4
OverallDifficulty:7
ApproachRate:9
SliderMultiplier:1.4
SliderTickRate:1

[TimingPoints]
0,500,4,2,0,100,1,0

[HitObjects]
100,100,1000,1,0,0:0:0:0:
250,100,1400,1,0,0:0:0:0:
100,200,1800,1,0,0:0:0:0:
250,200,2200,1,0,0:0:0:0:
100,100,2600,1,0,0:0:0:0:
250,100,3000,1,0,0:0:0:0:
`

func writeTestMap(t *testing.T, dir, name string, mode int, id int64) string {
	t.Helper()

	path := filepath.Join(dir, name)
	data := fmt.Sprintf(testMapTemplate, mode, strings.TrimSuffix(name, ".osu"), id)

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755), "")
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	return path
}

func defaultConfig(target string) config.Config {
	return config.Config{Target: target, Ruleset: -1}
}

func TestRunSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := writeTestMap(t, dir, "map.osu", 0, 42)

	set, err := New(defaultConfig(path), nil, nil).Run()
	require.NoError(t, err)

	require.Len(t, set.Results, 1)
	assert.Empty(t, set.Errors)

	result := set.Results[0]
	assert.Equal(t, 0, result.RulesetID, "ruleset comes from the map when not overridden")
	assert.Equal(t, int64(42), result.BeatmapID)
	assert.Empty(t, result.Mods)
	assert.NotEmpty(t, result.Strains)

	stars, ok := result.Attributes.Get("star_rating")
	assert.True(t, ok)
	assert.Greater(t, stars, 0.0)
}

func TestRunDirectoryIsolatesFailures(t *testing.T) {
	dir := t.TempDir()

	writeTestMap(t, dir, "a.osu", 0, 1)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.osu"), []byte("not a beatmap"), 0644))
	writeTestMap(t, dir, filepath.Join("sub", "c.osu"), 0, 3)

	set, err := New(defaultConfig(dir), nil, nil).Run()
	require.NoError(t, err)

	// two valid and one broken map account for all three inputs
	require.Len(t, set.Results, 2)
	require.Len(t, set.Errors, 1)

	assert.Equal(t, int64(1), set.Results[0].BeatmapID)
	assert.Equal(t, int64(3), set.Results[1].BeatmapID)
	assert.Contains(t, set.Errors[0], "b.osu")
}

func TestRunDirectoryDeterministicOrder(t *testing.T) {
	dir := t.TempDir()

	writeTestMap(t, dir, "z.osu", 0, 26)
	writeTestMap(t, dir, "a.osu", 0, 1)
	writeTestMap(t, dir, "m.osu", 0, 13)

	set, err := New(defaultConfig(dir), nil, nil).Run()
	require.NoError(t, err)

	require.Len(t, set.Results, 3)
	assert.Equal(t, int64(1), set.Results[0].BeatmapID)
	assert.Equal(t, int64(13), set.Results[1].BeatmapID)
	assert.Equal(t, int64(26), set.Results[2].BeatmapID)
}

func TestRunSingleFileFailureIsFatal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.osu")
	require.NoError(t, os.WriteFile(path, []byte("not a beatmap"), 0644))

	_, err := New(defaultConfig(path), nil, nil).Run()

	var loadErr *beatmap.LoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestRunSingleFileInvalidModifierIsFatal(t *testing.T) {
	dir := t.TempDir()
	path := writeTestMap(t, dir, "map.osu", 0, 42)

	cfg := defaultConfig(path)
	cfg.Mods = []string{"zz"}

	_, err := New(cfg, nil, nil).Run()

	var invalidErr *InvalidModifierError
	require.ErrorAs(t, err, &invalidErr)
	assert.Equal(t, "zz", invalidErr.Token)
}

func TestRunDirectoryRecordsInvalidModifiers(t *testing.T) {
	dir := t.TempDir()
	writeTestMap(t, dir, "a.osu", 0, 1)

	cfg := defaultConfig(dir)
	cfg.Mods = []string{"zz"}

	set, err := New(cfg, nil, nil).Run()
	require.NoError(t, err)

	assert.Empty(t, set.Results)
	require.Len(t, set.Errors, 1)
	assert.Contains(t, set.Errors[0], "invalid modifier")
}

func TestRunRulesetOverride(t *testing.T) {
	dir := t.TempDir()
	path := writeTestMap(t, dir, "map.osu", 0, 42)

	cfg := defaultConfig(path)
	cfg.Ruleset = 3

	set, err := New(cfg, nil, nil).Run()
	require.NoError(t, err)

	require.Len(t, set.Results, 1)
	assert.Equal(t, 3, set.Results[0].RulesetID)

	_, ok := set.Results[0].Attributes.Get("great_hit_window")
	assert.True(t, ok, "mania attributes expose the hit window")
}

func TestRunRejectsForeignConversion(t *testing.T) {
	dir := t.TempDir()
	path := writeTestMap(t, dir, "map.osu", 3, 42)

	cfg := defaultConfig(path)
	cfg.Ruleset = 0

	_, err := New(cfg, nil, nil).Run()
	assert.Error(t, err, "mania maps cannot be played in osu!standard")
}

func TestRunModsAffectResult(t *testing.T) {
	dir := t.TempDir()
	path := writeTestMap(t, dir, "map.osu", 0, 42)

	cfg := defaultConfig(path)
	cfg.Mods = []string{"HR", "DT"}

	set, err := New(cfg, nil, nil).Run()
	require.NoError(t, err)

	require.Len(t, set.Results, 1)
	assert.Equal(t, []string{"HR", "DT"}, set.Results[0].Mods)
}

func TestRunUnknownTarget(t *testing.T) {
	_, err := New(defaultConfig("does-not-exist.osu"), nil, nil).Run()
	assert.Error(t, err)
}

type fakeSource struct {
	maps map[int64]*beatmap.Beatmap
}

func (s *fakeSource) LookupBeatmap(id int64) (*beatmap.Beatmap, error) {
	bMap, ok := s.maps[id]
	if !ok {
		return nil, fmt.Errorf("beatmap %d does not exist", id)
	}

	return bMap, nil
}

func TestRunRemoteLookup(t *testing.T) {
	dir := t.TempDir()
	path := writeTestMap(t, dir, "map.osu", 0, 999)

	bMap, err := beatmap.Load(path)
	require.NoError(t, err)

	source := &fakeSource{maps: map[int64]*beatmap.Beatmap{999: bMap}}

	set, err := New(defaultConfig("999"), source, nil).Run()
	require.NoError(t, err)

	require.Len(t, set.Results, 1)
	assert.Equal(t, int64(999), set.Results[0].BeatmapID)
}

func TestRunRemoteLookupWithoutSource(t *testing.T) {
	_, err := New(defaultConfig("999"), nil, nil).Run()
	assert.Error(t, err)
}

func TestComputeWithTraceIsDeterministic(t *testing.T) {
	dir := t.TempDir()
	path := writeTestMap(t, dir, "map.osu", 0, 42)

	run := func() *ResultSet {
		set, err := New(defaultConfig(path), nil, nil).Run()
		require.NoError(t, err)
		return set
	}

	first := run()
	second := run()

	assert.Equal(t, first.Results[0].Strains, second.Results[0].Strains)
	assert.Equal(t, first.Results[0].Attributes, second.Results[0].Attributes)
}
