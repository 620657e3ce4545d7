package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osukit/diffcalc/app/rulesets/api"
	"github.com/osukit/diffcalc/app/runner"
)

func TestWriteTableErrorsComeFirst(t *testing.T) {
	set := runner.NewResultSet()
	set.AddError("bad.osu: malformed")
	set.AddResult(sampleResult(0, 1, "a - b [c]"))

	var buf bytes.Buffer
	WriteTable(&buf, set)

	lines := strings.Split(buf.String(), "\n")
	require.Greater(t, len(lines), 2)

	assert.Equal(t, "bad.osu: malformed", lines[0])
	assert.Equal(t, "", lines[1], "blank separator after error lines")
	assert.Equal(t, "osu!", lines[2])
}

func TestWriteTableGroupsAndHeaders(t *testing.T) {
	set := runner.NewResultSet()
	set.AddResult(sampleResult(0, 1, "a - b [c]"))
	set.AddResult(sampleResult(3, 2, "d - e [f]"))

	var buf bytes.Buffer
	WriteTable(&buf, set)

	rendered := buf.String()

	assert.Contains(t, rendered, "osu!")
	assert.Contains(t, rendered, "osu!mania")
	assert.Contains(t, rendered, "Star Rating")
	assert.Contains(t, rendered, "Max Combo")
	assert.Contains(t, rendered, "1 - a - b [c]")
	assert.Contains(t, rendered, "5.25")
}

func TestWriteTableColumnsFixedByFirstRow(t *testing.T) {
	first := api.NewAttributes()
	first.Set("star_rating", 1)
	first.Set("max_combo", 10)

	second := api.NewAttributes()
	second.Set("star_rating", 2)
	second.Set("max_combo", 20)
	second.Set("extra_metric", 99)

	set := runner.NewResultSet()
	set.AddResult(runner.MapResult{RulesetID: 0, BeatmapID: 1, Beatmap: "x", Attributes: first})
	set.AddResult(runner.MapResult{RulesetID: 0, BeatmapID: 2, Beatmap: "y", Attributes: second})

	var buf bytes.Buffer
	WriteTable(&buf, set)

	rendered := buf.String()

	assert.NotContains(t, rendered, "Extra Metric", "columns are fixed by the first result")
	assert.NotContains(t, rendered, "99.00")
	assert.Contains(t, rendered, "20.00")
}

func TestWriteTableMissingKeysRenderBlank(t *testing.T) {
	first := api.NewAttributes()
	first.Set("star_rating", 1)
	first.Set("max_combo", 10)

	second := api.NewAttributes()
	second.Set("star_rating", 2)

	set := runner.NewResultSet()
	set.AddResult(runner.MapResult{RulesetID: 0, BeatmapID: 1, Beatmap: "x", Attributes: first})
	set.AddResult(runner.MapResult{RulesetID: 0, BeatmapID: 2, Beatmap: "y", Attributes: second})

	var buf bytes.Buffer
	WriteTable(&buf, set)

	assert.Equal(t, 1, strings.Count(buf.String(), "10.00"), "the second row must not inherit the first row's values")
}

func TestHumanizeKey(t *testing.T) {
	assert.Equal(t, "Star Rating", humanizeKey("star_rating"))
	assert.Equal(t, "Speed Note Count", humanizeKey("speed_note_count"))
	assert.Equal(t, "Beatmap", humanizeKey("beatmap"))
}
