package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/osukit/diffcalc/app/runner"
	"github.com/osukit/diffcalc/app/rulesets"
)

var headerCaser = cases.Title(language.English)

// WriteTable renders the result set as a grouped report: error lines
// first, then one grid per ruleset in first-appearance order.
//
// Each grid's columns are fixed by the attribute keys of the group's first
// result. Keys a later result adds on top of those are dropped and keys it
// lacks render blank; an open-ended attribute set cannot be tabulated any
// other way without ragged rows.
func WriteTable(w io.Writer, set *runner.ResultSet) {
	for _, message := range set.Errors {
		fmt.Fprintln(w, message)
	}

	if len(set.Errors) > 0 {
		fmt.Fprintln(w)
	}

	var groupOrder []int
	groups := make(map[int][]runner.MapResult)

	for _, result := range set.Results {
		if _, ok := groups[result.RulesetID]; !ok {
			groupOrder = append(groupOrder, result.RulesetID)
		}

		groups[result.RulesetID] = append(groups[result.RulesetID], result)
	}

	for _, rulesetID := range groupOrder {
		results := groups[rulesetID]

		fmt.Fprintln(w, rulesetName(rulesetID))

		keys := results[0].Attributes.Keys()

		headers := make([]string, 0, len(keys)+1)
		headers = append(headers, "beatmap")

		for _, key := range keys {
			headers = append(headers, humanizeKey(key))
		}

		table := tablewriter.NewWriter(w)
		table.SetHeader(headers)
		table.SetAutoFormatHeaders(false)
		table.SetAutoWrapText(false)

		alignments := make([]int, 0, len(headers))
		alignments = append(alignments, tablewriter.ALIGN_LEFT)

		for range keys {
			alignments = append(alignments, tablewriter.ALIGN_RIGHT)
		}

		table.SetColumnAlignment(alignments)

		for _, result := range results {
			row := make([]string, 0, len(headers))
			row = append(row, fmt.Sprintf("%d - %s", result.BeatmapID, result.Beatmap))

			for _, key := range keys {
				if value, ok := result.Attributes.Get(key); ok {
					row = append(row, strconv.FormatFloat(value, 'f', 2, 64))
				} else {
					row = append(row, "")
				}
			}

			table.Append(row)
		}

		table.Render()
		fmt.Fprintln(w)
	}
}

func rulesetName(id int) string {
	if ruleset, err := rulesets.FromLegacyID(id); err == nil {
		return ruleset.Name
	}

	return fmt.Sprintf("ruleset %d", id)
}

// humanizeKey turns "speed_note_count" into "Speed Note Count".
func humanizeKey(key string) string {
	return headerCaser.String(strings.ReplaceAll(key, "_", " "))
}
