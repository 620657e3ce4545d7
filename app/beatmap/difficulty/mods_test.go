package difficulty

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAcronym(t *testing.T) {
	cases := []struct {
		token    string
		expected Modifier
		ok       bool
	}{
		{"HR", HardRock, true},
		{"hr", HardRock, true},
		{"Dt", DoubleTime, true},
		{"nc", Nightcore, true},
		{"dc", Daycore, true},
		{"zz", None, false},
		{"", None, false},
		{"HDHR", None, false},
	}

	for _, tc := range cases {
		t.Run(tc.token, func(t *testing.T) {
			mod, ok := ParseAcronym(tc.token)

			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.expected, mod)
		})
	}
}

func TestModifierString(t *testing.T) {
	assert.Equal(t, "HDHR", (Hidden | HardRock).String())
	assert.Equal(t, "HDDT", (DoubleTime | Hidden).String())
	assert.Equal(t, "", None.String())
}

func TestCombine(t *testing.T) {
	combined := Combine([]Modifier{HardRock, DoubleTime, HardRock})

	assert.True(t, combined.Active(HardRock))
	assert.True(t, combined.Active(DoubleTime))
	assert.False(t, combined.Active(Hidden))
}

func TestAcronymsPreserveOrder(t *testing.T) {
	acronyms := Acronyms([]Modifier{DoubleTime, HardRock, DoubleTime})

	assert.Equal(t, []string{"DT", "HR", "DT"}, acronyms)
}
