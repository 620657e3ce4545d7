package difficulty

import (
	"strings"
)

type Modifier int64

const (
	NoFail Modifier = 1 << iota
	Easy
	TouchDevice
	Hidden
	HardRock
	SuddenDeath
	DoubleTime
	Relax
	HalfTime
	Nightcore
	Flashlight
	Autoplay
	SpunOut
	Autopilot
	Daycore
	None Modifier = 0
)

// modOrder fixes the canonical acronym order used by String.
var modOrder = []Modifier{
	NoFail, Easy, TouchDevice, Hidden, HardRock, SuddenDeath,
	DoubleTime, Nightcore, HalfTime, Daycore, Relax, Autopilot,
	Flashlight, SpunOut, Autoplay,
}

var modAcronyms = map[Modifier]string{
	NoFail:      "NF",
	Easy:        "EZ",
	TouchDevice: "TD",
	Hidden:      "HD",
	HardRock:    "HR",
	SuddenDeath: "SD",
	DoubleTime:  "DT",
	Relax:       "RX",
	HalfTime:    "HT",
	Nightcore:   "NC",
	Flashlight:  "FL",
	Autoplay:    "AT",
	SpunOut:     "SO",
	Autopilot:   "AP",
	Daycore:     "DC",
}

// ParseAcronym resolves a single two-letter acronym, case-insensitively.
func ParseAcronym(token string) (Modifier, bool) {
	for _, mod := range modOrder {
		if strings.EqualFold(modAcronyms[mod], token) {
			return mod, true
		}
	}

	return None, false
}

// Acronym returns the canonical acronym of a single modifier flag.
func (mods Modifier) Acronym() string {
	return modAcronyms[mods]
}

func (mods Modifier) Active(mod Modifier) bool {
	return mods&mod != 0
}

func (mods Modifier) String() string {
	var sb strings.Builder

	for _, mod := range modOrder {
		if mods.Active(mod) {
			sb.WriteString(modAcronyms[mod])
		}
	}

	return sb.String()
}

// Combine folds an ordered modifier list into one bitset. Duplicates are
// harmless since flags are idempotent under OR.
func Combine(mods []Modifier) Modifier {
	combined := None

	for _, mod := range mods {
		combined |= mod
	}

	return combined
}

// Acronyms returns the acronym of every modifier in the list, preserving
// the caller's order.
func Acronyms(mods []Modifier) []string {
	acronyms := make([]string, 0, len(mods))

	for _, mod := range mods {
		acronyms = append(acronyms, mod.Acronym())
	}

	return acronyms
}
