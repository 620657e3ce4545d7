package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is the immutable per-invocation configuration. It is built once
// in the command layer and handed to the runner and presenters; nothing
// mutates it afterwards.
type Config struct {
	// Target is the positional argument: a .osu file, a directory of maps
	// or a numeric beatmap id to look up remotely
	Target string

	// Ruleset overrides the map's declared ruleset; -1 keeps the map's own
	Ruleset int

	// Mods are the raw user-supplied acronym tokens in input order
	Mods []string

	// NoClassicMod suppresses the legacy-compatibility mod rewrite
	NoClassicMod bool

	// JSON selects the structured output form over the tabular one
	JSON bool

	// OutputPath persists the structured document when JSON is set
	OutputPath string

	// CachePath enables the sqlite result cache when non-empty
	CachePath string

	Verbose bool

	API API
}

// API holds osu! API credentials, sourced from the environment so they
// never appear in shell history.
type API struct {
	ClientID     int    `env:"OSU_CLIENT_ID"`
	ClientSecret string `env:"OSU_CLIENT_SECRET"`
}

// FromEnv fills the environment-backed part of the configuration.
func FromEnv() (API, error) {
	var apiCfg API

	if err := env.Parse(&apiCfg); err != nil {
		return API{}, fmt.Errorf("failed to read environment config: %w", err)
	}

	return apiCfg, nil
}
