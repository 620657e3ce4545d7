package main

import (
	"fmt"
	"log"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/spf13/cobra"

	"github.com/osukit/diffcalc/app/config"
	"github.com/osukit/diffcalc/app/database"
	"github.com/osukit/diffcalc/app/osuapi"
	"github.com/osukit/diffcalc/app/output"
	"github.com/osukit/diffcalc/app/runner"
)

func main() {
	cfg := config.Config{}

	rootCmd := &cobra.Command{
		Use:   "diffcalc <beatmap file, beatmap id or directory>",
		Short: "Computes difficulty profiles of rhythm game beatmaps",
		Long: `diffcalc calculates star ratings, per-skill difficulty attributes and
strain series for .osu beatmaps, optionally under gameplay modifiers and
for a specific ruleset.

Examples:
  diffcalc map.osu -m HR -m DT
  diffcalc ./songs -r 0 --json -o results.json
  diffcalc 129891`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Target = args[0]

			return run(cfg)
		},
	}

	rootCmd.Flags().IntVarP(&cfg.Ruleset, "ruleset", "r", -1, "ruleset override (0 osu!, 1 taiko, 2 catch, 3 mania); defaults to the map's own")
	rootCmd.Flags().StringArrayVarP(&cfg.Mods, "mod", "m", nil, "modifier acronym, may be repeated (e.g. -m HR -m DT)")
	rootCmd.Flags().BoolVarP(&cfg.JSON, "json", "j", false, "emit the structured JSON document instead of tables")
	rootCmd.Flags().BoolVar(&cfg.NoClassicMod, "no-classic-mod", false, "suppress the legacy-compatibility mod rewrite")
	rootCmd.Flags().StringVarP(&cfg.OutputPath, "output", "o", "", "also write the JSON document to this file (with --json)")
	rootCmd.Flags().StringVar(&cfg.CachePath, "cache", "", "cache results in this sqlite database")
	rootCmd.Flags().BoolVarP(&cfg.Verbose, "verbose", "v", false, "log progress and host information")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	// keep machine-readable stdout clean, all logging goes to stderr
	log.SetOutput(os.Stderr)

	if cfg.Verbose {
		logHostInfo()
	}

	apiCfg, err := config.FromEnv()
	if err != nil {
		return err
	}

	cfg.API = apiCfg

	var source runner.BeatmapSource

	if client, err := osuapi.NewClient(cfg.API); err == nil {
		source = client
	}

	var cache *database.Cache

	if cfg.CachePath != "" {
		cache, err = database.NewCache(cfg.CachePath)
		if err != nil {
			return err
		}

		defer cache.Close()
	}

	set, err := runner.New(cfg, source, cache).Run()
	if err != nil {
		return err
	}

	if cfg.JSON {
		return output.WriteJSON(os.Stdout, set, cfg.OutputPath)
	}

	output.WriteTable(os.Stdout, set)

	return nil
}

func logHostInfo() {
	if cpuInfo, err := cpu.Info(); err == nil && len(cpuInfo) > 0 {
		log.Println("CPU:", cpuInfo[0].ModelName)
	}

	if memInfo, err := mem.VirtualMemory(); err == nil {
		log.Println("RAM:", humanize.IBytes(memInfo.Total))
	}
}
