package runner

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/exp/slices"

	"github.com/osukit/diffcalc/app/beatmap"
	"github.com/osukit/diffcalc/app/beatmap/difficulty"
	"github.com/osukit/diffcalc/app/config"
	"github.com/osukit/diffcalc/app/database"
	"github.com/osukit/diffcalc/app/rulesets"
	"github.com/osukit/diffcalc/app/rulesets/api"
)

// BeatmapSource resolves a beatmap id to a parsed map, typically through
// the osu! website.
type BeatmapSource interface {
	LookupBeatmap(id int64) (*beatmap.Beatmap, error)
}

// Runner turns one input target into a fully populated ResultSet.
//
// Directory targets are batches: every contained map gets exactly one
// outcome and a bad map never stops the rest. A single file or remote id
// is different on purpose: its failure is the run's failure.
type Runner struct {
	cfg    config.Config
	source BeatmapSource
	cache  *database.Cache
}

// New builds a runner. Both source and cache may be nil, disabling remote
// lookup and result caching respectively.
func New(cfg config.Config, source BeatmapSource, cache *database.Cache) *Runner {
	return &Runner{cfg: cfg, source: source, cache: cache}
}

// Run resolves the configured target and processes it to completion.
func (r *Runner) Run() (*ResultSet, error) {
	set := NewResultSet()

	info, err := os.Stat(r.cfg.Target)

	switch {
	case err == nil && info.IsDir():
		r.runDirectory(set)
	case err == nil:
		bMap, err := beatmap.Load(r.cfg.Target)
		if err != nil {
			return nil, err
		}

		result, err := r.process(bMap)
		if err != nil {
			return nil, err
		}

		set.AddResult(result)
	default:
		id, convErr := strconv.ParseInt(r.cfg.Target, 10, 64)
		if convErr != nil {
			return nil, fmt.Errorf("%q is neither an existing path nor a beatmap id", r.cfg.Target)
		}

		if r.source == nil {
			return nil, fmt.Errorf("cannot look up beatmap %d: no beatmap source configured", id)
		}

		bMap, err := r.source.LookupBeatmap(id)
		if err != nil {
			return nil, err
		}

		result, err := r.process(bMap)
		if err != nil {
			return nil, err
		}

		set.AddResult(result)
	}

	return set, nil
}

// runDirectory processes every .osu file under the target, isolating
// per-file failures as error entries.
func (r *Runner) runDirectory(set *ResultSet) {
	startTime := time.Now()

	paths := enumerateBeatmaps(r.cfg.Target)

	for _, path := range paths {
		result, err := r.processFile(path)
		if err != nil {
			set.AddError(fmt.Sprintf("%s: %s", path, rootMessage(err)))
			continue
		}

		set.AddResult(result)
	}

	log.Println("Processed", humanize.Comma(int64(len(paths))), "beatmap(s),",
		humanize.Comma(int64(len(set.Errors))), "failed, took",
		time.Since(startTime).Truncate(time.Millisecond).String())
}

// enumerateBeatmaps collects the .osu files beneath root in a stable
// lexicographic order.
func enumerateBeatmaps(root string) []string {
	var paths []string

	filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}

		if !entry.IsDir() && strings.EqualFold(filepath.Ext(path), ".osu") {
			paths = append(paths, path)
		}

		return nil
	})

	slices.Sort(paths)

	return paths
}

func (r *Runner) processFile(path string) (MapResult, error) {
	bMap, err := beatmap.Load(path)
	if err != nil {
		return MapResult{}, err
	}

	return r.process(bMap)
}

// process applies ruleset selection, mod resolution and the difficulty
// engine to one parsed map.
func (r *Runner) process(bMap *beatmap.Beatmap) (MapResult, error) {
	rulesetID := r.cfg.Ruleset
	if rulesetID < 0 {
		rulesetID = bMap.Mode
	}

	ruleset, err := rulesets.FromLegacyID(rulesetID)
	if err != nil {
		return MapResult{}, err
	}

	mods, err := ResolveMods(ruleset, r.cfg.Mods, !r.cfg.NoClassicMod)
	if err != nil {
		return MapResult{}, err
	}

	modKey := strings.Join(difficulty.Acronyms(mods), "")
	if modKey == "" {
		modKey = "NM"
	}

	if r.cache != nil {
		attr, strains, ok, err := r.cache.Lookup(bMap.MD5, ruleset.ID, modKey, ruleset.Version)
		if err != nil {
			log.Println("WARNING: result cache lookup failed:", err)
		} else if ok {
			return newMapResult(bMap, ruleset, mods, attr, strains), nil
		}
	}

	attr, strains, err := ComputeWithTrace(bMap, ruleset, mods)
	if err != nil {
		return MapResult{}, err
	}

	if r.cache != nil {
		if err := r.cache.Store(bMap.MD5, ruleset.ID, modKey, ruleset.Version, attr, strains); err != nil {
			log.Println("WARNING:", err)
		}
	}

	return newMapResult(bMap, ruleset, mods, attr, strains), nil
}

func newMapResult(bMap *beatmap.Beatmap, ruleset *rulesets.Ruleset, mods []difficulty.Modifier, attr api.Attributes, strains []float64) MapResult {
	if strains == nil {
		strains = []float64{}
	}

	return MapResult{
		RulesetID:  ruleset.ID,
		BeatmapID:  bMap.ID,
		Beatmap:    bMap.Name(),
		Mods:       difficulty.Acronyms(mods),
		Attributes: attr,
		Strains:    strains,
	}
}

// rootMessage strips the load-error envelope so batch entries don't name
// the file twice.
func rootMessage(err error) string {
	var loadErr *beatmap.LoadError

	if errors.As(err, &loadErr) {
		return loadErr.Err.Error()
	}

	return err.Error()
}
