package database

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/osukit/diffcalc/app/rulesets/api"
)

// Cache stores computed difficulty results in a local sqlite database so
// unchanged maps are not recalculated across runs. The key includes the
// engine version, so reworked engines invalidate old rows naturally.
type Cache struct {
	db *sql.DB
}

func NewCache(path string) (*Cache, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open result cache: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS results (
			md5 TEXT NOT NULL,
			ruleset INTEGER NOT NULL,
			mods TEXT NOT NULL,
			version INTEGER NOT NULL,
			attributes TEXT NOT NULL,
			strains TEXT NOT NULL,
			PRIMARY KEY (md5, ruleset, mods, version)
		)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to prepare result cache: %w", err)
	}

	return &Cache{db: db}, nil
}

func (cache *Cache) Close() error {
	return cache.db.Close()
}

// Lookup returns a previously stored result, with ok reporting whether the
// key was present.
func (cache *Cache) Lookup(md5 string, rulesetID int, mods string, version int) (api.Attributes, []float64, bool, error) {
	row := cache.db.QueryRow(
		`SELECT attributes, strains FROM results WHERE md5 = ? AND ruleset = ? AND mods = ? AND version = ?`,
		md5, rulesetID, mods, version,
	)

	var attrJSON, strainsJSON string

	if err := row.Scan(&attrJSON, &strainsJSON); err != nil {
		if err == sql.ErrNoRows {
			return api.Attributes{}, nil, false, nil
		}

		return api.Attributes{}, nil, false, fmt.Errorf("result cache lookup failed: %w", err)
	}

	var attr api.Attributes
	if err := json.Unmarshal([]byte(attrJSON), &attr); err != nil {
		return api.Attributes{}, nil, false, fmt.Errorf("corrupt cache row: %w", err)
	}

	var strains []float64
	if err := json.Unmarshal([]byte(strainsJSON), &strains); err != nil {
		return api.Attributes{}, nil, false, fmt.Errorf("corrupt cache row: %w", err)
	}

	return attr, strains, true, nil
}

func (cache *Cache) Store(md5 string, rulesetID int, mods string, version int, attr api.Attributes, strains []float64) error {
	attrJSON, err := json.Marshal(attr)
	if err != nil {
		return err
	}

	if strains == nil {
		strains = []float64{}
	}

	strainsJSON, err := json.Marshal(strains)
	if err != nil {
		return err
	}

	_, err = cache.db.Exec(
		`INSERT OR REPLACE INTO results (md5, ruleset, mods, version, attributes, strains) VALUES (?, ?, ?, ?, ?, ?)`,
		md5, rulesetID, mods, version, string(attrJSON), string(strainsJSON),
	)
	if err != nil {
		return fmt.Errorf("result cache store failed: %w", err)
	}

	return nil
}
