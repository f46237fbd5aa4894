// Package transfer moves terminal content in and out of the store as a
// single JSON snapshot. Import merges by key: a snapshot category or alias
// overwrites the same-named existing one and leaves everything else alone.
package transfer

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"tableflip.dev/mycmd/pkg/alias"
	"tableflip.dev/mycmd/pkg/category"
)

// Version identifies the snapshot layout.
const Version = "1.0"

// ErrMissingData rejects snapshots without both data sections.
var ErrMissingData = errors.New("transfer: missing data.categories or data.aliases")

// Snapshot is the export file shape.
type Snapshot struct {
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
	Data      Data      `json:"data"`
}

// Data carries the two content stores. Pointers distinguish an absent
// section from an empty one during validation.
type Data struct {
	Categories *category.Store `json:"categories"`
	Aliases    *alias.Registry `json:"aliases"`
}

// Filename names an export after the day it was taken.
func Filename(now time.Time) string {
	return fmt.Sprintf("mycmd-export-%s.json", now.Format("2006-01-02"))
}

// Encode serializes the current stores into a snapshot document.
func Encode(cats *category.Store, aliases *alias.Registry, now time.Time) ([]byte, error) {
	snap := Snapshot{
		Version:   Version,
		Timestamp: now,
		Data:      Data{Categories: cats, Aliases: aliases},
	}
	return json.MarshalIndent(snap, "", "  ")
}

// Decode parses and validates a snapshot document.
func Decode(data []byte) (*Snapshot, error) {
	snap := &Snapshot{}
	if err := json.Unmarshal(data, snap); err != nil {
		return nil, fmt.Errorf("transfer: parse: %w", err)
	}
	if snap.Data.Categories == nil || snap.Data.Aliases == nil {
		return nil, ErrMissingData
	}
	return snap, nil
}

// Merge folds the snapshot into the given stores, overwriting same-named
// keys, and reports how many categories and aliases were imported.
func Merge(snap *Snapshot, cats *category.Store, aliases *alias.Registry) (int, int) {
	importedCats := 0
	for _, name := range snap.Data.Categories.Names() {
		items, _ := snap.Data.Categories.Items(name)
		cats.Put(name, items)
		importedCats++
	}
	importedAliases := 0
	for _, name := range snap.Data.Aliases.Names() {
		url, _ := snap.Data.Aliases.Resolve(name)
		aliases.Put(name, url)
		importedAliases++
	}
	return importedCats, importedAliases
}
