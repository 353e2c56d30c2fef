// Package importer loads raw catalog source files (JSON or YAML) from a
// directory tree, normalizes them, and writes the result into the catalog
// database. Entries without an id receive contiguous 1-based ids in input
// order, matching the numbering of the original data tooling.
package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/lumina-tools/planner/internal/catalog"
	"github.com/lumina-tools/planner/internal/db"
	"github.com/lumina-tools/planner/internal/progress"
)

// Options controls which source files are picked up.
type Options struct {
	// CharacterGlobs match character files, ItemGlobs match item files.
	// A file matching neither is ignored.
	CharacterGlobs []string
	ItemGlobs      []string

	// Renumber forces fresh contiguous ids for every entry, discarding ids
	// present in the sources.
	Renumber bool
}

// DefaultOptions matches the file layout of the original planner data dumps.
func DefaultOptions() Options {
	return Options{
		CharacterGlobs: []string{"**/characters*.{json,yaml,yml}"},
		ItemGlobs: []string{
			"**/pictos*.{json,yaml,yml}",
			"**/items*.{json,yaml,yml}",
		},
	}
}

// skipDirs are directory names never descended into.
var skipDirs = []string{".git", "node_modules", "vendor", "dist", "build"}

// Stats summarizes one import run.
type Stats struct {
	Files      int
	Characters int
	Skills     int
	Items      int
}

// Import scans dir for catalog sources, normalizes them, and replaces the
// stored catalog. Progress is reported per file through the reporter.
func Import(ctx context.Context, database *db.DB, dir string, opts Options, rep progress.Reporter) (Stats, error) {
	var stats Stats

	charFiles, itemFiles, err := collect(dir, opts)
	if err != nil {
		return stats, err
	}
	if len(charFiles) == 0 && len(itemFiles) == 0 {
		return stats, fmt.Errorf("no catalog sources found under %s", dir)
	}

	total := len(charFiles) + len(itemFiles)
	rep.Start(total)
	defer rep.Finish()

	var characters []catalog.Character
	var items []catalog.Item
	done := 0

	for _, path := range charFiles {
		var chunk []catalog.Character
		if err := parseFile(path, &chunk); err != nil {
			return stats, fmt.Errorf("parsing %s: %w", path, err)
		}
		characters = append(characters, chunk...)
		done++
		rep.Update(done, filepath.Base(path))
	}

	for _, path := range itemFiles {
		var chunk []catalog.Item
		if err := parseFile(path, &chunk); err != nil {
			return stats, fmt.Errorf("parsing %s: %w", path, err)
		}
		items = append(items, chunk...)
		done++
		rep.Update(done, filepath.Base(path))
	}

	assignIDs(characters, items, opts.Renumber)

	if err := catalog.Save(ctx, database, characters, items); err != nil {
		return stats, fmt.Errorf("saving catalog: %w", err)
	}

	stats.Files = total
	stats.Characters = len(characters)
	stats.Items = len(items)
	for _, ch := range characters {
		stats.Skills += len(ch.Skills)
	}
	return stats, nil
}

// collect walks dir and buckets files by which glob set they match.
func collect(dir string, opts Options) (charFiles, itemFiles []string, err error) {
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			for _, skip := range skipDirs {
				if strings.EqualFold(d.Name(), skip) {
					return fs.SkipDir
				}
			}
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		switch {
		case matchesAny(rel, opts.CharacterGlobs):
			charFiles = append(charFiles, path)
		case matchesAny(rel, opts.ItemGlobs):
			itemFiles = append(itemFiles, path)
		}
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("scanning %s: %w", dir, err)
	}
	sort.Strings(charFiles)
	sort.Strings(itemFiles)
	return charFiles, itemFiles, nil
}

// matchesAny checks the relative path and the bare filename against each
// pattern, so "pictos_list.json" matches wherever it sits in the tree.
func matchesAny(relPath string, patterns []string) bool {
	normalized := filepath.ToSlash(relPath)
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if ok, err := doublestar.PathMatch(pattern, normalized); err == nil && ok {
			return true
		}
		if ok, err := doublestar.PathMatch(pattern, filepath.Base(normalized)); err == nil && ok {
			return true
		}
	}
	return false
}

// parseFile decodes a JSON or YAML list into out (a pointer to a slice).
func parseFile(path string, out any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return json.Unmarshal(raw, out)
	}
	return yaml.Unmarshal(raw, out)
}

// assignIDs gives every entry a positive id. With renumber set, all ids are
// reassigned contiguously from 1 in input order; otherwise only entries
// without an id are filled in, continuing past the highest id seen.
func assignIDs(characters []catalog.Character, items []catalog.Item, renumber bool) {
	nextChar := nextID(renumber, func(yield func(int)) {
		for i := range characters {
			yield(characters[i].ID)
		}
	})
	nextSkill := nextID(renumber, func(yield func(int)) {
		for i := range characters {
			for j := range characters[i].Skills {
				yield(characters[i].Skills[j].ID)
			}
		}
	})
	nextItem := nextID(renumber, func(yield func(int)) {
		for i := range items {
			yield(items[i].ID)
		}
	})

	for i := range characters {
		if renumber || characters[i].ID == 0 {
			characters[i].ID = nextChar()
		}
		for j := range characters[i].Skills {
			if renumber || characters[i].Skills[j].ID == 0 {
				characters[i].Skills[j].ID = nextSkill()
			}
		}
	}
	for i := range items {
		if renumber || items[i].ID == 0 {
			items[i].ID = nextItem()
		}
	}
}

// nextID returns a generator starting at 1 when renumbering, or past the
// highest existing id otherwise.
func nextID(renumber bool, each func(yield func(int))) func() int {
	next := 1
	if !renumber {
		each(func(id int) {
			if id >= next {
				next = id + 1
			}
		})
	}
	return func() int {
		id := next
		next++
		return id
	}
}
