package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lumina-tools/planner/internal/db"
)

// Load reads the full catalog out of the database into memory.
func Load(ctx context.Context, database *db.DB) (*Catalog, error) {
	characters, err := loadCharacters(ctx, database)
	if err != nil {
		return nil, fmt.Errorf("loading characters: %w", err)
	}

	items, err := loadItems(ctx, database)
	if err != nil {
		return nil, fmt.Errorf("loading items: %w", err)
	}

	return New(characters, items), nil
}

func loadCharacters(ctx context.Context, database *db.DB) ([]Character, error) {
	rows, err := database.QueryContext(ctx, `SELECT id, name FROM characters ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var characters []Character
	for rows.Next() {
		var ch Character
		if err := rows.Scan(&ch.ID, &ch.Name); err != nil {
			return nil, err
		}
		characters = append(characters, ch)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range characters {
		skills, err := loadSkills(ctx, database, characters[i].ID)
		if err != nil {
			return nil, fmt.Errorf("skills for character %d: %w", characters[i].ID, err)
		}
		characters[i].Skills = skills
	}
	return characters, nil
}

func loadSkills(ctx context.Context, database *db.DB, characterID int) ([]Skill, error) {
	rows, err := database.QueryContext(ctx,
		`SELECT id, name, cost, effect FROM skills WHERE character_id = ? ORDER BY position, id`,
		characterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var skills []Skill
	for rows.Next() {
		var sk Skill
		if err := rows.Scan(&sk.ID, &sk.Name, &sk.Cost, &sk.Effect); err != nil {
			return nil, err
		}
		skills = append(skills, sk)
	}
	return skills, rows.Err()
}

func loadItems(ctx context.Context, database *db.DB) ([]Item, error) {
	rows, err := database.QueryContext(ctx, `SELECT id, name, type, cost FROM items ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Type, &it.Cost); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range items {
		levels, err := loadLevels(ctx, database, items[i].ID)
		if err != nil {
			return nil, fmt.Errorf("levels for item %d: %w", items[i].ID, err)
		}
		items[i].Levels = levels
	}
	return items, nil
}

func loadLevels(ctx context.Context, database *db.DB, itemID int) ([]ItemLevel, error) {
	rows, err := database.QueryContext(ctx,
		`SELECT label, attributes FROM item_levels WHERE item_id = ? ORDER BY position, label`,
		itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var levels []ItemLevel
	for rows.Next() {
		var lv ItemLevel
		var attrs string
		if err := rows.Scan(&lv.Label, &attrs); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(attrs), &lv.Attributes); err != nil {
			return nil, fmt.Errorf("attributes for item %d level %q: %w", itemID, lv.Label, err)
		}
		levels = append(levels, lv)
	}
	return levels, rows.Err()
}

// Save replaces the stored catalog with the given collections inside one
// transaction. Used by the importer; the running server never writes.
func Save(ctx context.Context, database *db.DB, characters []Character, items []Item) error {
	tx, err := database.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"item_levels", "items", "skills", "characters"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	for _, ch := range characters {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO characters (id, name) VALUES (?, ?)`, ch.ID, ch.Name); err != nil {
			return fmt.Errorf("inserting character %q: %w", ch.Name, err)
		}
		for pos, sk := range ch.Skills {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO skills (id, character_id, position, name, cost, effect) VALUES (?, ?, ?, ?, ?, ?)`,
				sk.ID, ch.ID, pos, sk.Name, sk.Cost, sk.Effect); err != nil {
				return fmt.Errorf("inserting skill %q: %w", sk.Name, err)
			}
		}
	}

	for _, it := range items {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO items (id, name, type, cost) VALUES (?, ?, ?, ?)`,
			it.ID, it.Name, it.Type, it.Cost); err != nil {
			return fmt.Errorf("inserting item %q: %w", it.Name, err)
		}
		for pos, lv := range it.Levels {
			attrs, err := json.Marshal(lv.Attributes)
			if err != nil {
				return fmt.Errorf("marshalling attributes for %q: %w", it.Name, err)
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO item_levels (item_id, position, label, attributes) VALUES (?, ?, ?, ?)`,
				it.ID, pos, lv.Label, string(attrs)); err != nil {
				return fmt.Errorf("inserting level %q of %q: %w", lv.Label, it.Name, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing catalog: %w", err)
	}
	return nil
}
