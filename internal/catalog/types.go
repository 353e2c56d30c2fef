// Package catalog holds the planner's read-only dataset: the characters
// with their skills, and the modifier item pool. It is loaded into memory
// once at startup and never written to afterwards.
package catalog

import (
	"strconv"

	"github.com/lumina-tools/planner/internal/token"
)

// Skill is one ability of a character.
type Skill struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Cost   int    `json:"cost"`
	Effect string `json:"effect,omitempty"`
}

// Character is a playable character with an ordered skill list.
type Character struct {
	ID     int     `json:"id"`
	Name   string  `json:"name"`
	Skills []Skill `json:"skills"`
}

// ItemLevel is one upgrade tier of an item: a label plus the attribute
// bonuses granted at that tier.
type ItemLevel struct {
	Label      string         `json:"label"`
	Attributes map[string]int `json:"attributes,omitempty"`
}

// Item is one entry of the modifier pool. The same item can be equipped in
// either the cost-tracked or the attribute-tracked role, never both.
type Item struct {
	ID     int         `json:"id"`
	Name   string      `json:"name"`
	Type   string      `json:"type,omitempty"`
	Cost   int         `json:"cost"`
	Levels []ItemLevel `json:"levels,omitempty"`
}

// UIID returns the item's identifier as the UI layer names it.
func (it Item) UIID() string { return token.UIID(strconv.Itoa(it.ID)) }

// HighestLevel returns the item's last level, the default when a build
// names no level for it. The zero ItemLevel is returned for items without
// levels.
func (it Item) HighestLevel() ItemLevel {
	if len(it.Levels) == 0 {
		return ItemLevel{}
	}
	return it.Levels[len(it.Levels)-1]
}

// Level returns the level with the given label, falling back to the
// highest level when the label is unknown or blank.
func (it Item) Level(label string) ItemLevel {
	for _, lv := range it.Levels {
		if lv.Label == label {
			return lv
		}
	}
	return it.HighestLevel()
}

// Catalog aggregates the dataset with id-keyed indexes for lookups.
type Catalog struct {
	Characters []Character `json:"characters"`
	Items      []Item      `json:"items"`

	charByID  map[int]*Character
	itemByID  map[int]*Item
	skillByID map[int]*Skill
}

// New builds a Catalog and its lookup indexes from the given collections.
func New(characters []Character, items []Item) *Catalog {
	c := &Catalog{Characters: characters, Items: items}
	c.index()
	return c
}

func (c *Catalog) index() {
	c.charByID = make(map[int]*Character, len(c.Characters))
	c.skillByID = make(map[int]*Skill)
	c.itemByID = make(map[int]*Item, len(c.Items))

	for i := range c.Characters {
		ch := &c.Characters[i]
		c.charByID[ch.ID] = ch
		for j := range ch.Skills {
			c.skillByID[ch.Skills[j].ID] = &ch.Skills[j]
		}
	}
	for i := range c.Items {
		c.itemByID[c.Items[i].ID] = &c.Items[i]
	}
}

// Character looks up a character by id, nil when unknown.
func (c *Catalog) Character(id int) *Character { return c.charByID[id] }

// Skill looks up a skill by id across all characters, nil when unknown.
func (c *Catalog) Skill(id int) *Skill { return c.skillByID[id] }

// Item looks up an item by numeric id, nil when unknown.
func (c *Catalog) Item(id int) *Item { return c.itemByID[id] }

// ItemByUIID looks up an item by its UI identifier ("item-<N>"), nil when
// the id is unknown or not numeric.
func (c *Catalog) ItemByUIID(uiID string) *Item {
	id, err := strconv.Atoi(token.WireID(uiID))
	if err != nil {
		return nil
	}
	return c.itemByID[id]
}
