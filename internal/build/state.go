// Package build defines the build state — the complete set of user choices
// describing one planned configuration — and the mutation layer that the
// server and CLI apply user intents through.
package build

import "strings"

// State is the serializable aggregate for one build. A State is treated as
// immutable once constructed: mutations go through Apply, which returns a
// fresh value. Its only durable form is the share token.
type State struct {
	// Levels maps a UI item id ("item-<N>") to the chosen level label.
	// Absence means the item's highest level.
	Levels map[string]string

	// Modifiers holds UI item ids equipped in the cost-tracked role.
	Modifiers []string

	// Attributes holds UI item ids equipped in the attribute-tracked role.
	// An id appears in at most one of Modifiers or Attributes; Apply
	// enforces this, the model itself does not.
	Attributes []string

	Comment string
	Title   string

	// CharacterID is the selected character, 0 when none. Catalog ids
	// start at 1.
	CharacterID int

	// SkillIDs is the ordered skill selection.
	SkillIDs []int
}

// NewState returns an empty State with every collection allocated.
func NewState() State {
	return State{
		Levels:     map[string]string{},
		Modifiers:  []string{},
		Attributes: []string{},
		SkillIDs:   []int{},
	}
}

// IsEmpty reports whether the state carries no choices at all. Empty states
// encode to the empty token and strip the share URL clean.
func (s State) IsEmpty() bool {
	return len(s.Levels) == 0 &&
		len(s.Modifiers) == 0 &&
		len(s.Attributes) == 0 &&
		strings.TrimSpace(s.Comment) == "" &&
		strings.TrimSpace(s.Title) == "" &&
		s.CharacterID == 0 &&
		len(s.SkillIDs) == 0
}

// Clone returns a deep copy. Apply works on a clone so the caller's State
// is never modified in place.
func (s State) Clone() State {
	c := State{
		Levels:      make(map[string]string, len(s.Levels)),
		Modifiers:   append([]string{}, s.Modifiers...),
		Attributes:  append([]string{}, s.Attributes...),
		Comment:     s.Comment,
		Title:       s.Title,
		CharacterID: s.CharacterID,
		SkillIDs:    append([]int{}, s.SkillIDs...),
	}
	for k, v := range s.Levels {
		c.Levels[k] = v
	}
	return c
}

// HasModifier reports whether the item is equipped in the cost-tracked role.
func (s State) HasModifier(id string) bool { return contains(s.Modifiers, id) }

// HasAttribute reports whether the item is equipped in the attribute-tracked role.
func (s State) HasAttribute(id string) bool { return contains(s.Attributes, id) }

// HasSkill reports whether the skill id is selected.
func (s State) HasSkill(id int) bool {
	for _, v := range s.SkillIDs {
		if v == id {
			return true
		}
	}
	return false
}

func contains(list []string, id string) bool {
	for _, v := range list {
		if v == id {
			return true
		}
	}
	return false
}

func remove(list []string, id string) []string {
	out := list[:0]
	for _, v := range list {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
