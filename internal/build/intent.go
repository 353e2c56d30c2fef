package build

import "fmt"

// Op identifies a mutation intent emitted by the planner UI or CLI.
type Op string

const (
	OpToggleModifier  Op = "toggle_modifier"
	OpToggleAttribute Op = "toggle_attribute"
	OpSetLevel        Op = "set_level"
	OpClearLevel      Op = "clear_level"
	OpSelectCharacter Op = "select_character"
	OpToggleSkill     Op = "toggle_skill"
	OpSetTitle        Op = "set_title"
	OpSetComment      Op = "set_comment"
	OpReset           Op = "reset"
)

// Intent is one discrete user action. Only the fields relevant to the op
// are read; the rest stay zero.
type Intent struct {
	Op          Op     `json:"op"`
	ItemID      string `json:"item_id,omitempty"`
	Level       string `json:"level,omitempty"`
	CharacterID int    `json:"character_id,omitempty"`
	SkillID     int    `json:"skill_id,omitempty"`
	Text        string `json:"text,omitempty"`
}

// Apply applies one intent to the state and returns the resulting state.
// The input is never modified. Apply is where the cross-field invariants
// live: an item id sits in at most one of the two selection roles, and the
// skill sequence holds no duplicates.
func Apply(s State, in Intent) (State, error) {
	next := s.Clone()

	switch in.Op {
	case OpToggleModifier:
		if in.ItemID == "" {
			return s, fmt.Errorf("toggle_modifier: item id is required")
		}
		if next.HasModifier(in.ItemID) {
			next.Modifiers = remove(next.Modifiers, in.ItemID)
		} else {
			next.Attributes = remove(next.Attributes, in.ItemID)
			next.Modifiers = append(next.Modifiers, in.ItemID)
		}

	case OpToggleAttribute:
		if in.ItemID == "" {
			return s, fmt.Errorf("toggle_attribute: item id is required")
		}
		if next.HasAttribute(in.ItemID) {
			next.Attributes = remove(next.Attributes, in.ItemID)
		} else {
			next.Modifiers = remove(next.Modifiers, in.ItemID)
			next.Attributes = append(next.Attributes, in.ItemID)
		}

	case OpSetLevel:
		if in.ItemID == "" {
			return s, fmt.Errorf("set_level: item id is required")
		}
		next.Levels[in.ItemID] = in.Level

	case OpClearLevel:
		delete(next.Levels, in.ItemID)

	case OpSelectCharacter:
		// Selecting the current character again deselects it.
		if next.CharacterID == in.CharacterID {
			next.CharacterID = 0
		} else {
			next.CharacterID = in.CharacterID
		}

	case OpToggleSkill:
		if next.HasSkill(in.SkillID) {
			out := next.SkillIDs[:0]
			for _, id := range next.SkillIDs {
				if id != in.SkillID {
					out = append(out, id)
				}
			}
			next.SkillIDs = out
		} else {
			next.SkillIDs = append(next.SkillIDs, in.SkillID)
		}

	case OpSetTitle:
		next.Title = in.Text

	case OpSetComment:
		next.Comment = in.Text

	case OpReset:
		next = NewState()

	default:
		return s, fmt.Errorf("unknown intent op %q", in.Op)
	}

	return next, nil
}
