package catalog

import "github.com/lumina-tools/planner/internal/build"

// EquippedItem is an item from the build joined with the level it is set
// to. Chosen reports whether the build named the level explicitly; when it
// did not, Level is the item's highest tier.
type EquippedItem struct {
	Item   Item      `json:"item"`
	Level  ItemLevel `json:"level"`
	Chosen bool      `json:"chosen"`
}

// ResolvedBuild is the build state joined against the catalog. Ids that do
// not resolve are dropped here, silently: the token layer reconstructs
// structure only, and this is the single place semantic validation happens.
type ResolvedBuild struct {
	Title   string `json:"title,omitempty"`
	Comment string `json:"comment,omitempty"`

	Character *Character `json:"character,omitempty"`
	Skills    []Skill    `json:"skills,omitempty"`

	Modifiers  []EquippedItem `json:"modifiers,omitempty"`
	Attributes []EquippedItem `json:"attributes,omitempty"`

	// ModifierCost is the summed cost of the cost-tracked selection.
	ModifierCost int `json:"modifier_cost"`
	// SkillCost is the summed cost of the selected skills.
	SkillCost int `json:"skill_cost"`
	// AttributeTotals merges the attribute maps of the attribute-tracked
	// selection at their effective levels.
	AttributeTotals map[string]int `json:"attribute_totals,omitempty"`
}

// Resolve joins a decoded build state against the catalog. Unknown
// character, skill and item ids simply do not appear in the result.
func (c *Catalog) Resolve(s build.State) ResolvedBuild {
	r := ResolvedBuild{
		Title:           s.Title,
		Comment:         s.Comment,
		AttributeTotals: map[string]int{},
	}

	if ch := c.Character(s.CharacterID); ch != nil {
		r.Character = ch
	}

	for _, id := range s.SkillIDs {
		sk := c.Skill(id)
		if sk == nil {
			continue
		}
		r.Skills = append(r.Skills, *sk)
		r.SkillCost += sk.Cost
	}

	for _, uiID := range s.Modifiers {
		eq, ok := c.equip(uiID, s.Levels)
		if !ok {
			continue
		}
		r.Modifiers = append(r.Modifiers, eq)
		r.ModifierCost += eq.Item.Cost
	}

	for _, uiID := range s.Attributes {
		eq, ok := c.equip(uiID, s.Levels)
		if !ok {
			continue
		}
		r.Attributes = append(r.Attributes, eq)
		for attr, v := range eq.Level.Attributes {
			r.AttributeTotals[attr] += v
		}
	}

	return r
}

func (c *Catalog) equip(uiID string, levels map[string]string) (EquippedItem, bool) {
	it := c.ItemByUIID(uiID)
	if it == nil {
		return EquippedItem{}, false
	}
	label, chosen := levels[uiID]
	return EquippedItem{Item: *it, Level: it.Level(label), Chosen: chosen}, true
}
