package token

import (
	"encoding/base64"
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/lumina-tools/planner/internal/build"
)

// record is the compact wire shape. Single-letter keys and comma-joined
// lists keep the token short; empty fields are omitted entirely, which is
// also what lets old tokens missing newer fields decode cleanly.
type record struct {
	Levels     string `json:"l,omitempty"`  // "<id>:<level>,..."
	Modifiers  string `json:"ps,omitempty"` // "<id>,..."
	Attributes string `json:"ls,omitempty"` // "<id>,..."
	Character  int    `json:"ch,omitempty"`
	Skills     string `json:"sk,omitempty"` // "<id>,..."
	Comment    string `json:"c,omitempty"`
	Title      string `json:"t,omitempty"`
}

// Encode serializes the state into an opaque URL-safe token. An empty state
// encodes to the empty string so the share URL layer can strip the token
// from the address instead of writing a degenerate one.
func Encode(s build.State) string {
	if s.IsEmpty() {
		return ""
	}

	rec := record{
		Character: s.CharacterID,
		Comment:   s.Comment,
		Title:     s.Title,
	}

	if len(s.Levels) > 0 {
		pairs := make([]string, 0, len(s.Levels))
		for id, level := range s.Levels {
			pairs = append(pairs, WireID(id)+":"+level)
		}
		// Map iteration order is random; sort so equal states produce
		// equal tokens.
		sort.Strings(pairs)
		rec.Levels = strings.Join(pairs, ",")
	}

	rec.Modifiers = joinWire(s.Modifiers)
	rec.Attributes = joinWire(s.Attributes)

	if len(s.SkillIDs) > 0 {
		ids := make([]string, len(s.SkillIDs))
		for i, id := range s.SkillIDs {
			ids[i] = strconv.Itoa(id)
		}
		rec.Skills = strings.Join(ids, ",")
	}

	// record only holds strings and an int; marshalling cannot fail.
	raw, _ := json.Marshal(rec)
	return base64.RawURLEncoding.EncodeToString(raw)
}

func joinWire(uiIDs []string) string {
	if len(uiIDs) == 0 {
		return ""
	}
	wire := make([]string, len(uiIDs))
	for i, id := range uiIDs {
		wire[i] = WireID(id)
	}
	return strings.Join(wire, ",")
}
