package token

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/lumina-tools/planner/internal/build"
)

// Decoded is the result of decoding a token. Decode never fails: a
// malformed token yields an empty state with Recovered set, so callers can
// tell a fresh build from one salvaged out of a corrupt link. Err carries
// the underlying cause for logging and is nil otherwise.
type Decoded struct {
	State     build.State
	Recovered bool
	Err       error
}

// Decode reconstructs a build state from a share token. The empty token is
// the clean empty build. A token that fails base64 or JSON decoding comes
// back as an empty build flagged Recovered. Inside a well-formed token,
// malformed entries (a level pair missing its colon, a non-numeric id) are
// skipped one by one; partial corruption costs partial data, never the
// whole build.
func Decode(tok string) Decoded {
	state := build.NewState()

	if tok == "" {
		return Decoded{State: state}
	}

	raw, err := decodeBase64(tok)
	if err != nil {
		return Decoded{State: state, Recovered: true, Err: fmt.Errorf("decoding token: %w", err)}
	}

	// Per-field tolerance: unmarshal loosely and coerce field by field, so
	// one field of the wrong type costs that field, not the token.
	var rec map[string]any
	if err := json.Unmarshal(raw, &rec); err != nil {
		return Decoded{State: state, Recovered: true, Err: fmt.Errorf("parsing token: %w", err)}
	}

	if v, ok := asString(rec["l"]); ok {
		for _, pair := range splitList(v) {
			id, level, ok := strings.Cut(pair, ":")
			if !ok || id == "" {
				continue
			}
			state.Levels[UIID(id)] = level
		}
	}

	if v, ok := asString(rec["ps"]); ok {
		for _, id := range splitList(v) {
			if id == "" {
				continue
			}
			state.Modifiers = append(state.Modifiers, UIID(id))
		}
	}

	if v, ok := asString(rec["ls"]); ok {
		for _, id := range splitList(v) {
			if id == "" {
				continue
			}
			state.Attributes = append(state.Attributes, UIID(id))
		}
	}

	if n, ok := asInt(rec["ch"]); ok {
		state.CharacterID = n
	}

	if v, ok := asString(rec["sk"]); ok {
		for _, s := range splitList(v) {
			n, err := strconv.Atoi(s)
			if err != nil {
				continue
			}
			state.SkillIDs = append(state.SkillIDs, n)
		}
	}

	if v, ok := asString(rec["c"]); ok {
		state.Comment = v
	}
	if v, ok := asString(rec["t"]); ok {
		state.Title = v
	}

	return Decoded{State: state}
}

// decodeBase64 accepts the unpadded URL-safe alphabet the encoder emits,
// and falls back to the standard alphabet so tokens minted by the original
// web planner (plain btoa output) still decode.
func decodeBase64(tok string) ([]byte, error) {
	trimmed := strings.TrimRight(tok, "=")
	if raw, err := base64.RawURLEncoding.DecodeString(trimmed); err == nil {
		return raw, nil
	}
	return base64.RawStdEncoding.DecodeString(trimmed)
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	return strings.Split(v, ",")
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case string:
		// Tolerate a stringly-typed number from a foreign encoder.
		i, err := strconv.Atoi(n)
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}
