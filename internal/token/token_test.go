package token

import (
	"encoding/base64"
	"reflect"
	"testing"

	"github.com/lumina-tools/planner/internal/build"
)

func TestWireIDRoundTrip(t *testing.T) {
	cases := []string{"item-1", "item-42", "item-999"}
	for _, uiID := range cases {
		if got := UIID(WireID(uiID)); got != uiID {
			t.Errorf("UIID(WireID(%q)) = %q", uiID, got)
		}
	}
}

func TestWireIDWithoutSeparator(t *testing.T) {
	if got := WireID("42"); got != "42" {
		t.Errorf("WireID(\"42\") = %q, want passthrough", got)
	}
}

func TestWireIDStripsFirstSeparatorOnly(t *testing.T) {
	// Only the first separator splits; the rest belongs to the id.
	if got := WireID("item-4-b"); got != "4-b" {
		t.Errorf("WireID(\"item-4-b\") = %q, want \"4-b\"", got)
	}
}

func TestEncodeEmptyState(t *testing.T) {
	if got := Encode(build.NewState()); got != "" {
		t.Errorf("Encode(empty) = %q, want empty string", got)
	}
}

func TestDecodeEmptyToken(t *testing.T) {
	dec := Decode("")
	if dec.Recovered {
		t.Error("empty token should not count as recovered")
	}
	if !dec.State.IsEmpty() {
		t.Errorf("Decode(\"\") = %+v, want empty state", dec.State)
	}
}

func TestRoundTrip(t *testing.T) {
	s := build.NewState()
	s.Levels["item-7"] = "3"
	s.Levels["item-12"] = "1"
	s.Modifiers = []string{"item-7", "item-3"}
	s.Attributes = []string{"item-12"}
	s.Comment = "Open with Marcher — très utile ✨"
	s.Title = "Überbuild"
	s.CharacterID = 2
	s.SkillIDs = []int{10, 11, 4}

	tok := Encode(s)
	if tok == "" {
		t.Fatal("Encode returned empty token for populated state")
	}

	dec := Decode(tok)
	if dec.Recovered {
		t.Fatalf("round trip flagged recovered: %v", dec.Err)
	}
	if !reflect.DeepEqual(dec.State, s) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", dec.State, s)
	}
}

func TestRoundTripSingleFields(t *testing.T) {
	cases := map[string]func(*build.State){
		"title only":     func(s *build.State) { s.Title = "My Build" },
		"comment only":   func(s *build.State) { s.Comment = "note" },
		"character only": func(s *build.State) { s.CharacterID = 5 },
		"skills only":    func(s *build.State) { s.SkillIDs = []int{1, 2, 3} },
		"levels only":    func(s *build.State) { s.Levels["item-9"] = "4" },
		"modifier only":  func(s *build.State) { s.Modifiers = []string{"item-1"} },
		"attribute only": func(s *build.State) { s.Attributes = []string{"item-2"} },
	}

	for name, populate := range cases {
		t.Run(name, func(t *testing.T) {
			s := build.NewState()
			populate(&s)
			dec := Decode(Encode(s))
			if !reflect.DeepEqual(dec.State, s) {
				t.Errorf("got %+v, want %+v", dec.State, s)
			}
		})
	}
}

func TestDecodeGarbage(t *testing.T) {
	for _, tok := range []string{"not-valid-base64!!!", "@@@@", "aGVsbG8", "e30#"} {
		dec := Decode(tok)
		if !dec.State.IsEmpty() {
			t.Errorf("Decode(%q) state = %+v, want empty", tok, dec.State)
		}
		if !dec.Recovered {
			t.Errorf("Decode(%q) should be flagged recovered", tok)
		}
		if dec.Err == nil {
			t.Errorf("Decode(%q) should carry the failure cause", tok)
		}
	}
}

func TestDecodeSkipsMalformedLevelPairs(t *testing.T) {
	raw := `{"l":"7:3,badpair,12:"}`
	tok := base64.RawURLEncoding.EncodeToString([]byte(raw))

	dec := Decode(tok)
	if dec.Recovered {
		t.Fatalf("partial corruption must not flag the whole token: %v", dec.Err)
	}
	// "7:3" is well-formed, "badpair" has no colon and is skipped,
	// "12:" keeps an empty level label.
	if got := dec.State.Levels["item-7"]; got != "3" {
		t.Errorf("Levels[item-7] = %q, want \"3\"", got)
	}
	if _, ok := dec.State.Levels["item-badpair"]; ok {
		t.Error("malformed pair should be skipped")
	}
	if len(dec.State.Levels) != 2 {
		t.Errorf("Levels = %v, want 2 entries", dec.State.Levels)
	}
}

func TestDecodeSkipsNonNumericSkills(t *testing.T) {
	raw := `{"sk":"10,abc,11"}`
	tok := base64.RawURLEncoding.EncodeToString([]byte(raw))

	dec := Decode(tok)
	want := []int{10, 11}
	if !reflect.DeepEqual(dec.State.SkillIDs, want) {
		t.Errorf("SkillIDs = %v, want %v", dec.State.SkillIDs, want)
	}
}

func TestDecodeIgnoresWrongFieldType(t *testing.T) {
	// A field of the wrong type costs that field, not the token.
	raw := `{"t":"Still here","ch":true}`
	tok := base64.RawURLEncoding.EncodeToString([]byte(raw))

	dec := Decode(tok)
	if dec.Recovered {
		t.Fatalf("unexpected recovery: %v", dec.Err)
	}
	if dec.State.Title != "Still here" {
		t.Errorf("Title = %q", dec.State.Title)
	}
	if dec.State.CharacterID != 0 {
		t.Errorf("CharacterID = %d, want 0", dec.State.CharacterID)
	}
}

func TestDecodeIgnoresUnknownKeys(t *testing.T) {
	raw := `{"t":"Future-proof","zz":"from a newer version"}`
	tok := base64.RawURLEncoding.EncodeToString([]byte(raw))

	dec := Decode(tok)
	if dec.State.Title != "Future-proof" {
		t.Errorf("Title = %q", dec.State.Title)
	}
}

func TestDecodeStandardBase64(t *testing.T) {
	// The original web planner emits plain btoa output: standard
	// alphabet, padded.
	raw := `{"t":"Legacy"}`
	tok := base64.StdEncoding.EncodeToString([]byte(raw))

	dec := Decode(tok)
	if dec.Recovered {
		t.Fatalf("legacy token flagged recovered: %v", dec.Err)
	}
	if dec.State.Title != "Legacy" {
		t.Errorf("Title = %q, want \"Legacy\"", dec.State.Title)
	}
}

func TestMutualExclusivitySurvivesRoundTrip(t *testing.T) {
	s := build.NewState()
	s.Modifiers = []string{"item-7"}

	dec := Decode(Encode(s))
	if !dec.State.HasModifier("item-7") {
		t.Error("item-7 lost from modifier selection")
	}
	if dec.State.HasAttribute("item-7") {
		t.Error("item-7 leaked into attribute selection")
	}
}

func TestEndToEndExample(t *testing.T) {
	s := build.NewState()
	s.Levels["item-7"] = "3"
	s.Modifiers = []string{"item-7"}
	s.CharacterID = 2
	s.SkillIDs = []int{10, 11}
	s.Title = "My Build"

	tok := Encode(s)
	if tok == "" {
		t.Fatal("expected a non-empty token")
	}

	dec := Decode(tok)
	got := dec.State
	if got.Levels["item-7"] != "3" {
		t.Errorf("Levels = %v", got.Levels)
	}
	if !reflect.DeepEqual(got.Modifiers, []string{"item-7"}) {
		t.Errorf("Modifiers = %v", got.Modifiers)
	}
	if len(got.Attributes) != 0 {
		t.Errorf("Attributes = %v, want none", got.Attributes)
	}
	if got.CharacterID != 2 {
		t.Errorf("CharacterID = %d", got.CharacterID)
	}
	if !reflect.DeepEqual(got.SkillIDs, []int{10, 11}) {
		t.Errorf("SkillIDs = %v", got.SkillIDs)
	}
	if got.Title != "My Build" {
		t.Errorf("Title = %q", got.Title)
	}
	if got.Comment != "" {
		t.Errorf("Comment = %q, want empty", got.Comment)
	}
}

func TestEncodeDeterministic(t *testing.T) {
	s := build.NewState()
	s.Levels["item-1"] = "2"
	s.Levels["item-2"] = "4"
	s.Levels["item-30"] = "1"

	first := Encode(s)
	for i := 0; i < 10; i++ {
		if got := Encode(s); got != first {
			t.Fatalf("Encode not deterministic: %q vs %q", got, first)
		}
	}
}
