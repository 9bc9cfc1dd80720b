package deromanize

import (
	"testing"
)

func consonantAlias() map[string]aliasSpec {
	return map[string]aliasSpec{
		"C": {name: "C", tokens: []string{"sh", "r", "l", "m", "b", "g", "d"}, keyName: "base"},
	}
}

func TestScanLHSBasic(t *testing.T) {
	segs, captures, err := scanLHS("CiCC", consonantAlias())
	if err != nil {
		t.Fatal(err)
	}
	if len(captures) != 3 {
		t.Fatalf("len(captures) = %d, want 3", len(captures))
	}
	if len(segs) != 4 {
		t.Fatalf("len(segs) = %d, want 4 (C, i, C, C)", len(segs))
	}
	if segs[0].alias == nil || segs[1].literal != "i" || segs[2].alias == nil || segs[3].alias == nil {
		t.Errorf("segs = %+v", segs)
	}
}

func TestScanLHSLongestMatchPreferred(t *testing.T) {
	aliases := map[string]aliasSpec{
		"C":  {name: "C", tokens: []string{"b"}, keyName: "base"},
		"Cl": {name: "Cl", tokens: []string{"bl"}, keyName: "base"},
	}
	segs, captures, err := scanLHS("Clx", aliases)
	if err != nil {
		t.Fatal(err)
	}
	if len(captures) != 1 || captures[0].name != "Cl" {
		t.Fatalf("expected the longer alias \"Cl\" to win, got captures = %+v", captures)
	}
	if segs[1].literal != "x" {
		t.Errorf("segs = %+v", segs)
	}
}

func TestScanLHSNoFalseAmbiguity(t *testing.T) {
	// Distinct alias names never collide under scanLHS's exact-text
	// match (two different names can't both equal the same substring),
	// so unrelated same-length aliases must scan cleanly rather than
	// report ErrPatternAmbiguous.
	aliases := map[string]aliasSpec{
		"AB": {name: "AB", tokens: []string{"x"}, keyName: "base"},
		"CD": {name: "CD", tokens: []string{"y"}, keyName: "base"},
	}
	segs, captures, err := scanLHS("AB", aliases)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(captures) != 1 || len(segs) != 1 || segs[0].alias == nil {
		t.Errorf("segs = %+v, captures = %+v", segs, captures)
	}
}

func TestSubstituteTemplateGreedyDigits(t *testing.T) {
	choice := make([]Replacement, 10)
	for i := range choice {
		choice[i] = Replacement{Value: string(rune('a' + i))}
	}
	got := substituteTemplate(`\1\10`, choice)
	want := "a" + "j" // \1 -> choice[0]="a", \10 -> choice[9]="j"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSubstituteTemplateOutOfRangeDropped(t *testing.T) {
	choice := []Replacement{{Value: "x"}}
	got := substituteTemplate(`\1\5`, choice)
	if got != "x" {
		t.Errorf("got %q, want %q (out-of-range ref dropped)", got, "x")
	}
}

func TestExpandPatternRuleCiCC(t *testing.T) {
	aliases := consonantAlias()
	lookup := func(keyName, token string) (ReplacementList, error) {
		letters := map[string]string{"sh": "ש", "r": "ר", "l": "ל", "m": "מ", "b": "ב", "g": "ג", "d": "ד"}
		v, ok := letters[token]
		if !ok {
			return ReplacementList{}, ErrNoSuchToken
		}
		return ReplacementList{Key: token, Candidates: []Replacement{{Weight: 0, Value: v}}}, nil
	}

	group := newCharacterGroup()
	err := expandPatternRule(group, "CiCC", []any{`\1\2\3`, "\\1י\\2\\3"}, aliases, 0, lookup)
	if err != nil {
		t.Fatal(err)
	}

	// token = capture1 + literal "i" + capture2 + capture3
	rl, ok := group.tokens["rishm"]
	if !ok {
		t.Fatalf("expected a generated token for r+i+sh+m, got tokens: %v", keysOf(group.tokens))
	}
	if len(rl.Candidates) != 2 {
		t.Fatalf("len(candidates) = %d, want 2 (two rhs templates)", len(rl.Candidates))
	}

	var plain, withYod bool
	for _, c := range rl.Candidates {
		switch c.Value {
		case "רשמ":
			plain = true
		case "רישמ":
			withYod = true
		}
	}
	if !plain {
		t.Errorf("missing plain concatenation candidate among %v", rl.Candidates)
	}
	if !withYod {
		t.Errorf("missing yod-insertion candidate among %v", rl.Candidates)
	}
}

func keysOf(m map[string]*ReplacementList) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func TestGroupHasPattern(t *testing.T) {
	aliases := consonantAlias()
	withAlias := map[string]any{"CiCC": []any{`\1\2\3`}}
	if !groupHasPattern(withAlias, aliases) {
		t.Error("expected groupHasPattern to detect the C alias")
	}

	plain := map[string]any{"sh": "ש", "l": "ל"}
	if groupHasPattern(plain, aliases) {
		t.Error("plain literal tokens should not trigger pattern mode")
	}

	if groupHasPattern(plain, nil) {
		t.Error("no aliases at all should never trigger pattern mode")
	}
}

func TestMergePatternGroupDegradesForLiteralEntries(t *testing.T) {
	aliases := consonantAlias()
	lookup := func(keyName, token string) (ReplacementList, error) {
		return ReplacementList{}, ErrNoSuchToken
	}
	raw := map[string]any{"xyz": "literal-value"}
	group := newCharacterGroup()
	if err := mergePatternGroup(group, raw, aliases, 0, lookup); err != nil {
		t.Fatal(err)
	}
	rl, ok := group.tokens["xyz"]
	if !ok || len(rl.Candidates) != 1 || rl.Candidates[0].Value != "literal-value" {
		t.Fatalf("literal-only entry mishandled: %v", group.tokens)
	}
}
