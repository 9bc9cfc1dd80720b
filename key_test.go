package deromanize

import "testing"

// buildHebrewBaseKey builds the base key from SPEC_FULL.md's worked
// Hebrew example: consonants sh/l/m and vowels a/o (o has two
// candidates, "ו" and the empty string), prefix mode.
func buildHebrewBaseKey(t *testing.T) *Key {
	t.Helper()
	g := newCharacterGroup()
	entries := map[string]any{
		"sh": "ש",
		"l":  "ל",
		"m":  "מ",
		"a":  "",
		"o":  []any{"ו", ""},
	}
	for _, tok := range sortedKeys(entries) {
		if err := g.mergeEntry(tok, entries[tok], 0); err != nil {
			t.Fatal(err)
		}
	}
	return &Key{name: "base", group: g, root: buildTrie(g, false)}
}

func TestGetPartLongestMatch(t *testing.T) {
	k := buildHebrewBaseKey(t)

	rl, rest, err := k.GetPart("shalom")
	if err != nil {
		t.Fatal(err)
	}
	if rl.Key != "sh" {
		t.Errorf("matched key = %q, want \"sh\" (longest prefix, not \"s\")", rl.Key)
	}
	if rest != "alom" {
		t.Errorf("rest = %q, want \"alom\"", rest)
	}
}

func TestGetAllPartsShalom(t *testing.T) {
	k := buildHebrewBaseKey(t)

	parts, err := k.GetAllParts("shalom")
	if err != nil {
		t.Fatal(err)
	}
	reduced, err := AddReplacementLists(parts...)
	if err != nil {
		t.Fatal(err)
	}
	sorted := reduced.Sort()

	if len(sorted.Candidates) != 2 {
		t.Fatalf("len(candidates) = %d, want 2: %v", len(sorted.Candidates), sorted.Candidates)
	}
	if sorted.Candidates[0].Value != "שלומ" || sorted.Candidates[0].Weight != 0 {
		t.Errorf("candidate 0 = %+v, want (0, שלומ)", sorted.Candidates[0])
	}
	if sorted.Candidates[1].Value != "שלמ" || sorted.Candidates[1].Weight != 1 {
		t.Errorf("candidate 1 = %+v, want (1, שלמ)", sorted.Candidates[1])
	}
}

func TestGetPartNoMatch(t *testing.T) {
	k := buildHebrewBaseKey(t)
	_, _, err := k.GetPart("xyz")
	if err == nil {
		t.Fatal("expected ErrNoMatch")
	}
}

func TestSuffixKeyGetPart(t *testing.T) {
	g := newCharacterGroup()
	if err := g.mergeEntry("m", "ם", 0); err != nil {
		t.Fatal(err)
	}
	end := &Key{name: "end", suffix: true, group: g, root: buildTrie(g, true)}

	rl, rest, err := end.GetPart("shalom")
	if err != nil {
		t.Fatal(err)
	}
	if rl.Key != "m" || len(rl.Candidates) != 1 || rl.Candidates[0].Value != "ם" {
		t.Errorf("matched list = %+v", rl)
	}
	if rest != "shalo" {
		t.Errorf("rest = %q, want \"shalo\"", rest)
	}
}

func TestSuffixKeyGetAllPartsOrdering(t *testing.T) {
	g := newCharacterGroup()
	for tok, val := range map[string]string{"l": "ל", "m": "ם"} {
		if err := g.mergeEntry(tok, val, 0); err != nil {
			t.Fatal(err)
		}
	}
	k := &Key{name: "end", suffix: true, group: g, root: buildTrie(g, true)}

	parts, err := k.GetAllParts("lm")
	if err != nil {
		t.Fatal(err)
	}
	if len(parts) != 2 || parts[0].Key != "l" || parts[1].Key != "m" {
		t.Fatalf("parts = %v, want [l, m] in left-to-right order", parts)
	}
}
