package deromanize

import "fmt"

// CharacterGroup maps a romanized token to the ReplacementList of
// original-script candidates it can stand for. It is the compiled form
// of a profile's raw group entries, after union-merging parents,
// siblings and pattern-expanded rules together.
type CharacterGroup struct {
	tokens map[string]*ReplacementList
}

func newCharacterGroup() *CharacterGroup {
	return &CharacterGroup{tokens: map[string]*ReplacementList{}}
}

// cloneGroup deep-copies src so mutating the clone (merging a child
// key's own groups into it) never affects the parent's compiled group.
func cloneGroup(src *CharacterGroup) *CharacterGroup {
	dst := newCharacterGroup()
	for token, rl := range src.tokens {
		cands := make([]Replacement, len(rl.Candidates))
		for i, c := range rl.Candidates {
			kv := append([]KeyValue(nil), c.Keyvalue...)
			cands[i] = Replacement{Weight: c.Weight, Value: c.Value, Keyvalue: kv}
		}
		dst.tokens[token] = &ReplacementList{Key: token, Candidates: cands}
	}
	return dst
}

// isPairShape reports whether t is a 2-element sequence shaped like an
// explicit (weight, value) pair: an int followed by a string. This is
// the one shape test that disambiguates "a bare pair" from "a sequence
// of exactly two bare-string alternatives".
func isPairShape(t []any) bool {
	if len(t) != 2 {
		return false
	}
	_, isInt := t[0].(int)
	_, isStr := t[1].(string)
	return isInt && isStr
}

// parseEntry parses one raw profile entry value into its candidate
// (weight, value) pairs, dispatching once on its shape:
//
//   - a bare string is one candidate at weight 0
//   - a 2-element [int, string] sequence is one candidate at the given
//     explicit weight
//   - any other sequence is a list of alternatives: a bare string at
//     position i defaults to weight i, and a nested [int, string] pair
//     overrides the weight explicitly
func parseEntry(v any) ([]Replacement, error) {
	switch t := v.(type) {
	case string:
		return []Replacement{{Weight: 0, Value: t}}, nil
	case []any:
		if isPairShape(t) {
			w := t[0].(int)
			val := t[1].(string)
			return []Replacement{{Weight: w, Value: val}}, nil
		}
		out := make([]Replacement, 0, len(t))
		for i, item := range t {
			switch it := item.(type) {
			case string:
				out = append(out, Replacement{Weight: i, Value: it})
			case []any:
				if !isPairShape(it) {
					return nil, fmt.Errorf("alternative %d: %w", i, ErrBadEntry)
				}
				out = append(out, Replacement{Weight: it[0].(int), Value: it[1].(string)})
			default:
				return nil, fmt.Errorf("alternative %d: %w", i, ErrBadEntry)
			}
		}
		return out, nil
	default:
		return nil, ErrBadEntry
	}
}

// mergeEntry parses raw and appends its candidates to g's list for
// token, shifting each candidate's weight by weightOffset and setting
// its provenance to the single (token, value) pair — the same leaf-level
// granularity every entry gets, whether it came from a plain group merge
// or pattern expansion.
func (g *CharacterGroup) mergeEntry(token string, raw any, weightOffset int) error {
	cands, err := parseEntry(raw)
	if err != nil {
		return fmt.Errorf("token %q: %w", token, err)
	}
	rl, ok := g.tokens[token]
	if !ok {
		rl = &ReplacementList{Key: token}
		g.tokens[token] = rl
	}
	for _, c := range cands {
		c.Weight += weightOffset
		c.Keyvalue = []KeyValue{{Romanized: token, Original: c.Value}}
		rl.Candidates = append(rl.Candidates, c)
	}
	return nil
}
