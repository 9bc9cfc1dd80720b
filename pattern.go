package deromanize

import (
	"fmt"
	"sort"
	"strconv"
	"unicode"
)

// aliasSpec is a resolved char_sets entry: the romanized tokens alias
// ranges over, and the name of the compiled Key whose per-token
// candidates supply the original-script substitution value for each of
// those tokens.
type aliasSpec struct {
	name    string
	tokens  []string
	keyName string
}

// lhsSegment is one piece of a scanned pattern rule's left-hand side:
// either literal text that must match (and is reproduced) verbatim, or
// a capture over one alias's token set.
type lhsSegment struct {
	literal string
	alias   *aliasSpec
}

// scanLHS splits lhs into literal and capture segments, preferring the
// longest alias match at each position (ties at equal length are
// rejected as ErrPatternAmbiguous, since there is no principled way to
// prefer one). Captures are returned separately, in left-to-right
// order, for \N back-reference numbering.
func scanLHS(lhs string, aliases map[string]aliasSpec) ([]lhsSegment, []aliasSpec, error) {
	names := make([]string, 0, len(aliases))
	for n := range aliases {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool { return len(names[i]) > len(names[j]) })

	runes := []rune(lhs)
	var segs []lhsSegment
	var captures []aliasSpec
	var literalBuf []rune

	flushLiteral := func() {
		if len(literalBuf) > 0 {
			segs = append(segs, lhsSegment{literal: string(literalBuf)})
			literalBuf = nil
		}
	}

	i := 0
	for i < len(runes) {
		matchName := ""
		matchLen := -1
		for _, name := range names {
			nr := []rune(name)
			if i+len(nr) > len(runes) {
				continue
			}
			if string(runes[i:i+len(nr)]) != name {
				continue
			}
			if len(nr) == matchLen {
				return nil, nil, fmt.Errorf("pattern %q at position %d: %w", lhs, i, ErrPatternAmbiguous)
			}
			if len(nr) > matchLen {
				matchLen = len(nr)
				matchName = name
			}
		}
		if matchLen >= 0 {
			flushLiteral()
			a := aliases[matchName]
			segs = append(segs, lhsSegment{alias: &a})
			captures = append(captures, a)
			i += matchLen
			continue
		}
		literalBuf = append(literalBuf, runes[i])
		i++
	}
	flushLiteral()
	return segs, captures, nil
}

// cartesianTokenBindings enumerates every combination of one token per
// capture, in capture order. A rule with zero captures yields exactly
// one (empty) binding, so literal-only rules degrade cleanly to a
// single pass through the expander.
func cartesianTokenBindings(captures []aliasSpec) [][]string {
	result := [][]string{{}}
	for _, cap := range captures {
		next := make([][]string, 0, len(result)*len(cap.tokens))
		for _, prefix := range result {
			for _, tok := range cap.tokens {
				np := make([]string, len(prefix)+1)
				copy(np, prefix)
				np[len(prefix)] = tok
				next = append(next, np)
			}
		}
		result = next
	}
	return result
}

// cartesianReplacementChoices enumerates every combination of one
// candidate per capture's resolved ReplacementList.
func cartesianReplacementChoices(candLists [][]Replacement) [][]Replacement {
	result := [][]Replacement{{}}
	for _, cands := range candLists {
		next := make([][]Replacement, 0, len(result)*len(cands))
		for _, prefix := range result {
			for _, c := range cands {
				np := make([]Replacement, len(prefix)+1)
				copy(np, prefix)
				np[len(prefix)] = c
				next = append(next, np)
			}
		}
		result = next
	}
	return result
}

// assembleToken reconstructs the generated left-hand-side token for one
// binding: literal segments pass through unchanged, capture segments
// consume the next bound token in order.
func assembleToken(segs []lhsSegment, binding []string) string {
	var b []byte
	idx := 0
	for _, seg := range segs {
		if seg.alias != nil {
			b = append(b, binding[idx]...)
			idx++
		} else {
			b = append(b, seg.literal...)
		}
	}
	return string(b)
}

// rhsTemplate is one output template for a pattern rule: either a bare
// string at implicit weight 0, or an explicit (weight, template) pair.
type rhsTemplate struct {
	weight   int
	template string
}

// parseRHSList parses a pattern rule's right-hand side value, which
// reuses the same bare-string / sequence / (weight, value) pair shapes
// as a plain group entry (see parseEntry), but without positional
// weight defaulting for bare strings in a list — every un-paired
// template defaults to weight 0.
func parseRHSList(v any) ([]rhsTemplate, error) {
	switch t := v.(type) {
	case string:
		return []rhsTemplate{{weight: 0, template: t}}, nil
	case []any:
		if isPairShape(t) {
			return []rhsTemplate{{weight: t[0].(int), template: t[1].(string)}}, nil
		}
		out := make([]rhsTemplate, 0, len(t))
		for i, item := range t {
			switch it := item.(type) {
			case string:
				out = append(out, rhsTemplate{weight: 0, template: it})
			case []any:
				if !isPairShape(it) {
					return nil, fmt.Errorf("rhs template %d: %w", i, ErrBadEntry)
				}
				out = append(out, rhsTemplate{weight: it[0].(int), template: it[1].(string)})
			default:
				return nil, fmt.Errorf("rhs template %d: %w", i, ErrBadEntry)
			}
		}
		return out, nil
	default:
		return nil, ErrBadEntry
	}
}

// substituteTemplate expands \N back-references in tmpl against choice
// (choice[N-1] is the candidate bound to capture N). Digit runs are
// consumed greedily so \1 and \10 never collide. A reference to a
// capture number out of range is dropped silently, matching the
// templates' free-form, author-trusted nature.
func substituteTemplate(tmpl string, choice []Replacement) string {
	runes := []rune(tmpl)
	var b []rune
	i := 0
	for i < len(runes) {
		if runes[i] == '\\' && i+1 < len(runes) && unicode.IsDigit(runes[i+1]) {
			j := i + 1
			for j < len(runes) && unicode.IsDigit(runes[j]) {
				j++
			}
			n, _ := strconv.Atoi(string(runes[i+1 : j]))
			if n >= 1 && n <= len(choice) {
				b = append(b, []rune(choice[n-1].Value)...)
			}
			i = j
			continue
		}
		b = append(b, runes[i])
		i++
	}
	return string(b)
}

// lookupFunc resolves a (key name, token) pair to that key's compiled
// ReplacementList, used by the pattern expander to pull the
// original-script candidates alias.key[token] declares for a capture.
type lookupFunc func(keyName, token string) (ReplacementList, error)

// expandPatternRule expands one pattern rule (lhs -> rhs templates)
// into the set of generated token -> candidates it contributes,
// merging them into group with weightOffset applied. Every resulting
// candidate gets the same single (token, value) provenance pair every
// other leaf-level group entry gets (see CharacterGroup.mergeEntry) —
// the sub-segmentation used to generate the token is a compile-time
// detail, not part of the runtime provenance trace.
func expandPatternRule(group *CharacterGroup, lhs string, rhsVal any, aliases map[string]aliasSpec, weightOffset int, lookup lookupFunc) error {
	rhsList, err := parseRHSList(rhsVal)
	if err != nil {
		return fmt.Errorf("pattern %q: %w", lhs, err)
	}
	segs, captures, err := scanLHS(lhs, aliases)
	if err != nil {
		return err
	}

	for _, binding := range cartesianTokenBindings(captures) {
		token := assembleToken(segs, binding)

		candLists := make([][]Replacement, len(binding))
		for i, tok := range binding {
			rl, err := lookup(captures[i].keyName, tok)
			if err != nil {
				return fmt.Errorf("pattern %q: capture %d token %q: %w", lhs, i+1, tok, err)
			}
			candLists[i] = rl.Candidates
		}

		for _, rhs := range rhsList {
			for _, choice := range cartesianReplacementChoices(candLists) {
				weight := rhs.weight + weightOffset
				for _, c := range choice {
					weight += c.Weight
				}
				value := substituteTemplate(rhs.template, choice)

				rl, ok := group.tokens[token]
				if !ok {
					rl = &ReplacementList{Key: token}
					group.tokens[token] = rl
				}
				rl.Candidates = append(rl.Candidates, Replacement{
					Weight:   weight,
					Value:    value,
					Keyvalue: []KeyValue{{Romanized: token, Original: value}},
				})
			}
		}
	}
	return nil
}

// groupHasPattern reports whether any token key in raw contains a
// declared char_sets alias — the signal that the whole group must go
// through the pattern expander rather than a plain §4.2 merge.
func groupHasPattern(raw map[string]any, aliases map[string]aliasSpec) bool {
	if len(aliases) == 0 {
		return false
	}
	for tokenKey := range raw {
		if _, captures, err := scanLHS(tokenKey, aliases); err == nil && len(captures) > 0 {
			return true
		}
	}
	return false
}

// mergePatternGroup processes every entry of a pattern-bearing raw
// group through the pattern expander, in token-key sorted order for
// determinism. Entries whose particular key has no alias in it (scanLHS
// yields zero captures) are merged with the plain mergeEntry instead,
// so they get exactly the same weights and provenance as in a plain
// group.
func mergePatternGroup(group *CharacterGroup, raw map[string]any, aliases map[string]aliasSpec, weightOffset int, lookup lookupFunc) error {
	for _, lhs := range sortedKeys(raw) {
		_, captures, err := scanLHS(lhs, aliases)
		if err != nil {
			return err
		}
		if len(captures) == 0 {
			if err := group.mergeEntry(lhs, raw[lhs], weightOffset); err != nil {
				return err
			}
			continue
		}
		if err := expandPatternRule(group, lhs, raw[lhs], aliases, weightOffset, lookup); err != nil {
			return err
		}
	}
	return nil
}
