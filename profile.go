// Package deromanize compiles a declarative romanization profile — named
// character groups plus named, inheriting tokenizer keys built from
// them — into an Engine that ranks original-script spellings for a
// romanized word. See SPEC_FULL.md for the full design.
package deromanize

import (
	"fmt"
	"sort"
)

// A Profile is the raw tree a caller hands to Build: a map with a
// "keys" entry, an optional "char_sets" entry, and any number of other
// top-level entries that are character groups (or opaque user data the
// compiler never touches). The engine itself never parses a file or a
// serialization format — that is internal/profileio's job.
type Profile = map[string]any

// groupRef is one entry in a key-spec's group list: a group name plus
// an optional per-group weight offset applied to every candidate that
// group contributes to the key.
type groupRef struct {
	name   string
	offset int
}

// parentRef resolves a key-spec's base/parent field. present is false
// when the field was absent entirely (implicit parent rules apply);
// null is true for an explicit null (no parent, even if "base" exists).
type parentRef struct {
	present bool
	null    bool
	name    string
}

// keySpec is a parsed (not yet compiled) key definition.
type keySpec struct {
	groups []groupRef
	parent parentRef
	suffix bool
}

// sortedKeys returns the keys of m in lexicographic order. Go map
// iteration order is randomized per process; the compiler sorts at
// every point where profile order would otherwise leak into compiled
// output (alias token ranges, group-merge order), so that compiling
// the same profile twice always produces byte-identical results.
func sortedKeys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// extractRawGroups collects every top-level profile entry other than
// "keys" and "char_sets" that is itself a map, as a candidate character
// group. Entries looked up by name later (by a key-spec or a char_sets
// alias) are treated as groups; anything never referenced is simply
// never read, exactly as spec.md describes "opaque user data".
func extractRawGroups(profile Profile) map[string]map[string]any {
	out := map[string]map[string]any{}
	for name, v := range profile {
		if name == "keys" || name == "char_sets" {
			continue
		}
		if m, ok := v.(map[string]any); ok {
			out[name] = m
		}
	}
	return out
}

// resolveCharSets normalizes every char_sets entry into an aliasSpec,
// resolving its "chars" field (a group name, or an inline list of
// literal characters) into the concrete token list the alias ranges
// over (sorted for a group name, in the given order for an inline
// list), and defaulting "key" to "base".
func resolveCharSets(profile Profile, rawGroups map[string]map[string]any) (map[string]aliasSpec, error) {
	raw, ok := profile["char_sets"]
	if !ok {
		return map[string]aliasSpec{}, nil
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("char_sets: %w", ErrBadEntry)
	}

	out := map[string]aliasSpec{}
	for _, name := range sortedKeys(m) {
		v := m[name]
		var charsVal any
		keyName := "base"
		switch vv := v.(type) {
		case string:
			charsVal = vv
		case map[string]any:
			cv, ok := vv["chars"]
			if !ok {
				return nil, fmt.Errorf("char_sets %q: %w", name, ErrBadEntry)
			}
			charsVal = cv
			if kn, ok := vv["key"]; ok {
				kns, ok := kn.(string)
				if !ok {
					return nil, fmt.Errorf("char_sets %q: %w", name, ErrBadEntry)
				}
				keyName = kns
			}
		default:
			return nil, fmt.Errorf("char_sets %q: %w", name, ErrBadEntry)
		}

		tokens, err := resolveCharsTokens(charsVal, rawGroups)
		if err != nil {
			return nil, fmt.Errorf("char_sets %q: %w", name, err)
		}
		out[name] = aliasSpec{name: name, tokens: tokens, keyName: keyName}
	}
	return out, nil
}

func resolveCharsTokens(charsVal any, rawGroups map[string]map[string]any) ([]string, error) {
	switch cv := charsVal.(type) {
	case string:
		g, ok := rawGroups[cv]
		if !ok {
			return nil, fmt.Errorf("group %q: %w", cv, ErrUnknownGroup)
		}
		toks := sortedKeys(g)
		return toks, nil
	case []any:
		toks := make([]string, 0, len(cv))
		for i, e := range cv {
			s, ok := e.(string)
			if !ok {
				return nil, fmt.Errorf("inline char %d: %w", i, ErrBadEntry)
			}
			toks = append(toks, s)
		}
		return toks, nil
	default:
		return nil, ErrBadEntry
	}
}

// parseGroupRefs parses a key-spec's "groups" list: each element is
// either a bare group name (offset 0) or a single-entry {name: weight}
// map giving that group an extra weight offset.
func parseGroupRefs(raw []any) ([]groupRef, error) {
	out := make([]groupRef, 0, len(raw))
	for i, item := range raw {
		switch v := item.(type) {
		case string:
			out = append(out, groupRef{name: v})
		case map[string]any:
			if len(v) != 1 {
				return nil, fmt.Errorf("group ref %d: %w", i, ErrBadEntry)
			}
			for k, val := range v {
				w, ok := val.(int)
				if !ok {
					return nil, fmt.Errorf("group ref %d: %w", i, ErrBadEntry)
				}
				out = append(out, groupRef{name: k, offset: w})
			}
		default:
			return nil, fmt.Errorf("group ref %d: %w", i, ErrBadEntry)
		}
	}
	return out, nil
}

// parseKeySpec parses one "keys" entry. It may be a bare sequence of
// group refs (implicit parent, prefix mode), or a map with "groups"
// (required) and optional "base"/"parent" (synonyms) and "suffix".
func parseKeySpec(v any) (*keySpec, error) {
	switch t := v.(type) {
	case []any:
		refs, err := parseGroupRefs(t)
		if err != nil {
			return nil, err
		}
		return &keySpec{groups: refs}, nil
	case map[string]any:
		groupsRaw, ok := t["groups"]
		if !ok {
			return nil, fmt.Errorf("missing groups: %w", ErrBadEntry)
		}
		groupsSeq, ok := groupsRaw.([]any)
		if !ok {
			return nil, fmt.Errorf("groups: %w", ErrBadEntry)
		}
		refs, err := parseGroupRefs(groupsSeq)
		if err != nil {
			return nil, err
		}

		ks := &keySpec{groups: refs}

		baseField, hasBase := t["base"]
		if !hasBase {
			baseField, hasBase = t["parent"]
		}
		if hasBase {
			ks.parent.present = true
			if baseField == nil {
				ks.parent.null = true
			} else {
				name, ok := baseField.(string)
				if !ok {
					return nil, fmt.Errorf("base/parent: %w", ErrBadEntry)
				}
				ks.parent.name = name
			}
		}

		if suf, ok := t["suffix"]; ok {
			b, ok := suf.(bool)
			if !ok {
				return nil, fmt.Errorf("suffix: %w", ErrBadEntry)
			}
			ks.suffix = b
		}
		return ks, nil
	default:
		return nil, ErrBadEntry
	}
}
