package deromanize

// EngineSnapshot is a plain, fully-exported mirror of a compiled
// Engine's merged character groups — everything pattern expansion and
// group merging produced, before trie construction. internal/profileio
// serializes this (not the Engine itself, whose trie/group internals
// stay unexported) to cache the expensive part of compilation across
// process restarts.
type EngineSnapshot struct {
	Keys []KeySnapshot
}

// KeySnapshot is one compiled key's merged group, named and with its
// prefix/suffix mode, ready to rebuild a trie from without redoing any
// group merging or pattern expansion.
type KeySnapshot struct {
	Name   string
	Suffix bool
	Tokens map[string][]Replacement
}

// Snapshot captures e's compiled state for caching.
func (e *Engine) Snapshot() EngineSnapshot {
	snap := EngineSnapshot{Keys: make([]KeySnapshot, 0, len(e.keys))}
	for _, name := range e.Keys() {
		k := e.keys[name]
		tokens := make(map[string][]Replacement, len(k.group.tokens))
		for tok, rl := range k.group.tokens {
			tokens[tok] = append([]Replacement(nil), rl.Candidates...)
		}
		snap.Keys = append(snap.Keys, KeySnapshot{Name: name, Suffix: k.suffix, Tokens: tokens})
	}
	return snap
}

// FromSnapshot rebuilds a queryable Engine from a previously captured
// snapshot, reconstructing each key's trie directly from its cached
// token map. This skips char_sets resolution, key-dependency ordering,
// inheritance cloning and pattern expansion entirely — the snapshot
// already reflects their combined output.
func FromSnapshot(snap EngineSnapshot) *Engine {
	keys := make(map[string]*Key, len(snap.Keys))
	for _, ks := range snap.Keys {
		group := newCharacterGroup()
		for tok, cands := range ks.Tokens {
			group.tokens[tok] = &ReplacementList{
				Key:        tok,
				Candidates: append([]Replacement(nil), cands...),
			}
		}
		keys[ks.Name] = &Key{
			name:   ks.Name,
			suffix: ks.Suffix,
			group:  group,
			root:   buildTrie(group, ks.Suffix),
		}
	}
	return &Engine{keys: keys}
}
