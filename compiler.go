package deromanize

import "fmt"

// resolveParentName applies the implicit-parent rule: an explicit
// base/parent field (present, whether named or explicit null) always
// wins; otherwise a key other than "base" itself inherits from "base"
// if a "base" key exists, and has no parent at all otherwise.
func resolveParentName(name string, ks *keySpec, all map[string]*keySpec) (string, error) {
	if ks.parent.present {
		if ks.parent.null {
			return "", nil
		}
		if _, ok := all[ks.parent.name]; !ok {
			return "", fmt.Errorf("key %q: parent %q: %w", name, ks.parent.name, ErrBadEntry)
		}
		return ks.parent.name, nil
	}
	if name == "base" {
		return "", nil
	}
	if _, ok := all["base"]; ok {
		return "base", nil
	}
	return "", nil
}

// makeLookup builds the lookupFunc the pattern expander uses to resolve
// alias.key[token]. A reference to the key currently being assembled
// resolves against its in-progress group; any other reference is
// resolved through resolve, which compiles that key on demand if it
// hasn't been already — a char_sets alias's "key" field may legitimately
// name any key in the profile, not just an ancestor of the current one,
// so resolution cannot be limited to "already compiled by a fixed
// topological pass".
func makeLookup(currentName string, inProgress *CharacterGroup, resolve func(name string) (*Key, error)) lookupFunc {
	return func(keyName, token string) (ReplacementList, error) {
		if keyName == currentName {
			rl, ok := inProgress.tokens[token]
			if !ok {
				return ReplacementList{}, fmt.Errorf("token %q in key %q: %w", token, keyName, ErrNoSuchToken)
			}
			return *rl, nil
		}
		k, err := resolve(keyName)
		if err != nil {
			return ReplacementList{}, err
		}
		return k.Lookup(token)
	}
}

// Build compiles a profile tree into an Engine. Every key is compiled
// on demand and memoized: compiling a key first resolves and compiles
// its base/parent (cloning the parent's merged group), then merges in
// each of its own groups — through the plain §4.2 merge for ordinary
// groups, or the pattern expander for any group whose token keys
// contain a declared alias, which may in turn demand another key be
// compiled (to resolve alias.key[token]) regardless of where that key
// sits relative to the current one. A key demanded while it is itself
// still being compiled means its dependencies loop back on themselves,
// reported as ErrKeyCycle. Demanding keys on demand rather than in one
// fixed topological pass means neither base/parent chains nor
// char_sets "key" references are restricted to pointing only at
// already-ordered predecessors.
func Build(profile Profile) (*Engine, error) {
	rawGroups := extractRawGroups(profile)

	aliases, err := resolveCharSets(profile, rawGroups)
	if err != nil {
		return nil, err
	}

	keysRaw, ok := profile["keys"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("profile: missing \"keys\": %w", ErrBadEntry)
	}
	keySpecs := map[string]*keySpec{}
	for name, v := range keysRaw {
		ks, err := parseKeySpec(v)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", name, err)
		}
		keySpecs[name] = ks
	}

	const (
		white = iota
		gray
		black
	)
	state := map[string]int{}
	mergedGroups := map[string]*CharacterGroup{}
	compiledKeys := map[string]*Key{}

	var ensure func(name string) (*Key, error)
	ensure = func(name string) (*Key, error) {
		if k, ok := compiledKeys[name]; ok {
			return k, nil
		}
		if state[name] == gray {
			return nil, fmt.Errorf("key %q: %w", name, ErrKeyCycle)
		}
		ks, ok := keySpecs[name]
		if !ok {
			return nil, fmt.Errorf("key %q: %w", name, ErrBadEntry)
		}
		state[name] = gray

		var group *CharacterGroup
		parentName, err := resolveParentName(name, ks, keySpecs)
		if err != nil {
			return nil, err
		}
		if parentName != "" {
			if _, err := ensure(parentName); err != nil {
				return nil, err
			}
			group = cloneGroup(mergedGroups[parentName])
		} else {
			group = newCharacterGroup()
		}

		lookup := makeLookup(name, group, ensure)

		for _, gref := range ks.groups {
			raw, ok := rawGroups[gref.name]
			if !ok {
				return nil, fmt.Errorf("key %q: group %q: %w", name, gref.name, ErrUnknownGroup)
			}
			if groupHasPattern(raw, aliases) {
				if err := mergePatternGroup(group, raw, aliases, gref.offset, lookup); err != nil {
					return nil, fmt.Errorf("key %q: group %q: %w", name, gref.name, err)
				}
			} else {
				for _, token := range sortedKeys(raw) {
					if err := group.mergeEntry(token, raw[token], gref.offset); err != nil {
						return nil, fmt.Errorf("key %q: group %q: %w", name, gref.name, err)
					}
				}
			}
		}

		mergedGroups[name] = group
		k := &Key{
			name:   name,
			suffix: ks.suffix,
			group:  group,
			root:   buildTrie(group, ks.suffix),
		}
		compiledKeys[name] = k
		state[name] = black
		return k, nil
	}

	for _, name := range sortedKeys(keysRaw) {
		if _, err := ensure(name); err != nil {
			return nil, err
		}
	}

	return &Engine{keys: compiledKeys}, nil
}
