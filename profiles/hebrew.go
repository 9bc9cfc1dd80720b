// Package profiles holds example romanization profiles as Go literals,
// ready to pass straight to deromanize.Build without going through
// internal/profileio. Hebrew is the worked example from SPEC_FULL.md's
// data model section: a small consonant/vowel inventory, a weighted
// "infrequent" override, a final-letter group for suffix-mode
// tokenizing, and one pattern rule demonstrating char_sets aliases.
package profiles

// Hebrew returns a fresh copy of the worked Hebrew profile every call,
// so callers that mutate the returned tree (as deromanize.Build never
// does, but tests poking at edge cases might) never interfere with each
// other.
func Hebrew() map[string]any {
	return map[string]any{
		"consonants": map[string]any{
			"sh": "ש",
			"r":  "ר",
			"l":  "ל",
			"m":  "מ",
			"b":  "ב",
			"g":  "ג",
			"d":  "ד",
		},
		"vowels": map[string]any{
			"a": "",
			"o": []any{"ו", ""},
		},
		"final": map[string]any{
			"m": "ם",
		},
		"infrequent": map[string]any{
			"o": "א",
		},
		"beginning_patterns": map[string]any{
			"CiCC": []any{`\1\2\3`, "\\1י\\2\\3"},
		},
		"char_sets": map[string]any{
			"C": map[string]any{
				"chars": "consonants",
				"key":   "base",
			},
		},
		"keys": map[string]any{
			"base": map[string]any{
				"groups": []any{"consonants", "vowels"},
			},
			"weighted": map[string]any{
				"groups": []any{"consonants", "vowels", map[string]any{"infrequent": 15}},
				"base":   nil,
			},
			"end": map[string]any{
				"groups": []any{"final"},
				"base":   nil,
				"suffix": true,
			},
			"patterns": map[string]any{
				"groups": []any{"beginning_patterns"},
				"base":   nil,
			},
		},
	}
}
