package deromanize

import "errors"

// Error sentinels for the two phases of the engine's life: compiling a
// profile into an Engine, and querying an already-compiled Engine.
//
// Compile-time errors (BadEntry, KeyCycle, UnknownGroup, PatternAmbiguous)
// reject a profile outright; Build returns one of these wrapped with
// context, except that a pattern rule whose alias token has no entry in
// the alias's key surfaces as a wrapped NoSuchToken. Query-time errors
// (UnknownKey, NoSuchToken,
// NoMatch, EmptyReduction) are expected control flow once an Engine is
// built — callers are expected to check for them with errors.Is.
var (
	// ErrBadEntry means a profile entry's shape did not match any of the
	// forms the compiler recognizes (bare string, sequence, (weight, value)
	// pair, or a malformed key-spec/char_sets/RHS-template shape).
	ErrBadEntry = errors.New("deromanize: malformed profile entry")

	// ErrKeyCycle means a key's dependencies (its base/parent chain, or
	// the keys its char_sets aliases draw candidates from) loop back on
	// themselves.
	ErrKeyCycle = errors.New("deromanize: cyclic key inheritance")

	// ErrUnknownGroup means a key-spec or char_sets entry names a
	// character group that does not exist in the profile.
	ErrUnknownGroup = errors.New("deromanize: unknown character group")

	// ErrPatternAmbiguous means a pattern rule's left-hand side has two
	// equal-length alias matches at the same position and the compiler
	// cannot prefer one over the other.
	ErrPatternAmbiguous = errors.New("deromanize: ambiguous pattern alias match")

	// ErrUnknownKey means engine.Key(name) was asked for a key the
	// profile never defined.
	ErrUnknownKey = errors.New("deromanize: unknown key")

	// ErrNoSuchToken means key.Lookup(token) was asked for a token that
	// key's compiled group has no entry for.
	ErrNoSuchToken = errors.New("deromanize: no such token")

	// ErrNoMatch means a greedy tokenizer could not consume any prefix
	// (or suffix) of the remaining input, or a decode orchestrator ran
	// out of fallback strategies.
	ErrNoMatch = errors.New("deromanize: no match")

	// ErrEmptyReduction means AddReplacementLists was called with zero
	// lists; the `+` algebra has an identity element but no left-fold
	// over an empty sequence produces a meaningful result.
	ErrEmptyReduction = errors.New("deromanize: cannot reduce empty sequence")
)
