package deromanize

import (
	"fmt"
	"sort"
)

// Engine is a compiled profile: a fixed set of named Keys, each a
// ready-to-query greedy tokenizer. Engines are immutable after Build
// returns and safe for concurrent use by multiple goroutines — no
// method mutates shared state.
type Engine struct {
	keys map[string]*Key
}

// Key returns the compiled Key with the given name, or ErrUnknownKey if
// the profile never defined one.
func (e *Engine) Key(name string) (*Key, error) {
	k, ok := e.keys[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownKey)
	}
	return k, nil
}

// Keys returns the names of every compiled key, sorted.
func (e *Engine) Keys() []string {
	names := make([]string, 0, len(e.keys))
	for n := range e.keys {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
