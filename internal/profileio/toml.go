// Package profileio is the ambient collaborator spec.md places outside
// the core engine: it turns an author-facing profile file on disk into
// the plain map[string]any tree deromanize.Build accepts, and caches a
// compiled Engine's derived tables so a large pattern-expanded profile
// need not be recompiled on every process start. The core package never
// imports this one — only the cmd/ binaries do.
package profileio

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// LoadTOML reads a TOML profile file and returns it as the map tree
// deromanize.Build expects. TOML decodes integers as int64; the core
// compiler's entry parser expects plain int (the weight shape it
// recognizes everywhere else), so normalizeInts walks the decoded tree
// converting every int64 to int before handing it back.
func LoadTOML(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("profileio: read %s: %w", path, err)
	}

	var raw map[string]any
	if _, err := toml.Decode(string(data), &raw); err != nil {
		return nil, fmt.Errorf("profileio: parse %s: %w", path, err)
	}

	return normalizeInts(raw).(map[string]any), nil
}

// normalizeInts recursively converts int64 (TOML's native integer
// decoding type) to int, and toml.Primitive-free map/slice trees
// through unchanged otherwise.
func normalizeInts(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = normalizeInts(vv)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, vv := range t {
			out[i] = normalizeInts(vv)
		}
		return out
	case []map[string]any:
		out := make([]any, len(t))
		for i, vv := range t {
			out[i] = normalizeInts(vv)
		}
		return out
	case int64:
		return int(t)
	default:
		return v
	}
}
