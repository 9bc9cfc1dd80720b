package profileio

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ubffm/deromanize"
)

func TestSaveAndLoadCacheRoundTrip(t *testing.T) {
	snap := deromanize.EngineSnapshot{
		Keys: []deromanize.KeySnapshot{
			{
				Name:   "base",
				Suffix: false,
				Tokens: map[string][]deromanize.Replacement{
					"sh": {{Weight: 0, Value: "ש", Keyvalue: []deromanize.KeyValue{{Romanized: "sh", Original: "ש"}}}},
					"o":  {{Weight: 0, Value: "ו"}, {Weight: 1, Value: ""}},
				},
			},
			{
				Name:   "end",
				Suffix: true,
				Tokens: map[string][]deromanize.Replacement{
					"m": {{Weight: 0, Value: "ם"}},
				},
			},
		},
	}

	path := filepath.Join(t.TempDir(), "cache.rezi")
	require.NoError(t, SaveCache(path, snap))

	got, err := LoadCache(path)
	require.NoError(t, err)
	require.Len(t, got.Keys, 2)

	restored := deromanize.FromSnapshot(got)
	k, err := restored.Key("base")
	require.NoError(t, err)
	rl, err := k.Lookup("sh")
	require.NoError(t, err)
	require.Equal(t, "ש", rl.Candidates[0].Value)

	end, err := restored.Key("end")
	require.NoError(t, err)
	rl, err = end.Lookup("m")
	require.NoError(t, err)
	require.Equal(t, "ם", rl.Candidates[0].Value)
}

func TestLoadCacheMissingFile(t *testing.T) {
	_, err := LoadCache(filepath.Join(t.TempDir(), "nope.rezi"))
	require.Error(t, err)
}
