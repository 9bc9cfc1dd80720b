package deromanize

import (
	"errors"
	"testing"
)

func TestEngineKeyAndKeys(t *testing.T) {
	profile := Profile{
		"g": map[string]any{"a": "A"},
		"keys": map[string]any{
			"base":  map[string]any{"groups": []any{"g"}},
			"other": map[string]any{"groups": []any{"g"}, "base": nil},
		},
	}
	engine, err := Build(profile)
	if err != nil {
		t.Fatal(err)
	}

	if names := engine.Keys(); len(names) != 2 || names[0] != "base" || names[1] != "other" {
		t.Errorf("Keys() = %v, want sorted [base other]", names)
	}

	k, err := engine.Key("base")
	if err != nil {
		t.Fatal(err)
	}
	if k.Name() != "base" {
		t.Errorf("Name() = %q, want \"base\"", k.Name())
	}

	_, err = engine.Key("missing")
	if !errors.Is(err, ErrUnknownKey) {
		t.Fatalf("err = %v, want ErrUnknownKey", err)
	}
}

func TestEngineSnapshotRoundTrip(t *testing.T) {
	profile := Profile{
		"g": map[string]any{"a": "A", "b": []any{"B", "B2"}},
		"keys": map[string]any{
			"base": map[string]any{"groups": []any{"g"}},
		},
	}
	engine, err := Build(profile)
	if err != nil {
		t.Fatal(err)
	}

	snap := engine.Snapshot()
	if len(snap.Keys) != 1 || snap.Keys[0].Name != "base" {
		t.Fatalf("snapshot keys = %+v", snap.Keys)
	}

	restored := FromSnapshot(snap)
	k, err := restored.Key("base")
	if err != nil {
		t.Fatal(err)
	}
	rl, err := k.Lookup("a")
	if err != nil || len(rl.Candidates) != 1 || rl.Candidates[0].Value != "A" {
		t.Errorf("restored lookup(a) = %+v, %v", rl, err)
	}
	rl, err = k.Lookup("b")
	if err != nil || len(rl.Candidates) != 2 {
		t.Errorf("restored lookup(b) = %+v, %v", rl, err)
	}
}
