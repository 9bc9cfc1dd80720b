package deromanize

import (
	"errors"
	"testing"

	"github.com/ubffm/deromanize/profiles"
)

func buildHebrewOrchestrator(t *testing.T) FrontMidEnd {
	t.Helper()
	engine, err := Build(profiles.Hebrew())
	if err != nil {
		t.Fatal(err)
	}
	base, err := engine.Key("base")
	if err != nil {
		t.Fatal(err)
	}
	end, err := engine.Key("end")
	if err != nil {
		t.Fatal(err)
	}
	return FrontMidEnd{Front: base, Mid: base, End: end}
}

func TestDecodeShalomEndFirstPath(t *testing.T) {
	orch := buildHebrewOrchestrator(t)

	got, err := orch.Decode("shalom")
	if err != nil {
		t.Fatal(err)
	}
	sorted := got.Sort()
	if len(sorted.Candidates) != 2 {
		t.Fatalf("len(candidates) = %d, want 2: %v", len(sorted.Candidates), sorted.Candidates)
	}
	if sorted.Candidates[0].Value != "שלום" || sorted.Candidates[0].Weight != 0 {
		t.Errorf("best candidate = %+v, want (0, שלום)", sorted.Candidates[0])
	}
	if sorted.Candidates[1].Value != "שלם" || sorted.Candidates[1].Weight != 1 {
		t.Errorf("second candidate = %+v, want (1, שלם)", sorted.Candidates[1])
	}
}

func TestDecodeNoEndMatchFallsBackToFrontFirst(t *testing.T) {
	// "sh" doesn't end in the "end" key's only recognized final form
	// ("m"), so the end-first attempt fails outright and Decode must
	// fall back to stripping the word with Front alone.
	orch := buildHebrewOrchestrator(t)

	got, err := orch.Decode("sh")
	if err != nil {
		t.Fatal(err)
	}
	best, ok := got.Best()
	if !ok {
		t.Fatal("expected at least one candidate")
	}
	if best.Value != "ש" {
		t.Errorf("best = %+v, want ש", best)
	}
}

func TestDecodeNoMatchAtAll(t *testing.T) {
	orch := buildHebrewOrchestrator(t)
	_, err := orch.Decode("xyz123")
	if err == nil {
		t.Fatal("expected an error for a word with no recognizable tokens")
	}
}

func TestDecodeWithNilMidReturnsErrNoMatch(t *testing.T) {
	// FrontMidEnd{Front, End} with no Mid is a documented configuration
	// for callers who only ever expect front+end to cover the whole
	// word. "shalom" leaves a middle section ("alo") after front/end
	// strip, so this must report ErrNoMatch rather than panic on a nil
	// Mid dereference.
	engine, err := Build(profiles.Hebrew())
	if err != nil {
		t.Fatal(err)
	}
	base, err := engine.Key("base")
	if err != nil {
		t.Fatal(err)
	}
	end, err := engine.Key("end")
	if err != nil {
		t.Fatal(err)
	}
	orch := FrontMidEnd{Front: base, End: end}

	_, err = orch.Decode("shalom")
	if !errors.Is(err, ErrNoMatch) {
		t.Fatalf("err = %v, want ErrNoMatch", err)
	}
}

func TestDecodeTextSplitsWords(t *testing.T) {
	orch := buildHebrewOrchestrator(t)
	results, err := DecodeText(orch, "shalom sh")
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}
}
