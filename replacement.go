package deromanize

import "sort"

// KeyValue is one step of provenance: the romanized segment a candidate
// came from, and the original-script text it was replaced with.
type KeyValue struct {
	Romanized string
	Original  string
}

// Replacement is a single weighted candidate spelling. Lower weight is
// more likely. Keyvalue records, in order, the (romanized, original)
// segments that were combined to produce Value — concatenating the
// Original half of every pair always reconstructs Value.
type Replacement struct {
	Weight   int
	Value    string
	Keyvalue []KeyValue
}

// Add combines two candidates: weights sum, values concatenate, and
// provenance concatenates. It is associative but not commutative — the
// order of operands fixes the order Value and Keyvalue are built in.
func (r Replacement) Add(other Replacement) Replacement {
	kv := make([]KeyValue, 0, len(r.Keyvalue)+len(other.Keyvalue))
	kv = append(kv, r.Keyvalue...)
	kv = append(kv, other.Keyvalue...)
	return Replacement{
		Weight:   r.Weight + other.Weight,
		Value:    r.Value + other.Value,
		Keyvalue: kv,
	}
}

// ReplacementList is the ranked set of candidate spellings produced by
// tokenizing one romanized segment (its Key) against a character group.
type ReplacementList struct {
	Key        string
	Candidates []Replacement
}

// identityReplacement is the zero-weight, empty-value candidate that
// makes IdentityReplacementList a left and right identity for Add: its
// single candidate leaves weight, value and provenance of the other
// operand untouched, in the same order, under the cartesian product.
var identityReplacement = Replacement{Weight: 0, Value: "", Keyvalue: nil}

// IdentityReplacementList is the identity element of the `+` algebra:
// key "" and a single zero-weight, empty-value candidate.
var IdentityReplacementList = ReplacementList{
	Key:        "",
	Candidates: []Replacement{identityReplacement},
}

// Add combines two lists: keys concatenate, and candidates are the full
// cartesian product (every candidate of l combined with every candidate
// of other), built with l's candidates as the outer loop so order is
// deterministic and matches repeated application of Add left to right.
func (l ReplacementList) Add(other ReplacementList) ReplacementList {
	out := ReplacementList{
		Key:        l.Key + other.Key,
		Candidates: make([]Replacement, 0, len(l.Candidates)*len(other.Candidates)),
	}
	for _, a := range l.Candidates {
		for _, b := range other.Candidates {
			out.Candidates = append(out.Candidates, a.Add(b))
		}
	}
	return out
}

// AddReplacementLists left-folds Add over lists. It returns
// ErrEmptyReduction if lists is empty — there is no sensible result for
// reducing zero operands, even though IdentityReplacementList exists as
// a neutral element for a non-empty fold.
func AddReplacementLists(lists ...ReplacementList) (ReplacementList, error) {
	if len(lists) == 0 {
		return ReplacementList{}, ErrEmptyReduction
	}
	out := lists[0]
	for _, next := range lists[1:] {
		out = out.Add(next)
	}
	return out, nil
}

// Sort returns a copy of l with Candidates stably sorted by ascending
// weight. It never mutates l.
func (l ReplacementList) Sort() ReplacementList {
	out := ReplacementList{
		Key:        l.Key,
		Candidates: append([]Replacement(nil), l.Candidates...),
	}
	sort.SliceStable(out.Candidates, func(i, j int) bool {
		return out.Candidates[i].Weight < out.Candidates[j].Weight
	})
	return out
}

// Best returns the lowest-weight candidate and true, or the zero
// Replacement and false if l has no candidates. Ties keep whichever
// candidate occurs first.
func (l ReplacementList) Best() (Replacement, bool) {
	if len(l.Candidates) == 0 {
		return Replacement{}, false
	}
	best := l.Candidates[0]
	for _, c := range l.Candidates[1:] {
		if c.Weight < best.Weight {
			best = c
		}
	}
	return best, true
}

// StatEntry is one candidate converted from weight to probability by
// MakeStat.
type StatEntry struct {
	Value       string
	Probability float64
}

// MakeStat converts weights to a probability distribution: with m one
// more than the largest weight present, each candidate's score is
// m-weight, and its probability is that score divided by the sum of all
// scores. Lower weight therefore always yields higher probability.
// Returns nil for an empty list.
func (l ReplacementList) MakeStat() []StatEntry {
	if len(l.Candidates) == 0 {
		return nil
	}
	maxWeight := l.Candidates[0].Weight
	for _, c := range l.Candidates[1:] {
		if c.Weight > maxWeight {
			maxWeight = c.Weight
		}
	}
	m := maxWeight + 1

	scores := make([]float64, len(l.Candidates))
	var sum float64
	for i, c := range l.Candidates {
		s := float64(m - c.Weight)
		scores[i] = s
		sum += s
	}

	out := make([]StatEntry, len(l.Candidates))
	for i, c := range l.Candidates {
		out[i] = StatEntry{Value: c.Value, Probability: scores[i] / sum}
	}
	return out
}
