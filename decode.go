package deromanize

import "github.com/dlclark/regexp2"

// FrontMidEnd is the canonical decode strategy built from three Keys:
// end recognizes final-position forms, front recognizes initial-position
// forms, and mid tokenizes whatever is left between them. Only front and
// end are required by the algorithm below; mid is needed whenever a
// word has a middle section left after the front/end strip.
type FrontMidEnd struct {
	Front *Key
	Mid   *Key
	End   *Key
}

// Decode ranks original-script spellings for one romanized word.
//
// It first tries stripping a final form with End, then an initial form
// with Front from what's left, tokenizing any remaining middle with Mid
// and reducing front+middle+end with the `+` algebra. If End's
// getpart fails outright, or it succeeds but the subsequent Front
// attempt on the remainder fails, it falls back to stripping an initial
// form with Front from the whole word first instead, then End from
// what's left. Total failure (no prefix match in the fallback) is
// reported as ErrNoMatch.
func (o FrontMidEnd) Decode(word string) (ReplacementList, error) {
	if o.End != nil {
		if tail, rest1, err := o.End.GetPart(word); err == nil {
			if rest1 == "" {
				return tail, nil
			}
			if o.Front != nil {
				if head, rest2, err2 := o.Front.GetPart(rest1); err2 == nil {
					if rest2 == "" {
						return AddReplacementLists(head, tail)
					}
					middle, err3 := o.reduceMiddle(rest2)
					if err3 != nil {
						return ReplacementList{}, err3
					}
					return AddReplacementLists(head, middle, tail)
				}
			}
		}
	}
	return o.decodeFallback(word)
}

// decodeFallback is step 4 of the algorithm: front-strip first, then
// end-strip the remainder, used when the end-first path above isn't
// available or doesn't pan out.
func (o FrontMidEnd) decodeFallback(word string) (ReplacementList, error) {
	if o.Front == nil {
		return ReplacementList{}, ErrNoMatch
	}
	head, rest1, err := o.Front.GetPart(word)
	if err != nil {
		return ReplacementList{}, ErrNoMatch
	}
	if rest1 == "" {
		return head, nil
	}
	if o.End == nil {
		return ReplacementList{}, ErrNoMatch
	}
	tail, rest2, err := o.End.GetPart(rest1)
	if err != nil {
		return ReplacementList{}, err
	}
	if rest2 == "" {
		return AddReplacementLists(head, tail)
	}
	middle, err := o.reduceMiddle(rest2)
	if err != nil {
		return ReplacementList{}, err
	}
	return AddReplacementLists(head, middle, tail)
}

func (o FrontMidEnd) reduceMiddle(rest string) (ReplacementList, error) {
	if o.Mid == nil {
		return ReplacementList{}, ErrNoMatch
	}
	parts, err := o.Mid.GetAllParts(rest)
	if err != nil {
		return ReplacementList{}, err
	}
	return AddReplacementLists(parts...)
}

// wordPattern splits free text into word tokens, each a maximal run of
// Unicode letters and digits, a thin convenience so callers don't have to bring
// their own word-boundary logic just to try DecodeText on a sentence.
// Full word-extraction glue (punctuation stripping, case folding,
// script-aware segmentation) is the caller's concern.
var wordPattern = regexp2.MustCompile(`[\p{L}\p{N}]+`, regexp2.None)

// DecodeText splits text into words and decodes each one with o,
// returning one ReplacementList per word in the order they appear.
func DecodeText(o FrontMidEnd, text string) ([]ReplacementList, error) {
	var results []ReplacementList
	m, err := wordPattern.FindStringMatch(text)
	for err == nil && m != nil {
		rl, derr := o.Decode(m.String())
		if derr != nil {
			return nil, derr
		}
		results = append(results, rl)
		m, err = wordPattern.FindNextMatch(m)
	}
	if err != nil {
		return nil, err
	}
	return results, nil
}
