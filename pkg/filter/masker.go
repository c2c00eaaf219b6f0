package filter

import (
	"github.com/PhucNguyen204/wordfilter/pkg/match"
)

// DefaultMaskRune is the replacement character used when none is configured.
const DefaultMaskRune = '*'

// Masker turns a match sequence into masked output. Every rune of a selected
// span is replaced by the mask rune, one mask rune per original rune, so the
// total character count and every non-matched character survive verbatim.
type Masker struct {
	mask rune
}

// NewMasker builds a Masker with the given replacement rune. A zero rune
// falls back to DefaultMaskRune.
func NewMasker(mask rune) *Masker {
	if mask == 0 {
		mask = DefaultMaskRune
	}
	return &Masker{mask: mask}
}

// Mask applies matches to text and returns the masked text plus the distinct
// words triggered, in order of first occurrence. Overlaps are resolved by
// taking, at each position, the longest match starting there (earliest start
// wins a length tie) and discarding matches that fall inside an already
// selected span.
func (m *Masker) Mask(text string, matches []match.Match) (string, []string) {
	if len(matches) == 0 {
		return text, nil
	}
	selected := resolveOverlaps(matches)

	rs := []rune(text)
	var words []string
	seen := make(map[string]struct{}, len(selected))
	for _, sel := range selected {
		if sel.Start < 0 || sel.End > len(rs) {
			continue
		}
		for i := sel.Start; i < sel.End; i++ {
			rs[i] = m.mask
		}
		if _, dup := seen[sel.Word]; !dup {
			seen[sel.Word] = struct{}{}
			words = append(words, sel.Word)
		}
	}
	return string(rs), words
}

// resolveOverlaps reduces an arbitrary match sequence to a non-overlapping
// one. Input order does not matter; the winners are chosen greedily over
// matches sorted by (start asc, length desc).
func resolveOverlaps(matches []match.Match) []match.Match {
	sorted := make([]match.Match, len(matches))
	copy(sorted, matches)
	match.Sort(sorted)

	out := sorted[:0]
	end := 0
	for _, m := range sorted {
		if m.Start < end {
			continue
		}
		out = append(out, m)
		end = m.End
	}
	return out
}
