package match

import "github.com/PhucNguyen204/wordfilter/pkg/wordlist"

// linearScan tests every word against the text by repeated substring search,
// blanking out each occurrence before moving to the next word. O(words x
// text); the baseline the other variants are measured against. Because
// occurrences are blanked word by word, a word fully contained in an earlier
// word's span is not reported, and when two words are substrings of one
// another the winner follows list order.
type linearScan struct {
	words [][]rune
	orig  []string
}

func newLinear(list *wordlist.List) *linearScan {
	m := &linearScan{}
	for _, w := range list.Words() {
		m.words = append(m.words, []rune(w))
		m.orig = append(m.orig, w)
	}
	return m
}

func (m *linearScan) Scan(text string) []Match {
	rs := lowerRunes(text)
	var out []Match
	for wi, w := range m.words {
		out = appendOccurrences(out, rs, w, m.orig[wi])
	}
	Sort(out)
	return out
}

// appendOccurrences records every occurrence of w in rs and blanks the
// matched spans with NUL so later (shorter or overlapping) words cannot
// rematch inside them. Words are non-empty and never contain NUL.
func appendOccurrences(out []Match, rs, w []rune, word string) []Match {
	for i := 0; i+len(w) <= len(rs); {
		if runesEqualAt(rs, i, w) {
			out = append(out, Match{Start: i, End: i + len(w), Word: word})
			for j := i; j < i+len(w); j++ {
				rs[j] = 0
			}
			i += len(w)
			continue
		}
		i++
	}
	return out
}

func runesEqualAt(rs []rune, at int, w []rune) bool {
	for k, r := range w {
		if rs[at+k] != r {
			return false
		}
	}
	return true
}
