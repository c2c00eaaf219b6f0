package filter

import (
	"strings"

	ac "github.com/petar-dambovaliev/aho-corasick"

	"github.com/PhucNguyen204/wordfilter/pkg/wordlist"
)

// literalPrefilter answers "can this page contain any configured word at
// all?" before the full matcher runs. Pages with no candidate occurrence are
// skipped entirely, which is the common case on clean documents. Patterns
// and probed text are both lower-cased, matching the case folding of the
// matching core, so the prefilter can produce false positives but never
// false negatives.
type literalPrefilter struct {
	ac       *ac.AhoCorasick
	patterns int
}

func newPrefilter(list *wordlist.List) *literalPrefilter {
	p := &literalPrefilter{patterns: list.Len()}
	if list.Len() == 0 {
		return p
	}
	builder := ac.NewAhoCorasickBuilder(ac.Opts{
		MatchKind: ac.LeftMostLongestMatch,
	})
	built := builder.Build(list.Words())
	p.ac = &built
	return p
}

// hasCandidate reports whether text contains at least one pattern
// occurrence. An empty word list never has candidates.
func (p *literalPrefilter) hasCandidate(text string) bool {
	if p.patterns == 0 || p.ac == nil {
		return false
	}
	return len(p.ac.FindAll(strings.ToLower(text))) > 0
}
