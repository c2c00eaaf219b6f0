package match

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/PhucNguyen204/wordfilter/pkg/wordlist"
)

// Match is a single occurrence of a word-list entry in scanned text.
// Start and End are rune offsets (End exclusive), never byte offsets, so
// they stay correct over mixed Latin/CJK input. End-Start always equals the
// rune length of Word.
type Match struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Word  string `json:"word"`
}

// Matcher finds word-list occurrences in text. A Matcher is immutable once
// constructed and safe for concurrent Scan calls; each call allocates its own
// cursor state. Scan is total: it never fails, and no matches is the empty
// slice.
type Matcher interface {
	Scan(text string) []Match
}

// Variant selects one of the interchangeable matching strategies.
type Variant string

const (
	VariantLinear      Variant = "linear"
	VariantBucketed    Variant = "bucketed"
	VariantTrie        Variant = "trie"
	VariantAhoCorasick Variant = "ahocorasick"
)

var (
	// ErrUnknownVariant is returned by New for an unrecognized strategy name.
	ErrUnknownVariant = errors.New("unknown matcher variant")
	// ErrFrozen is returned on any attempt to mutate an automaton after its
	// failure links have been built.
	ErrFrozen = errors.New("automaton is frozen")
)

// ParseVariant maps a configured strategy name to a Variant. The legacy
// names naive, bs and dfa are accepted as aliases.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "linear", "naive":
		return VariantLinear, nil
	case "bucketed", "bs":
		return VariantBucketed, nil
	case "trie", "dfa":
		return VariantTrie, nil
	case "ahocorasick", "aho-corasick", "ac":
		return VariantAhoCorasick, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownVariant, s)
	}
}

// New builds a Matcher of the given variant over list. Construction is the
// only mutating phase; the returned Matcher is read-only. An empty list is
// legal and yields a matcher that never matches.
func New(v Variant, list *wordlist.List) (Matcher, error) {
	switch v {
	case VariantLinear:
		return newLinear(list), nil
	case VariantBucketed:
		return newBucketed(list), nil
	case VariantTrie:
		return newTrie(list), nil
	case VariantAhoCorasick:
		return newAhoCorasick(list), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, string(v))
	}
}

// Sort orders a match sequence by start offset, longest first on ties.
func Sort(ms []Match) {
	sort.Slice(ms, func(i, j int) bool {
		if ms[i].Start != ms[j].Start {
			return ms[i].Start < ms[j].Start
		}
		return ms[i].End > ms[j].End
	})
}

// lowerRunes returns the rune sequence of text folded to lower case.
// Go's strings.ToLower maps runes 1:1, so offsets into the folded sequence
// are valid offsets into the original rune sequence.
func lowerRunes(text string) []rune {
	return []rune(strings.ToLower(text))
}
