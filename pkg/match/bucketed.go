package match

import (
	"strings"
	"unicode"

	"github.com/PhucNguyen204/wordfilter/pkg/wordlist"
)

// bucketedScan narrows the candidate set with an inverted index before doing
// any substring work. Latin/alphanumeric tokens of each word are indexed by
// whole token; any other token is indexed per rune, which covers CJK where a
// single character is the lexical unit. At scan time only words sharing at
// least one token or character with the input are verified, so words with no
// lexical overlap cost nothing. Same blank-before-next-word overlap behavior
// as linearScan.
type bucketedScan struct {
	words   [][]rune
	orig    []string
	buckets map[string][]int // token or single char -> word indices
}

func newBucketed(list *wordlist.List) *bucketedScan {
	m := &bucketedScan{buckets: make(map[string][]int)}
	for idx, w := range list.Words() {
		m.words = append(m.words, []rune(w))
		m.orig = append(m.orig, w)
		for _, tok := range strings.Fields(w) {
			if isASCIIAlnum(tok) {
				m.bucket(tok, idx)
				continue
			}
			for _, r := range tok {
				m.bucket(string(r), idx)
			}
		}
	}
	return m
}

func (m *bucketedScan) bucket(key string, idx int) {
	ids := m.buckets[key]
	if n := len(ids); n > 0 && ids[n-1] == idx {
		return // same word, consecutive insert
	}
	m.buckets[key] = append(ids, idx)
}

func (m *bucketedScan) Scan(text string) []Match {
	rs := lowerRunes(text)
	var out []Match
	tried := make(map[int]struct{})
	for _, tok := range strings.Fields(string(rs)) {
		if isASCIIAlnum(tok) {
			out = m.tryCandidates(out, rs, m.buckets[tok], tried)
			continue
		}
		for _, r := range tok {
			out = m.tryCandidates(out, rs, m.buckets[string(r)], tried)
		}
	}
	Sort(out)
	return out
}

func (m *bucketedScan) tryCandidates(out []Match, rs []rune, ids []int, tried map[int]struct{}) []Match {
	for _, idx := range ids {
		if _, done := tried[idx]; done {
			continue
		}
		tried[idx] = struct{}{}
		out = appendOccurrences(out, rs, m.words[idx], m.orig[idx])
	}
	return out
}

func isASCIIAlnum(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII {
			return false
		}
		if !('0' <= r && r <= '9' || 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z') {
			return false
		}
	}
	return true
}
