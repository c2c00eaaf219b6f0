package match

import "github.com/PhucNguyen204/wordfilter/pkg/wordlist"

// trieMatcher walks a single forward trie (no failure links) over the text.
// Nodes live in a flat arena and refer to each other by index, so traversal
// is bounds-checked and there are no ownership cycles to manage.
type trieMatcher struct {
	nodes []trieNode
	words []string
}

type trieNode struct {
	next map[rune]int32
	// word index terminating at this node, -1 if none. A path from the root
	// spelling word W ends in a node with word >= 0 iff W is in the list.
	word int32
}

func newTrie(list *wordlist.List) *trieMatcher {
	m := &trieMatcher{nodes: []trieNode{{next: map[rune]int32{}, word: -1}}}
	for _, w := range list.Words() {
		m.insert(w)
	}
	return m
}

func (m *trieMatcher) insert(w string) {
	cur := int32(0)
	for _, r := range w {
		nxt, ok := m.nodes[cur].next[r]
		if !ok {
			nxt = int32(len(m.nodes))
			m.nodes = append(m.nodes, trieNode{next: map[rune]int32{}, word: -1})
			m.nodes[cur].next[r] = nxt
		}
		cur = nxt
	}
	if m.nodes[cur].word < 0 {
		m.nodes[cur].word = int32(len(m.words))
		m.words = append(m.words, w)
	}
}

// Scan walks left to right. At each start position the trie is followed as
// deep as the text allows and the deepest terminal node wins, so when one
// word is a prefix of another the longer occurrence is reported. After a
// match the cursor jumps past the consumed span; otherwise it advances one
// rune. Worst case O(text x longest word), typically O(text).
func (m *trieMatcher) Scan(text string) []Match {
	rs := lowerRunes(text)
	var out []Match
	for pos := 0; pos < len(rs); {
		bestLen, bestWord := 0, int32(-1)
		cur := int32(0)
		for i := pos; i < len(rs); i++ {
			nxt, ok := m.nodes[cur].next[rs[i]]
			if !ok {
				break
			}
			cur = nxt
			if w := m.nodes[cur].word; w >= 0 {
				bestLen, bestWord = i-pos+1, w
			}
		}
		if bestWord >= 0 {
			out = append(out, Match{Start: pos, End: pos + bestLen, Word: m.words[bestWord]})
			pos += bestLen
			continue
		}
		pos++
	}
	return out
}
