package match

import "github.com/PhucNguyen204/wordfilter/pkg/wordlist"

// Automaton is an Aho-Corasick automaton over runes. States live in a flat
// arena and refer to each other by index; failure links are plain indices
// into the same arena (several states may fail to the same ancestor), never
// owning references.
//
// Construction is two-phase: Insert builds the forward trie, Build adds
// failure links by BFS and freezes the automaton. Insert after Build returns
// ErrFrozen. State 0 is the root; its failure link is never followed.
type Automaton struct {
	states []acState
	words  []string
	lens   []int // rune length per word
	frozen bool
}

type acState struct {
	next map[rune]int32
	fail int32
	// word indices terminating at this state, including every word reachable
	// through the failure chain. Precomputed during Build so Scan never walks
	// the chain for outputs.
	out []int32
}

// NewAutomaton returns an empty automaton containing only the root state.
func NewAutomaton() *Automaton {
	return &Automaton{states: []acState{{next: map[rune]int32{}}}}
}

// Insert adds one normalized word to the forward trie.
func (a *Automaton) Insert(word string) error {
	if a.frozen {
		return ErrFrozen
	}
	cur := int32(0)
	n := 0
	for _, r := range word {
		n++
		nxt, ok := a.states[cur].next[r]
		if !ok {
			nxt = int32(len(a.states))
			a.states = append(a.states, acState{next: map[rune]int32{}})
			a.states[cur].next[r] = nxt
		}
		cur = nxt
	}
	id := int32(len(a.words))
	a.words = append(a.words, word)
	a.lens = append(a.lens, n)
	a.states[cur].out = append(a.states[cur].out, id)
	return nil
}

// Build computes failure links breadth-first and merges each state's output
// set with its failure target's, then freezes the automaton. Root children
// fail to the root; for deeper states the failure link is found by following
// the parent's failure chain until the edge rune reappears, landing at the
// root otherwise. Calling Build twice is a frozen-state mutation.
func (a *Automaton) Build() error {
	if a.frozen {
		return ErrFrozen
	}
	queue := make([]int32, 0, len(a.states))
	for _, s := range a.states[0].next {
		a.states[s].fail = 0
		queue = append(queue, s)
	}
	for head := 0; head < len(queue); head++ {
		u := queue[head]
		for r, v := range a.states[u].next {
			queue = append(queue, v)
			f := a.states[u].fail
			for {
				if to, ok := a.states[f].next[r]; ok {
					a.states[v].fail = to
					break
				}
				if f == 0 {
					a.states[v].fail = 0
					break
				}
				f = a.states[f].fail
			}
			a.states[v].out = append(a.states[v].out, a.states[a.states[v].fail].out...)
		}
	}
	a.frozen = true
	return nil
}

// Scan runs one pass over text. On each rune the cursor follows the forward
// edge when present, otherwise failure links until one is found or the root
// is reached. Every word in the current state's output set yields a match
// ending at the current rune. Overlapping matches are all reported; overlap
// resolution belongs to the masking layer. O(text) after build, independent
// of word-list size.
func (a *Automaton) Scan(text string) []Match {
	var out []Match
	cur := int32(0)
	pos := 0
	for _, r := range lowerRunes(text) {
		for {
			if to, ok := a.states[cur].next[r]; ok {
				cur = to
				break
			}
			if cur == 0 {
				break
			}
			cur = a.states[cur].fail
		}
		for _, id := range a.states[cur].out {
			out = append(out, Match{Start: pos + 1 - a.lens[id], End: pos + 1, Word: a.words[id]})
		}
		pos++
	}
	Sort(out)
	return out
}

func newAhoCorasick(list *wordlist.List) *Automaton {
	a := NewAutomaton()
	for _, w := range list.Words() {
		// list entries are already normalized; Insert cannot hit ErrFrozen
		// before Build.
		_ = a.Insert(w)
	}
	_ = a.Build()
	return a
}
