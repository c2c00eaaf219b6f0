package wordlist

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrSourceNotFound is returned when the word-list source cannot be opened.
// A missing source is fatal to a build: it must never silently yield an
// empty matcher.
var ErrSourceNotFound = errors.New("word-list source not found")

// Source supplies raw word-list entries, one word per entry. Entries may
// carry surrounding whitespace and duplicates; List normalizes them.
type Source interface {
	Words() ([]string, error)
}

// List is a normalized, deduplicated word list. Entries are lower-cased and
// trimmed at ingestion; first-seen order is preserved so index-based
// back-references stay stable across identical loads.
type List struct {
	words []string
	seen  map[string]struct{}
}

// Load reads all entries from src and normalizes them.
func Load(src Source) (*List, error) {
	raw, err := src.Words()
	if err != nil {
		return nil, err
	}
	l := &List{seen: make(map[string]struct{})}
	for _, w := range raw {
		l.add(w)
	}
	return l, nil
}

// LoadFile loads a newline-delimited word list from path.
func LoadFile(path string) (*List, error) {
	return Load(FileSource(path))
}

// New builds a list directly from words, normalizing as Load does.
func New(words ...string) *List {
	l := &List{seen: make(map[string]struct{})}
	for _, w := range words {
		l.add(w)
	}
	return l
}

func (l *List) add(w string) {
	w = strings.ToLower(strings.TrimSpace(w))
	if w == "" {
		return
	}
	if _, dup := l.seen[w]; dup {
		return
	}
	l.seen[w] = struct{}{}
	l.words = append(l.words, w)
}

// Words returns the normalized entries in first-seen order. Callers must not
// mutate the returned slice.
func (l *List) Words() []string { return l.words }

// Len reports the number of distinct entries.
func (l *List) Len() int { return len(l.words) }

// Contains reports whether w (after normalization) is in the list.
func (l *List) Contains(w string) bool {
	_, ok := l.seen[strings.ToLower(strings.TrimSpace(w))]
	return ok
}

// FileSource reads one word per line from a UTF-8 text file.
type FileSource string

func (p FileSource) Words() ([]string, error) {
	f, err := os.Open(string(p))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, string(p))
		}
		return nil, fmt.Errorf("open word list %s: %w", string(p), err)
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		out = append(out, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read word list %s: %w", string(p), err)
	}
	return out, nil
}

// Remove rewrites the file at path, dropping every line whose trimmed content
// equals word (case-normalized). Lines merely containing word as a substring
// are kept. Removing an absent word is a no-op.
func (p FileSource) Remove(word string) error {
	word = strings.ToLower(strings.TrimSpace(word))
	lines, err := p.Words()
	if err != nil {
		return err
	}
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.ToLower(strings.TrimSpace(line)) == word {
			continue
		}
		kept = append(kept, line)
	}
	var sb strings.Builder
	for _, line := range kept {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	if err := os.WriteFile(string(p), []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("rewrite word list %s: %w", string(p), err)
	}
	return nil
}
