package filter

import (
	"strings"
	"sync/atomic"

	"github.com/PhucNguyen204/wordfilter/pkg/match"
	"github.com/PhucNguyen204/wordfilter/pkg/wordlist"
)

// Paginate splits a document into an ordered sequence of page strings. The
// filter never inspects page boundary semantics itself.
type Paginate func(doc string) []string

// Normalize is the per-page cleanup collaborator applied before matching.
// When it fails, the page is passed through unfiltered and the failure is
// recorded on the result instead of aborting the document.
type Normalize func(page string) (string, error)

// PageError records a page that was passed through unfiltered.
type PageError struct {
	Page int
	Err  error
}

// Result is the outcome of filtering one document.
type Result struct {
	// Words is the union of triggered words across pages, first-seen order,
	// deduplicated only at this final reporting step.
	Words []string
	// Text is the masked document, pages joined with a single separator.
	Text string
	// PageErrors lists pages passed through unfiltered.
	PageErrors []PageError
}

// Stats are cumulative counters over a DocumentFilter's lifetime.
type Stats struct {
	Documents       int64 `json:"documents"`
	Pages           int64 `json:"pages"`
	PrefilterHits   int64 `json:"prefilter_hits"`
	PrefilterMisses int64 `json:"prefilter_misses"`
}

// DocumentFilter drives the word list, matcher and masker over whole
// documents, page by page. It is immutable after construction; counters use
// atomics so concurrent Process calls need no locking.
type DocumentFilter struct {
	matcher   match.Matcher
	masker    *Masker
	pre       *literalPrefilter
	paginate  Paginate
	normalize Normalize

	documents atomic.Int64
	pages     atomic.Int64
	preHits   atomic.Int64
	preMisses atomic.Int64
}

// Option tweaks DocumentFilter construction.
type Option func(*DocumentFilter)

// WithPaginate replaces the pagination collaborator. The default treats the
// whole document as a single page.
func WithPaginate(p Paginate) Option {
	return func(f *DocumentFilter) { f.paginate = p }
}

// WithNormalize installs a per-page cleanup collaborator.
func WithNormalize(n Normalize) Option {
	return func(f *DocumentFilter) { f.normalize = n }
}

// WithMasker replaces the default '*' masker.
func WithMasker(m *Masker) Option {
	return func(f *DocumentFilter) { f.masker = m }
}

// New builds a DocumentFilter over list using the given matcher. The literal
// prefilter is always built from the same list; for an empty list it rejects
// every page and Process degenerates to pass-through.
func New(list *wordlist.List, matcher match.Matcher, opts ...Option) *DocumentFilter {
	f := &DocumentFilter{
		matcher:  matcher,
		masker:   NewMasker(DefaultMaskRune),
		pre:      newPrefilter(list),
		paginate: func(doc string) []string { return []string{doc} },
	}
	for _, o := range opts {
		o(f)
	}
	return f
}

// Process masks every page of doc and aggregates the triggered words.
func (f *DocumentFilter) Process(doc string) Result {
	f.documents.Add(1)

	var res Result
	seen := make(map[string]struct{})
	pages := f.paginate(doc)
	masked := make([]string, 0, len(pages))

	for i, page := range pages {
		f.pages.Add(1)

		if f.normalize != nil {
			cleaned, err := f.normalize(page)
			if err != nil {
				res.PageErrors = append(res.PageErrors, PageError{Page: i, Err: err})
				masked = append(masked, page)
				continue
			}
			page = cleaned
		}

		if !f.pre.hasCandidate(page) {
			f.preMisses.Add(1)
			masked = append(masked, page)
			continue
		}
		f.preHits.Add(1)

		out, words := f.masker.Mask(page, f.matcher.Scan(page))
		masked = append(masked, out)
		for _, w := range words {
			if _, dup := seen[w]; dup {
				continue
			}
			seen[w] = struct{}{}
			res.Words = append(res.Words, w)
		}
	}

	res.Text = strings.Join(masked, "\n")
	return res
}

// Check reports whether doc triggers any configured word, without masking.
func (f *DocumentFilter) Check(doc string) []string {
	return f.Process(doc).Words
}

// Stats snapshots the cumulative counters.
func (f *DocumentFilter) Stats() Stats {
	return Stats{
		Documents:       f.documents.Load(),
		Pages:           f.pages.Load(),
		PrefilterHits:   f.preHits.Load(),
		PrefilterMisses: f.preMisses.Load(),
	}
}
