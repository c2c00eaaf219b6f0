package filter

import (
	"errors"
	"strings"
	"testing"

	"github.com/PhucNguyen204/wordfilter/pkg/match"
	"github.com/PhucNguyen204/wordfilter/pkg/wordlist"
)

func newFilter(t *testing.T, words []string, opts ...Option) *DocumentFilter {
	t.Helper()
	list := wordlist.New(words...)
	m, err := match.New(match.VariantAhoCorasick, list)
	if err != nil {
		t.Fatalf("build matcher: %v", err)
	}
	return New(list, m, opts...)
}

func splitLines(doc string) []string {
	return strings.Split(doc, "\n")
}

func TestProcessSinglePage(t *testing.T) {
	f := newFilter(t, []string{"foo", "bar"})
	res := f.Process("a foo and a BAR here")
	if res.Text != "a *** and a *** here" {
		t.Fatalf("text = %q", res.Text)
	}
	if len(res.Words) != 2 || res.Words[0] != "foo" || res.Words[1] != "bar" {
		t.Fatalf("words = %v", res.Words)
	}
}

func TestProcessUnionsWordsAcrossPages(t *testing.T) {
	f := newFilter(t, []string{"foo", "bar"}, WithPaginate(splitLines))
	res := f.Process("a foo here\nclean page\nfoo and bar")
	if res.Text != "a *** here\nclean page\n*** and ***" {
		t.Fatalf("text = %q", res.Text)
	}
	// foo appears on two pages but is reported once, at final aggregation
	if len(res.Words) != 2 || res.Words[0] != "foo" || res.Words[1] != "bar" {
		t.Fatalf("words = %v", res.Words)
	}
}

func TestProcessPrefilterSkipsCleanPages(t *testing.T) {
	f := newFilter(t, []string{"foo"}, WithPaginate(splitLines))
	f.Process("clean one\na foo page\nclean two")
	st := f.Stats()
	if st.Pages != 3 || st.PrefilterHits != 1 || st.PrefilterMisses != 2 {
		t.Fatalf("stats = %+v", st)
	}
}

func TestProcessPageFailurePassesThrough(t *testing.T) {
	boom := errors.New("collaborator down")
	fail := func(page string) (string, error) {
		if strings.Contains(page, "second") {
			return "", boom
		}
		return page, nil
	}
	f := newFilter(t, []string{"foo"}, WithPaginate(splitLines), WithNormalize(fail))
	res := f.Process("a foo page\nsecond foo page\nlast page")
	if res.Text != "a *** page\nsecond foo page\nlast page" {
		t.Fatalf("text = %q", res.Text)
	}
	if len(res.PageErrors) != 1 || res.PageErrors[0].Page != 1 || !errors.Is(res.PageErrors[0].Err, boom) {
		t.Fatalf("page errors = %+v", res.PageErrors)
	}
}

func TestProcessEmptyWordList(t *testing.T) {
	f := newFilter(t, nil)
	res := f.Process("anything goes")
	if res.Text != "anything goes" || len(res.Words) != 0 {
		t.Fatalf("res = %+v", res)
	}
}

func TestCheckReportsWithoutMasking(t *testing.T) {
	f := newFilter(t, []string{"敏感"})
	words := f.Check("这是敏感词")
	if len(words) != 1 || words[0] != "敏感" {
		t.Fatalf("words = %v", words)
	}
}

func TestMaskedRuneWidthOnMixedScript(t *testing.T) {
	f := newFilter(t, []string{"敏感", "leak"})
	res := f.Process("报告 leak 与敏感数据")
	if res.Text != "报告 **** 与**数据" {
		t.Fatalf("text = %q", res.Text)
	}
}
