// Package pages splits documents into pages and cleans page text before
// matching. The matching core only consumes the resulting page sequence and
// never looks at boundary semantics.
package pages

import (
	"regexp"
	"strings"
)

var (
	pageHeading = regexp.MustCompile(`(Page\d+:)`)
	blankRuns   = regexp.MustCompile(`\n{3,}`)
	spaceRuns   = regexp.MustCompile(`[ \t]{2,}`)
)

// Split breaks a document into an ordered sequence of page strings. Form
// feeds take precedence as page separators; otherwise PageN: headings open a
// new page. A document with neither is a single page. Split never returns an
// empty sequence for non-empty input.
func Split(doc string) []string {
	if strings.Contains(doc, "\f") {
		return dropEmpty(strings.Split(doc, "\f"))
	}
	idx := pageHeading.FindAllStringIndex(doc, -1)
	if len(idx) == 0 {
		return []string{doc}
	}
	var out []string
	if idx[0][0] > 0 {
		out = append(out, doc[:idx[0][0]])
	}
	for i, loc := range idx {
		end := len(doc)
		if i+1 < len(idx) {
			end = idx[i+1][0]
		}
		out = append(out, doc[loc[0]:end])
	}
	return dropEmpty(out)
}

// Normalize cleans one page: a newline is inserted after PageN: headings,
// runs of spaces or tabs collapse to one space, and runs of blank lines
// collapse to one blank line.
func Normalize(page string) (string, error) {
	page = pageHeading.ReplaceAllString(page, "$1\n")
	page = spaceRuns.ReplaceAllString(page, " ")
	page = blankRuns.ReplaceAllString(page, "\n\n")
	return page, nil
}

func dropEmpty(in []string) []string {
	out := in[:0]
	for _, p := range in {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{""}
	}
	return out
}
