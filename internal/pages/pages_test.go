package pages

import (
	"strings"
	"testing"
)

func TestSplitOnFormFeed(t *testing.T) {
	got := Split("first page\fsecond page\fthird")
	if len(got) != 3 || got[1] != "second page" {
		t.Fatalf("got %q", got)
	}
}

func TestSplitOnPageHeadings(t *testing.T) {
	got := Split("Page1: alpha text Page2: beta text")
	if len(got) != 2 {
		t.Fatalf("got %d pages: %q", len(got), got)
	}
	if !strings.HasPrefix(got[0], "Page1:") || !strings.HasPrefix(got[1], "Page2:") {
		t.Fatalf("got %q", got)
	}
}

func TestSplitPreservesPreamble(t *testing.T) {
	got := Split("intro Page1: body")
	if len(got) != 2 || got[0] != "intro " {
		t.Fatalf("got %q", got)
	}
}

func TestSplitPlainDocumentIsOnePage(t *testing.T) {
	got := Split("no markers anywhere")
	if len(got) != 1 || got[0] != "no markers anywhere" {
		t.Fatalf("got %q", got)
	}
}

func TestNormalizeHeadingNewline(t *testing.T) {
	got, err := Normalize("Page3:content here")
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if got != "Page3:\ncontent here" {
		t.Fatalf("got %q", got)
	}
}

func TestNormalizeCollapsesWhitespace(t *testing.T) {
	got, err := Normalize("a    b\tc\n\n\n\nd")
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if got != "a b\tc\n\nd" {
		t.Fatalf("got %q", got)
	}
}
