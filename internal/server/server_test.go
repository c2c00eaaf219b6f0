package server

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PhucNguyen204/wordfilter/pkg/match"
	"github.com/PhucNguyen204/wordfilter/pkg/wordlist"
)

func newTestServer(t *testing.T, words string) (*httptest.Server, string) {
	t.Helper()
	p := filepath.Join(t.TempDir(), "keywords.txt")
	if err := os.WriteFile(p, []byte(words), 0o644); err != nil {
		t.Fatalf("write words: %v", err)
	}
	s, err := NewAppServer(wordlist.FileSource(p), match.VariantAhoCorasick, '*')
	if err != nil {
		t.Fatalf("NewAppServer: %v", err)
	}
	mux := http.NewServeMux()
	s.RegisterRoutes(mux)
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts, p
}

func postJSON(t *testing.T, url, text string) *http.Response {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"text": text})
	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

func TestCheckNonCompliant(t *testing.T) {
	ts, _ := newTestServer(t, "foo\nbar\n")
	resp := postJSON(t, ts.URL+"/api/v1/check", "a foo and a BAR here")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	got := decodeJSON(t, resp)
	if got["compliant"] != false {
		t.Fatalf("compliant = %v", got["compliant"])
	}
	words, _ := got["sensitive_words"].([]any)
	if len(words) != 2 || words[0] != "foo" || words[1] != "bar" {
		t.Fatalf("sensitive_words = %v", got["sensitive_words"])
	}
}

func TestCheckCompliant(t *testing.T) {
	ts, _ := newTestServer(t, "foo\n")
	got := decodeJSON(t, postJSON(t, ts.URL+"/api/v1/check", "nothing here"))
	if got["compliant"] != true {
		t.Fatalf("compliant = %v", got["compliant"])
	}
	if _, present := got["sensitive_words"]; present {
		t.Fatal("compliant response must not list words")
	}
}

func TestMaskJSONBody(t *testing.T) {
	ts, _ := newTestServer(t, "foo\nbar\n")
	got := decodeJSON(t, postJSON(t, ts.URL+"/api/v1/mask", "a foo and a BAR here"))
	if got["filtered_text"] != "a *** and a *** here" {
		t.Fatalf("filtered_text = %q", got["filtered_text"])
	}
}

func TestMaskRawBody(t *testing.T) {
	ts, _ := newTestServer(t, "敏感\n")
	resp, err := http.Post(ts.URL+"/api/v1/mask", "text/plain", strings.NewReader("这是敏感词"))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Fatalf("content type = %q", ct)
	}
	b, _ := io.ReadAll(resp.Body)
	if string(b) != "这是**词" {
		t.Fatalf("body = %q", b)
	}
}

func TestMaskUploadedFile(t *testing.T) {
	ts, _ := newTestServer(t, "leak\n")
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "doc.txt")
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	_, _ = io.WriteString(fw, "a leak in the doc")
	_ = mw.Close()

	resp, err := http.Post(ts.URL+"/api/v1/mask", mw.FormDataContentType(), &buf)
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	if string(b) != "a **** in the doc" {
		t.Fatalf("body = %q", b)
	}
}

func TestRejectsEmptyBody(t *testing.T) {
	ts, _ := newTestServer(t, "foo\n")
	resp, err := http.Post(ts.URL+"/api/v1/check", "text/plain", strings.NewReader(""))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestRejectsInvalidUTF8(t *testing.T) {
	ts, _ := newTestServer(t, "foo\n")
	resp, err := http.Post(ts.URL+"/api/v1/mask", "application/octet-stream", bytes.NewReader([]byte{0xff, 0xfe, 0xfd}))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestDeleteWordRebuildsFilter(t *testing.T) {
	ts, _ := newTestServer(t, "foo\nbar\n")

	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/api/v1/words/foo", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE: %v", err)
	}
	got := decodeJSON(t, resp)
	if got["removed"] != "foo" || got["words"] != float64(1) {
		t.Fatalf("delete response = %v", got)
	}

	check := decodeJSON(t, postJSON(t, ts.URL+"/api/v1/check", "a foo here"))
	if check["compliant"] != true {
		t.Fatalf("foo still detected after delete: %v", check)
	}
	check = decodeJSON(t, postJSON(t, ts.URL+"/api/v1/check", "a bar here"))
	if check["compliant"] != false {
		t.Fatalf("bar should survive the delete: %v", check)
	}
}

func TestStats(t *testing.T) {
	ts, _ := newTestServer(t, "foo\n")
	_ = decodeJSON(t, postJSON(t, ts.URL+"/api/v1/check", "clean text"))

	resp, err := http.Get(ts.URL + "/api/v1/stats")
	if err != nil {
		t.Fatalf("GET stats: %v", err)
	}
	got := decodeJSON(t, resp)
	if got["words"] != float64(1) || got["matcher"] != "ahocorasick" {
		t.Fatalf("stats = %v", got)
	}
	if got["prefilter_misses"] != float64(1) {
		t.Fatalf("stats = %v", got)
	}
}
