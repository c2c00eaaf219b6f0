package server

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/PhucNguyen204/wordfilter/internal/pages"
	"github.com/PhucNguyen204/wordfilter/pkg/filter"
	"github.com/PhucNguyen204/wordfilter/pkg/match"
	"github.com/PhucNguyen204/wordfilter/pkg/wordlist"
)

// maxUploadBytes bounds multipart uploads held in memory.
const maxUploadBytes = 32 << 20

// WordStore is the word-list source the server owns: it can be re-read and
// supports exact-word deletion. Both the file source and the Postgres source
// satisfy it.
type WordStore interface {
	wordlist.Source
	Remove(word string) error
}

// AppServer exposes the document filter over HTTP. The filter is rebuilt
// from scratch on word-list edits and swapped in atomically; in-flight scans
// keep using the instance they started with.
type AppServer struct {
	store   WordStore
	variant match.Variant
	mask    rune

	mu     sync.RWMutex // protects filter swap
	filter *filter.DocumentFilter
	words  int
}

// NewAppServer builds the initial filter from store. A store that cannot be
// read is fatal: the server must not start with a silently empty filter.
func NewAppServer(store WordStore, variant match.Variant, mask rune) (*AppServer, error) {
	s := &AppServer{store: store, variant: variant, mask: mask}
	if err := s.Rebuild(); err != nil {
		return nil, err
	}
	return s, nil
}

// Rebuild reloads the word list, constructs a fresh matcher and filter, and
// swaps them in. The live filter is never mutated in place.
func (s *AppServer) Rebuild() error {
	list, err := wordlist.Load(s.store)
	if err != nil {
		return fmt.Errorf("load word list: %w", err)
	}
	m, err := match.New(s.variant, list)
	if err != nil {
		return err
	}
	f := filter.New(list, m,
		filter.WithMasker(filter.NewMasker(s.mask)),
		filter.WithPaginate(pages.Split),
		filter.WithNormalize(pages.Normalize),
	)
	s.mu.Lock()
	s.filter = f
	s.words = list.Len()
	s.mu.Unlock()
	return nil
}

func (s *AppServer) currentFilter() (*filter.DocumentFilter, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter, s.words
}

// RegisterRoutes wires HTTP handlers.
func (s *AppServer) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/api/v1/check", s.handleCheck)
	mux.HandleFunc("/api/v1/mask", s.handleMask)
	mux.HandleFunc("/api/v1/words/", s.handleWords)
	mux.HandleFunc("/api/v1/stats", s.handleStats)
}

// ---- Handlers ----

func (s *AppServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (s *AppServer) handleCheck(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	text, _, err := readText(r)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	f, _ := s.currentFilter()
	words := f.Check(text)
	if len(words) > 0 {
		writeJSON(w, http.StatusOK, map[string]any{
			"compliant":       false,
			"message":         "text contains sensitive words",
			"sensitive_words": words,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"compliant": true,
		"message":   "text is compliant",
	})
}

func (s *AppServer) handleMask(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	text, fromJSON, err := readText(r)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	f, _ := s.currentFilter()
	res := f.Process(text)
	for _, pe := range res.PageErrors {
		log.Printf("mask: page %d passed through unfiltered: %v", pe.Page, pe.Err)
	}
	if fromJSON {
		writeJSON(w, http.StatusOK, map[string]any{"filtered_text": res.Text})
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, res.Text)
}

// handleWords supports DELETE /api/v1/words/{word}: the word is removed from
// the store and the filter is rebuilt and swapped.
func (s *AppServer) handleWords(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	word := strings.TrimPrefix(r.URL.Path, "/api/v1/words/")
	word = strings.TrimSpace(word)
	if word == "" {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("missing word"))
		return
	}
	if err := s.store.Remove(word); err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	if err := s.Rebuild(); err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	_, n := s.currentFilter()
	log.Printf("words: removed %q, filter rebuilt with %d words", word, n)
	writeJSON(w, http.StatusOK, map[string]any{"removed": word, "words": n})
}

func (s *AppServer) handleStats(w http.ResponseWriter, r *http.Request) {
	f, n := s.currentFilter()
	st := f.Stats()
	writeJSON(w, http.StatusOK, map[string]any{
		"words":            n,
		"matcher":          string(s.variant),
		"documents":        st.Documents,
		"pages":            st.Pages,
		"prefilter_hits":   st.PrefilterHits,
		"prefilter_misses": st.PrefilterMisses,
	})
}

// ---- Request decoding ----

// readText extracts the input text: a JSON body {"text": ...} wins, then a
// multipart upload under the field "file", then the raw body. The second
// return reports whether the text came from JSON, which decides the response
// shape for masking. Empty content and invalid UTF-8 are client errors.
func readText(r *http.Request) (string, bool, error) {
	ct := r.Header.Get("Content-Type")
	mt, _, _ := mime.ParseMediaType(ct)

	switch {
	case mt == "application/json":
		var payload struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			return "", true, fmt.Errorf("invalid JSON body: %w", err)
		}
		if payload.Text == "" {
			return "", true, fmt.Errorf("missing text")
		}
		if !utf8.ValidString(payload.Text) {
			return "", true, fmt.Errorf("text is not valid UTF-8")
		}
		return payload.Text, true, nil

	case strings.HasPrefix(mt, "multipart/"):
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			return "", false, fmt.Errorf("invalid multipart body: %w", err)
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			return "", false, fmt.Errorf("missing file field: %w", err)
		}
		defer file.Close()
		b, err := io.ReadAll(file)
		if err != nil {
			return "", false, fmt.Errorf("read uploaded file: %w", err)
		}
		return validateBytes(b)

	default:
		b, err := io.ReadAll(r.Body)
		if err != nil {
			return "", false, fmt.Errorf("read body: %w", err)
		}
		return validateBytes(b)
	}
}

func validateBytes(b []byte) (string, bool, error) {
	if len(b) == 0 {
		return "", false, fmt.Errorf("missing text")
	}
	if !utf8.Valid(b) {
		return "", false, fmt.Errorf("body is not valid UTF-8")
	}
	return string(b), false, nil
}

// ---- Helpers ----

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("writeJSON error: %v", err)
	}
}

func writeErr(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]any{"error": err.Error()})
}
