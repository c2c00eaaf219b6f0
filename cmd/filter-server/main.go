package main

import (
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/PhucNguyen204/wordfilter/internal/config"
	"github.com/PhucNguyen204/wordfilter/internal/server"
	"github.com/PhucNguyen204/wordfilter/internal/store"
	"github.com/PhucNguyen204/wordfilter/pkg/match"
	"github.com/PhucNguyen204/wordfilter/pkg/wordlist"
)

func main() {
	// Best effort: a missing .env is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("FILTER_CONFIG"))
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	variant, err := match.ParseVariant(cfg.Matcher)
	if err != nil {
		log.Fatalf("resolve matcher: %v", err)
	}

	ws, cleanup, err := openStore(cfg.WordList)
	if err != nil {
		log.Fatalf("open word store: %v", err)
	}
	defer cleanup()

	srv, err := server.NewAppServer(ws, variant, cfg.MaskRune())
	if err != nil {
		log.Fatalf("build filter: %v", err)
	}

	mux := http.NewServeMux()
	srv.RegisterRoutes(mux)

	log.Printf("word filter listening on %s (matcher=%s wordlist=%s)", cfg.Addr, variant, cfg.WordList)
	if err := http.ListenAndServe(cfg.Addr, mux); err != nil {
		log.Fatalf("listen: %v", err)
	}
}

// openStore picks the word-list backend from its location: a postgres:// DSN
// selects the database source, anything else is a file path.
func openStore(loc string) (server.WordStore, func(), error) {
	if strings.HasPrefix(loc, "postgres://") || strings.HasPrefix(loc, "postgresql://") {
		pg, err := store.Open(loc)
		if err != nil {
			return nil, nil, err
		}
		if err := pg.EnsureSchema(); err != nil {
			_ = pg.Close()
			return nil, nil, err
		}
		return pg, func() { _ = pg.Close() }, nil
	}
	return wordlist.FileSource(loc), func() {}, nil
}
