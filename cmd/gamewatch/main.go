// Gamewatch - a terminal countdown tracker for game releases.
//
// Architecture overview:
//   internal/model     - document schema, parsing, validation
//   internal/countdown - time remaining until each game's next event
//   internal/rank      - filtering and sorting
//   internal/fetch     - HTTP document retrieval
//   internal/store     - SQLite document cache for offline starts
//   internal/ui        - Bubble Tea UI
//
// main wires those together: it loads config, opens the cache, and hands
// the UI a single loadDocument command that prefers the network and falls
// back to the cache.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/abelbrown/gamewatch/internal/config"
	"github.com/abelbrown/gamewatch/internal/fetch"
	"github.com/abelbrown/gamewatch/internal/logging"
	"github.com/abelbrown/gamewatch/internal/model"
	"github.com/abelbrown/gamewatch/internal/rank"
	"github.com/abelbrown/gamewatch/internal/store"
	"github.com/abelbrown/gamewatch/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// cacheMaxAge is how long old document snapshots are kept before Prune
// removes them. The newest snapshot is always kept regardless of age.
const cacheMaxAge = 7 * 24 * time.Hour

func main() {
	// Initialize logging
	if err := logging.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}
	defer logging.Close()

	logging.Info("Gamewatch starting")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fatal("Failed to load config: %v", err)
	}

	// Open the document cache
	cachePath, err := cfg.CachePath()
	if err != nil {
		fatal("Failed to resolve cache path: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(cachePath), 0755); err != nil {
		fatal("Failed to create data directory: %v", err)
	}
	st, err := store.New(cachePath)
	if err != nil {
		fatal("Failed to open document cache: %v", err)
	}
	defer st.Close()
	logging.Info("Cache opened", "path", cachePath)

	fetcher := fetch.NewFetcher(time.Duration(cfg.Documents.TimeoutSeconds) * time.Second)
	loadDocument := func() tea.Cmd {
		return loadDocumentCmd(fetcher, st, cfg.Documents.URLs)
	}

	app := ui.New(ui.Options{
		LoadDocument: loadDocument,
		TickEvery:    time.Duration(cfg.UI.TickMs) * time.Millisecond,
		RefreshEvery: time.Duration(cfg.Documents.RefreshMinutes) * time.Minute,
		DefaultSort:  rank.SortKey(cfg.UI.DefaultSort),
		HideReleased: cfg.UI.HideReleased,
	})

	p := tea.NewProgram(app, tea.WithAltScreen())

	logging.Info("Starting UI", "urls", len(cfg.Documents.URLs))
	if _, err := p.Run(); err != nil {
		logging.Error("Application error", "error", err)
		fatal("Error: %v", err)
	}

	logging.Info("Gamewatch exiting normally")
}

// loadDocumentCmd fetches the configured documents and caches the result.
// When the network fetch fails, the last cached snapshot is replayed so the
// app still shows something; the fetch error rides along for the status bar.
func loadDocumentCmd(fetcher *fetch.Fetcher, st *store.Store, urls []string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		res, err := fetcher.FetchAll(ctx, urls)
		if err != nil {
			logging.Warn("Fetch failed, trying cache", "error", err)
			cached, cerr := st.LatestDocument()
			if cerr != nil {
				if !errors.Is(cerr, store.ErrNotFound) {
					logging.Error("Cache read failed", "error", cerr)
				}
				return ui.DocumentLoaded{Err: err}
			}
			doc, diags, perr := model.ParseDocument(cached.Raw)
			if perr != nil {
				logging.Error("Cached document is unreadable", "error", perr)
				return ui.DocumentLoaded{Err: err}
			}
			return ui.DocumentLoaded{
				Doc:       doc,
				Diags:     diags,
				FromCache: true,
				FetchedAt: cached.FetchedAt,
				Err:       err,
			}
		}

		fetchedAt := time.Now()
		if serr := st.SaveDocument(res.URL, res.Raw, res.Doc.GeneratedAt, fetchedAt); serr != nil {
			logging.Warn("Failed to cache document", "error", serr)
		}
		if n, perr := st.Prune(cacheMaxAge, fetchedAt); perr != nil {
			logging.Warn("Failed to prune cache", "error", perr)
		} else if n > 0 {
			logging.Debug("Pruned cached documents", "count", n)
		}

		logging.Info("Document loaded", "games", len(res.Doc.Games), "dropped", len(res.Diags))
		return ui.DocumentLoaded{Doc: res.Doc, Diags: res.Diags, FetchedAt: fetchedAt}
	}
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
