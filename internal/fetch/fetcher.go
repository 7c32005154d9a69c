// Package fetch retrieves games documents over HTTP.
//
// A document is a single JSON snapshot; the fetcher downloads it, hands the
// bytes to model.ParseDocument and returns the typed result. It never
// stores anything - the caller decides what to do with the document.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/abelbrown/gamewatch/internal/logging"
	"github.com/abelbrown/gamewatch/internal/model"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// maxDocumentBytes caps how much of a response body we will read. Games
// documents are small; anything larger is a misconfigured URL.
const maxDocumentBytes = 16 << 20

// Result is one successfully fetched and parsed document.
//
// Raw holds the exact bytes the primary URL served, so the caller can cache
// them and replay through model.ParseDocument later without this package
// needing to know how to serialize a Document.
type Result struct {
	Doc   *model.Document
	Diags []*model.SchemaError
	Raw   []byte
	URL   string
}

// Fetcher retrieves and parses games documents.
type Fetcher struct {
	client  *http.Client
	limiter *rate.Limiter
}

// NewFetcher creates a Fetcher with the given per-request timeout. Requests
// are rate limited to one per second so a short refresh interval can't
// hammer the document host.
func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
	}
}

// Fetch retrieves one document. Schema diagnostics for individual games are
// collected in the Result (partial success); only transport failures and
// document-level schema problems are errors.
//
// The function respects context cancellation and will return early if the
// context is cancelled.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*Result, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "gamewatch/1.0 (https://github.com/abelbrown/gamewatch)")
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	doc, diags, err := model.ParseDocument(data)
	if err != nil {
		return nil, err
	}
	for _, d := range diags {
		logging.Warn("Dropped invalid game", "url", url, "error", d.Error())
	}
	return &Result{Doc: doc, Diags: diags, Raw: data, URL: url}, nil
}

// FetchAll retrieves every URL concurrently and merges the documents by
// game id. The first URL is authoritative: its document supplies the
// timestamps and schema version, on id conflicts its games win, and its
// bytes are what Result.Raw carries. Any single fetch failing fails the
// whole operation.
func (f *Fetcher) FetchAll(ctx context.Context, urls []string) (*Result, error) {
	if len(urls) == 0 {
		return nil, fmt.Errorf("no document URLs configured")
	}
	if len(urls) == 1 {
		return f.Fetch(ctx, urls[0])
	}

	results := make([]*Result, len(urls))

	g, ctx := errgroup.WithContext(ctx)
	for i, url := range urls {
		g.Go(func() error {
			res, err := f.Fetch(ctx, url)
			if err != nil {
				return fmt.Errorf("%s: %w", url, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	primary := results[0]
	merged := *primary.Doc
	merged.Games = make([]model.Game, 0, len(primary.Doc.Games))
	seen := make(map[string]bool)
	var diags []*model.SchemaError
	for _, res := range results {
		for _, game := range res.Doc.Games {
			if seen[game.ID] {
				continue
			}
			seen[game.ID] = true
			merged.Games = append(merged.Games, game)
		}
		diags = append(diags, res.Diags...)
	}

	logging.Info("Documents merged", "urls", len(urls), "games", len(merged.Games))
	return &Result{Doc: &merged, Diags: diags, Raw: primary.Raw, URL: primary.URL}, nil
}
