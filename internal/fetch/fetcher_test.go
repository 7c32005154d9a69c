package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

const testDoc = `{
	"generatedAt": "2026-01-20T00:00:00Z",
	"games": [
		{"id": "a", "name": "Game A", "release": {"status": "tba"}},
		{"id": "b", "name": "Game B", "release": {"status": "recurring_daily", "timeUTC": "09:00"}}
	]
}`

func newTestFetcher() *Fetcher {
	f := NewFetcher(5 * time.Second)
	f.limiter = rate.NewLimiter(rate.Inf, 1)
	return f
}

func TestFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); !strings.HasPrefix(ua, "gamewatch/") {
			t.Errorf("unexpected user agent: %s", ua)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(testDoc))
	}))
	defer server.Close()

	res, err := newTestFetcher().Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(res.Diags) != 0 {
		t.Errorf("unexpected diagnostics: %v", res.Diags[0])
	}
	if len(res.Doc.Games) != 2 {
		t.Errorf("expected 2 games, got %d", len(res.Doc.Games))
	}
	if res.Doc.Games[0].ID != "a" {
		t.Errorf("unexpected first game: %s", res.Doc.Games[0].ID)
	}
	if string(res.Raw) != testDoc {
		t.Error("expected Raw to carry the served bytes")
	}
	if res.URL != server.URL {
		t.Errorf("unexpected result URL: %s", res.URL)
	}
}

func TestFetchHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := newTestFetcher().Fetch(context.Background(), server.URL)
	if err == nil {
		t.Fatal("expected error for HTTP 500")
	}
}

func TestFetchBadDocument(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"games": []}`)) // missing generatedAt
	}))
	defer server.Close()

	_, err := newTestFetcher().Fetch(context.Background(), server.URL)
	if err == nil {
		t.Fatal("expected error for document without generatedAt")
	}
}

func TestFetchPartialSuccess(t *testing.T) {
	doc := `{
		"generatedAt": "2026-01-20T00:00:00Z",
		"games": [
			{"id": "good", "name": "Good", "release": {"status": "tba"}},
			{"id": "bad", "name": "Bad", "release": {"status": "announced_date"}}
		]
	}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(doc))
	}))
	defer server.Close()

	res, err := newTestFetcher().Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(res.Doc.Games) != 1 || len(res.Diags) != 1 {
		t.Errorf("expected 1 game and 1 diagnostic, got %d and %d", len(res.Doc.Games), len(res.Diags))
	}
}

func TestFetchContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
		w.Write([]byte(testDoc))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newTestFetcher().Fetch(ctx, server.URL)
	if err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestFetchAllMerges(t *testing.T) {
	primaryDoc := `{
		"generatedAt": "2026-01-20T00:00:00Z",
		"games": [
			{"id": "shared", "name": "Primary Copy", "release": {"status": "tba"}},
			{"id": "only-a", "name": "Only A", "release": {"status": "tba"}}
		]
	}`
	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(primaryDoc))
	}))
	defer primary.Close()

	secondary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"generatedAt": "2026-01-19T00:00:00Z",
			"games": [
				{"id": "shared", "name": "Secondary Copy", "release": {"status": "tba"}},
				{"id": "only-b", "name": "Only B", "release": {"status": "tba"}}
			]
		}`))
	}))
	defer secondary.Close()

	res, err := newTestFetcher().FetchAll(context.Background(), []string{primary.URL, secondary.URL})
	if err != nil {
		t.Fatalf("FetchAll failed: %v", err)
	}
	if len(res.Doc.Games) != 3 {
		t.Fatalf("expected 3 merged games, got %d", len(res.Doc.Games))
	}

	// First URL is authoritative on conflicts and supplies generatedAt.
	g, ok := res.Doc.ByID("shared")
	if !ok || g.Name != "Primary Copy" {
		t.Errorf("expected primary copy to win, got %+v", g)
	}
	if !res.Doc.GeneratedAt.Equal(time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("expected primary generatedAt, got %v", res.Doc.GeneratedAt)
	}
	if string(res.Raw) != primaryDoc || res.URL != primary.URL {
		t.Error("expected Raw and URL from the primary fetch")
	}
}

func TestFetchAllPropagatesFailure(t *testing.T) {
	ok := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(testDoc))
	}))
	defer ok.Close()

	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer broken.Close()

	_, err := newTestFetcher().FetchAll(context.Background(), []string{ok.URL, broken.URL})
	if err == nil {
		t.Fatal("expected error when one fetch fails")
	}
}

func TestFetchAllEmptyURLs(t *testing.T) {
	_, err := newTestFetcher().FetchAll(context.Background(), nil)
	if err == nil {
		t.Fatal("expected error for no URLs")
	}
}
