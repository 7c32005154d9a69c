package model

import (
	"errors"
	"testing"
	"time"
)

const validDoc = `{
	"generatedAt": "2026-01-20T00:00:00Z",
	"asOf": "2026-01-21T00:00:00Z",
	"schemaVersion": "3",
	"games": [
		{
			"id": "gta-vi",
			"name": "Grand Theft Auto VI",
			"tags": ["open-world", "rockstar"],
			"category": {"type": "full_game", "franchise": "GTA"},
			"platforms": ["ps5", "xbox_series"],
			"release": {
				"status": "announced_date",
				"dateISO": "2026-03-27",
				"isOfficial": true,
				"confidence": "confirmed"
			}
		},
		{
			"id": "fortnite-shop",
			"name": "Fortnite Item Shop",
			"tags": ["live-service"],
			"category": {"type": "store_reset"},
			"platforms": ["pc"],
			"release": {
				"status": "recurring_daily",
				"timeUTC": "00:00",
				"isOfficial": true,
				"confidence": "confirmed"
			}
		},
		{
			"id": "mystery-game",
			"name": "Mystery Project",
			"category": {"type": "full_game"},
			"release": {"status": "tba", "isOfficial": false}
		}
	]
}`

func dow(d int) *int { return &d }

func TestParseDocument(t *testing.T) {
	doc, diags, err := ParseDocument([]byte(validDoc))
	if err != nil {
		t.Fatalf("ParseDocument failed: %v", err)
	}
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %d: %v", len(diags), diags[0])
	}
	if len(doc.Games) != 3 {
		t.Fatalf("expected 3 games, got %d", len(doc.Games))
	}

	want := time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC)
	if !doc.GeneratedAt.Equal(want) {
		t.Errorf("unexpected generatedAt: %v", doc.GeneratedAt)
	}
	if !doc.EffectiveAsOf().Equal(time.Date(2026, 1, 21, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected asOf: %v", doc.EffectiveAsOf())
	}

	g := doc.Games[0]
	if g.Release.Status != StatusAnnouncedDate {
		t.Errorf("unexpected status: %s", g.Release.Status)
	}
	if g.Release.DateISO != "2026-03-27" {
		t.Errorf("unexpected dateISO: %s", g.Release.DateISO)
	}
	// Defaults filled in during normalization
	if g.Release.DatePrecision != PrecisionDay {
		t.Errorf("expected day precision default, got %s", g.Release.DatePrecision)
	}
	if g.Availability != AvailabilityUpcoming {
		t.Errorf("expected upcoming availability, got %s", g.Availability)
	}

	if doc.Games[2].Availability != AvailabilityUnknown {
		t.Errorf("expected unknown availability for tba, got %s", doc.Games[2].Availability)
	}
}

func TestParseDocumentMissingGeneratedAt(t *testing.T) {
	_, _, err := ParseDocument([]byte(`{"games": []}`))
	if !errors.Is(err, ErrSchema) {
		t.Errorf("expected ErrSchema, got %v", err)
	}
}

func TestParseDocumentMalformedJSON(t *testing.T) {
	_, _, err := ParseDocument([]byte(`{not json`))
	if err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestParseDocumentPartialSuccess(t *testing.T) {
	// One valid game, one announced_date missing its dateISO. The bad game
	// is dropped with a diagnostic; the good one still loads.
	doc := `{
		"generatedAt": "2026-01-20T00:00:00Z",
		"games": [
			{
				"id": "good",
				"name": "Good Game",
				"release": {"status": "tba"}
			},
			{
				"id": "bad",
				"name": "Bad Game",
				"release": {"status": "announced_date"}
			}
		]
	}`
	parsed, diags, err := ParseDocument([]byte(doc))
	if err != nil {
		t.Fatalf("ParseDocument failed: %v", err)
	}
	if len(parsed.Games) != 1 || parsed.Games[0].ID != "good" {
		t.Fatalf("expected only the good game, got %d games", len(parsed.Games))
	}
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(diags))
	}
	d := diags[0]
	if d.ItemID != "bad" || d.Field != "dateISO" || d.Status != StatusAnnouncedDate {
		t.Errorf("unexpected diagnostic: %+v", d)
	}
	if !errors.Is(d, ErrSchema) {
		t.Error("expected diagnostic to wrap ErrSchema")
	}
}

func TestParseDocumentRejectsMismatchedFields(t *testing.T) {
	cases := []struct {
		name    string
		release string
		field   string
	}{
		{"unknown status", `{"status": "maybe_soon"}`, "status"},
		{"missing status", `{}`, "status"},
		{"announced_date bad date", `{"status": "announced_date", "dateISO": "soon"}`, "dateISO"},
		{"announced_date bad precision", `{"status": "announced_date", "dateISO": "2026-03-27", "datePrecision": "unknown"}`, "datePrecision"},
		{"recurring_daily missing time", `{"status": "recurring_daily"}`, "timeUTC"},
		{"recurring_daily bad time", `{"status": "recurring_daily", "timeUTC": "25:00"}`, "timeUTC"},
		{"recurring_weekly bad dow", `{"status": "recurring_weekly", "dayOfWeekUTC": 9, "timeUTC": "09:00"}`, "dayOfWeekUTC"},
		{"recurring_weekly missing dow", `{"status": "recurring_weekly", "timeUTC": "09:00"}`, "dayOfWeekUTC"},
		{"released missing date", `{"status": "released"}`, "dateISO"},
		{"window empty", `{"status": "announced_window", "window": {}}`, "window"},
		{"window missing", `{"status": "announced_window"}`, "window"},
	}

	for _, tc := range cases {
		doc := `{
			"generatedAt": "2026-01-20T00:00:00Z",
			"games": [{"id": "x", "name": "X", "release": ` + tc.release + `}]
		}`
		parsed, diags, err := ParseDocument([]byte(doc))
		if err != nil {
			t.Fatalf("%s: ParseDocument failed: %v", tc.name, err)
		}
		if len(parsed.Games) != 0 {
			t.Errorf("%s: expected game to be dropped", tc.name)
		}
		if len(diags) != 1 {
			t.Fatalf("%s: expected 1 diagnostic, got %d", tc.name, len(diags))
		}
		if diags[0].Field != tc.field {
			t.Errorf("%s: expected field %q, got %q", tc.name, tc.field, diags[0].Field)
		}
	}
}

func TestParseDocumentWeeklySundayIsValid(t *testing.T) {
	// Sunday is day 0; an explicit zero must not be confused with the field
	// being absent.
	doc := `{
		"generatedAt": "2026-01-20T00:00:00Z",
		"games": [{
			"id": "raid",
			"name": "Weekly Raid",
			"release": {"status": "recurring_weekly", "dayOfWeekUTC": 0, "timeUTC": "09:00"}
		}]
	}`
	parsed, diags, err := ParseDocument([]byte(doc))
	if err != nil {
		t.Fatalf("ParseDocument failed: %v", err)
	}
	if len(diags) != 0 || len(parsed.Games) != 1 {
		t.Fatalf("expected Sunday weekly accepted, got %d games, %d diagnostics", len(parsed.Games), len(diags))
	}
	g := parsed.Games[0]
	if g.Release.DayOfWeekUTC == nil || *g.Release.DayOfWeekUTC != 0 {
		t.Errorf("unexpected dayOfWeekUTC: %v", g.Release.DayOfWeekUTC)
	}
}

func TestParseDocumentIgnoresUnknownFields(t *testing.T) {
	doc := `{
		"generatedAt": "2026-01-20T00:00:00Z",
		"futureField": {"nested": true},
		"games": [
			{
				"id": "g",
				"name": "G",
				"someNewThing": 42,
				"release": {"status": "tba", "anotherNewThing": "yes"}
			}
		]
	}`
	parsed, diags, err := ParseDocument([]byte(doc))
	if err != nil {
		t.Fatalf("ParseDocument failed: %v", err)
	}
	if len(diags) != 0 || len(parsed.Games) != 1 {
		t.Errorf("expected unknown fields to be ignored, got %d games, %d diagnostics", len(parsed.Games), len(diags))
	}
}

func TestParseDocumentLegacyCoverURL(t *testing.T) {
	doc := `{
		"generatedAt": "2026-01-20T00:00:00Z",
		"games": [
			{
				"id": "old",
				"name": "Old Entry",
				"coverUrl": "https://example.com/cover.jpg",
				"release": {"status": "tba"}
			}
		]
	}`
	parsed, _, err := ParseDocument([]byte(doc))
	if err != nil {
		t.Fatalf("ParseDocument failed: %v", err)
	}
	g := parsed.Games[0]
	if g.Media == nil || g.Media.Cover == nil {
		t.Fatal("expected legacy coverUrl migrated into media.cover")
	}
	if g.Media.Cover.Kind != "url" || g.Media.Cover.URL != "https://example.com/cover.jpg" {
		t.Errorf("unexpected cover: %+v", g.Media.Cover)
	}
	// Legacy documents predate category
	if g.Category.Type != CategoryOther {
		t.Errorf("expected category defaulted to other, got %s", g.Category.Type)
	}
}

func TestParseDocumentSeasonWindow(t *testing.T) {
	doc := `{
		"generatedAt": "2026-01-20T00:00:00Z",
		"games": [
			{
				"id": "fortnite",
				"name": "Fortnite",
				"category": {"type": "season"},
				"release": {"status": "recurring_daily", "timeUTC": "00:00"},
				"seasonWindow": {
					"current": {
						"label": "Chapter 6 Season 2",
						"startISO": "2026-01-01T00:00:00Z",
						"endISO": "2026-03-01T00:00:00Z",
						"isOfficial": true,
						"confidence": "confirmed"
					}
				}
			}
		]
	}`
	parsed, diags, err := ParseDocument([]byte(doc))
	if err != nil {
		t.Fatalf("ParseDocument failed: %v", err)
	}
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags[0])
	}
	sw := parsed.Games[0].SeasonWindow
	if sw == nil {
		t.Fatal("expected season window")
	}
	if !sw.Current.Start.Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected start: %v", sw.Current.Start)
	}
	if !sw.Current.End.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected end: %v", sw.Current.End)
	}
}

func TestParseDocumentSeasonWindowInverted(t *testing.T) {
	doc := `{
		"generatedAt": "2026-01-20T00:00:00Z",
		"games": [
			{
				"id": "x",
				"name": "X",
				"release": {"status": "tba"},
				"seasonWindow": {
					"current": {
						"startISO": "2026-03-01T00:00:00Z",
						"endISO": "2026-01-01T00:00:00Z",
						"isOfficial": false,
						"confidence": "unknown"
					}
				}
			}
		]
	}`
	parsed, diags, err := ParseDocument([]byte(doc))
	if err != nil {
		t.Fatalf("ParseDocument failed: %v", err)
	}
	if len(parsed.Games) != 0 || len(diags) != 1 {
		t.Fatal("expected inverted season window to be rejected")
	}
}

func TestByID(t *testing.T) {
	doc, _, err := ParseDocument([]byte(validDoc))
	if err != nil {
		t.Fatalf("ParseDocument failed: %v", err)
	}
	g, ok := doc.ByID("fortnite-shop")
	if !ok {
		t.Fatal("expected to find fortnite-shop")
	}
	if g.Name != "Fortnite Item Shop" {
		t.Errorf("unexpected name: %s", g.Name)
	}

	// Absence, not an error
	if _, ok := doc.ByID("nope"); ok {
		t.Error("expected lookup miss for unknown id")
	}
}

func TestMetaLabel(t *testing.T) {
	cases := []struct {
		release Release
		want    string
	}{
		{Release{Status: StatusTBA}, "Release: TBA"},
		{Release{Status: StatusAnnouncedDate, DateISO: "2026-03-27"}, "Release: 2026-03-27"},
		{Release{Status: StatusRecurringDaily, TimeUTC: "09:00"}, "Resets daily at 09:00 UTC"},
		{Release{Status: StatusRecurringWeekly, DayOfWeekUTC: dow(4), TimeUTC: "17:00"}, "Resets Thursday at 17:00 UTC"},
		{Release{Status: StatusReleased, DateISO: "2025-11-01"}, "Released: 2025-11-01"},
		{Release{Status: StatusCancelled}, "Cancelled"},
		{Release{Status: StatusDelayed, Previous: &PreviousDate{DateISO: "2025-09-01"}}, "Delayed (was 2025-09-01)"},
		{Release{Status: StatusAnnouncedWindow, Window: &Window{Label: "Spring 2026"}}, "Release window: Spring 2026"},
	}
	for _, tc := range cases {
		if got := tc.release.MetaLabel(); got != tc.want {
			t.Errorf("MetaLabel(%s): expected %q, got %q", tc.release.Status, tc.want, got)
		}
	}
}

func TestAvailabilityForCoversAllStatuses(t *testing.T) {
	for _, s := range StatusValues {
		a := AvailabilityFor(s)
		switch a {
		case AvailabilityUpcoming, AvailabilityReleased, AvailabilityCancelled, AvailabilityUnknown:
		default:
			t.Errorf("status %s mapped to unexpected availability %q", s, a)
		}
	}
}
