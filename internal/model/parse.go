package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/abelbrown/gamewatch/internal/timeutil"
)

// dateLayout is the wire format for calendar dates.
const dateLayout = "2006-01-02"

// rawGame wraps Game with fields that only exist in legacy documents.
// Earlier schema revisions stored the cover as a bare top-level URL and had
// no category or platforms at all; normalization folds those forward into
// the canonical shape so old documents never leak past the load boundary.
type rawGame struct {
	Game
	LegacyCoverURL string `json:"coverUrl,omitempty"`
}

type rawDocument struct {
	GeneratedAt   string            `json:"generatedAt"`
	AsOf          string            `json:"asOf,omitempty"`
	SchemaVersion string            `json:"schemaVersion,omitempty"`
	Games         []json.RawMessage `json:"games"`
}

// ParseDocument validates a raw JSON document into a typed Document.
//
// Malformed JSON or a missing/unparseable generatedAt fails the whole load.
// Per-game validation failures are collected as SchemaError diagnostics and
// the offending games dropped; the rest of the document still loads (partial
// success). Unknown extra JSON fields are ignored for forward compatibility.
func ParseDocument(data []byte) (*Document, []*SchemaError, error) {
	var raw rawDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("failed to parse document: %w", err)
	}

	if raw.GeneratedAt == "" {
		return nil, nil, fmt.Errorf("%w: document: field \"generatedAt\": required", ErrSchema)
	}
	generatedAt, err := time.Parse(time.RFC3339, raw.GeneratedAt)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: document: field \"generatedAt\": %v", ErrSchema, err)
	}

	doc := &Document{
		GeneratedAt:   generatedAt,
		SchemaVersion: raw.SchemaVersion,
		Games:         make([]Game, 0, len(raw.Games)),
	}
	if raw.AsOf != "" {
		asOf, err := time.Parse(time.RFC3339, raw.AsOf)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: document: field \"asOf\": %v", ErrSchema, err)
		}
		doc.AsOf = asOf
	}

	var diags []*SchemaError
	for i, rawG := range raw.Games {
		g, serr := parseGame(rawG, i)
		if serr != nil {
			diags = append(diags, serr)
			continue
		}
		doc.Games = append(doc.Games, g)
	}

	return doc, diags, nil
}

func parseGame(data json.RawMessage, index int) (Game, *SchemaError) {
	var rg rawGame
	if err := json.Unmarshal(data, &rg); err != nil {
		return Game{}, &SchemaError{Index: index, Field: "(json)", Reason: err.Error()}
	}
	g := rg.Game

	fail := func(field, reason string) (Game, *SchemaError) {
		return Game{}, &SchemaError{ItemID: g.ID, Index: index, Status: g.Release.Status, Field: field, Reason: reason}
	}

	if g.ID == "" {
		return fail("id", "required")
	}
	if g.Name == "" {
		return fail("name", "required")
	}

	if serr := validateRelease(&g.Release); serr != "" {
		field, reason := splitFieldReason(serr)
		return fail(field, reason)
	}

	if g.SeasonWindow != nil {
		cur := &g.SeasonWindow.Current
		if cur.StartISO != "" {
			start, err := time.Parse(time.RFC3339, cur.StartISO)
			if err != nil {
				return fail("seasonWindow.current.startISO", err.Error())
			}
			cur.Start = start
		}
		if cur.EndISO != "" {
			end, err := time.Parse(time.RFC3339, cur.EndISO)
			if err != nil {
				return fail("seasonWindow.current.endISO", err.Error())
			}
			cur.End = end
		}
		if !cur.Start.IsZero() && !cur.End.IsZero() && cur.End.Before(cur.Start) {
			return fail("seasonWindow.current.endISO", "ends before it starts")
		}
	}

	normalizeGame(&g, rg.LegacyCoverURL)
	return g, nil
}

// validateRelease checks that a release record carries exactly the fields
// its status tag requires. Returns "" on success, or "field: reason".
func validateRelease(r *Release) string {
	if r.Status == "" {
		return `status: required`
	}
	if !r.Status.Valid() {
		return fmt.Sprintf("status: unknown status %q", r.Status)
	}

	switch r.Status {
	case StatusTBA:
		// Nothing required.

	case StatusAnnouncedDate:
		if r.DateISO == "" {
			return "dateISO: required for announced_date"
		}
		if _, err := time.Parse(dateLayout, r.DateISO); err != nil {
			return "dateISO: " + err.Error()
		}
		switch r.DatePrecision {
		case "", PrecisionDay, PrecisionMonth, PrecisionQuarter, PrecisionYear:
		default:
			return fmt.Sprintf("datePrecision: invalid precision %q", r.DatePrecision)
		}

	case StatusAnnouncedWindow:
		if r.Window == nil {
			return "window: required for announced_window"
		}
		w := r.Window
		if w.Year == 0 && w.Quarter == 0 && w.Month == 0 && w.Label == "" {
			return "window: at least one of year/quarter/month/label required"
		}
		if w.Quarter < 0 || w.Quarter > 4 {
			return fmt.Sprintf("window.quarter: %d out of range", w.Quarter)
		}
		if w.Month < 0 || w.Month > 12 {
			return fmt.Sprintf("window.month: %d out of range", w.Month)
		}

	case StatusRecurringDaily:
		if r.TimeUTC == "" {
			return "timeUTC: required for recurring_daily"
		}
		if _, _, err := timeutil.ParseClock(r.TimeUTC); err != nil {
			return "timeUTC: " + err.Error()
		}

	case StatusRecurringWeekly:
		if r.DayOfWeekUTC == nil {
			return "dayOfWeekUTC: required for recurring_weekly"
		}
		if *r.DayOfWeekUTC < 0 || *r.DayOfWeekUTC > 6 {
			return fmt.Sprintf("dayOfWeekUTC: %d out of range", *r.DayOfWeekUTC)
		}
		if r.TimeUTC == "" {
			return "timeUTC: required for recurring_weekly"
		}
		if _, _, err := timeutil.ParseClock(r.TimeUTC); err != nil {
			return "timeUTC: " + err.Error()
		}

	case StatusReleased:
		if r.DateISO == "" {
			return "dateISO: required for released"
		}
		if _, err := time.Parse(dateLayout, r.DateISO); err != nil {
			return "dateISO: " + err.Error()
		}
		if r.ReleasedAt != "" {
			if _, err := time.Parse(time.RFC3339, r.ReleasedAt); err != nil {
				return "releasedAt: " + err.Error()
			}
		}

	case StatusCancelled:
		if r.DateISO != "" {
			if _, err := time.Parse(dateLayout, r.DateISO); err != nil {
				return "dateISO: " + err.Error()
			}
		}

	case StatusDelayed:
		if r.Previous != nil && r.Previous.DateISO != "" {
			if _, err := time.Parse(dateLayout, r.Previous.DateISO); err != nil {
				return "previous.dateISO: " + err.Error()
			}
		}
	}

	return ""
}

// normalizeGame migrates legacy fields forward and fills derived defaults.
func normalizeGame(g *Game, legacyCoverURL string) {
	// v1 documents carried the cover as a bare URL at the top level.
	if legacyCoverURL != "" && (g.Media == nil || g.Media.Cover == nil) {
		if g.Media == nil {
			g.Media = &Media{}
		}
		g.Media.Cover = &ImageAsset{Kind: "url", URL: legacyCoverURL}
	}

	// v1/v2 documents predate the category field.
	if g.Category.Type == "" {
		g.Category.Type = CategoryOther
	}

	if g.Availability == "" {
		g.Availability = AvailabilityFor(g.Release.Status)
	}

	if g.Release.Status == StatusAnnouncedDate && g.Release.DatePrecision == "" {
		g.Release.DatePrecision = PrecisionDay
	}
	if g.Release.Confidence == "" {
		g.Release.Confidence = ConfidenceUnknown
	}
}

func splitFieldReason(s string) (field, reason string) {
	for i := 0; i < len(s); i++ {
		if s[i] == ':' {
			return s[:i], trimLeftSpace(s[i+1:])
		}
	}
	return s, ""
}

func trimLeftSpace(s string) string {
	for len(s) > 0 && s[0] == ' ' {
		s = s[1:]
	}
	return s
}
