// Package model provides the data layer for gamewatch.
//
// The model is a read-only snapshot: a Document of tracked games is parsed
// from JSON in one shot and never mutated afterwards. The only thing the
// rest of the application does with it is derive countdowns and sort keys
// as the clock advances.
//
// Release is a tagged union discriminated by Status. Exactly one variant is
// active per game, and ParseDocument guarantees that every field the active
// variant requires is present and well formed. Code that dispatches on
// Status (the countdown resolver, the sort engine) switches over the full
// StatusValues list so a new status can't be added without updating every
// consumer.
package model

import "fmt"

// Status classifies how a game's timing is known.
type Status string

const (
	StatusTBA             Status = "tba"
	StatusAnnouncedDate   Status = "announced_date"
	StatusAnnouncedWindow Status = "announced_window"
	StatusRecurringDaily  Status = "recurring_daily"
	StatusRecurringWeekly Status = "recurring_weekly"
	StatusReleased        Status = "released"
	StatusCancelled       Status = "cancelled"
	StatusDelayed         Status = "delayed"
)

// StatusValues lists every valid release status. Exhaustive-dispatch tests
// range over this list.
var StatusValues = []Status{
	StatusTBA,
	StatusAnnouncedDate,
	StatusAnnouncedWindow,
	StatusRecurringDaily,
	StatusRecurringWeekly,
	StatusReleased,
	StatusCancelled,
	StatusDelayed,
}

// Valid reports whether s is a known release status.
func (s Status) Valid() bool {
	for _, v := range StatusValues {
		if s == v {
			return true
		}
	}
	return false
}

// DatePrecision qualifies how precise a calendar date or window is.
type DatePrecision string

const (
	PrecisionDay     DatePrecision = "day"
	PrecisionMonth   DatePrecision = "month"
	PrecisionQuarter DatePrecision = "quarter"
	PrecisionYear    DatePrecision = "year"
)

// Confidence grades how solid a timing assertion is. Attribution only -
// timing code never reads it.
type Confidence string

const (
	ConfidenceConfirmed Confidence = "confirmed"
	ConfidenceLikely    Confidence = "likely"
	ConfidenceRumor     Confidence = "rumor"
	ConfidenceUnknown   Confidence = "unknown"
)

// Window is an announced release window without an exact instant, e.g.
// "2026", "2026-Q4" or "Spring 2026". At least one field is set.
type Window struct {
	Year    int    `json:"year,omitempty"`
	Quarter int    `json:"quarter,omitempty"` // 1..4
	Month   int    `json:"month,omitempty"`   // 1..12
	Label   string `json:"label,omitempty"`
}

// PreviousDate records what a delayed release used to be scheduled for.
type PreviousDate struct {
	DateISO     string `json:"dateISO,omitempty"`
	WindowLabel string `json:"windowLabel,omitempty"`
}

// Release describes when a game's next meaningful event happens. The shape
// is fully determined by Status:
//
//	tba              - nothing else required
//	announced_date   - DateISO (YYYY-MM-DD), optional DatePrecision
//	announced_window - Window with at least one field
//	recurring_daily  - TimeUTC ("HH:MM", UTC)
//	recurring_weekly - DayOfWeekUTC (0=Sunday..6=Saturday) plus TimeUTC
//	released         - DateISO, optional ReleasedAt timestamp
//	cancelled        - optional DateISO and Reason
//	delayed          - optional Previous date/window and Note
//
// IsOfficial, Confidence and Sources are attribution metadata and must not
// influence countdown or sort computation.
type Release struct {
	Status Status `json:"status"`

	DateISO       string        `json:"dateISO,omitempty"`
	DatePrecision DatePrecision `json:"datePrecision,omitempty"`
	Window        *Window       `json:"window,omitempty"`
	TimeUTC       string        `json:"timeUTC,omitempty"`

	// DayOfWeekUTC is a pointer so an absent field is distinguishable from
	// Sunday (0); validation requires it for recurring_weekly.
	DayOfWeekUTC *int `json:"dayOfWeekUTC,omitempty"`
	ReleasedAt    string        `json:"releasedAt,omitempty"`
	Reason        string        `json:"reason,omitempty"`
	Previous      *PreviousDate `json:"previous,omitempty"`
	Note          string        `json:"note,omitempty"`

	IsOfficial bool       `json:"isOfficial"`
	Confidence Confidence `json:"confidence,omitempty"`
	UpdatedAt  string     `json:"updatedAt,omitempty"`
	Sources    []Source   `json:"sources,omitempty"`
}

// MetaLabel is the one-line human description of a release used as a row
// subtitle, e.g. "Release: 2026-03-27" or "Resets daily at 09:00 UTC".
func (r Release) MetaLabel() string {
	switch r.Status {
	case StatusTBA:
		return "Release: TBA"
	case StatusAnnouncedDate:
		return "Release: " + r.DateISO
	case StatusAnnouncedWindow:
		if r.Window != nil && r.Window.Label != "" {
			return "Release window: " + r.Window.Label
		}
		return "Release window announced"
	case StatusRecurringDaily:
		return "Resets daily at " + r.TimeUTC + " UTC"
	case StatusRecurringWeekly:
		day := "?"
		if r.DayOfWeekUTC != nil {
			day = weekdayName(*r.DayOfWeekUTC)
		}
		return fmt.Sprintf("Resets %s at %s UTC", day, r.TimeUTC)
	case StatusReleased:
		return "Released: " + r.DateISO
	case StatusCancelled:
		return "Cancelled"
	case StatusDelayed:
		if r.Previous != nil && r.Previous.DateISO != "" {
			return "Delayed (was " + r.Previous.DateISO + ")"
		}
		if r.Previous != nil && r.Previous.WindowLabel != "" {
			return "Delayed (was " + r.Previous.WindowLabel + ")"
		}
		return "Delayed"
	}
	return "Release: unknown"
}

var weekdayNames = [7]string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

func weekdayName(dow int) string {
	if dow < 0 || dow > 6 {
		return "?"
	}
	return weekdayNames[dow]
}
