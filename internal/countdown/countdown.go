// Package countdown resolves "time remaining" for tracked games.
//
// Everything here is a pure function of (game, now). The UI calls these on
// every 250ms tick, so results must be identical for identical inputs and
// computed without side effects or retained state.
//
// Timezone convention, preserved from the data's origin: an announced
// calendar date counts down to local midnight in now's location (a date-only
// release reads naturally to the viewer), while recurring daily/weekly
// resets count down in UTC (a store reset happens at the same instant for
// everyone). The two deliberately differ.
package countdown

import (
	"time"

	"github.com/abelbrown/gamewatch/internal/model"
	"github.com/abelbrown/gamewatch/internal/timeutil"
)

// Remaining returns the duration from now until the game's next meaningful
// event. ok is false when the release status has nothing to count down to
// (tba, announced_window, released, cancelled, delayed).
//
// For announced_date the result may be negative once the date has passed;
// the caller decides whether to clamp or hide it. Recurring results are
// always positive: daily in (0, 24h], weekly in (0, 7d].
func Remaining(g model.Game, now time.Time) (time.Duration, bool) {
	r := g.Release
	switch r.Status {
	case model.StatusAnnouncedDate:
		target, err := time.ParseInLocation("2006-01-02", r.DateISO, now.Location())
		if err != nil {
			return 0, false
		}
		return target.Sub(now), true

	case model.StatusRecurringDaily:
		d, err := timeutil.UntilNextUTCTime(r.TimeUTC, now)
		if err != nil {
			return 0, false
		}
		return d, true

	case model.StatusRecurringWeekly:
		if r.DayOfWeekUTC == nil {
			return 0, false
		}
		d, err := timeutil.UntilNextUTCWeekday(*r.DayOfWeekUTC, r.TimeUTC, now)
		if err != nil {
			return 0, false
		}
		return d, true

	case model.StatusTBA, model.StatusAnnouncedWindow, model.StatusReleased,
		model.StatusCancelled, model.StatusDelayed:
		return 0, false
	}

	// Unreachable for validated input: ParseDocument rejects unknown tags.
	return 0, false
}

// SeasonRemaining returns the time left in the game's current season
// window. ok is false when the game has no season window or its end is
// unknown. A negative result means the season has already ended.
func SeasonRemaining(g model.Game, now time.Time) (time.Duration, bool) {
	if g.SeasonWindow == nil || g.SeasonWindow.Current.End.IsZero() {
		return 0, false
	}
	return g.SeasonWindow.Current.End.Sub(now), true
}

// SeasonProgress returns how far through the current season window now is,
// clamped to [0, 1]. ok is false unless both boundaries are known.
func SeasonProgress(g model.Game, now time.Time) (float64, bool) {
	if g.SeasonWindow == nil {
		return 0, false
	}
	cur := g.SeasonWindow.Current
	if cur.Start.IsZero() || cur.End.IsZero() || !cur.End.After(cur.Start) {
		return 0, false
	}
	frac := float64(now.Sub(cur.Start)) / float64(cur.End.Sub(cur.Start))
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	return frac, true
}
