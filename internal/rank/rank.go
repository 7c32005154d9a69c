// Package rank provides pure sort and filter functions for games.
// All functions are simple: []Game in, []Game out. No side effects. The
// caller composes them: filter first, then sort.
package rank

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/abelbrown/gamewatch/internal/model"
	"github.com/abelbrown/gamewatch/internal/timeutil"
)

// SortKey selects the ordering of the game list.
type SortKey string

const (
	SortAZ         SortKey = "az"
	SortSoonest    SortKey = "soonest"
	SortLatest     SortKey = "latest"
	SortDailyFirst SortKey = "daily_first"
)

// NoEvent is the sort value for games with nothing to count down to. It is
// larger than any real timestamp, so such games always sort last under
// "soonest".
const NoEvent = int64(math.MaxInt64)

// All passes every value for an enum filter field.
const All = "all"

// Options selects which games pass Filter. Zero-value string fields and
// "all" both mean "no restriction".
type Options struct {
	Query        string // case-insensitive substring over name, title, tags
	Status       string // exact release status, or "all"
	Tag          string // exact tag, or "all"
	Category     string // category type, or "all"
	Platform     string // platform, or "all"
	HideReleased bool   // drop released and cancelled entries
	AsOf         time.Time
}

// SortValue derives the comparable event instant for a game, in
// milliseconds since the Unix epoch. Games without a concrete upcoming
// instant get NoEvent and sort last.
//
// The boundary semantics match the countdown resolver exactly: an
// announced date maps to local midnight in now's location, and a recurring
// reset whose occurrence equals now rolls forward, never backward.
func SortValue(g model.Game, now time.Time) int64 {
	r := g.Release
	switch r.Status {
	case model.StatusAnnouncedDate:
		target, err := time.ParseInLocation("2006-01-02", r.DateISO, now.Location())
		if err != nil {
			return NoEvent
		}
		return target.UnixMilli()

	case model.StatusRecurringDaily:
		d, err := timeutil.UntilNextUTCTime(r.TimeUTC, now)
		if err != nil {
			return NoEvent
		}
		return now.Add(d).UnixMilli()

	case model.StatusRecurringWeekly:
		if r.DayOfWeekUTC == nil {
			return NoEvent
		}
		d, err := timeutil.UntilNextUTCWeekday(*r.DayOfWeekUTC, r.TimeUTC, now)
		if err != nil {
			return NoEvent
		}
		return now.Add(d).UnixMilli()

	case model.StatusAnnouncedWindow:
		if t, ok := windowStart(r.Window, now.Location()); ok {
			return t.UnixMilli()
		}
		return NoEvent

	case model.StatusTBA, model.StatusReleased, model.StatusCancelled, model.StatusDelayed:
		return NoEvent
	}
	return NoEvent
}

// windowStart maps an announced window to its first instant when the window
// carries structured fields. A label-only window has no derivable instant.
func windowStart(w *model.Window, loc *time.Location) (time.Time, bool) {
	if w == nil || w.Year == 0 {
		return time.Time{}, false
	}
	month := time.January
	switch {
	case w.Month >= 1 && w.Month <= 12:
		month = time.Month(w.Month)
	case w.Quarter >= 1 && w.Quarter <= 4:
		month = time.Month((w.Quarter-1)*3 + 1)
	}
	return time.Date(w.Year, month, 1, 0, 0, 0, 0, loc), true
}

// Filter returns the games that pass every restriction in opts. Order is
// preserved. An empty result is a valid result, never an error.
func Filter(games []model.Game, opts Options) []model.Game {
	result := make([]model.Game, 0, len(games))
	query := strings.ToLower(strings.TrimSpace(opts.Query))

	for _, g := range games {
		if query != "" && !matchesQuery(g, query) {
			continue
		}
		if opts.Status != "" && opts.Status != All && string(g.Release.Status) != opts.Status {
			continue
		}
		if opts.Tag != "" && opts.Tag != All && !g.HasTag(opts.Tag) {
			continue
		}
		if opts.Category != "" && opts.Category != All && string(g.Category.Type) != opts.Category {
			continue
		}
		if opts.Platform != "" && opts.Platform != All && !hasPlatform(g, opts.Platform) {
			continue
		}
		if opts.HideReleased && effectivelyOut(g, opts.AsOf) {
			continue
		}
		result = append(result, g)
	}

	return result
}

func matchesQuery(g model.Game, query string) bool {
	if strings.Contains(strings.ToLower(g.Name), query) {
		return true
	}
	if g.Title != "" && strings.Contains(strings.ToLower(g.Title), query) {
		return true
	}
	for _, tag := range g.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

// effectivelyOut reports whether a game counts as already released for the
// hide-released toggle: released/cancelled by status, or an announced date
// already past the document's asOf instant (when one is known).
func effectivelyOut(g model.Game, asOf time.Time) bool {
	switch g.Release.Status {
	case model.StatusReleased, model.StatusCancelled:
		return true
	case model.StatusAnnouncedDate:
		if asOf.IsZero() {
			return false
		}
		target, err := time.ParseInLocation("2006-01-02", g.Release.DateISO, asOf.Location())
		if err != nil {
			return false
		}
		return !target.After(asOf)
	}
	return false
}

func hasPlatform(g model.Game, platform string) bool {
	for _, p := range g.Platforms {
		if string(p) == platform {
			return true
		}
	}
	return false
}

// Sort orders games by the given key. The result is a new slice; the input
// is not modified. Ties break by name, then by ID, so the order is total
// and deterministic regardless of input order.
func Sort(games []model.Game, key SortKey, now time.Time) []model.Game {
	result := make([]model.Game, len(games))
	copy(result, games)

	byName := func(a, b model.Game) bool {
		an, bn := strings.ToLower(a.Name), strings.ToLower(b.Name)
		if an != bn {
			return an < bn
		}
		return a.ID < b.ID
	}

	switch key {
	case SortAZ:
		sort.SliceStable(result, func(i, j int) bool {
			return byName(result[i], result[j])
		})

	case SortSoonest, SortLatest:
		sort.SliceStable(result, func(i, j int) bool {
			vi := SortValue(result[i], now)
			vj := SortValue(result[j], now)
			if vi != vj {
				if key == SortLatest {
					// NoEvent still sorts last under "latest".
					if vi == NoEvent || vj == NoEvent {
						return vj == NoEvent
					}
					return vi > vj
				}
				return vi < vj
			}
			return byName(result[i], result[j])
		})

	case SortDailyFirst:
		sort.SliceStable(result, func(i, j int) bool {
			di := result[i].Release.Status == model.StatusRecurringDaily
			dj := result[j].Release.Status == model.StatusRecurringDaily
			if di != dj {
				return di
			}
			return byName(result[i], result[j])
		})

	default:
		sort.SliceStable(result, func(i, j int) bool {
			return byName(result[i], result[j])
		})
	}

	return result
}

// Tags collects the distinct tags across games, sorted, for the filter UI.
func Tags(games []model.Game) []string {
	seen := make(map[string]bool)
	var tags []string
	for _, g := range games {
		for _, t := range g.Tags {
			if t != "" && !seen[t] {
				seen[t] = true
				tags = append(tags, t)
			}
		}
	}
	sort.Strings(tags)
	return tags
}
