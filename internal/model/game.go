package model

import "time"

// CategoryType is the high-level classification for a tracked entry.
type CategoryType string

const (
	CategoryFullGame   CategoryType = "full_game"
	CategoryDLC        CategoryType = "dlc"
	CategorySeason     CategoryType = "season"
	CategoryEvent      CategoryType = "event"
	CategoryUpdate     CategoryType = "update"
	CategoryStoreReset CategoryType = "store_reset"
	CategoryOther      CategoryType = "other"
)

// Category classifies a tracked entry beyond its release status.
type Category struct {
	Type      CategoryType `json:"type"`
	Subtype   string       `json:"subtype,omitempty"`
	Franchise string       `json:"franchise,omitempty"`
	Label     string       `json:"label,omitempty"`
}

// Platform identifies where a game ships.
type Platform string

const (
	PlatformPC         Platform = "pc"
	PlatformPS5        Platform = "ps5"
	PlatformPS4        Platform = "ps4"
	PlatformXboxSeries Platform = "xbox_series"
	PlatformXboxOne    Platform = "xbox_one"
	PlatformSwitch     Platform = "switch"
	PlatformSwitch2    Platform = "switch_2"
	PlatformIOS        Platform = "ios"
	PlatformAndroid    Platform = "android"
	PlatformVR         Platform = "vr"
	PlatformOther      Platform = "other"
)

// SourceReliability grades an attribution source.
type SourceReliability string

const (
	ReliabilityHigh    SourceReliability = "high"
	ReliabilityMedium  SourceReliability = "medium"
	ReliabilityLow     SourceReliability = "low"
	ReliabilityUnknown SourceReliability = "unknown"
)

// Source attributes where a claim about a game came from. Official sources
// are controlled by the developer, publisher or platform owner.
type Source struct {
	Type         string            `json:"type"`
	IsOfficial   bool              `json:"isOfficial"`
	Name         string            `json:"name"`
	URL          string            `json:"url,omitempty"`
	RetrievedAt  string            `json:"retrievedAt,omitempty"`
	Claim        string            `json:"claim,omitempty"`
	AuthorHandle string            `json:"authorHandle,omitempty"`
	Excerpt      string            `json:"excerpt,omitempty"`
	Reliability  SourceReliability `json:"reliability,omitempty"`
}

// ImageAsset is a cover image, either a remote URL or an embedded payload.
type ImageAsset struct {
	Kind   string `json:"kind"` // "url" or "base64"
	URL    string `json:"url,omitempty"`
	MIME   string `json:"mime,omitempty"`
	Data   string `json:"data,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// TrailerLink points at a trailer video.
type TrailerLink struct {
	URL      string `json:"url"`
	Label    string `json:"label,omitempty"`
	Platform string `json:"platform,omitempty"`
}

// Media bundles cover art and trailers.
type Media struct {
	Cover    *ImageAsset   `json:"cover,omitempty"`
	Trailers []TrailerLink `json:"trailers,omitempty"`
}

// StudioLocation is where a studio is based.
type StudioLocation struct {
	City    string `json:"city,omitempty"`
	Region  string `json:"region,omitempty"`
	Country string `json:"country,omitempty"`
	HQ      bool   `json:"hq,omitempty"`
}

// Studio is developer/publisher metadata. Name may be empty for rumors.
type Studio struct {
	Name          string          `json:"name,omitempty"`
	Type          string          `json:"type,omitempty"` // developer, publisher, developer_publisher, unknown
	Location      *StudioLocation `json:"location,omitempty"`
	Website       string          `json:"website,omitempty"`
	Description   string          `json:"description,omitempty"`
	ParentCompany string          `json:"parentCompany,omitempty"`
}

// DLCDetails carries DLC-specific fields when the entry is downloadable
// content rather than a full game.
type DLCDetails struct {
	Name             string     `json:"name"`
	Kind             string     `json:"kind,omitempty"`
	RequiresBaseGame bool       `json:"requiresBaseGame,omitempty"`
	Platforms        []Platform `json:"platforms,omitempty"`
	IncludedWith     []string   `json:"includedWith,omitempty"`
	Description      string     `json:"description,omitempty"`
}

// SeasonDetails names a live-service season (number, chapter, theme).
type SeasonDetails struct {
	Name       string `json:"name,omitempty"`
	Number     int    `json:"number,omitempty"`
	Chapter    int    `json:"chapter,omitempty"`
	BattlePass bool   `json:"battlePass,omitempty"`
	Theme      string `json:"theme,omitempty"`
}

// SeasonWindowCurrent holds the boundaries of the live season, for
// "time left in season" countdowns distinct from "time until next item".
// Start/End are zero when unknown.
type SeasonWindowCurrent struct {
	Label      string     `json:"label,omitempty"`
	Start      time.Time  `json:"-"`
	End        time.Time  `json:"-"`
	StartISO   string     `json:"startISO,omitempty"`
	EndISO     string     `json:"endISO,omitempty"`
	Precision  string     `json:"precision,omitempty"` // minute, day, unknown
	IsOfficial bool       `json:"isOfficial"`
	Confidence string     `json:"confidence,omitempty"` // confirmed, likely, estimate, unknown
	SourceKind string     `json:"sourceKind,omitempty"` // official, press, community, computed, unknown
	Notes      string     `json:"notes,omitempty"`
	Sources    []Source   `json:"sources,omitempty"`
}

// SeasonWindow wraps the current season boundaries.
type SeasonWindow struct {
	Current SeasonWindowCurrent `json:"current"`
}

// PopularityTier is a coarse popularity bucket used as a sorting hint.
type PopularityTier string

const (
	TierBlockbuster PopularityTier = "blockbuster"
	TierLiveService PopularityTier = "very_popular_live_service"
	TierPopular     PopularityTier = "popular"
	TierNiche       PopularityTier = "niche"
	TierUnknown     PopularityTier = "unknown_or_rumor"
)

// Availability is a single-field upcoming/released classification computed
// from the release status for cheap filtering.
type Availability string

const (
	AvailabilityUpcoming  Availability = "upcoming"
	AvailabilityReleased  Availability = "released"
	AvailabilityCancelled Availability = "cancelled"
	AvailabilityUnknown   Availability = "unknown"
)

// AvailabilityFor derives the availability bucket from a release status.
func AvailabilityFor(s Status) Availability {
	switch s {
	case StatusReleased:
		return AvailabilityReleased
	case StatusCancelled:
		return AvailabilityCancelled
	case StatusAnnouncedDate, StatusAnnouncedWindow, StatusRecurringDaily, StatusRecurringWeekly, StatusDelayed:
		return AvailabilityUpcoming
	case StatusTBA:
		return AvailabilityUnknown
	}
	return AvailabilityUnknown
}

// Game is one tracked entry: a full release, a DLC, a season, a daily store
// reset. Immutable once parsed.
type Game struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Title string   `json:"title,omitempty"`
	Tags  []string `json:"tags,omitempty"`

	Category  Category   `json:"category"`
	Platforms []Platform `json:"platforms,omitempty"`
	Media     *Media     `json:"media,omitempty"`

	Release      Release      `json:"release"`
	Availability Availability `json:"availability,omitempty"`

	Sources []Source       `json:"sources,omitempty"`
	Studio  *Studio        `json:"studio,omitempty"`
	DLC     *DLCDetails    `json:"dlc,omitempty"`
	Season  *SeasonDetails `json:"season,omitempty"`

	SeasonWindow *SeasonWindow `json:"seasonWindow,omitempty"`

	PopularityTier PopularityTier `json:"popularityTier,omitempty"`
	PopularityRank int            `json:"popularityRank,omitempty"`
}

// HasTag reports whether the game carries the given tag (case-insensitive
// matching is the filter engine's job; this is an exact check).
func (g Game) HasTag(tag string) bool {
	for _, t := range g.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Document is one fetched snapshot of tracked games.
type Document struct {
	GeneratedAt   time.Time `json:"-"`
	AsOf          time.Time `json:"-"`
	SchemaVersion string    `json:"schemaVersion,omitempty"`
	Games         []Game    `json:"games"`
}

// EffectiveAsOf is the instant used to decide released-vs-upcoming. It is
// the explicit AsOf when present, otherwise GeneratedAt.
func (d *Document) EffectiveAsOf() time.Time {
	if !d.AsOf.IsZero() {
		return d.AsOf
	}
	return d.GeneratedAt
}

// ByID finds a game by identifier. The second return is false when no game
// matches; absence is not an error.
func (d *Document) ByID(id string) (Game, bool) {
	for _, g := range d.Games {
		if g.ID == id {
			return g, true
		}
	}
	return Game{}, false
}
