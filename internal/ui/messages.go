// Package ui provides the Bubble Tea TUI for gamewatch.
package ui

import (
	"time"

	"github.com/abelbrown/gamewatch/internal/model"
)

// DocumentLoaded is sent when a games document is ready, from the network
// or from the cache.
type DocumentLoaded struct {
	Doc       *model.Document
	Diags     []*model.SchemaError
	FromCache bool      // true when this is the cached fallback
	FetchedAt time.Time // when the document was fetched
	Err       error
}

// CountdownTick advances the clock all countdowns are computed against.
// The timestamp rides on the message so every derivation in a frame sees
// the same "now".
type CountdownTick struct {
	Now time.Time
}

// RefreshTick triggers a periodic background re-fetch of the document.
type RefreshTick struct{}
