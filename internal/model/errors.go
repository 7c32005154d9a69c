package model

import (
	"errors"
	"fmt"
)

// ErrSchema is the sentinel all schema validation errors wrap.
var ErrSchema = errors.New("schema error")

// SchemaError reports a game record whose fields do not match its release
// status tag. The offending item is dropped from the parsed document and
// the error kept as a diagnostic; the rest of the document still loads.
type SchemaError struct {
	ItemID string // game id, or "" when the id itself is missing
	Index  int    // position in the document's games array
	Status Status // the record's claimed status, if any
	Field  string // the missing or invalid field
	Reason string
}

func (e *SchemaError) Error() string {
	id := e.ItemID
	if id == "" {
		id = fmt.Sprintf("games[%d]", e.Index)
	}
	if e.Status != "" {
		return fmt.Sprintf("schema error: %s: status %q: field %q: %s", id, e.Status, e.Field, e.Reason)
	}
	return fmt.Sprintf("schema error: %s: field %q: %s", id, e.Field, e.Reason)
}

func (e *SchemaError) Unwrap() error { return ErrSchema }
