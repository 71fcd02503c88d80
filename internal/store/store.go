// Package store is the boundary to the external persisted registry. The
// store pre-exists, owns its own schema, and exposes exactly two
// capabilities to this system: exact-match row lookups and a small set of
// pre-registered remote procedures.
package store

import (
	"context"
	"encoding/json"
)

// Store is the narrow surface the agents depend on. Rows come back with no
// schema enforcement; callers must treat missing fields as absent.
type Store interface {
	// SelectEq returns the rows of table where every filter column equals
	// its value, projecting only the requested columns.
	SelectEq(ctx context.Context, table, columns string, filters map[string]string) ([]map[string]any, error)

	// CallRPC invokes one pre-registered stored procedure with named
	// parameters and returns its raw JSON payload.
	CallRPC(ctx context.Context, fn string, params any) (json.RawMessage, error)
}
