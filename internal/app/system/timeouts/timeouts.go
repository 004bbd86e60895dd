// Package timeouts bounds the dashboard's MongoDB work.
package timeouts

import (
	"context"
	"time"
)

// Lookup bounds single-document reads: the per-request session user
// fetch and login credential checks.
const Lookup = 3 * time.Second

// Panel bounds one panel's reporting-view queries. The overview reads
// the monthly view in full, so this is looser than Lookup.
const Panel = 10 * time.Second

// ForPanel derives a panel-query context from the request context.
func ForPanel(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, Panel)
}

// ForLookup derives a single-document read context.
func ForLookup(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, Lookup)
}
