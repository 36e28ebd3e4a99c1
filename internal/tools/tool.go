package tools

import "context"

// Lookup is an enrichment adapter: it formats a query, calls one
// external provider, and returns display text. Provider outages,
// missing credentials, and malformed responses all come back as fixed
// human-readable placeholder strings; a Lookup never returns an error
// and must never panic, so enrichment can never abort plan creation.
type Lookup interface {
	Name() string
	Lookup(ctx context.Context, query string) string
}
