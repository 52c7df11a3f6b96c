package dataaggregator

import (
	"context"

	"github.com/travigo/transitmerge/pkg/ctdf"
)

// ResultCache stores finished plans under a caller built key. Implementations own the expiry.
type ResultCache interface {
	Get(ctx context.Context, key string) ([]*ctdf.AggregatedItinerary, bool)
	Set(ctx context.Context, key string, itineraries []*ctdf.AggregatedItinerary) error
}
