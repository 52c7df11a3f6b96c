package itineraryplanner

import (
	"context"
	"errors"
	"reflect"
	"time"

	"github.com/travigo/transitmerge/pkg/ctdf"
	"github.com/travigo/transitmerge/pkg/dataaggregator"
	"github.com/travigo/transitmerge/pkg/dataaggregator/query"
	"github.com/travigo/transitmerge/pkg/dataaggregator/source"
)

const defaultTaskTimeout = 10 * time.Second

var ErrNoModes = errors.New("at least one of train or bus must be requested")

type Source struct {
	// Aggregator answers the station, train and bus lookups the planner fans out
	Aggregator *dataaggregator.Aggregator

	// Cache is optional
	Cache dataaggregator.ResultCache

	// TaskTimeout bounds every individual upstream call
	TaskTimeout time.Duration
}

func (s Source) GetName() string {
	return "Itinerary Planner"
}

func (s Source) Supports() []reflect.Type {
	return []reflect.Type{
		reflect.TypeOf([]*ctdf.AggregatedItinerary{}),
	}
}

func (s Source) Lookup(ctx context.Context, q any) (interface{}, error) {
	switch q := q.(type) {
	case query.ItineraryPlan:
		return s.Plan(ctx, q)
	default:
		return nil, source.UnsupportedSourceError
	}
}

func (s Source) taskTimeout() time.Duration {
	if s.TaskTimeout <= 0 {
		return defaultTaskTimeout
	}

	return s.TaskTimeout
}
