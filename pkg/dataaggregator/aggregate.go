package dataaggregator

import (
	"sort"
	"strings"

	"github.com/expr-lang/expr/vm"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"github.com/travigo/transitmerge/pkg/ctdf"
	"github.com/travigo/transitmerge/pkg/traveltime"
)

const DefaultLimit = 10

// Batch is the outcome of one upstream call. Index is the order the call was issued in and decides which duplicate
// train wins, completion order is never used.
type Batch struct {
	Index int
	Mode  ctdf.TransportMode
	Query string
	Legs  []*ctdf.TransitLeg
	Err   error
}

type Options struct {
	Limit  int
	Filter *vm.Program
}

// AggregationError is returned when every upstream call failed
type AggregationError struct {
	Failures []error
}

func (e *AggregationError) Error() string {
	messages := make([]string, 0, len(e.Failures))
	for _, failure := range e.Failures {
		messages = append(messages, failure.Error())
	}

	return strings.Join(messages, "; ")
}

func (e *AggregationError) Unwrap() []error {
	return e.Failures
}

// Aggregate merges the batches into one ranked list of single leg itineraries.
// Train legs are deduplicated by train number with the earliest batch winning, bus legs are kept as they are.
// The input legs are copied and never modified.
func Aggregate(batches []Batch, opts Options) ([]*ctdf.AggregatedItinerary, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	ordered := make([]Batch, len(batches))
	copy(ordered, batches)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Index < ordered[j].Index
	})

	var failures []error
	for _, batch := range ordered {
		if batch.Err != nil {
			failures = append(failures, batch.Err)
		}
	}
	if len(ordered) > 0 && len(failures) == len(ordered) {
		return nil, &AggregationError{Failures: failures}
	}

	seenTrains := map[string]bool{}
	var legs []*ctdf.TransitLeg

	for _, batch := range ordered {
		if batch.Err != nil {
			continue
		}

		for _, leg := range batch.Legs {
			if leg == nil {
				continue
			}

			if leg.Mode == ctdf.TransportModeTrain {
				if seenTrains[leg.DedupeKey()] {
					continue
				}
				seenTrains[leg.DedupeKey()] = true
			}

			var legCopy ctdf.TransitLeg
			if err := copier.CopyWithOption(&legCopy, leg, copier.Option{DeepCopy: true}); err != nil {
				log.Error().Err(err).Str("identifier", leg.Identifier).Msg("Failed to copy leg")
				continue
			}

			if legCopy.DurationMinutes == 0 {
				legCopy.DurationMinutes = traveltime.ToMinutes(legCopy.TravelTime)
			}

			if opts.Filter != nil && !MatchesFilter(opts.Filter, &legCopy) {
				continue
			}

			legs = append(legs, &legCopy)
		}
	}

	sort.SliceStable(legs, func(i, j int) bool {
		return legs[i].DurationMinutes < legs[j].DurationMinutes
	})

	if len(legs) > limit {
		legs = legs[:limit]
	}

	itineraries := make([]*ctdf.AggregatedItinerary, 0, len(legs))
	for _, leg := range legs {
		itineraries = append(itineraries, ctdf.NewSingleLegItinerary(leg))
	}

	return itineraries, nil
}

// FailedBatches reports how many batches carry an error
func FailedBatches(batches []Batch) int {
	failed := 0
	for _, batch := range batches {
		if batch.Err != nil {
			failed++
		}
	}

	return failed
}
