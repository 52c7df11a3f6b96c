package itineraryplanner

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
	"github.com/travigo/transitmerge/pkg/ctdf"
	"github.com/travigo/transitmerge/pkg/dataaggregator"
	"github.com/travigo/transitmerge/pkg/dataaggregator/query"
	"github.com/travigo/transitmerge/pkg/metrics"
)

var stationCode = regexp.MustCompile(`^[A-Z]{2,5}$`)

// plannedCall is one upstream call, Index is its issue order
type plannedCall struct {
	Index int
	Mode  ctdf.TransportMode
	Query any
	Label string
}

func (s Source) Plan(ctx context.Context, q query.ItineraryPlan) ([]*ctdf.AggregatedItinerary, error) {
	if !q.IncludeTrains && !q.IncludeBuses {
		return nil, ErrNoModes
	}

	started := time.Now()
	cacheKey := q.CacheKey(started)

	if s.Cache != nil {
		if cached, ok := s.Cache.Get(ctx, cacheKey); ok {
			log.Debug().Str("key", cacheKey).Msg("Serving plan from cache")
			return cached, nil
		}
	}

	var batches []dataaggregator.Batch
	var calls []plannedCall
	index := 0

	if q.IncludeTrains {
		origins, originErr := s.resolveStations(ctx, q.Origin)
		destinations, destinationErr := s.resolveStations(ctx, q.Destination)

		if err := errors.Join(originErr, destinationErr); err != nil {
			batches = append(batches, dataaggregator.Batch{
				Index: index,
				Mode:  ctdf.TransportModeTrain,
				Query: "station resolution",
				Err:   err,
			})
			index++
		} else {
			for _, origin := range origins {
				for _, destination := range destinations {
					if origin == destination {
						continue
					}

					calls = append(calls, plannedCall{
						Index: index,
						Mode:  ctdf.TransportModeTrain,
						Query: query.TrainsBetweenStations{FromStationCode: origin, ToStationCode: destination, Date: q.Date},
						Label: origin + "-" + destination,
					})
					index++
				}
			}
		}
	}

	if q.IncludeBuses {
		calls = append(calls, plannedCall{
			Index: index,
			Mode:  ctdf.TransportModeBus,
			Query: query.BusesBetweenCities{FromCity: q.Origin, ToCity: q.Destination, Date: q.BusDate(started)},
			Label: q.Origin + "-" + q.Destination,
		})
	}

	batches = append(batches, s.runCalls(ctx, calls)...)
	sort.SliceStable(batches, func(i, j int) bool {
		return batches[i].Index < batches[j].Index
	})

	for _, batch := range batches {
		if batch.Err != nil {
			log.Warn().Err(batch.Err).Str("mode", string(batch.Mode)).Str("query", batch.Query).Msg("Upstream call failed")
		}
	}

	itineraries, err := dataaggregator.Aggregate(batches, dataaggregator.Options{
		Limit:  q.Limit,
		Filter: q.Filter,
	})
	metrics.AggregationDuration.Observe(time.Since(started).Seconds())

	if err != nil {
		log.Error().Err(err).Str("origin", q.Origin).Str("destination", q.Destination).Msg("Every upstream call failed")
		return nil, err
	}

	failed := dataaggregator.FailedBatches(batches)
	if failed > 0 {
		metrics.PartialFailures.Inc()
	}
	metrics.ItinerariesReturned.Observe(float64(len(itineraries)))

	recordPlanEvent(q, batches, itineraries, time.Since(started))

	// a degraded plan is not cached so the next request retries the failed calls
	if s.Cache != nil && failed == 0 {
		if err := s.Cache.Set(ctx, cacheKey, itineraries); err != nil {
			log.Warn().Err(err).Str("key", cacheKey).Msg("Failed to cache plan")
		}
	}

	log.Info().
		Str("origin", q.Origin).
		Str("destination", q.Destination).
		Int("calls", len(batches)).
		Int("failed", failed).
		Int("itineraries", len(itineraries)).
		Str("duration", time.Since(started).String()).
		Msg("Planned itineraries")

	return itineraries, nil
}

// runCalls issues every call concurrently. Each call gets its own timeout and a failure only empties its own batch.
func (s Source) runCalls(ctx context.Context, calls []plannedCall) []dataaggregator.Batch {
	if len(calls) == 0 {
		return nil
	}

	p := pool.NewWithResults[dataaggregator.Batch]().WithMaxGoroutines(len(calls))

	for _, call := range calls {
		call := call
		p.Go(func() dataaggregator.Batch {
			callCtx, cancel := context.WithTimeout(ctx, s.taskTimeout())
			defer cancel()

			legs, err := dataaggregator.LookupFrom[[]*ctdf.TransitLeg](callCtx, s.Aggregator, call.Query)
			if err != nil {
				legs = nil
				if errors.Is(err, context.DeadlineExceeded) || errors.Is(callCtx.Err(), context.DeadlineExceeded) {
					err = ctdf.NewTransportError(fmt.Sprintf("%s %s timed out", call.Mode, call.Label), err)
				}
			}

			return dataaggregator.Batch{
				Index: call.Index,
				Mode:  call.Mode,
				Query: call.Label,
				Legs:  legs,
				Err:   err,
			}
		})
	}

	return p.Wait()
}

// resolveStations returns up to query.DefaultStationCandidates station codes for a place name
func (s Source) resolveStations(ctx context.Context, place string) ([]string, error) {
	if stationCode.MatchString(place) {
		return []string{place}, nil
	}

	resolveCtx, cancel := context.WithTimeout(ctx, s.taskTimeout())
	defer cancel()

	stations, err := dataaggregator.LookupFrom[[]*ctdf.Station](resolveCtx, s.Aggregator, query.Station{
		Query: place,
		Limit: query.DefaultStationCandidates,
	})
	if errors.Is(err, dataaggregator.ErrNoSource) {
		return nil, &ctdf.UpstreamError{
			Kind:    ctdf.ErrorKindUpstreamSemantic,
			Message: fmt.Sprintf("Station directory unavailable, use a station code instead of %s", place),
			Err:     err,
		}
	}
	if err != nil {
		return nil, err
	}

	var codes []string
	for _, station := range stations {
		if len(codes) == query.DefaultStationCandidates {
			break
		}
		codes = append(codes, station.Code)
	}

	if len(codes) == 0 {
		return nil, &ctdf.UpstreamError{
			Kind:    ctdf.ErrorKindUpstreamSemantic,
			Message: fmt.Sprintf("No station found for %s", place),
		}
	}

	return codes, nil
}
