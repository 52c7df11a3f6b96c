package itineraryplanner

import (
	"context"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/transitmerge/pkg/ctdf"
	"github.com/travigo/transitmerge/pkg/dataaggregator"
	"github.com/travigo/transitmerge/pkg/dataaggregator/query"
	"github.com/travigo/transitmerge/pkg/dataaggregator/source"
)

type fakeRail struct {
	// keyed by "FROM-TO"
	legs  map[string][]*ctdf.TransitLeg
	err   error
	delay map[string]time.Duration

	mutex sync.Mutex
	seen  []string
}

func (f *fakeRail) GetName() string { return "fake rail" }

func (f *fakeRail) Supports() []reflect.Type {
	return []reflect.Type{reflect.TypeOf([]*ctdf.TransitLeg{})}
}

func (f *fakeRail) Lookup(ctx context.Context, q any) (interface{}, error) {
	between, ok := q.(query.TrainsBetweenStations)
	if !ok {
		return nil, source.UnsupportedSourceError
	}

	key := between.FromStationCode + "-" + between.ToStationCode

	f.mutex.Lock()
	f.seen = append(f.seen, key)
	f.mutex.Unlock()

	if delay := f.delay[key]; delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if f.err != nil {
		return nil, f.err
	}

	return f.legs[key], nil
}

type fakeBus struct {
	legs []*ctdf.TransitLeg
	err  error
}

func (f fakeBus) GetName() string { return "fake bus" }

func (f fakeBus) Supports() []reflect.Type {
	return []reflect.Type{reflect.TypeOf([]*ctdf.TransitLeg{})}
}

func (f fakeBus) Lookup(ctx context.Context, q any) (interface{}, error) {
	if _, ok := q.(query.BusesBetweenCities); !ok {
		return nil, source.UnsupportedSourceError
	}
	if f.err != nil {
		return nil, f.err
	}

	return f.legs, nil
}

type fakeStations map[string][]*ctdf.Station

func (f fakeStations) GetName() string { return "fake stations" }

func (f fakeStations) Supports() []reflect.Type {
	return []reflect.Type{reflect.TypeOf([]*ctdf.Station{})}
}

func (f fakeStations) Lookup(ctx context.Context, q any) (interface{}, error) {
	return f[q.(query.Station).Query], nil
}

type memoryResultCache struct {
	values map[string][]*ctdf.AggregatedItinerary
}

func (m *memoryResultCache) Get(ctx context.Context, key string) ([]*ctdf.AggregatedItinerary, bool) {
	value, ok := m.values[key]
	return value, ok
}

func (m *memoryResultCache) Set(ctx context.Context, key string, itineraries []*ctdf.AggregatedItinerary) error {
	m.values[key] = itineraries
	return nil
}

func trainLeg(number string, minutes int, pair string) *ctdf.TransitLeg {
	return &ctdf.TransitLeg{Mode: ctdf.TransportModeTrain, Identifier: number, DurationMinutes: minutes, Source: pair}
}

func busLeg(key string, minutes int) *ctdf.TransitLeg {
	return &ctdf.TransitLeg{Mode: ctdf.TransportModeBus, Identifier: key, DurationMinutes: minutes}
}

var delhiMumbai = fakeStations{
	"Delhi":  {{Code: "NDLS"}, {Code: "NZM"}, {Code: "DLI"}},
	"Mumbai": {{Code: "MMCT"}, {Code: "CSMT"}},
}

func newPlanner(sources ...dataaggregator.DataSource) Source {
	aggregator := &dataaggregator.Aggregator{}
	for _, dataSource := range sources {
		aggregator.RegisterSource(dataSource)
	}

	return Source{Aggregator: aggregator, TaskTimeout: time.Second}
}

func TestPlanQueriesEveryStationPair(t *testing.T) {
	rail := &fakeRail{legs: map[string][]*ctdf.TransitLeg{
		"NDLS-MMCT": {trainLeg("12952", 940, "NDLS-MMCT")},
		"NZM-MMCT":  {trainLeg("12952", 900, "NZM-MMCT"), trainLeg("12954", 1000, "NZM-MMCT")},
		"NZM-CSMT":  {trainLeg("22222", 1100, "NZM-CSMT")},
	}}
	bus := fakeBus{legs: []*ctdf.TransitLeg{busLeg("B0", 1500), busLeg("B1", 1300)}}

	planner := newPlanner(delhiMumbai, rail, bus)

	itineraries, err := planner.Plan(context.Background(), query.ItineraryPlan{
		Origin:        "Delhi",
		Destination:   "Mumbai",
		IncludeTrains: true,
		IncludeBuses:  true,
	})

	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"NDLS-MMCT", "NDLS-CSMT", "NZM-MMCT", "NZM-CSMT"}, rail.seen)

	var identifiers []string
	for _, itinerary := range itineraries {
		identifiers = append(identifiers, itinerary.Legs[0].Identifier)
	}
	assert.Equal(t, []string{"12952", "12954", "22222", "B1", "B0"}, identifiers)

	// the first pair in query order wins the duplicate
	assert.Equal(t, "NDLS-MMCT", itineraries[0].Legs[0].Source)
}

func TestPlanUsesStationCodesDirectly(t *testing.T) {
	rail := &fakeRail{legs: map[string][]*ctdf.TransitLeg{
		"NDLS-MMCT": {trainLeg("12952", 940, "")},
	}}

	planner := newPlanner(rail)

	itineraries, err := planner.Plan(context.Background(), query.ItineraryPlan{
		Origin:        "NDLS",
		Destination:   "MMCT",
		IncludeTrains: true,
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"NDLS-MMCT"}, rail.seen)
	assert.Len(t, itineraries, 1)
}

func TestPlanPartialFailure(t *testing.T) {
	rail := &fakeRail{err: &ctdf.UpstreamError{Kind: ctdf.ErrorKindUpstreamSemantic, Message: "No direct trains found"}}
	bus := fakeBus{legs: []*ctdf.TransitLeg{busLeg("B0", 600), busLeg("B1", 300), busLeg("B2", 450)}}

	planner := newPlanner(delhiMumbai, rail, bus)

	itineraries, err := planner.Plan(context.Background(), query.ItineraryPlan{
		Origin:        "Delhi",
		Destination:   "Mumbai",
		IncludeTrains: true,
		IncludeBuses:  true,
	})

	require.NoError(t, err)
	require.Len(t, itineraries, 3)
	assert.Equal(t, 300, itineraries[0].RankKey)
	assert.Equal(t, 600, itineraries[2].RankKey)
}

func TestPlanUnresolvedStationStillRunsBus(t *testing.T) {
	rail := &fakeRail{}
	bus := fakeBus{legs: []*ctdf.TransitLeg{busLeg("B0", 600)}}

	planner := newPlanner(fakeStations{}, rail, bus)

	itineraries, err := planner.Plan(context.Background(), query.ItineraryPlan{
		Origin:        "Shimla",
		Destination:   "Manali",
		IncludeTrains: true,
		IncludeBuses:  true,
	})

	require.NoError(t, err)
	assert.Empty(t, rail.seen)
	assert.Len(t, itineraries, 1)
}

func TestPlanTotalFailure(t *testing.T) {
	rail := &fakeRail{err: &ctdf.UpstreamError{Kind: ctdf.ErrorKindUpstreamSemantic, Message: "No direct trains found"}}
	bus := fakeBus{err: ctdf.NewTransportError("bus returned status 503", nil)}

	planner := newPlanner(rail, bus)

	_, err := planner.Plan(context.Background(), query.ItineraryPlan{
		Origin:        "NDLS",
		Destination:   "MMCT",
		IncludeTrains: true,
		IncludeBuses:  true,
	})

	var aggregationError *dataaggregator.AggregationError
	require.ErrorAs(t, err, &aggregationError)
	assert.Equal(t, "No direct trains found; bus returned status 503", err.Error())
}

func TestPlanSlowCallTimesOutAlone(t *testing.T) {
	rail := &fakeRail{
		legs: map[string][]*ctdf.TransitLeg{
			"NDLS-MMCT": {trainLeg("12952", 940, "")},
			"NZM-MMCT":  {trainLeg("12954", 1000, "")},
		},
		delay: map[string]time.Duration{"NZM-MMCT": 5 * time.Second},
	}

	planner := newPlanner(fakeStations{
		"Delhi":  {{Code: "NDLS"}, {Code: "NZM"}},
		"Mumbai": {{Code: "MMCT"}},
	}, rail)
	planner.TaskTimeout = 50 * time.Millisecond

	started := time.Now()
	itineraries, err := planner.Plan(context.Background(), query.ItineraryPlan{
		Origin:        "Delhi",
		Destination:   "Mumbai",
		IncludeTrains: true,
	})

	require.NoError(t, err)
	require.Len(t, itineraries, 1)
	assert.Equal(t, "12952", itineraries[0].Legs[0].Identifier)
	assert.Less(t, time.Since(started), 2*time.Second)
}

func TestPlanCache(t *testing.T) {
	rail := &fakeRail{legs: map[string][]*ctdf.TransitLeg{"NDLS-MMCT": {trainLeg("12952", 940, "")}}}

	planner := newPlanner(rail)
	planner.Cache = &memoryResultCache{values: map[string][]*ctdf.AggregatedItinerary{}}

	plan := query.ItineraryPlan{Origin: "NDLS", Destination: "MMCT", IncludeTrains: true}

	first, err := planner.Plan(context.Background(), plan)
	require.NoError(t, err)

	second, err := planner.Plan(context.Background(), plan)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, rail.seen, 1)
}

func TestPlanRequiresAMode(t *testing.T) {
	_, err := newPlanner().Plan(context.Background(), query.ItineraryPlan{Origin: "NDLS", Destination: "MMCT"})

	assert.ErrorIs(t, err, ErrNoModes)
}

func TestLookupThroughAggregator(t *testing.T) {
	rail := &fakeRail{legs: map[string][]*ctdf.TransitLeg{"NDLS-MMCT": {trainLeg("12952", 940, "")}}}
	planner := newPlanner(rail)

	aggregator := &dataaggregator.Aggregator{}
	aggregator.RegisterSource(planner)

	itineraries, err := dataaggregator.LookupFrom[[]*ctdf.AggregatedItinerary](context.Background(), aggregator, query.ItineraryPlan{
		Origin:        "NDLS",
		Destination:   "MMCT",
		IncludeTrains: true,
	})

	require.NoError(t, err)
	assert.Len(t, itineraries, 1)
}

func TestPlanWithoutStationDirectory(t *testing.T) {
	bus := fakeBus{legs: []*ctdf.TransitLeg{busLeg("B0", 600)}}

	planner := newPlanner(&fakeRail{}, bus)

	_, err := planner.Plan(context.Background(), query.ItineraryPlan{
		Origin:        "Delhi",
		Destination:   "Mumbai",
		IncludeTrains: true,
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Station directory unavailable, use a station code instead of Delhi")
	assert.Contains(t, err.Error(), "use a station code instead of Mumbai")
	assert.True(t, ctdf.IsKind(err, ctdf.ErrorKindUpstreamSemantic))
}

type flakyRail struct {
	fakeRail
	failures int
}

func (f *flakyRail) Lookup(ctx context.Context, q any) (interface{}, error) {
	if _, ok := q.(query.TrainsBetweenStations); !ok {
		return nil, source.UnsupportedSourceError
	}

	f.mutex.Lock()
	failing := f.failures > 0
	if failing {
		f.failures--
	}
	f.mutex.Unlock()

	if failing {
		f.mutex.Lock()
		f.seen = append(f.seen, "failed")
		f.mutex.Unlock()
		return nil, ctdf.NewTransportError("rail returned status 503", nil)
	}

	return f.fakeRail.Lookup(ctx, q)
}

func TestPlanDoesNotCacheDegradedResults(t *testing.T) {
	rail := &flakyRail{
		fakeRail: fakeRail{legs: map[string][]*ctdf.TransitLeg{"NDLS-MMCT": {trainLeg("12952", 940, "")}}},
		failures: 1,
	}
	bus := fakeBus{legs: []*ctdf.TransitLeg{busLeg("B0", 1300)}}

	planner := newPlanner(rail, bus)
	cache := &memoryResultCache{values: map[string][]*ctdf.AggregatedItinerary{}}
	planner.Cache = cache

	plan := query.ItineraryPlan{Origin: "NDLS", Destination: "MMCT", IncludeTrains: true, IncludeBuses: true}

	first, err := planner.Plan(context.Background(), plan)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, "B0", first[0].Legs[0].Identifier)
	assert.Empty(t, cache.values)

	second, err := planner.Plan(context.Background(), plan)
	require.NoError(t, err)
	require.Len(t, second, 2)
	assert.Equal(t, "12952", second[0].Legs[0].Identifier)
	assert.Equal(t, []string{"failed", "NDLS-MMCT"}, rail.seen)
	assert.Len(t, cache.values, 1)

	third, err := planner.Plan(context.Background(), plan)
	require.NoError(t, err)
	assert.Equal(t, second, third)
	assert.Len(t, rail.seen, 2)
}
