package dataaggregator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/transitmerge/pkg/ctdf"
)

func train(number string, minutes int, source string) *ctdf.TransitLeg {
	return &ctdf.TransitLeg{
		Mode:            ctdf.TransportModeTrain,
		Identifier:      number,
		DurationMinutes: minutes,
		Source:          source,
	}
}

func bus(key string, minutes int, price float64) *ctdf.TransitLeg {
	return &ctdf.TransitLeg{
		Mode:            ctdf.TransportModeBus,
		Identifier:      key,
		DurationMinutes: minutes,
		Price:           &price,
		Features:        &ctdf.BusFeatures{Sleeper: true},
	}
}

func identifiers(itineraries []*ctdf.AggregatedItinerary) []string {
	var ids []string
	for _, itinerary := range itineraries {
		ids = append(ids, itinerary.Legs[0].Identifier)
	}
	return ids
}

func TestAggregateRanksByDuration(t *testing.T) {
	itineraries, err := Aggregate([]Batch{
		{Index: 0, Mode: ctdf.TransportModeTrain, Legs: []*ctdf.TransitLeg{train("A", 300, ""), train("B", 45, ""), train("C", 120, "")}},
	}, Options{})

	require.NoError(t, err)
	assert.Equal(t, []string{"B", "C", "A"}, identifiers(itineraries))
	assert.Equal(t, []int{45, 120, 300}, []int{itineraries[0].RankKey, itineraries[1].RankKey, itineraries[2].RankKey})
	for _, itinerary := range itineraries {
		assert.Len(t, itinerary.Legs, 1)
	}
}

func TestAggregateStableOnTies(t *testing.T) {
	itineraries, err := Aggregate([]Batch{
		{Index: 0, Mode: ctdf.TransportModeTrain, Legs: []*ctdf.TransitLeg{train("first", 90, ""), train("second", 90, "")}},
		{Index: 1, Mode: ctdf.TransportModeBus, Legs: []*ctdf.TransitLeg{bus("third", 90, 500)}},
	}, Options{})

	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "third"}, identifiers(itineraries))
}

func TestAggregateDeduplicatesTrainsInQueryOrder(t *testing.T) {
	// batches arrive out of order, index decides
	itineraries, err := Aggregate([]Batch{
		{Index: 1, Mode: ctdf.TransportModeTrain, Legs: []*ctdf.TransitLeg{train("12952", 900, "second-pair")}},
		{Index: 0, Mode: ctdf.TransportModeTrain, Legs: []*ctdf.TransitLeg{train("12952", 940, "first-pair"), train("12954", 1000, "first-pair")}},
	}, Options{})

	require.NoError(t, err)
	require.Len(t, itineraries, 2)
	assert.Equal(t, "12952", itineraries[0].Legs[0].Identifier)
	assert.Equal(t, "first-pair", itineraries[0].Legs[0].Source)
	assert.Equal(t, 940, itineraries[0].RankKey)
}

func TestAggregateKeepsBusLegsWithSameKey(t *testing.T) {
	itineraries, err := Aggregate([]Batch{
		{Index: 0, Mode: ctdf.TransportModeTrain, Legs: []*ctdf.TransitLeg{train("X1", 100, "")}},
		{Index: 1, Mode: ctdf.TransportModeBus, Legs: []*ctdf.TransitLeg{bus("X1", 200, 400)}},
	}, Options{})

	require.NoError(t, err)
	assert.Len(t, itineraries, 2)
}

func TestAggregateTruncates(t *testing.T) {
	var legs []*ctdf.TransitLeg
	for i := 0; i < 15; i++ {
		legs = append(legs, train(string(rune('a'+i)), 100-i, ""))
	}

	itineraries, err := Aggregate([]Batch{{Index: 0, Mode: ctdf.TransportModeTrain, Legs: legs}}, Options{})
	require.NoError(t, err)
	assert.Len(t, itineraries, DefaultLimit)
	assert.Equal(t, 86, itineraries[0].RankKey)

	itineraries, err = Aggregate([]Batch{{Index: 0, Mode: ctdf.TransportModeTrain, Legs: legs}}, Options{Limit: 3})
	require.NoError(t, err)
	assert.Len(t, itineraries, 3)
}

func TestAggregateComputesMissingDurations(t *testing.T) {
	itineraries, err := Aggregate([]Batch{
		{Index: 0, Mode: ctdf.TransportModeTrain, Legs: []*ctdf.TransitLeg{
			{Mode: ctdf.TransportModeTrain, Identifier: "unknown", TravelTime: "garbage"},
			{Mode: ctdf.TransportModeTrain, Identifier: "clock", TravelTime: "08:30:00"},
			{Mode: ctdf.TransportModeTrain, Identifier: "tokens", TravelTime: "5h 30m"},
		}},
	}, Options{})

	require.NoError(t, err)
	assert.Equal(t, []string{"tokens", "clock", "unknown"}, identifiers(itineraries))
	assert.Equal(t, 330, itineraries[0].RankKey)
	assert.Equal(t, 510, itineraries[1].RankKey)
	assert.Equal(t, ctdf.DurationUnknown, itineraries[2].RankKey)
}

func TestAggregatePartialFailure(t *testing.T) {
	itineraries, err := Aggregate([]Batch{
		{Index: 0, Mode: ctdf.TransportModeTrain, Err: errors.New("timeout")},
		{Index: 1, Mode: ctdf.TransportModeBus, Legs: []*ctdf.TransitLeg{bus("b1", 600, 900), bus("b2", 300, 700), bus("b3", 450, 800)}},
	}, Options{})

	require.NoError(t, err)
	assert.Equal(t, []string{"b2", "b3", "b1"}, identifiers(itineraries))
}

func TestAggregateTotalFailure(t *testing.T) {
	_, err := Aggregate([]Batch{
		{Index: 0, Mode: ctdf.TransportModeTrain, Err: &ctdf.UpstreamError{Kind: ctdf.ErrorKindUpstreamSemantic, Message: "No direct trains found"}},
		{Index: 1, Mode: ctdf.TransportModeBus, Err: ctdf.NewTransportError("bus provider timed out", nil)},
	}, Options{})

	var aggregationError *AggregationError
	require.ErrorAs(t, err, &aggregationError)
	assert.Equal(t, "No direct trains found; bus provider timed out", err.Error())
	assert.True(t, ctdf.IsKind(err, ctdf.ErrorKindUpstreamSemantic))
}

func TestAggregateEmpty(t *testing.T) {
	itineraries, err := Aggregate(nil, Options{})

	assert.NoError(t, err)
	assert.Empty(t, itineraries)
}

func TestAggregateDoesNotMutateInput(t *testing.T) {
	leg := &ctdf.TransitLeg{Mode: ctdf.TransportModeTrain, Identifier: "1", TravelTime: "1h"}

	itineraries, err := Aggregate([]Batch{{Index: 0, Mode: ctdf.TransportModeTrain, Legs: []*ctdf.TransitLeg{leg}}}, Options{})

	require.NoError(t, err)
	assert.Equal(t, 60, itineraries[0].RankKey)
	assert.Equal(t, 0, leg.DurationMinutes)
	assert.NotSame(t, leg, itineraries[0].Legs[0])
}

func TestAggregateFilter(t *testing.T) {
	program, err := CompileFilter(`mode == "BUS" && hasPrice && price < 800`)
	require.NoError(t, err)

	itineraries, err := Aggregate([]Batch{
		{Index: 0, Mode: ctdf.TransportModeTrain, Legs: []*ctdf.TransitLeg{train("1", 100, "")}},
		{Index: 1, Mode: ctdf.TransportModeBus, Legs: []*ctdf.TransitLeg{bus("cheap", 500, 650), bus("dear", 400, 1200)}},
	}, Options{Filter: program})

	require.NoError(t, err)
	assert.Equal(t, []string{"cheap"}, identifiers(itineraries))
}

func TestCompileFilterRejectsNonBoolean(t *testing.T) {
	_, err := CompileFilter(`duration + 1`)
	assert.Error(t, err)

	_, err = CompileFilter(`unknownField == 1`)
	assert.Error(t, err)
}

func TestAggregateDeduplicatesTrainsOnlyWithinTrains(t *testing.T) {
	itineraries, err := Aggregate([]Batch{
		{Index: 0, Mode: ctdf.TransportModeTrain, Legs: []*ctdf.TransitLeg{train("12952", 940, "")}},
		{Index: 1, Mode: ctdf.TransportModeBus, Legs: []*ctdf.TransitLeg{bus("12952", 1300, 900)}},
	}, Options{})

	require.NoError(t, err)
	assert.Equal(t, []string{"12952", "12952"}, identifiers(itineraries))
	assert.Equal(t, ctdf.TransportModeBus, itineraries[1].Legs[0].Mode)
}

func TestAggregateFilterOnDiscountAndKnownDuration(t *testing.T) {
	discounted := bus("discounted", 500, 650)
	original := 900.0
	discounted.OriginalPrice = &original

	unknown := train("12953", ctdf.DurationUnknown, "")

	program, err := CompileFilter(`knownDuration && (mode == "TRAIN" || discounted)`)
	require.NoError(t, err)

	itineraries, err := Aggregate([]Batch{
		{Index: 0, Mode: ctdf.TransportModeTrain, Legs: []*ctdf.TransitLeg{train("12952", 940, ""), unknown}},
		{Index: 1, Mode: ctdf.TransportModeBus, Legs: []*ctdf.TransitLeg{discounted, bus("full", 400, 800)}},
	}, Options{Filter: program})

	require.NoError(t, err)
	assert.Equal(t, []string{"discounted", "12952"}, identifiers(itineraries))
}
