package railprovider

import (
	"context"
	"net/url"
	"reflect"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/transitmerge/pkg/ctdf"
	"github.com/travigo/transitmerge/pkg/dataaggregator/query"
	"github.com/travigo/transitmerge/pkg/dataaggregator/source"
	"github.com/travigo/transitmerge/pkg/formats/railwire"
	"github.com/travigo/transitmerge/pkg/metrics"
	"github.com/travigo/transitmerge/pkg/providers"
	"github.com/travigo/transitmerge/pkg/schedulecalendar"
)

type Source struct {
	Provider *providers.Provider
	Decoder  *railwire.Decoder
}

func New(provider *providers.Provider) Source {
	return Source{
		Provider: provider,
		Decoder:  railwire.NewDecoder(),
	}
}

func (s Source) GetName() string {
	return "Rail Provider"
}

func (s Source) Supports() []reflect.Type {
	return []reflect.Type{
		reflect.TypeOf([]*ctdf.TransitLeg{}),
		reflect.TypeOf(ctdf.TrainIdentity{}),
		reflect.TypeOf([]*ctdf.RouteStop{}),
	}
}

func (s Source) Lookup(ctx context.Context, q any) (interface{}, error) {
	if s.Provider == nil || !s.Provider.Enabled() {
		return nil, source.UnsupportedSourceError
	}

	switch q := q.(type) {
	case query.TrainsBetweenStations:
		return s.TrainsBetweenStations(ctx, q)
	case query.TrainLookup:
		return s.TrainLookup(ctx, q)
	case query.TrainRoute:
		return s.TrainRoute(ctx, q)
	default:
		return nil, source.UnsupportedSourceError
	}
}

func (s Source) TrainsBetweenStations(ctx context.Context, q query.TrainsBetweenStations) ([]*ctdf.TransitLeg, error) {
	started := time.Now()

	body, err := s.Provider.Fetch(ctx, providers.PathBetweenStations, url.Values{
		"Station_From": {q.FromStationCode},
		"Station_To":   {q.ToStationCode},
		"DataSource":   {"0"},
		"Language":     {"0"},
		"Cache":        {"true"},
	})
	if err != nil {
		metrics.ObserveUpstream(s.Provider.Identifier, string(railwire.ModeBetweenStations), started, err)
		return nil, err
	}

	result := s.Decoder.DecodeTransitLegs(string(body), s.Provider.Identifier)
	metrics.ObserveUpstream(s.Provider.Identifier, string(railwire.ModeBetweenStations), started, result.Err())
	if !result.Success {
		return nil, result.Err()
	}

	legs := result.Data
	if q.Date != nil {
		dayIndex := schedulecalendar.DayIndexForTime(*q.Date)
		legs = schedulecalendar.FilterByDate(legs, dayIndex)
	}

	log.Debug().
		Str("from", q.FromStationCode).
		Str("to", q.ToStationCode).
		Int("decoded", len(result.Data)).
		Int("running", len(legs)).
		Msg("Rail provider trains between stations")

	return legs, nil
}

func (s Source) TrainLookup(ctx context.Context, q query.TrainLookup) (*ctdf.TrainIdentity, error) {
	started := time.Now()

	body, err := s.Provider.Fetch(ctx, providers.PathTrainLookup, url.Values{
		"TrainNo":    {q.TrainNumber},
		"DataSource": {"0"},
		"Language":   {"0"},
		"Cache":      {"true"},
	})
	if err != nil {
		metrics.ObserveUpstream(s.Provider.Identifier, string(railwire.ModeTrainLookup), started, err)
		return nil, err
	}

	result := s.Decoder.DecodeTrainLookup(string(body))
	metrics.ObserveUpstream(s.Provider.Identifier, string(railwire.ModeTrainLookup), started, result.Err())
	if !result.Success {
		return nil, result.Err()
	}

	return result.Data, nil
}

func (s Source) TrainRoute(ctx context.Context, q query.TrainRoute) ([]*ctdf.RouteStop, error) {
	identity, err := s.TrainLookup(ctx, query.TrainLookup{TrainNumber: q.TrainNumber})
	if err != nil {
		return nil, err
	}

	started := time.Now()

	body, err := s.Provider.Fetch(ctx, providers.PathRoute, url.Values{
		"Action":   {"TRAINROUTE"},
		"Password": {"2012"},
		"Data1":    {identity.InternalID},
		"Data2":    {"0"},
		"Cache":    {"true"},
	})
	if err != nil {
		metrics.ObserveUpstream(s.Provider.Identifier, string(railwire.ModeRoute), started, err)
		return nil, err
	}

	result := s.Decoder.DecodeRoute(string(body))
	metrics.ObserveUpstream(s.Provider.Identifier, string(railwire.ModeRoute), started, result.Err())
	if !result.Success {
		return nil, result.Err()
	}

	return result.Data, nil
}
