package busprovider

import (
	"context"
	"net/url"
	"reflect"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/transitmerge/pkg/ctdf"
	"github.com/travigo/transitmerge/pkg/dataaggregator/query"
	"github.com/travigo/transitmerge/pkg/dataaggregator/source"
	"github.com/travigo/transitmerge/pkg/formats/busjson"
	"github.com/travigo/transitmerge/pkg/metrics"
	"github.com/travigo/transitmerge/pkg/providers"
)

type Source struct {
	Provider *providers.Provider
}

func (s Source) GetName() string {
	return "Bus Provider"
}

func (s Source) Supports() []reflect.Type {
	return []reflect.Type{
		reflect.TypeOf([]*ctdf.TransitLeg{}),
	}
}

func (s Source) Lookup(ctx context.Context, q any) (interface{}, error) {
	if s.Provider == nil || !s.Provider.Enabled() {
		return nil, source.UnsupportedSourceError
	}

	switch q := q.(type) {
	case query.BusesBetweenCities:
		return s.BusesBetweenCities(ctx, q)
	default:
		return nil, source.UnsupportedSourceError
	}
}

func (s Source) BusesBetweenCities(ctx context.Context, q query.BusesBetweenCities) ([]*ctdf.TransitLeg, error) {
	started := time.Now()

	date := q.Date
	if date.IsZero() {
		date = time.Now()
	}

	body, err := s.Provider.Fetch(ctx, providers.PathBusSearch, url.Values{
		"source":      {q.FromCity},
		"destination": {q.ToCity},
		"doj":         {date.Format("2006-01-02")},
	})
	if err != nil {
		metrics.ObserveUpstream(s.Provider.Identifier, "BUS_SEARCH", started, err)
		return nil, err
	}

	result := busjson.NormalizeResponse(body, s.Provider.Identifier)
	metrics.ObserveUpstream(s.Provider.Identifier, "BUS_SEARCH", started, result.Err())
	if !result.Success {
		return nil, result.Err()
	}

	log.Debug().Str("from", q.FromCity).Str("to", q.ToCity).Int("services", len(result.Data)).Msg("Bus provider services between cities")

	return result.Data, nil
}
