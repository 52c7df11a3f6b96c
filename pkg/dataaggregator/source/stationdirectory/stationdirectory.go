package stationdirectory

import (
	"context"
	"errors"
	"reflect"
	"strings"

	"github.com/travigo/transitmerge/pkg/ctdf"
	"github.com/travigo/transitmerge/pkg/dataaggregator/query"
	"github.com/travigo/transitmerge/pkg/dataaggregator/source"
	"github.com/travigo/transitmerge/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Source struct{}

func (s Source) GetName() string {
	return "Station Directory"
}

func (s Source) Supports() []reflect.Type {
	return []reflect.Type{
		reflect.TypeOf([]*ctdf.Station{}),
	}
}

func (s Source) Lookup(ctx context.Context, q any) (interface{}, error) {
	if !database.Connected() {
		return nil, source.UnsupportedSourceError
	}

	switch q := q.(type) {
	case query.Station:
		return s.Stations(ctx, q)
	default:
		return nil, source.UnsupportedSourceError
	}
}

// Stations returns an exact code match first, followed by name, city and alias prefix matches
func (s Source) Stations(ctx context.Context, q query.Station) ([]*ctdf.Station, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = query.DefaultStationCandidates
	}

	collection := database.GetCollection(database.StationsCollection)

	var stations []*ctdf.Station
	seen := map[string]bool{}

	var exact *ctdf.Station
	err := collection.FindOne(ctx, bson.M{"code": strings.ToUpper(strings.TrimSpace(q.Query))}).Decode(&exact)
	switch {
	case err == nil:
		stations = append(stations, exact)
		seen[exact.Code] = true
	case !errors.Is(err, mongo.ErrNoDocuments):
		return nil, ctdf.NewTransportError("station directory lookup failed", err)
	}

	if len(stations) >= limit {
		return stations, nil
	}

	opts := options.Find().SetLimit(int64(limit + 1)).SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := collection.Find(ctx, q.ToBson(), opts)
	if err != nil {
		return nil, ctdf.NewTransportError("station directory lookup failed", err)
	}

	var matches []*ctdf.Station
	if err := cursor.All(ctx, &matches); err != nil {
		return nil, ctdf.NewTransportError("station directory lookup failed", err)
	}

	for _, station := range matches {
		if len(stations) >= limit {
			break
		}
		if seen[station.Code] {
			continue
		}

		seen[station.Code] = true
		stations = append(stations, station)
	}

	return stations, nil
}
