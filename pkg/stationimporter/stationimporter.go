package stationimporter

import (
	"context"
	"encoding/csv"
	"io"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog/log"
	"github.com/travigo/transitmerge/pkg/ctdf"
	"github.com/travigo/transitmerge/pkg/database"
	"github.com/travigo/transitmerge/pkg/util"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const batchSize = 200

type stationRecord struct {
	Code    string `csv:"code"`
	Name    string `csv:"name"`
	City    string `csv:"city"`
	Aliases string `csv:"aliases"`
}

// ParseFile reads a code,name,city,aliases CSV, aliases are "|" separated.
// Rows without a code or name are skipped.
func ParseFile(reader io.Reader) ([]*ctdf.Station, error) {
	// Allow rows with the trailing columns missing
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.FieldsPerRecord = -1
		r.TrimLeadingSpace = true
		return r
	})

	var records []stationRecord
	if err := gocsv.Unmarshal(reader, &records); err != nil {
		return nil, err
	}

	var stations []*ctdf.Station
	for _, record := range records {
		code := strings.ToUpper(strings.TrimSpace(record.Code))
		name := strings.TrimSpace(record.Name)
		if code == "" || name == "" {
			log.Debug().Str("code", record.Code).Msg("Skipping incomplete station row")
			continue
		}

		stations = append(stations, &ctdf.Station{
			Code:    code,
			Name:    name,
			City:    strings.TrimSpace(record.City),
			Aliases: parseAliases(record.Aliases),
		})
	}

	return stations, nil
}

func parseAliases(field string) []string {
	var aliases []string
	for _, alias := range strings.Split(field, "|") {
		aliases = append(aliases, strings.TrimSpace(alias))
	}

	return util.RemoveDuplicateStrings(aliases, nil)
}

// Import upserts stations by code
func Import(ctx context.Context, stations []*ctdf.Station) error {
	collection := database.GetCollection(database.StationsCollection)

	var operations []mongo.WriteModel
	written := 0

	flush := func() error {
		if len(operations) == 0 {
			return nil
		}

		_, err := collection.BulkWrite(ctx, operations, &options.BulkWriteOptions{})
		if err != nil {
			return err
		}

		written += len(operations)
		operations = operations[:0]

		return nil
	}

	for _, station := range stations {
		updateModel := mongo.NewUpdateOneModel()
		updateModel.SetFilter(bson.M{"code": station.Code})
		updateModel.SetUpdate(bson.M{"$set": station})
		updateModel.SetUpsert(true)

		operations = append(operations, updateModel)

		if len(operations) >= batchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}

	if err := flush(); err != nil {
		return err
	}

	log.Info().Int("stations", written).Msg("Imported stations")

	return nil
}
