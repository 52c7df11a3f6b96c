package railwire

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/travigo/transitmerge/pkg/ctdf"
)

var clockTime = regexp.MustCompile(`^\d{1,2}[:.]\d{2}$`)

// DecodeRoute reads a route listing. Segments that are too short, carry non numeric distance/day values or break the
// ordering of the stops before them are skipped.
func (d *Decoder) DecodeRoute(payload string) ctdf.Result[[]*ctdf.RouteStop] {
	fieldMap := d.Schema.Route

	template := decodeTemplate[[]*ctdf.RouteStop]{
		mode: ModeRoute,
		records: func(payload string) ([]*ctdf.RouteStop, error) {
			stops := []*ctdf.RouteStop{}
			var previous *ctdf.RouteStop

			for index, segment := range strings.Split(payload, recordMarker) {
				fields := splitFields(segment)
				if len(fields) < fieldMap.MinFields {
					continue
				}

				stop, ok := routeStop(fieldMap, fields)
				if !ok {
					log.Debug().Int("segment", index).Msg("Skipping unparseable route segment")
					continue
				}

				if previous != nil && (stop.DayOffset < previous.DayOffset || stop.DistanceKm < previous.DistanceKm) {
					log.Debug().
						Int("segment", index).
						Str("station", stop.StationCode).
						Msg("Skipping out of order route stop")
					continue
				}

				stops = append(stops, stop)
				previous = stop
			}

			if len(stops) == 0 {
				return nil, malformed(ModeRoute, "no route stops could be parsed")
			}

			return stops, nil
		},
	}

	return template.run(d.Schema, payload)
}

func routeStop(fieldMap FieldMap, fields []string) (*ctdf.RouteStop, bool) {
	distance, err := strconv.ParseFloat(strings.TrimSpace(fieldMap.Get(fields, FieldDistance)), 64)
	if err != nil || distance < 0 {
		return nil, false
	}

	day, err := strconv.Atoi(strings.TrimSpace(fieldMap.Get(fields, FieldDay)))
	if err != nil || day < 1 {
		return nil, false
	}

	arrive := fieldMap.Get(fields, FieldArrive)
	depart := fieldMap.Get(fields, FieldDepart)

	// The first and last stops carry a placeholder instead of one of the times
	switch {
	case !clockTime.MatchString(arrive) && !clockTime.MatchString(depart):
		return nil, false
	case !clockTime.MatchString(arrive):
		arrive = depart
	case !clockTime.MatchString(depart):
		depart = arrive
	}

	return &ctdf.RouteStop{
		StationCode: fieldMap.Get(fields, FieldStationCode),
		StationName: fieldMap.Get(fields, FieldStationName),
		Arrive:      arrive,
		Depart:      depart,
		DistanceKm:  distance,
		DayOffset:   day,
		Zone:        fieldMap.Get(fields, FieldZone),
	}, true
}
