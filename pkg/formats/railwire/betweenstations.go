package railwire

import (
	"github.com/rs/zerolog/log"
	"github.com/travigo/transitmerge/pkg/ctdf"
	"github.com/travigo/transitmerge/pkg/traveltime"
)

// TrainRecord is one between-stations result exactly as the provider sent it
type TrainRecord struct {
	TrainNumber            string `json:"trainNumber"`
	TrainName              string `json:"trainName"`
	SourceStationName      string `json:"sourceStationName"`
	SourceStationCode      string `json:"sourceStationCode"`
	DestinationStationName string `json:"destinationStationName"`
	DestinationStationCode string `json:"destinationStationCode"`
	FromStationName        string `json:"fromStationName"`
	FromStationCode        string `json:"fromStationCode"`
	ToStationName          string `json:"toStationName"`
	ToStationCode          string `json:"toStationCode"`
	DepartureTime          string `json:"departureTime"`
	ArrivalTime            string `json:"arrivalTime"`
	TravelTime             string `json:"travelTime"`
	RunningDays            string `json:"runningDays"`
}

// ToTransitLeg converts the record into the canonical leg, the leg's origin and destination are the queried stations
func (r *TrainRecord) ToTransitLeg(source string) *ctdf.TransitLeg {
	travelTime := traveltime.NormaliseRailTravelTime(r.TravelTime)

	return &ctdf.TransitLeg{
		Mode:        ctdf.TransportModeTrain,
		Identifier:  r.TrainNumber,
		DisplayName: r.TrainName,

		OriginCode:      r.FromStationCode,
		OriginName:      r.FromStationName,
		DestinationCode: r.ToStationCode,
		DestinationName: r.ToStationName,

		DepartureTime: r.DepartureTime,
		ArrivalTime:   r.ArrivalTime,

		TravelTime:      travelTime,
		DurationMinutes: traveltime.ToMinutes(travelTime),

		RunningDays:            ctdf.RunningDays(r.RunningDays),
		ServiceOriginName:      r.SourceStationName,
		ServiceOriginCode:      r.SourceStationCode,
		ServiceDestinationName: r.DestinationStationName,
		ServiceDestinationCode: r.DestinationStationCode,

		Source: source,
	}
}

func (d *Decoder) DecodeBetweenStations(payload string) ctdf.Result[[]*TrainRecord] {
	fieldMap := d.Schema.BetweenStations

	template := decodeTemplate[[]*TrainRecord]{
		mode:           ModeBetweenStations,
		statusSentinel: SentinelNoDirectTrains,
		records: func(payload string) ([]*TrainRecord, error) {
			marked := markedRecords(payload)
			trains := []*TrainRecord{}

			for _, fields := range marked {
				if len(fields) < fieldMap.MinFields {
					log.Debug().Int("fields", len(fields)).Msg("Skipping short between-stations record")
					continue
				}

				trains = append(trains, &TrainRecord{
					TrainNumber:            fieldMap.Get(fields, FieldTrainNumber),
					TrainName:              fieldMap.Get(fields, FieldTrainName),
					SourceStationName:      fieldMap.Get(fields, FieldSourceStationName),
					SourceStationCode:      fieldMap.Get(fields, FieldSourceStationCode),
					DestinationStationName: fieldMap.Get(fields, FieldDestinationStationName),
					DestinationStationCode: fieldMap.Get(fields, FieldDestinationStationCode),
					FromStationName:        fieldMap.Get(fields, FieldFromStationName),
					FromStationCode:        fieldMap.Get(fields, FieldFromStationCode),
					ToStationName:          fieldMap.Get(fields, FieldToStationName),
					ToStationCode:          fieldMap.Get(fields, FieldToStationCode),
					DepartureTime:          fieldMap.Get(fields, FieldDepartureTime),
					ArrivalTime:            fieldMap.Get(fields, FieldArrivalTime),
					TravelTime:             fieldMap.Get(fields, FieldTravelTime),
					RunningDays:            fieldMap.Get(fields, FieldRunningDays),
				})
			}

			if len(marked) > 0 && len(trains) == 0 {
				return nil, malformed(ModeBetweenStations, "no train records could be parsed")
			}

			return trains, nil
		},
	}

	return template.run(d.Schema, payload)
}

// DecodeTransitLegs decodes a between-stations payload straight into canonical legs
func (d *Decoder) DecodeTransitLegs(payload string, source string) ctdf.Result[[]*ctdf.TransitLeg] {
	result := d.DecodeBetweenStations(payload)
	if !result.Success {
		return ctdf.Failure[[]*ctdf.TransitLeg](result.Kind, result.Message)
	}

	legs := make([]*ctdf.TransitLeg, 0, len(result.Data))
	for _, record := range result.Data {
		legs = append(legs, record.ToTransitLeg(source))
	}

	return ctdf.Success(legs)
}
