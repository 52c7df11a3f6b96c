package railwire

import "github.com/travigo/transitmerge/pkg/util"

// Field names a value the rail provider places at a fixed position inside a "~" separated record
type Field string

const (
	FieldTrainNumber            Field = "TrainNumber"
	FieldTrainName              Field = "TrainName"
	FieldInternalID             Field = "InternalID"
	FieldSourceStationName      Field = "SourceStationName"
	FieldSourceStationCode      Field = "SourceStationCode"
	FieldDestinationStationName Field = "DestinationStationName"
	FieldDestinationStationCode Field = "DestinationStationCode"
	FieldFromStationName        Field = "FromStationName"
	FieldFromStationCode        Field = "FromStationCode"
	FieldToStationName          Field = "ToStationName"
	FieldToStationCode          Field = "ToStationCode"
	FieldDepartureTime          Field = "DepartureTime"
	FieldArrivalTime            Field = "ArrivalTime"
	FieldTravelTime             Field = "TravelTime"
	FieldRunningDays            Field = "RunningDays"

	FieldStationCode Field = "StationCode"
	FieldStationName Field = "StationName"
	FieldArrive      Field = "Arrive"
	FieldDepart      Field = "Depart"
	FieldDistance    Field = "Distance"
	FieldDay         Field = "Day"
	FieldZone        Field = "Zone"
)

// FieldMap is the positional layout of one record type.
// Records holding fewer than MinFields tokens are skipped.
type FieldMap struct {
	Positions map[Field]int
	MinFields int
}

// Get returns the token for field, or "" when the field is not mapped or the record is too short
func (m FieldMap) Get(tokens []string, field Field) string {
	position, ok := m.Positions[field]
	if !ok {
		return ""
	}

	return util.FieldAt(tokens, position)
}

// Schema is one version of the provider's positional wire format
type Schema struct {
	Version string

	// StatusField is the index of the status token in the first "~" split of the payload preamble
	StatusField int

	BetweenStations FieldMap
	Route           FieldMap
	TrainLookup     FieldMap
}

var SchemaV1 = Schema{
	Version:     "v1",
	StatusField: 5,

	BetweenStations: FieldMap{
		Positions: map[Field]int{
			FieldTrainNumber:            0,
			FieldTrainName:              1,
			FieldSourceStationName:      2,
			FieldSourceStationCode:      3,
			FieldDestinationStationName: 4,
			FieldDestinationStationCode: 5,
			FieldFromStationName:        6,
			FieldFromStationCode:        7,
			FieldToStationName:          8,
			FieldToStationCode:          9,
			FieldDepartureTime:          10,
			FieldArrivalTime:            11,
			FieldTravelTime:             12,
			FieldRunningDays:            13,
		},
		MinFields: 14,
	},

	Route: FieldMap{
		Positions: map[Field]int{
			FieldStationCode: 1,
			FieldStationName: 2,
			FieldArrive:      3,
			FieldDepart:      4,
			FieldDistance:    6,
			FieldDay:         7,
			FieldZone:        9,
		},
		// zone is optional
		MinFields: 8,
	},

	TrainLookup: FieldMap{
		Positions: map[Field]int{
			FieldTrainNumber:            0,
			FieldTrainName:              1,
			FieldSourceStationName:      2,
			FieldSourceStationCode:      3,
			FieldDestinationStationName: 4,
			FieldDestinationStationCode: 5,
			FieldDepartureTime:          6,
			FieldArrivalTime:            7,
			FieldTravelTime:             8,
			FieldRunningDays:            9,
			FieldInternalID:             10,
		},
		MinFields: 11,
	},
}
