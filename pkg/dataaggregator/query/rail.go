package query

import "time"

// TrainsBetweenStations asks the rail provider for direct trains between two station codes.
// Date is optional, when set only trains running on that calendar date are returned.
type TrainsBetweenStations struct {
	FromStationCode string
	ToStationCode   string
	Date            *time.Time
}

type TrainLookup struct {
	TrainNumber string
}

// TrainRoute resolves the train's internal id with a TrainLookup before fetching the route
type TrainRoute struct {
	TrainNumber string
}
