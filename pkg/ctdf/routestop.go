package ctdf

// RouteStop is one calling point on a train's route.
// DayOffset is 1 on the day of departure and increases across midnight.
type RouteStop struct {
	StationName string  `json:"stationName" groups:"basic,detailed"`
	StationCode string  `json:"stationCode" groups:"basic,detailed"`
	Arrive      string  `json:"arrive" groups:"basic,detailed"`
	Depart      string  `json:"depart" groups:"basic,detailed"`
	DistanceKm  float64 `json:"distanceKm" groups:"basic,detailed"`
	DayOffset   int     `json:"dayOffset" groups:"basic,detailed"`
	Zone        string  `json:"zone,omitempty" groups:"detailed"`
}
