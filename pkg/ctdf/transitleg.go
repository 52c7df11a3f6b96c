package ctdf

import "math"

// DurationUnknown ranks a leg whose travel time could not be parsed after every known leg.
const DurationUnknown = math.MaxInt32

// TransitLeg is a single point-to-point service from one upstream provider, either a train or a bus.
// Identifier is only unique within a Mode.
type TransitLeg struct {
	Mode        TransportMode `json:"mode" groups:"basic,detailed"`
	Identifier  string        `json:"identifier" groups:"basic,detailed"`
	DisplayName string        `json:"displayName" groups:"basic,detailed"`

	OriginCode      string `json:"originCode" groups:"basic,detailed"`
	OriginName      string `json:"originName" groups:"basic,detailed"`
	DestinationCode string `json:"destinationCode" groups:"basic,detailed"`
	DestinationName string `json:"destinationName" groups:"basic,detailed"`

	DepartureTime string `json:"departureTime" groups:"basic,detailed"`
	ArrivalTime   string `json:"arrivalTime" groups:"basic,detailed"`

	TravelTime      string `json:"travelTime" groups:"detailed"`
	DurationMinutes int    `json:"durationMinutes" groups:"basic,detailed"`

	// Train only
	RunningDays            RunningDays `json:"runningDays,omitempty" groups:"detailed"`
	ServiceOriginName      string      `json:"serviceOriginName,omitempty" groups:"detailed"`
	ServiceOriginCode      string      `json:"serviceOriginCode,omitempty" groups:"detailed"`
	ServiceDestinationName string      `json:"serviceDestinationName,omitempty" groups:"detailed"`
	ServiceDestinationCode string      `json:"serviceDestinationCode,omitempty" groups:"detailed"`

	// Bus only
	Operator       string       `json:"operator,omitempty" groups:"detailed"`
	Price          *float64     `json:"price,omitempty" groups:"basic,detailed"`
	OriginalPrice  *float64     `json:"originalPrice,omitempty" groups:"detailed"`
	Features       *BusFeatures `json:"features,omitempty" groups:"detailed"`
	SeatsAvailable *int         `json:"seatsAvailable,omitempty" groups:"detailed"`

	Source string `json:"source" groups:"detailed"`
}

type BusFeatures struct {
	AC      bool `json:"ac" groups:"detailed"`
	Sleeper bool `json:"sleeper" groups:"detailed"`
	Seater  bool `json:"seater" groups:"detailed"`
}

// DedupeKey is unique across modes within a single aggregation run
func (l *TransitLeg) DedupeKey() string {
	return string(l.Mode) + ":" + l.Identifier
}

func (l *TransitLeg) HasKnownDuration() bool {
	return l.DurationMinutes >= 0 && l.DurationMinutes != DurationUnknown
}

// IsDiscounted reports whether the upstream fare was reduced from its original price.
func (l *TransitLeg) IsDiscounted() bool {
	if l.Price == nil || l.OriginalPrice == nil {
		return false
	}

	return *l.OriginalPrice > *l.Price
}
