package ctdf

// AggregatedItinerary is one ranked travel option.
// Legs always holds exactly one leg, composing train and bus legs is not supported yet.
type AggregatedItinerary struct {
	Legs    []*TransitLeg `json:"legs" groups:"basic,detailed"`
	RankKey int           `json:"rankKey" groups:"basic,detailed"`
}

func NewSingleLegItinerary(leg *TransitLeg) *AggregatedItinerary {
	return &AggregatedItinerary{
		Legs:    []*TransitLeg{leg},
		RankKey: leg.DurationMinutes,
	}
}
