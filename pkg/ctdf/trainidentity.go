package ctdf

// TrainIdentity is the result of looking a train up by its public number.
// InternalID is the provider's own key and is what route listings are fetched with.
type TrainIdentity struct {
	TrainNumber string `json:"trainNumber" groups:"basic,detailed"`
	TrainName   string `json:"trainName" groups:"basic,detailed"`
	InternalID  string `json:"internalId" groups:"basic,detailed"`

	OriginName      string      `json:"originName,omitempty" groups:"detailed"`
	OriginCode      string      `json:"originCode,omitempty" groups:"detailed"`
	DestinationName string      `json:"destinationName,omitempty" groups:"detailed"`
	DestinationCode string      `json:"destinationCode,omitempty" groups:"detailed"`
	RunningDays     RunningDays `json:"runningDays,omitempty" groups:"detailed"`
}
