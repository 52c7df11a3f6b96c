// Package busjson reads the bus provider's JSON service list and normalises each service into a ctdf.TransitLeg.
package busjson

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/travigo/transitmerge/pkg/ctdf"
	"github.com/travigo/transitmerge/pkg/traveltime"
)

type Response struct {
	Services []*Service `json:"services"`
}

type Service struct {
	ServiceKey     string       `json:"serviceKey"`
	TravelsName    string       `json:"travelsName"`
	BusTypeName    string       `json:"busTypeName"`
	DepartureTime  string       `json:"departureTime"`
	ArrivalTime    string       `json:"arrivalTime"`
	Duration       string       `json:"duration"`
	Fare           string       `json:"fare"`
	OriginalFare   string       `json:"originalFare"`
	AvailableSeats *int         `json:"availableSeats"`
	BoardingInfo   []*PlaceInfo `json:"boardingInfoList"`
	DroppingInfo   []*PlaceInfo `json:"droppingInfoList"`
}

type PlaceInfo struct {
	PlaceName string `json:"placeName"`
	PlaceCode string `json:"placeCode"`
}

var acToken = regexp.MustCompile(`\ba/?c\b`)
var nonACTokens = []string{"non-ac", "non ac", "non a/c", "nonac"}

// ClassifyBusType derives the feature flags from the free text bus type name
func ClassifyBusType(busTypeName string) *ctdf.BusFeatures {
	name := strings.ToLower(busTypeName)

	features := &ctdf.BusFeatures{
		Sleeper: strings.Contains(name, "sleeper"),
		Seater:  strings.Contains(name, "seater"),
	}

	for _, token := range nonACTokens {
		if strings.Contains(name, token) {
			return features
		}
	}

	features.AC = acToken.MatchString(name)

	return features
}

// Normalize converts one service, index is its position in the response and makes the identifier unique per call
func Normalize(service *Service, index int, source string) *ctdf.TransitLeg {
	if service == nil {
		service = &Service{}
	}

	durationText := service.Duration
	if strings.HasPrefix(durationText, "P") {
		if converted, err := traveltime.FromISO8601(durationText); err == nil {
			durationText = converted
		}
	}

	leg := &ctdf.TransitLeg{
		Mode:        ctdf.TransportModeBus,
		Identifier:  service.ServiceKey + strconv.Itoa(index),
		DisplayName: service.TravelsName,
		Operator:    service.TravelsName,

		OriginName:      firstPlace(service.BoardingInfo).PlaceName,
		OriginCode:      firstPlace(service.BoardingInfo).PlaceCode,
		DestinationName: firstPlace(service.DroppingInfo).PlaceName,
		DestinationCode: firstPlace(service.DroppingInfo).PlaceCode,

		DepartureTime: service.DepartureTime,
		ArrivalTime:   service.ArrivalTime,

		TravelTime:      durationText,
		DurationMinutes: traveltime.ToMinutes(durationText),

		Features:       ClassifyBusType(service.BusTypeName),
		SeatsAvailable: service.AvailableSeats,

		Source: source,
	}

	leg.Price = parseFare(service.Fare)
	if leg.Price != nil {
		original := *leg.Price
		if parsed := parseFare(service.OriginalFare); parsed != nil && *parsed > original {
			original = *parsed
		}
		leg.OriginalPrice = &original
	}

	return leg
}

// NormalizeResponse decodes a full provider body. Services that are null are skipped but keep their index slot.
func NormalizeResponse(body []byte, source string) ctdf.Result[[]*ctdf.TransitLeg] {
	var response Response
	if err := json.Unmarshal(body, &response); err != nil {
		return ctdf.Failure[[]*ctdf.TransitLeg](ctdf.ErrorKindUpstreamFormat, "unrecognised bus response: "+err.Error())
	}

	legs := make([]*ctdf.TransitLeg, 0, len(response.Services))
	for index, service := range response.Services {
		if service == nil {
			log.Debug().Int("index", index).Msg("Skipping empty bus service")
			continue
		}

		legs = append(legs, Normalize(service, index, source))
	}

	return ctdf.Success(legs)
}

func firstPlace(places []*PlaceInfo) *PlaceInfo {
	if len(places) == 0 || places[0] == nil {
		return &PlaceInfo{}
	}

	return places[0]
}

func parseFare(fare string) *float64 {
	fare = strings.TrimSpace(strings.ReplaceAll(fare, ",", ""))
	if fare == "" {
		return nil
	}

	value, err := strconv.ParseFloat(fare, 64)
	if err != nil || value < 0 {
		return nil
	}

	return &value
}
