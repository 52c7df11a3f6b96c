package traveltime

import (
	"strings"

	iso8601 "github.com/senseyeio/duration"
)

// DisplayISO8601 strips the "PT" prefix so "PT2H30M" reads as "2H30M"
func DisplayISO8601(input string) string {
	return strings.TrimPrefix(input, "PT")
}

// FromISO8601 converts a time-only ISO-8601 duration into the "Xh Ym" form ToMinutes understands.
// Day components are folded into hours, seconds are dropped.
func FromISO8601(input string) (string, error) {
	duration, err := iso8601.ParseISO8601(input)
	if err != nil {
		return "", err
	}

	totalMinutes := (duration.D*24+duration.TH)*60 + duration.TM

	return Format(totalMinutes), nil
}
