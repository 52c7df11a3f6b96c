// Package traveltime turns the duration strings returned by upstream providers into comparable minute counts.
//
// Accepted shapes, in order:
//   - "5h 30m", "5h", "45m": hour and minute tokens, either may be missing
//   - "08:30:00", "08:30": hours and minutes separated by colons, seconds are ignored
//
// ISO-8601 durations ("PT2H30M") are not read by ToMinutes. Callers holding one convert it with FromISO8601 first.
package traveltime

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/travigo/transitmerge/pkg/ctdf"
)

var hoursToken = regexp.MustCompile(`(\d+)h`)
var minutesToken = regexp.MustCompile(`(\d+)m`)
var railTravelTime = regexp.MustCompile(`^\s*(\d{1,3})\s*[.:]\s*(\d{1,2})\s*(?:hrs?|hours?)?\s*$`)

// ToMinutes returns ctdf.DurationUnknown when the input matches no known shape
func ToMinutes(input string) int {
	if strings.Contains(input, "h") || strings.Contains(input, "m") {
		return tokenMinutes(input)
	}

	if strings.Contains(input, ":") {
		return clockMinutes(input)
	}

	return ctdf.DurationUnknown
}

// tokenMinutes needs at least one numeric token, "--.-- hrs" is unknown rather than 0
func tokenMinutes(input string) int {
	total := 0
	matched := false

	if match := hoursToken.FindStringSubmatch(input); match != nil {
		matched = true
		hours, err := strconv.Atoi(match[1])
		if err != nil {
			return ctdf.DurationUnknown
		}
		total += hours * 60
	}

	if match := minutesToken.FindStringSubmatch(input); match != nil {
		matched = true
		minutes, err := strconv.Atoi(match[1])
		if err != nil {
			return ctdf.DurationUnknown
		}
		total += minutes
	}

	if !matched {
		return ctdf.DurationUnknown
	}

	return total
}

func clockMinutes(input string) int {
	parts := strings.Split(strings.TrimSpace(input), ":")
	if len(parts) < 2 {
		return ctdf.DurationUnknown
	}

	hours, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || hours < 0 {
		return ctdf.DurationUnknown
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || minutes < 0 {
		return ctdf.DurationUnknown
	}

	return hours*60 + minutes
}

// NormaliseRailTravelTime rewrites the rail provider's "16.35 hrs" / "16:35" travel times as "16h 35m".
// Anything it does not recognise is returned untouched.
func NormaliseRailTravelTime(input string) string {
	match := railTravelTime.FindStringSubmatch(input)
	if match == nil {
		return input
	}

	hours, _ := strconv.Atoi(match[1])
	minutes, _ := strconv.Atoi(match[2])

	return Format(hours*60 + minutes)
}

// Format renders minutes as "Xh Ym", "Xh" or "Ym"
func Format(totalMinutes int) string {
	if totalMinutes == ctdf.DurationUnknown || totalMinutes < 0 {
		return "unknown"
	}

	hours := totalMinutes / 60
	minutes := totalMinutes % 60

	switch {
	case hours > 0 && minutes > 0:
		return strconv.Itoa(hours) + "h " + strconv.Itoa(minutes) + "m"
	case hours > 0:
		return strconv.Itoa(hours) + "h"
	default:
		return strconv.Itoa(minutes) + "m"
	}
}
