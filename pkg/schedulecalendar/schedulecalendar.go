// Package schedulecalendar maps calendar dates onto the rail provider's running-days mask.
//
// The provider's 7 character mask does not start on Sunday or Monday. Index 0 is Thursday:
//
//	index  0    1    2    3    4    5    6
//	day    Thu  Fri  Sat  Sun  Mon  Tue  Wed
//
// Dates are naive calendar dates, no timezone adjustment is made.
package schedulecalendar

import (
	"fmt"
	"time"

	"github.com/travigo/transitmerge/pkg/ctdf"
	"github.com/travigo/transitmerge/pkg/util"
)

var providerDayIndex = [7]int{
	time.Sunday:    3,
	time.Monday:    4,
	time.Tuesday:   5,
	time.Wednesday: 6,
	time.Thursday:  0,
	time.Friday:    1,
	time.Saturday:  2,
}

// DayIndex returns the mask index for the given date
func DayIndex(day int, month int, year int) (int, error) {
	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)

	// time.Date normalises out of range values, reject them instead of silently moving the date
	if date.Day() != day || int(date.Month()) != month || date.Year() != year {
		return 0, fmt.Errorf("invalid calendar date %04d-%02d-%02d", year, month, day)
	}

	return DayIndexForWeekday(date.Weekday()), nil
}

func DayIndexForWeekday(weekday time.Weekday) int {
	return providerDayIndex[weekday]
}

// DayIndexForTime uses the calendar date of t in its own location
func DayIndexForTime(t time.Time) int {
	return DayIndexForWeekday(t.Weekday())
}

// FilterByDate keeps the legs whose running-days mask has a '1' at dayIndex.
// Legs without a well formed mask (buses, truncated records) are dropped as their running days are unknown.
func FilterByDate(legs []*ctdf.TransitLeg, dayIndex int) []*ctdf.TransitLeg {
	filtered := make([]*ctdf.TransitLeg, len(legs))
	copy(filtered, legs)

	util.InPlaceFilter(&filtered, func(leg *ctdf.TransitLeg) bool {
		return leg.RunningDays.Valid() && leg.RunningDays.RunsOn(dayIndex)
	})

	return filtered
}
