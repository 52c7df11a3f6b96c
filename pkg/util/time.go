package util

import (
	"time"
)

// ParseCalendarDate parses YYYY-MM-DD as a naive date in UTC
func ParseCalendarDate(value string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", value, time.UTC)
}
