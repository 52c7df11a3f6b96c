package query

import (
	"fmt"
	"time"

	"github.com/expr-lang/expr/vm"
)

type ItineraryPlan struct {
	Origin      string
	Destination string
	Date        *time.Time

	IncludeTrains bool
	IncludeBuses  bool

	Limit int

	// FilterExpression is the source text of Filter and is part of the cache key
	FilterExpression string
	Filter           *vm.Program
}

// BusDate is the journey date sent to the bus provider, today when no date was requested
func (p *ItineraryPlan) BusDate(now time.Time) time.Time {
	if p.Date != nil {
		return *p.Date
	}

	return now
}

// CacheKey identifies a plan. An undated plan that includes buses is keyed on the
// day it was made, as its bus search depends on it.
func (p *ItineraryPlan) CacheKey(now time.Time) string {
	date := ""
	switch {
	case p.Date != nil:
		date = p.Date.Format("2006-01-02")
	case p.IncludeBuses:
		date = "today=" + now.Format("2006-01-02")
	}

	return fmt.Sprintf("plan:%s|%s|%s|train=%t|bus=%t|%d|%s",
		p.Origin, p.Destination, date, p.IncludeTrains, p.IncludeBuses, p.Limit, p.FilterExpression)
}
