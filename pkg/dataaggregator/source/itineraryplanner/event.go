package itineraryplanner

import (
	"fmt"
	"time"

	"github.com/travigo/transitmerge/pkg/ctdf"
	"github.com/travigo/transitmerge/pkg/dataaggregator"
	"github.com/travigo/transitmerge/pkg/dataaggregator/query"
	"github.com/travigo/transitmerge/pkg/elastic_client"
	"github.com/travigo/transitmerge/pkg/util"
)

const maxEventFilterLength = 256

type planEvent struct {
	Timestamp   time.Time `json:"timestamp"`
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	Date        string    `json:"date,omitempty"`

	Trains bool   `json:"trains"`
	Buses  bool   `json:"buses"`
	Filter string `json:"filter,omitempty"`

	Calls       int `json:"calls"`
	FailedCalls int `json:"failedCalls"`
	Itineraries int `json:"itineraries"`

	FastestMinutes int   `json:"fastestMinutes,omitempty"`
	DurationMS     int64 `json:"durationMs"`
}

func recordPlanEvent(q query.ItineraryPlan, batches []dataaggregator.Batch, itineraries []*ctdf.AggregatedItinerary, took time.Duration) {
	event := planEvent{
		Timestamp:   time.Now(),
		Origin:      q.Origin,
		Destination: q.Destination,
		Trains:      q.IncludeTrains,
		Buses:       q.IncludeBuses,
		Filter:      util.TrimString(q.FilterExpression, maxEventFilterLength),
		Calls:       len(batches),
		FailedCalls: dataaggregator.FailedBatches(batches),
		Itineraries: len(itineraries),
		DurationMS:  took.Milliseconds(),
	}

	if q.Date != nil {
		event.Date = q.Date.Format("2006-01-02")
	}
	if len(itineraries) > 0 && len(itineraries[0].Legs) > 0 && itineraries[0].Legs[0].HasKnownDuration() {
		event.FastestMinutes = itineraries[0].RankKey
	}

	elastic_client.IndexDocument(fmt.Sprintf("transitmerge-plans-%d-%02d", event.Timestamp.Year(), event.Timestamp.Month()), event)
}
