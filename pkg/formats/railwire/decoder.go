// Package railwire decodes the rail provider's positional "~" separated text payloads.
//
// Every mode runs through the same template: sentinel detection on the payload preamble, then record splitting with a
// mode specific field map from the active Schema. Panics raised while decoding are recovered and returned as failures.
package railwire

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/travigo/transitmerge/pkg/ctdf"
	"github.com/travigo/transitmerge/pkg/util"
)

type Mode string

const (
	ModeBetweenStations Mode = "BETWEEN_STATIONS"
	ModeRoute           Mode = "ROUTE"
	ModeTrainLookup     Mode = "TRAIN_LOOKUP"
)

const (
	segmentSeparator = "~~~~~~~~"
	recordMarker     = "~^"
	fieldSeparator   = "~"
)

const (
	SentinelNoDirectTrains      = "No direct trains found"
	SentinelInvalidTrainNumber  = "Invalid Train Number"
	SentinelTryAgain            = "~~~~~Please try again after some time."
	SentinelFromStationNotFound = "~~~~~From station not found"
	SentinelToStationNotFound   = "~~~~~To station not found"
)

// providerSentinels are compared against the whole first segment in every mode
var providerSentinels = []string{
	SentinelTryAgain,
	SentinelFromStationNotFound,
	SentinelToStationNotFound,
}

type Decoder struct {
	Schema Schema
}

func NewDecoder() *Decoder {
	return &Decoder{Schema: SchemaV1}
}

// decodeTemplate is the shared shape of every mode
type decodeTemplate[T any] struct {
	mode Mode

	// statusSentinel is matched against the preamble status token, empty disables the status check
	statusSentinel string

	records func(payload string) (T, error)
}

func (t decodeTemplate[T]) run(schema Schema, payload string) (result ctdf.Result[T]) {
	defer func() {
		if recovered := recover(); recovered != nil {
			log.Debug().Str("mode", string(t.mode)).Interface("panic", recovered).Msg("Recovered while decoding rail payload")
			result = ctdf.Failure[T](ctdf.ErrorKindUpstreamFormat, fmt.Sprintf("failed to decode %s payload: %v", t.mode, recovered))
		}
	}()

	firstSegment := strings.Split(payload, segmentSeparator)[0]

	if t.statusSentinel != "" {
		preamble := strings.Split(firstSegment, fieldSeparator)
		if len(preamble) <= schema.StatusField {
			return ctdf.Failure[T](ctdf.ErrorKindUpstreamFormat, fmt.Sprintf("unrecognised %s payload: status field missing", t.mode))
		}

		status := strings.Split(preamble[schema.StatusField], "<")[0]
		if status == t.statusSentinel {
			return ctdf.Failure[T](ctdf.ErrorKindUpstreamSemantic, status)
		}
	}

	for _, sentinel := range providerSentinels {
		if firstSegment == sentinel {
			return ctdf.Failure[T](ctdf.ErrorKindUpstreamSemantic, strings.TrimLeft(firstSegment, fieldSeparator))
		}
	}

	data, err := t.records(payload)
	if err != nil {
		return ctdf.FailureFromError[T](err)
	}

	return ctdf.Success(data)
}

// splitFields splits a record on "~" and drops the empty tokens left by repeated separators
func splitFields(record string) []string {
	return util.NonEmpty(strings.Split(record, fieldSeparator))
}

// markedRecords returns the field lists of every segment carrying exactly one record marker
func markedRecords(payload string) [][]string {
	var records [][]string

	for _, segment := range strings.Split(payload, segmentSeparator) {
		if segment == "" {
			continue
		}

		parts := strings.Split(segment, recordMarker)
		if len(parts) != 2 {
			continue
		}

		records = append(records, splitFields(parts[1]))
	}

	return records
}

func malformed(mode Mode, message string) error {
	return &ctdf.UpstreamError{
		Kind:    ctdf.ErrorKindMalformedRecord,
		Message: fmt.Sprintf("%s: %s", mode, message),
	}
}
