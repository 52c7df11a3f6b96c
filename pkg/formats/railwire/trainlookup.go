package railwire

import (
	"strings"

	"github.com/travigo/transitmerge/pkg/ctdf"
)

// DecodeTrainLookup reads the provider's answer to a train number search.
// The returned InternalID is what route listings are requested with.
func (d *Decoder) DecodeTrainLookup(payload string) ctdf.Result[*ctdf.TrainIdentity] {
	fieldMap := d.Schema.TrainLookup

	template := decodeTemplate[*ctdf.TrainIdentity]{
		mode:           ModeTrainLookup,
		statusSentinel: SentinelInvalidTrainNumber,
		records: func(payload string) (*ctdf.TrainIdentity, error) {
			marked := markedRecords(payload)
			if len(marked) == 0 {
				return nil, malformed(ModeTrainLookup, "no train record in payload")
			}

			fields := marked[0]
			if len(fields) < fieldMap.MinFields {
				return nil, malformed(ModeTrainLookup, "train record is too short")
			}

			identity := &ctdf.TrainIdentity{
				TrainNumber:     strings.TrimLeft(fieldMap.Get(fields, FieldTrainNumber), "^"),
				TrainName:       fieldMap.Get(fields, FieldTrainName),
				InternalID:      fieldMap.Get(fields, FieldInternalID),
				OriginName:      fieldMap.Get(fields, FieldSourceStationName),
				OriginCode:      fieldMap.Get(fields, FieldSourceStationCode),
				DestinationName: fieldMap.Get(fields, FieldDestinationStationName),
				DestinationCode: fieldMap.Get(fields, FieldDestinationStationCode),
				RunningDays:     ctdf.RunningDays(fieldMap.Get(fields, FieldRunningDays)),
			}

			if identity.InternalID == "" {
				return nil, malformed(ModeTrainLookup, "train record has no internal id")
			}

			return identity, nil
		},
	}

	return template.run(d.Schema, payload)
}
