package query

import (
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

const DefaultStationCandidates = 2

type Station struct {
	Query string
	Limit int
}

func (s *Station) ToBson() bson.M {
	search := strings.TrimSpace(s.Query)
	prefix := "^" + regexp.QuoteMeta(search)

	return bson.M{
		"$or": bson.A{
			bson.M{"code": strings.ToUpper(search)},
			bson.M{"name": bson.M{"$regex": prefix, "$options": "i"}},
			bson.M{"city": bson.M{"$regex": prefix, "$options": "i"}},
			bson.M{"aliases": bson.M{"$regex": prefix, "$options": "i"}},
		},
	}
}
