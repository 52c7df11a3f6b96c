package query

import "time"

type BusesBetweenCities struct {
	FromCity string
	ToCity   string
	Date     time.Time
}
