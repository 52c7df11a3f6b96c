package dataaggregator

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/rs/zerolog/log"
	"github.com/travigo/transitmerge/pkg/dataaggregator/source"
	"golang.org/x/exp/slices"
)

var ErrNoSource = errors.New("Failed to find a matching Data Source for type")

type Aggregator struct {
	Sources []DataSource
}

var GlobalAggregator Aggregator

func (a *Aggregator) RegisterSource(source DataSource) {
	a.Sources = append(a.Sources, source)

	log.Debug().Str("name", source.GetName()).Msg("Registering new Data Source")
}

// Lookup asks the global aggregator
func Lookup[T any](ctx context.Context, query any) (T, error) {
	return LookupFrom[T](ctx, &GlobalAggregator, query)
}

// LookupFrom tries every source supporting T in registration order.
// A source answering with source.UnsupportedSourceError hands the query on to the next one.
func LookupFrom[T any](ctx context.Context, aggregator *Aggregator, query any) (T, error) {
	var empty T

	lookupType := reflect.TypeOf(*new(T))
	if lookupType.Kind() == reflect.Pointer {
		lookupType = lookupType.Elem()
	}

	for _, dataSource := range aggregator.Sources {
		if !slices.Contains(dataSource.Supports(), lookupType) {
			continue
		}

		returnValue, err := dataSource.Lookup(ctx, query)
		if errors.Is(err, source.UnsupportedSourceError) {
			continue
		}

		if returnValue == nil {
			return empty, err
		}

		typed, ok := returnValue.(T)
		if !ok {
			return empty, fmt.Errorf("source %s returned %T for lookup of %s", dataSource.GetName(), returnValue, lookupType)
		}

		return typed, err
	}

	return empty, ErrNoSource
}
