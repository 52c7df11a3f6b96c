package global

import (
	"github.com/travigo/transitmerge/pkg/dataaggregator"
	"github.com/travigo/transitmerge/pkg/dataaggregator/source/busprovider"
	"github.com/travigo/transitmerge/pkg/dataaggregator/source/cachedresults"
	"github.com/travigo/transitmerge/pkg/dataaggregator/source/itineraryplanner"
	"github.com/travigo/transitmerge/pkg/dataaggregator/source/railprovider"
	"github.com/travigo/transitmerge/pkg/dataaggregator/source/stationdirectory"
	"github.com/travigo/transitmerge/pkg/providers"
)

type Options struct {
	// Cache is handed to the itinerary planner when set
	Cache *cachedresults.Cache
}

func Setup(options Options) {
	dataaggregator.GlobalAggregator = dataaggregator.Aggregator{}

	configured := providers.LoadConfigured()

	dataaggregator.GlobalAggregator.RegisterSource(stationdirectory.Source{})

	rail := providers.Get(configured, providers.KindRail)
	if rail != nil {
		dataaggregator.GlobalAggregator.RegisterSource(railprovider.New(rail))
	}

	bus := providers.Get(configured, providers.KindBus)
	if bus != nil {
		dataaggregator.GlobalAggregator.RegisterSource(busprovider.Source{Provider: bus})
	}

	planner := itineraryplanner.Source{
		Aggregator: &dataaggregator.GlobalAggregator,
	}
	if rail != nil {
		planner.TaskTimeout = rail.Timeout()
	}
	if options.Cache != nil {
		planner.Cache = options.Cache
	}
	dataaggregator.GlobalAggregator.RegisterSource(planner)
}
