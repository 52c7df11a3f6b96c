package global

import (
	"github.com/rs/zerolog/log"
	"github.com/travigo/transitmerge/pkg/dataaggregator/source/cachedresults"
	"github.com/travigo/transitmerge/pkg/database"
	"github.com/travigo/transitmerge/pkg/elastic_client"
	"github.com/travigo/transitmerge/pkg/redis_client"
	"github.com/travigo/transitmerge/pkg/util"
)

// Connect opens every optional backing service that is configured and
// returns the Options to Setup with. Nothing here is fatal, the planner
// works against the upstream providers alone.
func Connect() Options {
	var options Options

	env := util.GetEnvironmentVariables()

	if env["TRAVIGO_MONGODB_CONNECTION"] != "" {
		if err := database.Connect(); err != nil {
			log.Warn().Err(err).Msg("Station directory unavailable, only station codes will resolve")
		}
	}

	if err := elastic_client.Connect(false); err != nil {
		log.Warn().Err(err).Msg("Failed to connect to Elasticsearch")
	}

	if env["TRAVIGO_REDIS_ADDRESS"] != "" {
		if err := redis_client.Connect(); err != nil {
			log.Warn().Err(err).Msg("Result cache disabled")
		} else {
			options.Cache = &cachedresults.Cache{}
			options.Cache.Setup()
		}
	}

	return options
}
