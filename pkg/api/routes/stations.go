package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/transitmerge/pkg/ctdf"
	"github.com/travigo/transitmerge/pkg/dataaggregator"
	"github.com/travigo/transitmerge/pkg/dataaggregator/query"
)

func StationsRouter(router fiber.Router) {
	router.Get("/:query", getStations)
}

func getStations(c *fiber.Ctx) error {
	stations, err := dataaggregator.Lookup[[]*ctdf.Station](c.UserContext(), query.Station{
		Query: c.Params("query"),
		Limit: c.QueryInt("count", query.DefaultStationCandidates),
	})
	if err != nil {
		return sendError(c, err)
	}

	if len(stations) == 0 {
		return sendFailure(c, fiber.StatusNotFound, "No station found for "+c.Params("query"))
	}

	return sendSuccess(c, stations)
}
