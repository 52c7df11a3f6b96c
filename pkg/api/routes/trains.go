package routes

import (
	"regexp"

	"github.com/gofiber/fiber/v2"
	"github.com/travigo/transitmerge/pkg/ctdf"
	"github.com/travigo/transitmerge/pkg/dataaggregator"
	"github.com/travigo/transitmerge/pkg/dataaggregator/query"
	"github.com/travigo/transitmerge/pkg/util"
)

var trainNumberRegex = regexp.MustCompile(`^\d{4,5}$`)

func TrainsRouter(router fiber.Router) {
	router.Get("/between/:from/:to", getTrainsBetweenStations)
	router.Get("/:number/route", getTrainRoute)
	router.Get("/:number", getTrain)
}

func getTrainsBetweenStations(c *fiber.Ctx) error {
	between := query.TrainsBetweenStations{
		FromStationCode: c.Params("from"),
		ToStationCode:   c.Params("to"),
	}

	if dateString := c.Query("date"); dateString != "" {
		date, err := util.ParseCalendarDate(dateString)
		if err != nil {
			return sendFailure(c, fiber.StatusBadRequest, "Parameter date should be a YYYY-MM-DD date")
		}
		between.Date = &date
	}

	legs, err := dataaggregator.Lookup[[]*ctdf.TransitLeg](c.UserContext(), between)
	if err != nil {
		return sendError(c, err)
	}

	return sendSuccess(c, legs)
}

func getTrain(c *fiber.Ctx) error {
	trainNumber := c.Params("number")
	if !trainNumberRegex.MatchString(trainNumber) {
		return sendFailure(c, fiber.StatusBadRequest, "Train number should be 4 or 5 digits")
	}

	identity, err := dataaggregator.Lookup[*ctdf.TrainIdentity](c.UserContext(), query.TrainLookup{
		TrainNumber: trainNumber,
	})
	if err != nil {
		return sendError(c, err)
	}

	return sendSuccess(c, identity)
}

func getTrainRoute(c *fiber.Ctx) error {
	trainNumber := c.Params("number")
	if !trainNumberRegex.MatchString(trainNumber) {
		return sendFailure(c, fiber.StatusBadRequest, "Train number should be 4 or 5 digits")
	}

	stops, err := dataaggregator.Lookup[[]*ctdf.RouteStop](c.UserContext(), query.TrainRoute{
		TrainNumber: trainNumber,
	})
	if err != nil {
		return sendError(c, err)
	}

	return sendSuccess(c, stops)
}
