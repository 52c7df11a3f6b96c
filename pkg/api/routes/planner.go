package routes

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/travigo/transitmerge/pkg/ctdf"
	"github.com/travigo/transitmerge/pkg/dataaggregator"
	"github.com/travigo/transitmerge/pkg/dataaggregator/query"
	"github.com/travigo/transitmerge/pkg/util"
)

const maxPlanCount = 50

func PlannerRouter(router fiber.Router) {
	router.Get("/:origin/:destination", getPlan)
}

func getPlan(c *fiber.Ctx) error {
	plan := query.ItineraryPlan{
		Origin:      c.Params("origin"),
		Destination: c.Params("destination"),
	}

	var err error

	if plan.IncludeTrains, err = strconv.ParseBool(c.Query("train", "true")); err != nil {
		return sendFailure(c, fiber.StatusBadRequest, "Parameter train should be a boolean")
	}
	if plan.IncludeBuses, err = strconv.ParseBool(c.Query("bus", "true")); err != nil {
		return sendFailure(c, fiber.StatusBadRequest, "Parameter bus should be a boolean")
	}

	plan.Limit, err = strconv.Atoi(c.Query("count", strconv.Itoa(dataaggregator.DefaultLimit)))
	if err != nil || plan.Limit < 1 || plan.Limit > maxPlanCount {
		return sendFailure(c, fiber.StatusBadRequest, "Parameter count should be an integer between 1 and 50")
	}

	if dateString := c.Query("date"); dateString != "" {
		date, err := util.ParseCalendarDate(dateString)
		if err != nil {
			return sendFailure(c, fiber.StatusBadRequest, "Parameter date should be a YYYY-MM-DD date")
		}
		plan.Date = &date
	}

	if filterExpression := c.Query("filter"); filterExpression != "" {
		plan.FilterExpression = filterExpression
		plan.Filter, err = dataaggregator.CompileFilter(filterExpression)
		if err != nil {
			return sendFailure(c, fiber.StatusBadRequest, "Parameter filter is not a valid expression: "+err.Error())
		}
	}

	if !plan.IncludeTrains && !plan.IncludeBuses {
		return sendFailure(c, fiber.StatusBadRequest, "At least one of train or bus must be requested")
	}

	itineraries, err := dataaggregator.Lookup[[]*ctdf.AggregatedItinerary](c.UserContext(), plan)
	if err != nil {
		return sendError(c, err)
	}

	return sendSuccess(c, itineraries)
}
