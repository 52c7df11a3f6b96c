package routes

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/travigo/transitmerge/pkg/ctdf"
	"github.com/travigo/transitmerge/pkg/dataaggregator"
	"golang.org/x/exp/slices"
)

var detailLevels = []string{"basic", "detailed"}

func detailGroups(c *fiber.Ctx) ([]string, bool) {
	detail := c.Query("detail", "basic")
	if !slices.Contains(detailLevels, detail) {
		return nil, false
	}

	if detail == "detailed" {
		return detailLevels, true
	}

	return []string{"basic"}, true
}

func sendSuccess(c *fiber.Ctx, data any) error {
	groups, ok := detailGroups(c)
	if !ok {
		return sendFailure(c, fiber.StatusBadRequest, "Parameter detail should be basic or detailed")
	}

	reducedData, err := sheriff.Marshal(&sheriff.Options{
		Groups: groups,
	}, data)
	if err != nil {
		return sendFailure(c, fiber.StatusInternalServerError, "Failed to reduce data")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    reducedData,
	})
}

func sendFailure(c *fiber.Ctx, status int, message string) error {
	c.Status(status)
	return c.JSON(fiber.Map{
		"success": false,
		"data":    message,
	})
}

func sendError(c *fiber.Ctx, err error) error {
	return sendFailure(c, statusForError(err), err.Error())
}

// statusForError maps upstream failures onto HTTP statuses
func statusForError(err error) int {
	var aggregationError *dataaggregator.AggregationError

	switch {
	case errors.As(err, &aggregationError):
		return fiber.StatusBadGateway
	case ctdf.IsKind(err, ctdf.ErrorKindUpstreamSemantic):
		return fiber.StatusNotFound
	case ctdf.IsKind(err, ctdf.ErrorKindTransport),
		ctdf.IsKind(err, ctdf.ErrorKindUpstreamFormat),
		ctdf.IsKind(err, ctdf.ErrorKindMalformedRecord):
		return fiber.StatusBadGateway
	case errors.Is(err, dataaggregator.ErrNoSource):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}
