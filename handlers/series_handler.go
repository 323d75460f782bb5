package handlers

import (
	"github.com/CodeWithAdityaKumar/akmovies4upro-ipl-live/models"
	"github.com/CodeWithAdityaKumar/akmovies4upro-ipl-live/services"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type SeriesHandler struct {
	SeriesService *services.SeriesService
}

func NewSeriesHandler(seriesService *services.SeriesService) *SeriesHandler {
	return &SeriesHandler{
		SeriesService: seriesService,
	}
}

// GetIPLMatches serves the tournament schedule listing. An empty listing is
// a success with an empty matches array, not an error.
func (h *SeriesHandler) GetIPLMatches(c *fiber.Ctx) error {
	matches, err := h.SeriesService.GetIPLMatches()
	if err != nil {
		logrus.WithField("error", err.Error()).Error("Failed to fetch IPL matches")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to fetch IPL matches data",
			"error":   err.Error(),
		})
	}

	if matches == nil {
		matches = []models.MatchSummary{}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"matches": matches,
	})
}
