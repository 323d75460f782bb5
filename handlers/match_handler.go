package handlers

import (
	"github.com/CodeWithAdityaKumar/akmovies4upro-ipl-live/services"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type MatchHandler struct {
	MatchService *services.MatchService
}

func NewMatchHandler(matchService *services.MatchService) *MatchHandler {
	return &MatchHandler{
		MatchService: matchService,
	}
}

// GetMatchData serves the composed match record for a match page path.
// The wildcard parameter carries the full upstream path, slashes included.
func (h *MatchHandler) GetMatchData(c *fiber.Ctx) error {
	matchPath := c.Params("*")
	if matchPath == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Match path is required",
		})
	}

	matchInfo, err := h.MatchService.GetMatchData(c.Context(), matchPath)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"match_path": matchPath,
			"error":      err.Error(),
		}).Error("Failed to fetch match data")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to fetch match data",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    matchInfo,
	})
}
