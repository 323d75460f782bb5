package handlers

import (
	"regexp"

	"github.com/CodeWithAdityaKumar/akmovies4upro-ipl-live/services"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type SquadHandler struct {
	SquadExtractor *services.SquadExtractor
}

func NewSquadHandler(squadExtractor *services.SquadExtractor) *SquadHandler {
	return &SquadHandler{
		SquadExtractor: squadExtractor,
	}
}

var squadPathIDRegexes = []*regexp.Regexp{
	regexp.MustCompile(`/(\d+)/`),
	regexp.MustCompile(`-(\d+)-`),
	regexp.MustCompile(`/cricket-scores/(\d+)/`),
	regexp.MustCompile(`/live-cricket-scores/(\d+)/`),
}

// GetSquads serves squad data for a numeric match ID.
func (h *SquadHandler) GetSquads(c *fiber.Ctx) error {
	matchID := c.Params("matchId")
	if matchID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Match ID is required",
		})
	}

	squadData, err := h.SquadExtractor.ExtractSquadData(c.Context(), matchID, "")
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"match_id": matchID,
			"error":    err.Error(),
		}).Error("Failed to fetch squad data")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to fetch squad data",
			"error":   err.Error(),
		})
	}

	if squadData == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Squad data not found for this match",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    squadData,
	})
}

// DebugSquads serves squad data for a full match path, deriving the match
// ID the same way the match pipeline does.
func (h *SquadHandler) DebugSquads(c *fiber.Ctx) error {
	matchPath := c.Params("*")
	if matchPath == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Match path is required",
		})
	}

	matchID := ""
	for _, pattern := range squadPathIDRegexes {
		if m := pattern.FindStringSubmatch(matchPath); m != nil {
			matchID = m[1]
			break
		}
	}
	if matchID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Could not extract match ID from path",
		})
	}

	squadData, err := h.SquadExtractor.ExtractSquadData(c.Context(), matchID, matchPath)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"match_path": matchPath,
			"error":      err.Error(),
		}).Error("Failed to fetch squad data")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to fetch squad data",
			"error":   err.Error(),
		})
	}

	if squadData == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Squad data not found for this match",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    squadData,
	})
}
