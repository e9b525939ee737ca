package handlers

import (
	"bytes"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/example/cybercalc/internal/excel"
	"github.com/example/cybercalc/internal/leaderboard"
)

// MaxLeaderboardLimit caps the limit query parameter
const MaxLeaderboardLimit = 100

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// parseLimit reads the limit query parameter: default 10, capped at MaxLeaderboardLimit
func parseLimit(c *fiber.Ctx) (int, error) {
	raw := c.Query("limit")
	if raw == "" {
		return leaderboard.DefaultLimit, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if limit > MaxLeaderboardLimit {
		limit = MaxLeaderboardLimit
	}
	return limit, nil
}

// HandleLeaderboard handles GET /api/leaderboard
// Query params: limit (optional)
func (h *Handlers) HandleLeaderboard(c *fiber.Ctx) error {
	limit, err := parseLimit(c)
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "limit must be an integer")
	}
	return c.JSON(h.board.Top(limit))
}

// HandleLeaderboardExport handles GET /api/leaderboard/export
// Query params: limit (optional)
func (h *Handlers) HandleLeaderboardExport(c *fiber.Ctx) error {
	limit, err := parseLimit(c)
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "limit must be an integer")
	}

	var buf bytes.Buffer
	if err := excel.WriteLeaderboard(&buf, h.board.Top(limit)); err != nil {
		h.log.Error("failed to export leaderboard", "error", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Failed to export leaderboard")
	}

	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Attachment("leaderboard.xlsx")
	return c.Send(buf.Bytes())
}

// HandleRank handles GET /api/leaderboard/rank
func (h *Handlers) HandleRank(c *fiber.Ctx) error {
	user := currentUser(c)
	rank, ok := h.board.Rank(user.ID)
	if !ok {
		return errorResponse(c, fiber.StatusNotFound, "User not found")
	}
	return c.JSON(fiber.Map{"userId": user.ID, "rank": rank})
}
