package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/example/cybercalc/internal/scoring"
)

// PointsRequest is the body of PATCH /api/user/points
type PointsRequest struct {
	Points *int `json:"points" validate:"required,min=0"`
}

// LivesRequest is the body of PATCH /api/user/lives
type LivesRequest struct {
	Lives *int `json:"lives" validate:"required,min=0,max=3"`
}

// HandleProgress handles GET /api/user/progress
func (h *Handlers) HandleProgress(c *fiber.Ctx) error {
	progress, err := h.scoring.Progress(currentUser(c).ID)
	if errors.Is(err, scoring.ErrUserNotFound) {
		return errorResponse(c, fiber.StatusNotFound, "User progress not found")
	}
	if err != nil {
		return err
	}
	return c.JSON(progress)
}

// HandleSetPoints handles PATCH /api/user/points
func (h *Handlers) HandleSetPoints(c *fiber.Ctx) error {
	var req PointsRequest
	if err := h.parseBody(c, &req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	user, ok := h.store.UpdateUserPoints(currentUser(c).ID, *req.Points)
	if !ok {
		return errorResponse(c, fiber.StatusNotFound, "User not found")
	}
	return c.JSON(fiber.Map{"points": user.Points})
}

// HandleSetLives handles PATCH /api/user/lives
func (h *Handlers) HandleSetLives(c *fiber.Ctx) error {
	var req LivesRequest
	if err := h.parseBody(c, &req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	user, ok := h.store.UpdateUserLives(currentUser(c).ID, *req.Lives)
	if !ok {
		return errorResponse(c, fiber.StatusNotFound, "User not found")
	}
	return c.JSON(fiber.Map{"lives": user.Lives})
}

// HandleLoseLife handles POST /api/user/lose-life
func (h *Handlers) HandleLoseLife(c *fiber.Ctx) error {
	user, err := h.scoring.LoseLife(currentUser(c).ID)
	if errors.Is(err, scoring.ErrUserNotFound) {
		return errorResponse(c, fiber.StatusNotFound, "User not found")
	}
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"lives": user.Lives})
}

// HandleReset handles POST /api/user/reset
func (h *Handlers) HandleReset(c *fiber.Ctx) error {
	user, err := h.scoring.ResetProgress(currentUser(c).ID)
	if errors.Is(err, scoring.ErrUserNotFound) {
		return errorResponse(c, fiber.StatusNotFound, "User not found")
	}
	if err != nil {
		return err
	}
	return c.JSON(user.Progress())
}
