package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/example/cybercalc/internal/questions"
)

// HandleQuestions handles GET /api/questions
// Query params: difficulty (easy, medium, hard or all), count (optional random draw)
func (h *Handlers) HandleQuestions(c *fiber.Ctx) error {
	qs, err := h.bank.QuizQuestions(c.Query("difficulty", questions.DifficultyAll))
	if errors.Is(err, questions.ErrUnknownDifficulty) {
		return errorResponse(c, fiber.StatusBadRequest, "difficulty must be easy, medium, hard or all")
	}
	if err != nil {
		return err
	}

	if raw := c.Query("count"); raw != "" {
		count, err := strconv.Atoi(raw)
		if err != nil || count <= 0 {
			return errorResponse(c, fiber.StatusBadRequest, "count must be a positive integer")
		}
		h.rndMu.Lock()
		qs = questions.Draw(qs, count, h.rnd)
		h.rndMu.Unlock()
	}
	return c.JSON(qs)
}

// HandleChallengeQuestions handles GET /api/challenges
func (h *Handlers) HandleChallengeQuestions(c *fiber.Ctx) error {
	return c.JSON(h.bank.ChallengeQuestions())
}
