package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/example/cybercalc/internal/scoring"
	"github.com/example/cybercalc/pkg/models"
)

// QuizRequest is the body of POST /api/quizzes. Score is the raw score before the
// difficulty multiplier.
type QuizRequest struct {
	Difficulty string `json:"difficulty" validate:"required,oneof=easy medium hard"`
	Score      *int   `json:"score" validate:"required,min=0"`
}

// ChallengeRequest is the body of POST /api/challenges
type ChallengeRequest struct {
	Score *int `json:"score" validate:"required,min=0"`
}

// HandleCreateQuiz handles POST /api/quizzes
func (h *Handlers) HandleCreateQuiz(c *fiber.Ctx) error {
	var req QuizRequest
	if err := h.parseBody(c, &req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid quiz data")
	}

	quiz, err := h.scoring.AwardQuizCompletion(currentUser(c).ID, models.Difficulty(req.Difficulty), *req.Score)
	switch {
	case errors.Is(err, scoring.ErrUnknownDifficulty):
		return errorResponse(c, fiber.StatusBadRequest, "Invalid quiz data")
	case errors.Is(err, scoring.ErrUserNotFound):
		return errorResponse(c, fiber.StatusNotFound, "User not found")
	case err != nil:
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(quiz)
}

// HandleListQuizzes handles GET /api/quizzes
func (h *Handlers) HandleListQuizzes(c *fiber.Ctx) error {
	return c.JSON(h.store.GetQuizzesByUserID(currentUser(c).ID))
}

// HandleCreateChallenge handles POST /api/challenges
func (h *Handlers) HandleCreateChallenge(c *fiber.Ctx) error {
	var req ChallengeRequest
	if err := h.parseBody(c, &req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid challenge data")
	}

	challenge, err := h.scoring.AwardChallengeCompletion(currentUser(c).ID, *req.Score)
	if errors.Is(err, scoring.ErrUserNotFound) {
		return errorResponse(c, fiber.StatusNotFound, "User not found")
	}
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(challenge)
}

// HandleListChallenges handles GET /api/challenges/history
func (h *Handlers) HandleListChallenges(c *fiber.Ctx) error {
	return c.JSON(h.store.GetChallengesByUserID(currentUser(c).ID))
}
