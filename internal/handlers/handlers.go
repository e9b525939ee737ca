// Package handlers exposes the storage and scoring operations over HTTP.
package handlers

import (
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/example/cybercalc/internal/auth"
	"github.com/example/cybercalc/internal/leaderboard"
	"github.com/example/cybercalc/internal/questions"
	"github.com/example/cybercalc/internal/scoring"
	"github.com/example/cybercalc/pkg/models"
)

// Store is the subset of the entity store read and written directly by handlers
type Store interface {
	GetUserByUsername(username string) (*models.User, bool)
	UpdateUserPoints(id, points int) (*models.User, bool)
	UpdateUserLives(id, lives int) (*models.User, bool)
	GetQuizzesByUserID(userID int) []models.Quiz
	GetChallengesByUserID(userID int) []models.Challenge
}

// Deps are the services the handlers are wired to
type Deps struct {
	Store       Store
	Scoring     *scoring.Service
	Leaderboard *leaderboard.Service
	Auth        *auth.Service
	Gate        *auth.Gate
	Questions   *questions.Bank
	Logger      *slog.Logger
}

// Handlers contains the HTTP handlers of the API
type Handlers struct {
	store    Store
	scoring  *scoring.Service
	board    *leaderboard.Service
	auth     *auth.Service
	gate     *auth.Gate
	bank     *questions.Bank
	validate *validator.Validate
	log      *slog.Logger

	rndMu sync.Mutex
	rnd   *rand.Rand
}

// New creates the handlers
func New(deps Deps) *Handlers {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{
		store:    deps.Store,
		scoring:  deps.Scoring,
		board:    deps.Leaderboard,
		auth:     deps.Auth,
		gate:     deps.Gate,
		bank:     deps.Questions,
		validate: validator.New(),
		log:      logger.With("component", "http"),
		rnd:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Register mounts every route on the router
func (h *Handlers) Register(r fiber.Router) {
	api := r.Group("/api")

	api.Post("/register", h.HandleRegister)
	api.Post("/login", h.HandleLogin)
	api.Post("/logout", h.HandleLogout)

	api.Get("/leaderboard", h.HandleLeaderboard)
	api.Get("/leaderboard/export", h.HandleLeaderboardExport)
	api.Get("/leaderboard/rank", h.gate.RequireUser, h.HandleRank)
	api.Get("/questions", h.HandleQuestions)
	api.Get("/challenges", h.HandleChallengeQuestions)

	user := api.Group("/user", h.gate.RequireUser)
	user.Get("/", h.HandleCurrentUser)
	user.Get("/progress", h.HandleProgress)
	user.Patch("/points", h.HandleSetPoints)
	user.Patch("/lives", h.HandleSetLives)
	user.Post("/lose-life", h.HandleLoseLife)
	user.Post("/reset", h.HandleReset)

	api.Post("/quizzes", h.gate.RequireUser, h.HandleCreateQuiz)
	api.Get("/quizzes", h.gate.RequireUser, h.HandleListQuizzes)
	api.Post("/challenges", h.gate.RequireUser, h.HandleCreateChallenge)
	api.Get("/challenges/history", h.gate.RequireUser, h.HandleListChallenges)
}

// errorResponse writes {"message": msg} with the status
func errorResponse(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"message": msg})
}

// parseBody decodes and validates the JSON body into req
func (h *Handlers) parseBody(c *fiber.Ctx, req interface{}) error {
	if err := c.BodyParser(req); err != nil {
		return err
	}
	return h.validate.Struct(req)
}

// currentUser returns the user stored by the gate middleware
func currentUser(c *fiber.Ctx) *models.User {
	user, ok := auth.UserFromContext(c)
	if !ok {
		// Routes using currentUser are always behind RequireUser
		panic("handlers: route is missing the RequireUser middleware")
	}
	return user
}
