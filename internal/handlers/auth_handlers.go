package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/example/cybercalc/internal/auth"
	"github.com/example/cybercalc/internal/storage"
)

// CredentialsRequest is the body of register and login
type CredentialsRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,max=128"`
}

// HandleRegister handles POST /api/register
func (h *Handlers) HandleRegister(c *fiber.Ctx) error {
	var req CredentialsRequest
	if err := h.parseBody(c, &req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if _, exists := h.store.GetUserByUsername(req.Username); exists {
		return errorResponse(c, fiber.StatusBadRequest, "Username already exists")
	}

	user, err := h.auth.Register(req.Username, req.Password)
	if errors.Is(err, storage.ErrUsernameTaken) {
		return errorResponse(c, fiber.StatusBadRequest, "Username already exists")
	}
	if err != nil {
		h.log.Error("failed to register user", "username", req.Username, "error", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Failed to register")
	}

	if err := h.gate.Login(c, user); err != nil {
		h.log.Error("failed to start session", "user_id", user.ID, "error", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Failed to start session")
	}
	return c.Status(fiber.StatusCreated).JSON(user.Public())
}

// HandleLogin handles POST /api/login
func (h *Handlers) HandleLogin(c *fiber.Ctx) error {
	var req CredentialsRequest
	if err := h.parseBody(c, &req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	user, err := h.auth.Authenticate(req.Username, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		return errorResponse(c, fiber.StatusUnauthorized, "Invalid username or password")
	}
	if err != nil {
		return err
	}

	if err := h.gate.Login(c, user); err != nil {
		h.log.Error("failed to start session", "user_id", user.ID, "error", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Failed to start session")
	}
	return c.JSON(user.Public())
}

// HandleLogout handles POST /api/logout
func (h *Handlers) HandleLogout(c *fiber.Ctx) error {
	if err := h.gate.Logout(c); err != nil {
		h.log.Error("failed to end session", "error", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Failed to log out")
	}
	return c.SendStatus(fiber.StatusOK)
}

// HandleCurrentUser handles GET /api/user
func (h *Handlers) HandleCurrentUser(c *fiber.Ctx) error {
	return c.JSON(currentUser(c).Public())
}
