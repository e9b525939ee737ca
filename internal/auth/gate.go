package auth

import (
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/example/cybercalc/pkg/models"
)

const (
	sessionUserKey = "userId"
	localsUserKey  = "user"
)

// Gate resolves the caller of a request from its session
type Gate struct {
	sessions *session.Store
	users    UserStore
	log      *slog.Logger
}

// NewGate creates a gate backed by the given session store
func NewGate(sessions *session.Store, users UserStore, logger *slog.Logger) *Gate {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gate{sessions: sessions, users: users, log: logger.With("component", "gate")}
}

// Login binds the user to a fresh session
func (g *Gate) Login(c *fiber.Ctx, user *models.User) error {
	sess, err := g.sessions.Get(c)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	if err := sess.Regenerate(); err != nil {
		return fmt.Errorf("failed to regenerate session: %w", err)
	}
	sess.Set(sessionUserKey, user.ID)
	if err := sess.Save(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Logout destroys the caller's session
func (g *Gate) Logout(c *fiber.Ctx) error {
	sess, err := g.sessions.Get(c)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	if err := sess.Destroy(); err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}
	return nil
}

// CurrentUser returns the signed-in user, or false for anonymous callers
// and sessions whose account no longer resolves
func (g *Gate) CurrentUser(c *fiber.Ctx) (*models.User, bool) {
	sess, err := g.sessions.Get(c)
	if err != nil {
		g.log.Warn("failed to load session", "error", err)
		return nil, false
	}

	id, ok := sess.Get(sessionUserKey).(int)
	if !ok {
		return nil, false
	}
	return g.users.GetUser(id)
}

// RequireUser rejects anonymous requests with 401 and stores the caller in the
// request locals for UserFromContext
func (g *Gate) RequireUser(c *fiber.Ctx) error {
	user, ok := g.CurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Not authenticated",
		})
	}
	c.Locals(localsUserKey, user)
	return c.Next()
}

// UserFromContext returns the user stored by RequireUser
func UserFromContext(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(localsUserKey).(*models.User)
	return user, ok
}
