// Package login provides the handler issuing the auth token cookie.
package login

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/linkdeck/linkdeck/internal/auth"
	"github.com/linkdeck/linkdeck/internal/config"
	"github.com/linkdeck/linkdeck/internal/web/handler"
)

const (
	// Path is the path to the login endpoint.
	Path = "/login"

	// ErrMsgInvalidCredentials is returned for unknown users and wrong passwords alike.
	ErrMsgInvalidCredentials = "Invalid username or password"
)

// loginInput is the expected request body.
type loginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Service is the login handler service.
type Service struct {
	handler.Service
	cfg         *config.Config
	db          *gorm.DB
	authService *auth.Service
}

// Handler is the login handler.
var Handler = Service{}

// Init initializes the login handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *auth.Service) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.db = db
	s.cfg = cfg
	s.authService = authService

	app.Post(Path, s.Post)
}

// Post handles the login request and sets the auth token cookie on success.
func (s *Service) Post(c *fiber.Ctx) error {
	var input loginInput
	if err := c.BodyParser(&input); err != nil {
		return handler.Error(c, fiber.StatusBadRequest, handler.ErrMsgInvalidBody)
	}

	if input.Username == "" {
		return handler.Error(c, fiber.StatusBadRequest, "Username is required")
	}

	user, err := s.authService.Authenticate(input.Username, input.Password)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) || errors.Is(err, auth.ErrInvalidPassword) {
			return handler.Error(c, fiber.StatusUnauthorized, ErrMsgInvalidCredentials)
		}

		log.Error().Err(err).Str("username", input.Username).Msg("authentication failed")

		return handler.Error(c, fiber.StatusInternalServerError, handler.ErrMsgInternal)
	}

	token, err := s.authService.IssueToken(user)
	if err != nil {
		log.Error().Err(err).Msg("failed to issue auth token")

		return handler.Error(c, fiber.StatusInternalServerError, handler.ErrMsgInternal)
	}

	auth.SetCookie(c, token, int(s.authService.TokenTTL().Seconds()), !s.cfg.DevMode)

	return c.JSON(fiber.Map{
		"id":       user.ID,
		"username": user.Username,
		"isAdmin":  user.IsAdmin,
	})
}
