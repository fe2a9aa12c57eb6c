// Package settings provides the JSON API for per-user preferences.
//
// Values are stored JSON-encoded under a closed set of known keys; unknown
// keys are rejected instead of written, so the store cannot drift into
// arbitrary blobs.
package settings

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/linkdeck/linkdeck/internal/auth"
	"github.com/linkdeck/linkdeck/internal/config"
	"github.com/linkdeck/linkdeck/internal/db/controller/setting"
	"github.com/linkdeck/linkdeck/internal/db/models"
	"github.com/linkdeck/linkdeck/internal/web/handler"
)

const (
	// Path is the path to the settings collection.
	Path = "/settings"

	// LastActiveURLPath is the path persisting the link last shown in the
	// iframe panel. The client fires it without blocking UI transitions.
	LastActiveURLPath = "/users/me/last-active-url"

	// ErrMsgUnknownKey is returned for keys outside the known set.
	ErrMsgUnknownKey = "Unknown setting key"

	// ErrMsgSettingNotFound is returned when a setting has not been written yet.
	ErrMsgSettingNotFound = "Setting not found"
)

// valueInput is the request body for writing a setting.
type valueInput struct {
	Value json.RawMessage `json:"value"`
}

// lastActiveInput is the request body for persisting the last active URL.
type lastActiveInput struct {
	URLID uint64 `json:"urlId"`
}

// Service is the settings handler service.
type Service struct {
	handler.Service
	cfg         *config.Config
	db          *gorm.DB
	authService *auth.Service
}

// Handler is the settings handler.
var Handler = Service{}

// Init initializes the settings handler and registers its routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *auth.Service) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.db = db
	s.cfg = cfg
	s.authService = authService

	requireAuth := authService.RequireAuth()

	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RootPath, requireAuth, s.GetAll)
		router.Get("/:key", requireAuth, s.Get)
		router.Put("/:key", requireAuth, s.Put)
	})

	app.Put(LastActiveURLPath, requireAuth, s.PutLastActiveURL)
}

// GetAll returns every stored setting of the requesting user.
func (s *Service) GetAll(c *fiber.Ctx) error {
	claims := auth.ClaimsFromContext(c)
	if claims == nil {
		return handler.Error(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	values, err := setting.GetAll(s.db, claims.UserID)
	if err != nil {
		log.Error().Err(err).Uint64("user_id", claims.UserID).Msg("failed to load settings")

		return handler.Error(c, fiber.StatusInternalServerError, handler.ErrMsgInternal)
	}

	return c.JSON(values)
}

// Get returns one setting of the requesting user.
func (s *Service) Get(c *fiber.Ctx) error {
	claims := auth.ClaimsFromContext(c)
	if claims == nil {
		return handler.Error(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	key := c.Params("key")

	value, err := setting.GetRaw(s.db, claims.UserID, key)
	if err != nil {
		switch {
		case errors.Is(err, setting.ErrUnknownKey):
			return handler.Error(c, fiber.StatusBadRequest, ErrMsgUnknownKey)
		case errors.Is(err, setting.ErrSettingNotFound):
			return handler.Error(c, fiber.StatusNotFound, ErrMsgSettingNotFound)
		default:
			log.Error().Err(err).Str("key", key).Msg("failed to load setting")

			return handler.Error(c, fiber.StatusInternalServerError, handler.ErrMsgInternal)
		}
	}

	return c.JSON(fiber.Map{
		"key":   key,
		"value": json.RawMessage(value),
	})
}

// Put writes one setting of the requesting user.
func (s *Service) Put(c *fiber.Ctx) error {
	claims := auth.ClaimsFromContext(c)
	if claims == nil {
		return handler.Error(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	key := c.Params("key")

	var input valueInput
	if err := c.BodyParser(&input); err != nil {
		return handler.Error(c, fiber.StatusBadRequest, handler.ErrMsgInvalidBody)
	}

	if err := setting.Set(s.db, claims.UserID, key, input.Value); err != nil {
		if errors.Is(err, setting.ErrUnknownKey) {
			return handler.Error(c, fiber.StatusBadRequest, ErrMsgUnknownKey)
		}

		log.Error().Err(err).Str("key", key).Msg("failed to store setting")

		return handler.Error(c, fiber.StatusInternalServerError, handler.ErrMsgInternal)
	}

	return handler.Success(c)
}

// PutLastActiveURL persists the link last shown in the iframe panel, both as
// a setting and on the user row so the next visit restores it.
func (s *Service) PutLastActiveURL(c *fiber.Ctx) error {
	claims := auth.ClaimsFromContext(c)
	if claims == nil {
		return handler.Error(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var input lastActiveInput
	if err := c.BodyParser(&input); err != nil {
		return handler.Error(c, fiber.StatusBadRequest, handler.ErrMsgInvalidBody)
	}

	if err := setting.Set(s.db, claims.UserID, setting.KeyLastActiveURL, input.URLID); err != nil {
		log.Error().Err(err).Uint64("user_id", claims.UserID).Msg("failed to store last active url")

		return handler.Error(c, fiber.StatusInternalServerError, handler.ErrMsgInternal)
	}

	err := s.db.Model(&models.User{}).
		Where("id = ?", claims.UserID).
		Update("last_active_url_id", input.URLID).Error
	if err != nil {
		log.Error().Err(err).Uint64("user_id", claims.UserID).Msg("failed to update last active url")

		return handler.Error(c, fiber.StatusInternalServerError, handler.ErrMsgInternal)
	}

	return handler.Success(c)
}
