// Package urlgroup provides the JSON API for URL groups and their ordered
// memberships. Reads require a valid auth token, mutations require an
// administrator.
package urlgroup

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/linkdeck/linkdeck/internal/auth"
	"github.com/linkdeck/linkdeck/internal/config"
	"github.com/linkdeck/linkdeck/internal/db/controller/membership"
	"github.com/linkdeck/linkdeck/internal/db/models"
	"github.com/linkdeck/linkdeck/internal/web/handler"
)

// Path is the path to the url-group collection.
const Path = "/url-groups"

// Service is the url-group handler service.
type Service struct {
	handler.Service
	cfg         *config.Config
	db          *gorm.DB
	validator   *validator.Validate
	authService *auth.Service
}

// Handler is the url-group handler.
var Handler = Service{}

// Init initializes the url-group handler and registers its routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *auth.Service) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.db = db
	s.cfg = cfg
	s.validator = validator.New()
	s.authService = authService

	requireAuth := authService.RequireAuth()
	requireAdmin := authService.RequireAdmin()

	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RootPath, requireAuth, s.List)
		router.Post(handler.RootPath, requireAdmin, s.Create)
		router.Get("/:id", requireAuth, s.Get)
		router.Put("/:id", requireAdmin, s.Update)
		router.Delete("/:id", requireAdmin, s.Delete)

		router.Post("/:id/urls", requireAdmin, s.CreateURL)
		router.Put("/:id/urls", requireAdmin, s.ReplaceURLs)
		router.Delete("/:id/urls", requireAdmin, s.ClearURLs)
		router.Patch("/:id/urls/:urlId", requireAdmin, s.MoveURL)
		router.Post("/:id/urls/batch", requireAdmin, s.BatchURLs)
	})
}

// List returns the groups visible to the requesting user. Administrators see
// every group; other users only see groups they hold a visibility grant for.
func (s *Service) List(c *fiber.Ctx) error {
	claims := auth.ClaimsFromContext(c)
	if claims == nil {
		return handler.Error(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var (
		groups []models.UrlGroup
		err    error
	)

	if claims.IsAdmin {
		groups, err = membership.ListGroups(s.db)
	} else {
		groups, err = membership.ListGroupsForUser(s.db, claims.UserID)
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to list url groups")

		return handler.Error(c, fiber.StatusInternalServerError, handler.ErrMsgInternal)
	}

	response := make([]groupResponse, 0, len(groups))
	for _, group := range groups {
		response = append(response, groupResponse{
			ID:          group.ID,
			Name:        group.Name,
			Description: group.Description,
		})
	}

	return c.JSON(response)
}

// Get returns one group together with its members in display order.
// Non-admin users need a visibility grant for the group.
func (s *Service) Get(c *fiber.Ctx) error {
	groupID, err := parseID(c, "id")
	if err != nil {
		return handler.Error(c, fiber.StatusBadRequest, handler.ErrMsgInvalidID)
	}

	claims := auth.ClaimsFromContext(c)
	if claims == nil {
		return handler.Error(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	if !claims.IsAdmin {
		granted, err := membership.UserHasGrant(s.db, claims.UserID, groupID)
		if err != nil {
			log.Error().Err(err).Msg("failed to check group grant")

			return handler.Error(c, fiber.StatusInternalServerError, handler.ErrMsgInternal)
		}

		if !granted {
			return handler.Error(c, fiber.StatusForbidden, "Forbidden")
		}
	}

	group, members, err := membership.GetGroupWithURLs(s.db, groupID)
	if err != nil {
		return membershipError(c, err, "failed to load url group")
	}

	urls := make([]memberResponse, 0, len(members))
	for _, member := range members {
		urls = append(urls, newMemberResponse(member))
	}

	return c.JSON(fiber.Map{
		"id":          group.ID,
		"name":        group.Name,
		"description": group.Description,
		"createdAt":   group.CreatedAt,
		"updatedAt":   group.UpdatedAt,
		"urls":        urls,
	})
}

// Create persists a new group.
func (s *Service) Create(c *fiber.Ctx) error {
	var input groupInput
	if err := c.BodyParser(&input); err != nil {
		return handler.Error(c, fiber.StatusBadRequest, handler.ErrMsgInvalidBody)
	}

	if err := s.validator.Struct(&input); err != nil {
		return handler.Error(c, fiber.StatusBadRequest, ErrMsgGroupNameRequired)
	}

	group, err := membership.CreateGroup(s.db, input.Name, input.Description)
	if err != nil {
		return membershipError(c, err, "failed to create url group")
	}

	log.Info().Uint64("group_id", group.ID).Str("name", group.Name).Msg("url group created")

	return c.Status(fiber.StatusCreated).JSON(groupResponse{
		ID:          group.ID,
		Name:        group.Name,
		Description: group.Description,
	})
}

// Update renames a group and replaces its description.
func (s *Service) Update(c *fiber.Ctx) error {
	groupID, err := parseID(c, "id")
	if err != nil {
		return handler.Error(c, fiber.StatusBadRequest, handler.ErrMsgInvalidID)
	}

	var input groupInput
	if err := c.BodyParser(&input); err != nil {
		return handler.Error(c, fiber.StatusBadRequest, handler.ErrMsgInvalidBody)
	}

	if err := s.validator.Struct(&input); err != nil {
		return handler.Error(c, fiber.StatusBadRequest, ErrMsgGroupNameRequired)
	}

	group, err := membership.UpdateGroup(s.db, groupID, input.Name, input.Description)
	if err != nil {
		return membershipError(c, err, "failed to update url group")
	}

	return c.JSON(groupResponse{
		ID:          group.ID,
		Name:        group.Name,
		Description: group.Description,
	})
}

// Delete removes a group, its memberships and its visibility grants.
func (s *Service) Delete(c *fiber.Ctx) error {
	groupID, err := parseID(c, "id")
	if err != nil {
		return handler.Error(c, fiber.StatusBadRequest, handler.ErrMsgInvalidID)
	}

	if err := membership.DeleteGroup(s.db, groupID); err != nil {
		return membershipError(c, err, "failed to delete url group")
	}

	log.Info().Uint64("group_id", groupID).Msg("url group deleted")

	return handler.Success(c)
}

// parseID parses a positive numeric path parameter.
func parseID(c *fiber.Ctx, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id parameter")
	}

	return id, nil
}
