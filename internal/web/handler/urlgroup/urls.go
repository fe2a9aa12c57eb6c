package urlgroup

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/linkdeck/linkdeck/internal/db/controller/membership"
	"github.com/linkdeck/linkdeck/internal/db/models"
	"github.com/linkdeck/linkdeck/internal/web/handler"
)

const (
	// ErrMsgGroupNameRequired is returned when a group payload has no name.
	ErrMsgGroupNameRequired = "Group name is required"

	// ErrMsgInvalidURL is returned when a URL payload fails validation.
	ErrMsgInvalidURL = "Title and a valid url are required"

	// ErrMsgInvalidOperation is returned for unknown batch operations.
	ErrMsgInvalidOperation = "Operation must be one of add, remove or reorder"
)

// CreateURL persists a new URL and appends it to the group.
func (s *Service) CreateURL(c *fiber.Ctx) error {
	groupID, err := parseID(c, "id")
	if err != nil {
		return handler.Error(c, fiber.StatusBadRequest, handler.ErrMsgInvalidID)
	}

	var input urlInput
	if err := c.BodyParser(&input); err != nil {
		return handler.Error(c, fiber.StatusBadRequest, handler.ErrMsgInvalidBody)
	}

	if err := s.validator.Struct(&input); err != nil {
		return handler.Error(c, fiber.StatusBadRequest, ErrMsgInvalidURL)
	}

	url := &models.Url{
		Title:              input.Title,
		Url:                input.URL,
		UrlMobile:          input.URLMobile,
		IconPath:           input.IconPath,
		IdleTimeoutMinutes: input.IdleTimeoutMinutes,
	}

	created, err := membership.CreateURLInGroup(s.db, groupID, url)
	if err != nil {
		return membershipError(c, err, "failed to create url in group")
	}

	log.Info().Uint64("group_id", groupID).
		Uint64("url_id", created.ID).
		Str("title", created.Title).
		Msg("url created in group")

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":                 created.ID,
		"title":              created.Title,
		"url":                created.Url,
		"urlMobile":          created.UrlMobile,
		"iconPath":           created.IconPath,
		"idleTimeoutMinutes": created.IdleTimeoutMinutes,
	})
}

// ReplaceURLs makes the supplied URL id list the exact membership of the
// group in the supplied order. An empty list clears the group.
func (s *Service) ReplaceURLs(c *fiber.Ctx) error {
	groupID, err := parseID(c, "id")
	if err != nil {
		return handler.Error(c, fiber.StatusBadRequest, handler.ErrMsgInvalidID)
	}

	var input replaceInput
	if err := c.BodyParser(&input); err != nil {
		return handler.Error(c, fiber.StatusBadRequest, handler.ErrMsgInvalidBody)
	}

	if err := membership.ReplaceGroupURLs(s.db, groupID, input.URLIDs); err != nil {
		return membershipError(c, err, "failed to replace group urls")
	}

	return handler.Success(c)
}

// ClearURLs removes all memberships of the group.
func (s *Service) ClearURLs(c *fiber.Ctx) error {
	groupID, err := parseID(c, "id")
	if err != nil {
		return handler.Error(c, fiber.StatusBadRequest, handler.ErrMsgInvalidID)
	}

	if err := membership.ClearGroupURLs(s.db, groupID); err != nil {
		return membershipError(c, err, "failed to clear group urls")
	}

	return handler.Success(c)
}

// MoveURL moves one member of the group to a new display order position.
func (s *Service) MoveURL(c *fiber.Ctx) error {
	groupID, err := parseID(c, "id")
	if err != nil {
		return handler.Error(c, fiber.StatusBadRequest, handler.ErrMsgInvalidID)
	}

	urlID, err := parseID(c, "urlId")
	if err != nil {
		return handler.Error(c, fiber.StatusBadRequest, handler.ErrMsgInvalidID)
	}

	var input moveInput
	if err := c.BodyParser(&input); err != nil {
		return handler.Error(c, fiber.StatusBadRequest, handler.ErrMsgInvalidBody)
	}

	if err := s.validator.Struct(&input); err != nil {
		return handler.Error(c, fiber.StatusBadRequest, membership.ErrNegativePosition.Error())
	}

	if err := membership.MoveURLToPosition(s.db, groupID, urlID, *input.DisplayOrder); err != nil {
		return membershipError(c, err, "failed to move url")
	}

	return handler.Success(c)
}

// BatchURLs applies an add, remove or reorder operation to the group.
func (s *Service) BatchURLs(c *fiber.Ctx) error {
	groupID, err := parseID(c, "id")
	if err != nil {
		return handler.Error(c, fiber.StatusBadRequest, handler.ErrMsgInvalidID)
	}

	var input batchInput
	if err := c.BodyParser(&input); err != nil {
		return handler.Error(c, fiber.StatusBadRequest, handler.ErrMsgInvalidBody)
	}

	if err := s.validator.Struct(&input); err != nil {
		return handler.Error(c, fiber.StatusBadRequest, ErrMsgInvalidOperation)
	}

	switch input.Operation {
	case OperationAdd:
		err = membership.AddURLsToGroup(s.db, groupID, input.URLIDs)
	case OperationRemove:
		err = membership.RemoveURLsFromGroup(s.db, groupID, input.URLIDs)
	case OperationReorder:
		err = membership.ReorderGroup(s.db, groupID, input.URLIDs)
	}
	if err != nil {
		return membershipError(c, err, "failed to apply batch operation")
	}

	return handler.Success(c)
}

// membershipError maps controller errors onto HTTP statuses. Validation
// failures become 400, missing entities 404 and anything unexpected a
// generic 500 with the details only logged.
func membershipError(c *fiber.Ctx, err error, logMsg string) error {
	switch {
	case errors.Is(err, membership.ErrGroupNotFound),
		errors.Is(err, membership.ErrURLNotFound),
		errors.Is(err, membership.ErrMembershipNotFound):
		return handler.Error(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, membership.ErrGroupNameEmpty):
		return handler.Error(c, fiber.StatusBadRequest, ErrMsgGroupNameRequired)
	case errors.Is(err, membership.ErrURLsNotInGroup),
		errors.Is(err, membership.ErrDuplicateURLs),
		errors.Is(err, membership.ErrNegativePosition):
		return handler.Error(c, fiber.StatusBadRequest, err.Error())
	default:
		log.Error().Err(err).Msg(logMsg)

		return handler.Error(c, fiber.StatusInternalServerError, handler.ErrMsgInternal)
	}
}
