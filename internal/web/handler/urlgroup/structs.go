package urlgroup

import "github.com/linkdeck/linkdeck/internal/db/controller/membership"

// Batch operation names accepted by the batch endpoint.
const (
	OperationAdd     = "add"
	OperationRemove  = "remove"
	OperationReorder = "reorder"
)

// groupInput is the request body for creating or updating a group.
type groupInput struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// urlInput is the request body for creating a URL inside a group.
type urlInput struct {
	Title              string `json:"title" validate:"required"`
	URL                string `json:"url" validate:"required,url"`
	URLMobile          string `json:"urlMobile" validate:"omitempty,url"`
	IconPath           string `json:"iconPath"`
	IdleTimeoutMinutes int    `json:"idleTimeoutMinutes" validate:"gte=0"`
}

// replaceInput is the request body for replacing a group's membership.
// An empty list clears the group.
type replaceInput struct {
	URLIDs []uint64 `json:"urlIds"`
}

// moveInput is the request body for moving a URL to a new position.
// DisplayOrder is a pointer so a missing field can be told apart from zero.
type moveInput struct {
	DisplayOrder *int `json:"displayOrder" validate:"required"`
}

// batchInput is the request body for batch membership operations.
type batchInput struct {
	Operation string   `json:"operation" validate:"required,oneof=add remove reorder"`
	URLIDs    []uint64 `json:"urlIds"`
}

// groupResponse is the JSON shape of a group in list and detail responses.
type groupResponse struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// memberResponse is the JSON shape of a URL member of a group.
type memberResponse struct {
	ID                 uint64 `json:"id"`
	Title              string `json:"title"`
	URL                string `json:"url"`
	URLMobile          string `json:"urlMobile,omitempty"`
	IconPath           string `json:"iconPath,omitempty"`
	IdleTimeoutMinutes int    `json:"idleTimeoutMinutes"`
	DisplayOrder       int    `json:"displayOrder"`
}

// newMemberResponse converts a controller member into its JSON shape.
func newMemberResponse(member membership.Member) memberResponse {
	return memberResponse{
		ID:                 member.ID,
		Title:              member.Title,
		URL:                member.Url.Url,
		URLMobile:          member.UrlMobile,
		IconPath:           member.IconPath,
		IdleTimeoutMinutes: member.IdleTimeoutMinutes,
		DisplayOrder:       member.DisplayOrder,
	}
}
