package server

import (
	"strings"

	"recipebox/internal/models"

	"github.com/gofiber/fiber/v2"
)

type createTagRequest struct {
	Name string `json:"name"`
}

// GetTags handles GET /api/tags. Results are the caller's tags ordered by
// name descending; assigned_only=1 restricts to tags linked to at least one
// recipe.
//
//	@Summary		List the caller's tags
//	@Tags			tags
//	@Produce		json
//	@Security		BearerAuth
//	@Param			assigned_only	query		int	false	"Only tags assigned to recipes"
//	@Success		200				{array}		models.Tag
//	@Failure		401				{object}	models.ErrorResponse
//	@Router			/tags [get]
func (s *Server) GetTags(c *fiber.Ctx) error {
	assignedOnly := parseAssignedOnly(c.Query("assigned_only"))

	tags, err := s.tagRepo.List(c.Context(), currentUserID(c), assignedOnly)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(tags)
}

// CreateTag handles POST /api/tags
//
//	@Summary		Create a tag
//	@Tags			tags
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		createTagRequest	true	"Tag"
//	@Success		201		{object}	models.Tag
//	@Failure		400		{object}	models.ErrorResponse
//	@Router			/tags [post]
func (s *Server) CreateTag(c *fiber.Ctx) error {
	var req createTagRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Name is required"))
	}

	tag := models.Tag{Name: name, UserID: currentUserID(c)}
	if err := s.tagRepo.Create(c.Context(), &tag); err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(tag)
}
