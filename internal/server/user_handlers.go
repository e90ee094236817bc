package server

import (
	"recipebox/internal/models"
	"recipebox/internal/service"

	"github.com/gofiber/fiber/v2"
)

type updateProfileRequest struct {
	Email    *string `json:"email"`
	Name     *string `json:"name"`
	Password *string `json:"password"`
}

// GetMyProfile handles GET /api/users/me
//
//	@Summary		Get the authenticated user's profile
//	@Tags			users
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	UserResponse
//	@Failure		401	{object}	models.ErrorResponse
//	@Router			/users/me [get]
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	user, err := s.userService.GetUserByID(c.Context(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(toUserResponse(user))
}

// UpdateMyProfile handles PUT /api/users/me. A full update requires the
// email; an omitted name is cleared, an omitted password left unchanged.
//
//	@Summary		Replace the authenticated user's profile
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		updateProfileRequest	true	"Profile"
//	@Success		200		{object}	UserResponse
//	@Failure		400		{object}	models.ErrorResponse
//	@Router			/users/me [put]
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Email == nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Email is required"))
	}
	if req.Name == nil {
		empty := ""
		req.Name = &empty
	}

	return s.applyProfileUpdate(c, req)
}

// PatchMyProfile handles PATCH /api/users/me. Only the supplied fields
// change.
//
//	@Summary		Partially update the authenticated user's profile
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		updateProfileRequest	true	"Fields to change"
//	@Success		200		{object}	UserResponse
//	@Failure		400		{object}	models.ErrorResponse
//	@Router			/users/me [patch]
func (s *Server) PatchMyProfile(c *fiber.Ctx) error {
	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	return s.applyProfileUpdate(c, req)
}

func (s *Server) applyProfileUpdate(c *fiber.Ctx, req updateProfileRequest) error {
	user, err := s.userService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID:   currentUserID(c),
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(toUserResponse(user))
}
