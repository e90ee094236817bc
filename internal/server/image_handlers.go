package server

import (
	"io"

	"recipebox/internal/middleware"
	"recipebox/internal/models"

	"github.com/gofiber/fiber/v2"
)

// UploadRecipeImage handles POST /api/recipes/:id/image. The multipart field
// "image" carries the file; a replaced image is deleted from disk after the
// new path is stored.
//
//	@Summary		Upload a recipe image
//	@Tags			recipes
//	@Accept			multipart/form-data
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		int		true	"Recipe ID"
//	@Param			image	formData	file	true	"Image file"
//	@Success		200		{object}	map[string]interface{}
//	@Failure		400		{object}	models.ErrorResponse
//	@Failure		404		{object}	models.ErrorResponse
//	@Router			/recipes/{id}/image [post]
func (s *Server) UploadRecipeImage(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	// Check ownership before touching the filesystem.
	if _, err := s.recipeService.Get(c.Context(), currentUserID(c), id); err != nil {
		return respondServiceError(c, err)
	}

	header, err := c.FormFile("image")
	if err != nil {
		middleware.ImageUploads.WithLabelValues("rejected").Inc()
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("No image file provided"))
	}

	file, err := header.Open()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	path, err := s.imageService.SaveRecipeImage(content, header.Header.Get("Content-Type"))
	if err != nil {
		middleware.ImageUploads.WithLabelValues("rejected").Inc()
		return respondServiceError(c, err)
	}

	recipe, previous, err := s.recipeService.SetImage(c.Context(), currentUserID(c), id, path)
	if err != nil {
		// The recipe vanished between the ownership check and the update;
		// don't leave the new file orphaned.
		s.imageService.Remove(path)
		return respondServiceError(c, err)
	}

	if previous != "" && previous != path {
		s.imageService.Remove(previous)
	}

	middleware.ImageUploads.WithLabelValues("accepted").Inc()

	return c.JSON(fiber.Map{
		"id":        recipe.ID,
		"image":     s.imageService.URL(recipe.Image),
		"thumbnail": s.imageService.ThumbnailURL(recipe.Image),
	})
}
