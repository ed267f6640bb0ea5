package server

import (
	"errors"

	"github.com/SumitDutta007/Social-Media-Backend/internal/models"
	"github.com/SumitDutta007/Social-Media-Backend/internal/storage"

	"github.com/gofiber/fiber/v2"
)

// maxUploadSize caps a single media upload at 8 MiB.
const maxUploadSize = 8 << 20

// UploadFile handles POST /api/upload. The stored object gets a random name
// so uploads never collide or overwrite each other.
func (s *Server) UploadFile(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("A file is required"))
	}
	if fileHeader.Size > maxUploadSize {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("File exceeds the 8 MiB upload limit"))
	}

	src, err := fileHeader.Open()
	if err != nil {
		return models.RespondWithAppError(c, models.NewInternalError(err))
	}
	defer src.Close()

	url, saveErr := s.media.Save(c.Context(), fileHeader.Filename, src)
	if saveErr != nil {
		if errors.Is(saveErr, storage.ErrUnsupportedType) {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError(saveErr.Error()))
		}
		return models.RespondWithAppError(c, saveErr)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"url": url})
}
