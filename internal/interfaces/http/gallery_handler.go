package http

import (
	"io"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/rotemgl/jars_backend/internal/application"
)

type GalleryHandler struct {
	service *application.GalleryService
}

func NewGalleryHandler(service *application.GalleryService) *GalleryHandler {
	return &GalleryHandler{service: service}
}

func (h *GalleryHandler) GetImages(c *fiber.Ctx) error {
	images, err := h.service.Images(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(images)
}

// Upload accepts a batch of images under the "files" form field. Per-file
// failures come back in the response next to the records that were created.
func (h *GalleryHandler) Upload(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid multipart form"})
	}

	headers := form.File["files"]
	if len(headers) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No files provided"})
	}

	files := make([]application.UploadFile, 0, len(headers))
	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Failed to open uploaded file"})
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Failed to read uploaded file"})
		}
		files = append(files, application.UploadFile{Name: header.Filename, Data: data})
	}

	result, err := h.service.UploadBatch(c.Context(), files, func(completed, total int) {
		log.Printf("gallery upload progress: %d/%d", completed, total)
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// Reorder moves the dragged image to the target image's position.
func (h *GalleryHandler) Reorder(c *fiber.Ctx) error {
	type Request struct {
		DraggedID string `json:"dragged_id"`
		TargetID  string `json:"target_id"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.DraggedID == "" || req.TargetID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "dragged_id and target_id are required"})
	}

	if err := h.service.Move(c.Context(), req.DraggedID, req.TargetID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	images, err := h.service.Images(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(images)
}

func (h *GalleryHandler) DeleteImage(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.Delete(c.Context(), id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.SendStatus(fiber.StatusOK)
}
