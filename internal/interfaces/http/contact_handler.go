package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rotemgl/jars_backend/internal/application"
	"github.com/rotemgl/jars_backend/internal/domain"
)

type ContactHandler struct {
	service *application.ContactService
	limiter *application.RateLimiter
}

func NewContactHandler(service *application.ContactService, limiter *application.RateLimiter) *ContactHandler {
	return &ContactHandler{service: service, limiter: limiter}
}

func (h *ContactHandler) Create(c *fiber.Ctx) error {
	if ok, err := h.limiter.Allow(c.IP()); !ok {
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": err.Error()})
	}

	var req domain.CreateContactRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	id, err := h.service.Create(c.Context(), req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

func (h *ContactHandler) List(c *fiber.Ctx) error {
	messages, err := h.service.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(messages)
}
