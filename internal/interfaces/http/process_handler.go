package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rotemgl/jars_backend/internal/application"
)

type ProcessHandler struct {
	service *application.ProcessService
}

func NewProcessHandler(service *application.ProcessService) *ProcessHandler {
	return &ProcessHandler{service: service}
}

func (h *ProcessHandler) GetProcesses(c *fiber.Ctx) error {
	processes, err := h.service.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(processes)
}

func (h *ProcessHandler) GetProcess(c *fiber.Ctx) error {
	process, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(process)
}

func (h *ProcessHandler) CreateProcess(c *fiber.Ctx) error {
	var input application.ProcessInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	process, err := h.service.Create(c.Context(), input)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(process)
}

func (h *ProcessHandler) UpdateProcess(c *fiber.Ctx) error {
	var input application.ProcessInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	process, err := h.service.Update(c.Context(), c.Params("id"), input)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(process)
}

func (h *ProcessHandler) DeleteProcess(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("id")); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.SendStatus(fiber.StatusOK)
}
