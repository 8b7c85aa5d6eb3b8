package http

import (
	"bufio"
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"github.com/rotemgl/jars_backend/internal/application"
)

type SettingsHandler struct {
	service *application.SettingsService
}

func NewSettingsHandler(service *application.SettingsService) *SettingsHandler {
	return &SettingsHandler{service: service}
}

func (h *SettingsHandler) GetSetting(c *fiber.Ctx) error {
	key := c.Params("key")
	value, err := h.service.Get(c.Context(), key)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"key": key, "value": value})
}

// Toggle flips the setting. On persistence failure the prior value comes back
// with the error so the caller can restore its display state.
func (h *SettingsHandler) Toggle(c *fiber.Ctx) error {
	key := c.Params("key")
	value, err := h.service.Toggle(c.Context(), key)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
			"value": value,
		})
	}
	return c.JSON(fiber.Map{"key": key, "value": value})
}

// Events streams setting changes as server-sent events so open sessions
// (the public navigation bar, other admin tabs) track toggles without
// reloading. Best-effort: a dropped connection misses events.
func (h *SettingsHandler) Events(c *fiber.Ctx) error {
	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")

	ch := h.service.Subscribe()
	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer h.service.Unsubscribe(ch)
		for change := range ch {
			payload, err := json.Marshal(change)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", payload)
			if err := w.Flush(); err != nil {
				// client went away
				return
			}
		}
	}))
	return nil
}
