package handler

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the note routes behind protect.
func RegisterRoutes(app fiber.Router, h *NoteHandler, protect fiber.Handler) {
	notes := app.Group("/api/notes", protect)
	notes.Get("/search", h.Search)
	notes.Get("/", h.List)
	notes.Get("/:id", h.Get)
	notes.Post("/", h.Create)
	notes.Put("/:id", h.Update)
	notes.Delete("/:id", h.Delete)
	notes.Post("/:id/share", h.Share)
}
