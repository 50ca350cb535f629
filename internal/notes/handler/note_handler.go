package handler

import (
	"github.com/gofiber/fiber/v2"

	apperror "github.com/void-adarsh/Notes-App/internal/errors"
	"github.com/void-adarsh/Notes-App/internal/gate"
	"github.com/void-adarsh/Notes-App/internal/notes/dto"
	"github.com/void-adarsh/Notes-App/internal/notes/service"
)

type NoteHandler struct {
	noteService *service.NoteService
}

func NewNoteHandler(noteService *service.NoteService) *NoteHandler {
	return &NoteHandler{noteService: noteService}
}

func (h *NoteHandler) List(c *fiber.Ctx) error {
	notes, err := h.noteService.List(c.UserContext(), gate.UserID(c))
	if err != nil {
		return apperror.Write(c, err)
	}
	return c.JSON(dto.NewNoteOutputs(notes))
}

func (h *NoteHandler) Search(c *fiber.Ctx) error {
	notes, err := h.noteService.Search(c.UserContext(), gate.UserID(c), c.Query("q"))
	if err != nil {
		return apperror.Write(c, err)
	}
	return c.JSON(dto.NewNoteOutputs(notes))
}

func (h *NoteHandler) Get(c *fiber.Ctx) error {
	note, err := h.noteService.Get(c.UserContext(), gate.UserID(c), c.Params("id"))
	if err != nil {
		return apperror.Write(c, err)
	}
	return c.JSON(dto.NewNoteOutput(note))
}

func (h *NoteHandler) Create(c *fiber.Ctx) error {
	var input dto.NoteInput
	if err := c.BodyParser(&input); err != nil {
		return apperror.Write(c, apperror.ErrInvalidInput)
	}

	note, err := h.noteService.Create(c.UserContext(), gate.UserID(c), input.Title, input.Description)
	if err != nil {
		return apperror.Write(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewNoteOutput(note))
}

func (h *NoteHandler) Update(c *fiber.Ctx) error {
	var input dto.NoteInput
	if err := c.BodyParser(&input); err != nil {
		return apperror.Write(c, apperror.ErrInvalidInput)
	}

	note, err := h.noteService.Update(c.UserContext(), gate.UserID(c), c.Params("id"), input.Title, input.Description)
	if err != nil {
		return apperror.Write(c, err)
	}
	return c.JSON(dto.NewNoteOutput(note))
}

func (h *NoteHandler) Delete(c *fiber.Ctx) error {
	if err := h.noteService.Delete(c.UserContext(), gate.UserID(c), c.Params("id")); err != nil {
		return apperror.Write(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(apperror.Response{Message: "Note deleted succesfully!"})
}

func (h *NoteHandler) Share(c *fiber.Ctx) error {
	var input dto.ShareInput
	if err := c.BodyParser(&input); err != nil {
		return apperror.Write(c, apperror.ErrInvalidInput)
	}

	if err := h.noteService.Share(c.UserContext(), gate.UserID(c), c.Params("id"), input.TargetUserID); err != nil {
		return apperror.Write(c, err)
	}
	return c.JSON(apperror.Response{Message: "Note shared successfully"})
}
