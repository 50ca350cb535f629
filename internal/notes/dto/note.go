package dto

import (
	"time"

	"github.com/void-adarsh/Notes-App/internal/notes/domain"
)

type NoteInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type ShareInput struct {
	TargetUserID string `json:"targetUserId"`
}

type NoteOutput struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func NewNoteOutput(n *domain.Note) NoteOutput {
	return NoteOutput{
		ID:          n.ID,
		UserID:      n.UserID,
		Title:       n.Title,
		Description: n.Description,
		CreatedAt:   n.CreatedAt,
		UpdatedAt:   n.UpdatedAt,
	}
}

func NewNoteOutputs(notes []domain.Note) []NoteOutput {
	out := make([]NoteOutput, 0, len(notes))
	for i := range notes {
		out = append(out, NewNoteOutput(&notes[i]))
	}
	return out
}
