package domain

//go:generate mockgen -destination=../../mocks/mock_note_repository.go -package=mocks github.com/void-adarsh/Notes-App/internal/notes/domain NoteRepository

import "context"

// NoteRepository stores notes. Every read and write is scoped to the
// owning user; a note owned by someone else behaves as missing.
type NoteRepository interface {
	Create(ctx context.Context, note *Note) error
	ListByUser(ctx context.Context, userID string) ([]Note, error)
	GetByID(ctx context.Context, userID, id string) (*Note, error)
	Update(ctx context.Context, note *Note) (*Note, error)
	Delete(ctx context.Context, userID, id string) (bool, error)
	Search(ctx context.Context, userID, query string) ([]Note, error)
	Reassign(ctx context.Context, userID, id, targetUserID string) (bool, error)
}
