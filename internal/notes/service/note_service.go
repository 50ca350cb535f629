package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	authdomain "github.com/void-adarsh/Notes-App/internal/auth/domain"
	apperror "github.com/void-adarsh/Notes-App/internal/errors"
	"github.com/void-adarsh/Notes-App/internal/notes/domain"
)

// UserFinder resolves share targets.
type UserFinder interface {
	GetByID(ctx context.Context, id string) (*authdomain.User, error)
}

type NoteService struct {
	notes domain.NoteRepository
	users UserFinder
	now   func() time.Time
}

func NewNoteService(notes domain.NoteRepository, users UserFinder) *NoteService {
	return &NoteService{notes: notes, users: users, now: time.Now}
}

func (s *NoteService) Create(ctx context.Context, userID, title, description string) (*domain.Note, error) {
	if userID == "" {
		return nil, apperror.ErrUserIDMissing
	}
	if err := validate(title, description); err != nil {
		return nil, err
	}

	now := s.now()
	note := &domain.Note{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       title,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.notes.Create(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *NoteService) List(ctx context.Context, userID string) ([]domain.Note, error) {
	if userID == "" {
		return nil, apperror.ErrUserIDMissing
	}
	notes, err := s.notes.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(notes) == 0 {
		return nil, apperror.ErrNoNotes
	}
	return notes, nil
}

func (s *NoteService) Get(ctx context.Context, userID, id string) (*domain.Note, error) {
	if userID == "" {
		return nil, apperror.ErrUserIDMissing
	}
	note, err := s.notes.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, apperror.ErrNoteNotFound
	}
	return note, nil
}

func (s *NoteService) Update(ctx context.Context, userID, id, title, description string) (*domain.Note, error) {
	if userID == "" {
		return nil, apperror.ErrUserIDMissing
	}
	if err := validate(title, description); err != nil {
		return nil, err
	}

	updated, err := s.notes.Update(ctx, &domain.Note{
		ID:          id,
		UserID:      userID,
		Title:       title,
		Description: description,
		UpdatedAt:   s.now(),
	})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperror.ErrNoteNotFound
	}
	return updated, nil
}

func (s *NoteService) Delete(ctx context.Context, userID, id string) error {
	if userID == "" {
		return apperror.ErrUserIDMissing
	}
	deleted, err := s.notes.Delete(ctx, userID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperror.ErrNoteNotFound
	}
	return nil
}

func (s *NoteService) Search(ctx context.Context, userID, query string) ([]domain.Note, error) {
	if userID == "" {
		return nil, apperror.ErrUserIDMissing
	}
	if query == "" {
		return nil, apperror.ErrSearchQueryRequired
	}
	return s.notes.Search(ctx, userID, query)
}

// Share hands the note over to targetUserID. The caller loses access.
// Ownership is checked before the target lookup.
func (s *NoteService) Share(ctx context.Context, userID, id, targetUserID string) error {
	if userID == "" {
		return apperror.ErrUserIDMissing
	}
	if strings.TrimSpace(targetUserID) == "" {
		return apperror.ErrTargetUserRequired
	}

	note, err := s.notes.GetByID(ctx, userID, id)
	if err != nil {
		return err
	}
	if note == nil {
		return apperror.ErrSharedNoteNotFound
	}

	target, err := s.users.GetByID(ctx, targetUserID)
	if err != nil {
		return err
	}
	if target == nil {
		return apperror.ErrTargetUserNotFound
	}

	moved, err := s.notes.Reassign(ctx, userID, id, targetUserID)
	if err != nil {
		return err
	}
	if !moved {
		return apperror.ErrSharedNoteNotFound
	}
	return nil
}

// validate rejects blank fields. Values are stored as sent.
func validate(title, description string) error {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(description) == "" {
		return apperror.ErrNoteFieldsRequired
	}
	return nil
}
