package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Samayank/Renal-Tumor-Detection/internal/common"
	"github.com/Samayank/Renal-Tumor-Detection/internal/server/models"
	"github.com/Samayank/Renal-Tumor-Detection/internal/server/repositories/notes"
	"github.com/Samayank/Renal-Tumor-Detection/internal/server/repositories/users"
)

// NoteService owns the notes CRUD. Notes have a lifecycle independent from
// chat and no realtime delivery.
type NoteService struct {
	users users.Repository
	notes notes.Repository
}

func NewNoteService(usersRepo users.Repository, notesRepo notes.Repository) *NoteService {
	return &NoteService{users: usersRepo, notes: notesRepo}
}

// Create validates the author and required fields, defaults the phase to
// "general", and persists the note.
func (s *NoteService) Create(ctx context.Context, authorID, title, content, phase string, tags []string) (*models.Note, error) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" || authorID == "" {
		return nil, fmt.Errorf("%w: authorId, title and content are required", common.ErrorValidation)
	}

	if phase == "" {
		phase = models.PhaseGeneral
	}
	if !models.ValidPhase(phase) {
		return nil, fmt.Errorf("%w: unknown phase %q", common.ErrorValidation, phase)
	}

	author, err := s.users.GetByID(ctx, authorID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("%w: unknown author %q", common.ErrorValidation, authorID)
		}
		return nil, fmt.Errorf("%w: %s", common.ErrorStorage, err)
	}

	if tags == nil {
		tags = []string{}
	}

	note := &models.Note{
		Author:  models.UserRef{ID: author.ID, Name: author.Name},
		Title:   title,
		Content: content,
		Phase:   phase,
		Tags:    tags,
	}

	stored, err := s.notes.Create(ctx, note)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", common.ErrorStorage, err)
	}

	return stored, nil
}

// List returns all notes, newest first, authors resolved.
func (s *NoteService) List(ctx context.Context) ([]*models.Note, error) {
	list, err := s.notes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", common.ErrorStorage, err)
	}
	return list, nil
}

// Delete removes one note by id; ErrorNotFound when it does not exist.
func (s *NoteService) Delete(ctx context.Context, id string) error {
	err := s.notes.DeleteByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return err
		}
		return fmt.Errorf("%w: %s", common.ErrorStorage, err)
	}
	return nil
}

// Clear removes every note. Irreversible.
func (s *NoteService) Clear(ctx context.Context) error {
	if err := s.notes.DeleteAll(ctx); err != nil {
		return fmt.Errorf("%w: %s", common.ErrorStorage, err)
	}
	return nil
}
