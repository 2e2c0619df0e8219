package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/akosarev/notekeeper/internal/common"
	"github.com/akosarev/notekeeper/internal/dbx"
	"github.com/akosarev/notekeeper/internal/server/models"
	"github.com/akosarev/notekeeper/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// NoteService implements the owner-scoped note operations. The requester
// identity arrives as an explicit ownerID argument on every call; nothing
// here trusts a note id on its own.
type NoteService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewNoteService constructs a NoteService over the given repositories.
func NewNoteService(db *sql.DB, m repomanager.RepositoryManager) *NoteService {
	return &NoteService{db: db, repomanager: m}
}

// List returns all notes owned by ownerID. No pagination.
func (s *NoteService) List(ctx context.Context, ownerID string) ([]*models.Note, error) {
	repo := s.repomanager.Notes(s.db)
	result, err := repo.SelectByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error listing notes: %w", err)
	}
	return result, nil
}

// Search returns the owner's notes whose title contains text. Empty text is
// equivalent to List.
func (s *NoteService) Search(ctx context.Context, ownerID, text string) ([]*models.Note, error) {
	repo := s.repomanager.Notes(s.db)
	result, err := repo.SearchByTitle(ctx, ownerID, text)
	if err != nil {
		return nil, fmt.Errorf("error searching notes: %w", err)
	}
	return result, nil
}

// Get returns the note, or ErrNotFound when it does not exist or belongs to
// someone else. The two cases are indistinguishable to the caller.
func (s *NoteService) Get(ctx context.Context, id, ownerID string) (*models.Note, error) {
	if uuid.Validate(id) != nil {
		return nil, common.ErrNotFound
	}
	repo := s.repomanager.Notes(s.db)
	return repo.GetByID(ctx, id, ownerID)
}

// Create stores a new note owned by ownerID. Title is required; a per-owner
// duplicate title yields ErrAlreadyExists.
func (s *NoteService) Create(ctx context.Context, ownerID, title, content string) (*models.Note, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: title is required", common.ErrValidation)
	}

	note := &models.Note{UserID: ownerID, Title: title, Content: content}
	repo := s.repomanager.Notes(s.db)
	created, err := repo.Create(ctx, note)
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, common.ErrAlreadyExists
		}
		return nil, fmt.Errorf("error creating note: %w", err)
	}
	return created, nil
}

// Update overwrites only the supplied fields, after re-checking ownership.
// Two concurrent updates race (last write wins); there is no version check.
func (s *NoteService) Update(ctx context.Context, id, ownerID string, title, content *string) (*models.Note, error) {
	if uuid.Validate(id) != nil {
		return nil, common.ErrNotFound
	}

	repo := s.repomanager.Notes(s.db)
	existing, err := repo.GetByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if title != nil {
		if strings.TrimSpace(*title) == "" {
			return nil, fmt.Errorf("%w: title must not be empty", common.ErrValidation)
		}
		existing.Title = *title
	}
	if content != nil {
		existing.Content = *content
	}

	return repo.Update(ctx, existing)
}

// Delete reports true when a note was removed and false when it was absent
// or owned by someone else. Calling it twice returns true, then false.
func (s *NoteService) Delete(ctx context.Context, id, ownerID string) (bool, error) {
	if uuid.Validate(id) != nil {
		return false, nil
	}
	repo := s.repomanager.Notes(s.db)
	return repo.Delete(ctx, id, ownerID)
}

// Share transfers ownership of the note to targetUserID. The ownership check,
// the target-user lookup, and the reassignment run in one transaction, so the
// note cannot change hands twice concurrently. Afterwards the previous owner
// sees the note as nonexistent.
func (s *NoteService) Share(ctx context.Context, id, ownerID, targetUserID string) (*models.Note, error) {
	if uuid.Validate(id) != nil || uuid.Validate(targetUserID) != nil {
		return nil, common.ErrNotFound
	}

	var shared *models.Note
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		noteRepo := s.repomanager.Notes(tx)
		userRepo := s.repomanager.Users(tx)

		note, err := noteRepo.GetByID(ctx, id, ownerID)
		if err != nil {
			return err
		}

		target, err := userRepo.GetByID(ctx, targetUserID)
		if err != nil {
			return err
		}

		if err := noteRepo.UpdateOwner(ctx, note.ID, ownerID, target.ID); err != nil {
			return err
		}

		note.UserID = target.ID
		shared = note
		return nil
	})
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		// the new owner may already have a note with this title
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, common.ErrAlreadyExists
		}
		return nil, fmt.Errorf("error sharing note: %w", err)
	}
	return shared, nil
}
