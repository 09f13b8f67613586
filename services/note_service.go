package services

import (
	"fmt"
	"log/slog"

	"labrain/database"
	"labrain/models"
)

// NoteService handles the commands' calls into the store, one repository
// call per operation.
type NoteService struct {
	repo   NoteRepository
	logger *slog.Logger
}

// NewNoteService creates a new note service
func NewNoteService(repo NoteRepository, logger *slog.Logger) *NoteService {
	if logger == nil {
		logger = slog.Default()
	}
	return &NoteService{
		repo:   repo,
		logger: logger,
	}
}

// Add creates a note without tags
func (ns *NoteService) Add(title, content string) (*models.Note, error) {
	note, err := ns.repo.CreateNote(title, content)
	if err != nil {
		ns.logger.Debug("create note failed", "title", title, "error", err)
		return nil, err
	}

	ns.logger.Info("note created", "note_id", note.ID.Int64())
	return note, nil
}

// Get retrieves a note with its tags
func (ns *NoteService) Get(id models.NoteID) (*models.Note, error) {
	note, err := ns.repo.GetNote(id)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %d: %w", ErrNoteNotFound, id.Int64(), err)
		}
		return nil, err
	}

	ns.logger.Debug("note loaded", "note_id", id.Int64(), "tags", len(note.Tags))
	return note, nil
}

// List retrieves every note as id/title pairs
func (ns *NoteService) List() ([]models.NoteSummary, error) {
	notes, err := ns.repo.ListNotes()
	if err != nil {
		return nil, err
	}

	summaries := make([]models.NoteSummary, 0, len(notes))
	for _, note := range notes {
		summaries = append(summaries, models.NoteSummary{ID: note.ID, Title: note.Title})
	}

	ns.logger.Debug("notes listed", "count", len(summaries))
	return summaries, nil
}

// CreateTag creates a tag; names are unique across the store
func (ns *NoteService) CreateTag(name, description string) (*models.Tag, error) {
	tag, err := ns.repo.CreateTag(name, description)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %q: %w", ErrTagExists, name, err)
		}
		return nil, err
	}

	ns.logger.Info("tag created", "tag_id", tag.ID.Int64(), "name", tag.Name)
	return tag, nil
}

// Tags retrieves every tag ordered by name
func (ns *NoteService) Tags() ([]models.Tag, error) {
	return ns.repo.ListTags()
}

// Tag attaches an existing tag to an existing note
func (ns *NoteService) Tag(noteID models.NoteID, tagID models.TagID) error {
	err := ns.repo.TagNote(noteID, tagID)
	switch {
	case err == nil:
		ns.logger.Info("note tagged", "note_id", noteID.Int64(), "tag_id", tagID.Int64())
		return nil
	case database.IsNotFound(err):
		return fmt.Errorf("%w: %d: %w", ErrNoteNotFound, noteID.Int64(), err)
	case database.IsForeignKeyViolation(err):
		return fmt.Errorf("%w: %d: %w", ErrTagNotFound, tagID.Int64(), err)
	case database.IsDuplicateAssociation(err):
		return fmt.Errorf("%w: %w", ErrTagAlreadyAttached, err)
	default:
		return err
	}
}

// Path returns where the store lives, or "in-memory"
func (ns *NoteService) Path() string {
	if path, ok := ns.repo.Path(); ok {
		return path
	}
	return "in-memory"
}
