package database

import (
	"errors"

	"labrain/models"
)

// Repository adapts the entity layer to plain models for callers that
// only need to read results once. Every entity it hydrates is released
// before returning.
type Repository struct {
	store *Store
}

func NewRepository(store *Store) *Repository {
	return &Repository{store: store}
}

// Path returns the backing file of the underlying store.
func (r *Repository) Path() (string, bool) {
	return r.store.Path()
}

// ==================== NOTES ====================

func (r *Repository) CreateNote(title, content string) (*models.Note, error) {
	note, err := CreateNote(r.store, title, content, nil)
	if err != nil {
		return nil, err
	}
	defer note.Release()

	view := note.View()
	return &view, nil
}

func (r *Repository) GetNote(id models.NoteID) (*models.Note, error) {
	note, err := LoadNote(r.store, id)
	if err != nil {
		return nil, err
	}
	defer note.Release()

	view := note.View()
	return &view, nil
}

func (r *Repository) ListNotes() ([]models.Note, error) {
	notes, err := ListNotes(r.store)
	if err != nil {
		return nil, err
	}

	views := make([]models.Note, 0, len(notes))
	var releaseErr error
	for _, note := range notes {
		views = append(views, note.View())
		releaseErr = errors.Join(releaseErr, note.Release())
	}

	return views, releaseErr
}

// ==================== TAGS ====================

func (r *Repository) CreateTag(name, description string) (*models.Tag, error) {
	tag, err := CreateTag(r.store, name, description)
	if err != nil {
		return nil, err
	}
	defer tag.Release()

	view := tag.View()
	return &view, nil
}

func (r *Repository) GetTag(id models.TagID) (*models.Tag, error) {
	tag, err := LoadTag(r.store, id)
	if err != nil {
		return nil, err
	}
	defer tag.Release()

	view := tag.View()
	return &view, nil
}

func (r *Repository) ListTags() ([]models.Tag, error) {
	tags, err := ListTags(r.store)
	if err != nil {
		return nil, err
	}

	views := make([]models.Tag, 0, len(tags))
	var releaseErr error
	for _, tag := range tags {
		views = append(views, tag.View())
		releaseErr = errors.Join(releaseErr, tag.Release())
	}

	return views, releaseErr
}

// TagNote attaches an existing tag to an existing note.
func (r *Repository) TagNote(noteID models.NoteID, tagID models.TagID) error {
	note, err := LoadNote(r.store, noteID)
	if err != nil {
		return err
	}
	defer note.Release()

	return note.AddTag(tagID)
}
