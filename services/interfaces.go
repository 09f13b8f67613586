package services

import "labrain/models"

// NoteRepository defines the interface for note and tag data access
type NoteRepository interface {
	CreateNote(title, content string) (*models.Note, error)
	GetNote(id models.NoteID) (*models.Note, error)
	ListNotes() ([]models.Note, error)
	CreateTag(name, description string) (*models.Tag, error)
	GetTag(id models.TagID) (*models.Tag, error)
	ListTags() ([]models.Tag, error)
	TagNote(noteID models.NoteID, tagID models.TagID) error
	Path() (string, bool)
}
