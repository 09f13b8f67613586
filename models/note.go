package models

import "time"

// Tag is the plain, store-free view of a tag used for command output.
type Tag struct {
	ID          TagID     `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
}

// Note is the plain, store-free view of a note used for command output.
type Note struct {
	ID        NoteID    `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	Content   string    `json:"content" yaml:"content"`
	Tags      []Tag     `json:"tags" yaml:"tags"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// NoteSummary is one row of the note listing.
type NoteSummary struct {
	ID    NoteID `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
}

type CreateNoteRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content"`
}

type CreateTagRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}
