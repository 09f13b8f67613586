package database

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"sync/atomic"
	"time"

	"labrain/models"
)

// Note is a hydrated row of the notes table together with its tags. The
// cached fields reflect the store at load or creation time; nothing
// refreshes them afterwards.
type Note struct {
	noteRow
	tags []*Tag

	store    *Store
	released atomic.Bool
}

type noteRow struct {
	id        models.NoteID
	title     string
	content   string
	createdAt time.Time
	updatedAt time.Time
}

// newNote takes a store reference for the note. Tags built from rows share
// that reference instead of taking their own.
func newNote(s *Store, row noteRow, tags []*Tag) *Note {
	s.Share()
	return &Note{noteRow: row, tags: tags, store: s}
}

func attachedTags(s *Store, rows []tagRow) []*Tag {
	tags := make([]*Tag, 0, len(rows))
	for _, row := range rows {
		tags = append(tags, newTag(s, row, false))
	}
	return tags
}

func (n *Note) ID() models.NoteID { return n.id }

func (n *Note) Title() string { return n.title }

func (n *Note) Content() string { return n.content }

func (n *Note) CreatedAt() time.Time { return n.createdAt }

func (n *Note) UpdatedAt() time.Time { return n.updatedAt }

// Tags returns the tags cached when the note was hydrated. The slice is a
// copy; attaching a tag later does not show up here.
func (n *Note) Tags() []*Tag { return slices.Clone(n.tags) }

// Equal reports whether both notes refer to the same row, regardless of
// when their fields were read.
func (n *Note) Equal(other *Note) bool {
	if n == nil || other == nil {
		return n == other
	}
	return n.id == other.id
}

// View returns a plain copy suitable for output.
func (n *Note) View() models.Note {
	tags := make([]models.Tag, 0, len(n.tags))
	for _, t := range n.tags {
		tags = append(tags, t.View())
	}
	return models.Note{
		ID:        n.id,
		Title:     n.title,
		Content:   n.content,
		Tags:      tags,
		CreatedAt: n.createdAt,
		UpdatedAt: n.updatedAt,
	}
}

// Release drops the note's reference to the store. It is safe to call more
// than once. Tags passed to CreateNote stay owned by the caller; the note
// keeps its own copies.
func (n *Note) Release() error {
	if !n.released.CompareAndSwap(false, true) {
		return nil
	}
	return n.store.Release()
}

// AddTag attaches a tag to the note in its own transaction. It fails when
// the tag does not exist or is already attached. The cached tag list is
// left as it was.
func (n *Note) AddTag(tagID models.TagID) error {
	const op = "add tag"

	if n.released.Load() {
		return storageErr(op, ErrClosed)
	}

	return n.store.withTx(op, func(tx *sql.Tx) error {
		return insertNoteTag(tx, n.id, tagID)
	})
}

// CreateNote inserts a note and attaches the given tags in one transaction,
// then returns it hydrated. An empty title is rejected before any statement
// runs.
func CreateNote(s *Store, title, content string, tags []*Tag) (*Note, error) {
	const op = "create note"

	if err := s.validate.Validate(&models.CreateNoteRequest{Title: title, Content: content}); err != nil {
		return nil, validationErr(op, err)
	}

	tags = uniqueTags(tags)

	var row noteRow
	err := s.withTx(op, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(context.Background(),
			`INSERT INTO notes (title, content) VALUES (?, ?)`, title, content)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}

		noteID := models.NewNoteID(id)
		for _, t := range tags {
			if err := insertNoteTag(tx, noteID, t.id); err != nil {
				return err
			}
		}

		row, err = selectNote(tx, noteID)
		return err
	})
	if err != nil {
		return nil, err
	}

	attached := make([]*Tag, 0, len(tags))
	for _, t := range tags {
		attached = append(attached, newTag(s, t.tagRow, false))
	}
	return newNote(s, row, attached), nil
}

// LoadNote reads a note and its tags. A missing note is a storage error
// for which IsNotFound holds.
func LoadNote(s *Store, id models.NoteID) (*Note, error) {
	var (
		row     noteRow
		tagRows []tagRow
	)

	err := s.do("load note", func(q querier) error {
		var err error
		if tagRows, err = selectTagsOfNote(q, id); err != nil {
			return err
		}
		row, err = selectNote(q, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	return newNote(s, row, attachedTags(s, tagRows)), nil
}

// ListNotes loads every note with its tags, ordered by identifier.
func ListNotes(s *Store) ([]*Note, error) {
	type loaded struct {
		row  noteRow
		tags []tagRow
	}
	var all []loaded

	err := s.do("list notes", func(q querier) error {
		ids, err := selectIDs(q, `SELECT note_id FROM notes ORDER BY note_id`, nil, models.NewNoteID)
		if err != nil {
			return err
		}
		for _, id := range ids {
			tagRows, err := selectTagsOfNote(q, id)
			if err != nil {
				return err
			}
			row, err := selectNote(q, id)
			if err != nil {
				return err
			}
			all = append(all, loaded{row: row, tags: tagRows})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	notes := make([]*Note, 0, len(all))
	for _, l := range all {
		notes = append(notes, newNote(s, l.row, attachedTags(s, l.tags)))
	}
	return notes, nil
}

func selectNote(q querier, id models.NoteID) (noteRow, error) {
	var (
		row       = noteRow{id: id}
		content   sql.NullString
		createdAt sql.NullTime
		updatedAt sql.NullTime
	)

	err := q.QueryRowContext(context.Background(), `
		SELECT title, content, created_at, updated_at
		FROM notes
		WHERE note_id = ?
	`, id.Int64()).Scan(&row.title, &content, &createdAt, &updatedAt)
	if err != nil {
		return noteRow{}, fmt.Errorf("note %s: %w", id, err)
	}

	row.content = content.String
	row.createdAt = createdAt.Time
	row.updatedAt = updatedAt.Time
	return row, nil
}

func insertNoteTag(tx *sql.Tx, noteID models.NoteID, tagID models.TagID) error {
	_, err := tx.ExecContext(context.Background(),
		`INSERT INTO note_tags (note_id, tag_id) VALUES (?, ?)`, noteID.Int64(), tagID.Int64())
	if err != nil {
		return fmt.Errorf("attach %s to %s: %w", tagID, noteID, err)
	}
	return nil
}

// uniqueTags drops nil entries and repeated identifiers, keeping the first.
func uniqueTags(tags []*Tag) []*Tag {
	seen := make(map[models.TagID]bool, len(tags))
	out := make([]*Tag, 0, len(tags))
	for _, t := range tags {
		if t == nil || seen[t.id] {
			continue
		}
		seen[t.id] = true
		out = append(out, t)
	}
	return out
}
