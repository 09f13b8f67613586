package database

import (
	"context"
	"fmt"
)

// Table is one of the relations the store manages.
type Table int

const (
	TableNotes Table = iota
	TableTags
	TableNoteTags
)

// Tables lists every relation in creation order; note_tags references the
// other two so it comes last.
var Tables = []Table{TableNotes, TableTags, TableNoteTags}

// Name returns the fixed table name.
func (t Table) Name() string {
	switch t {
	case TableNotes:
		return "notes"
	case TableTags:
		return "tags"
	case TableNoteTags:
		return "note_tags"
	default:
		return fmt.Sprintf("table(%d)", int(t))
	}
}

func (t Table) schema() string {
	switch t {
	case TableNotes:
		return `(
			note_id INTEGER PRIMARY KEY,
			title TEXT NOT NULL,
			content TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`
	case TableTags:
		return `(
			tag_id INTEGER PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			description TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`
	case TableNoteTags:
		return `(
			note_id INTEGER,
			tag_id INTEGER,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (note_id, tag_id),
			FOREIGN KEY (note_id) REFERENCES notes(note_id) ON DELETE CASCADE,
			FOREIGN KEY (tag_id) REFERENCES tags(tag_id) ON DELETE CASCADE
		)`
	default:
		return ""
	}
}

// Create creates the table if it does not exist yet.
func (t Table) Create(q querier) error {
	query := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s %s", t.Name(), t.schema())
	if _, err := q.ExecContext(context.Background(), query); err != nil {
		return fmt.Errorf("create table %s: %w", t.Name(), err)
	}
	return nil
}

// CreateTriggers installs the table's triggers. Notes used to carry an
// update_note_timestamp trigger; no operation mutates notes yet, so any
// stale copy is dropped and nothing is installed in its place.
func (t Table) CreateTriggers(q querier) error {
	if t != TableNotes {
		return nil
	}
	if _, err := q.ExecContext(context.Background(), "DROP TRIGGER IF EXISTS update_note_timestamp"); err != nil {
		return fmt.Errorf("reset triggers on %s: %w", t.Name(), err)
	}
	return nil
}

// indexes speed up tag-to-note lookups; the composite primary key already
// covers note-to-tag.
var indexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_note_tags_tag ON note_tags(tag_id)`,
}

func migrate(q querier) error {
	for _, table := range Tables {
		if err := table.Create(q); err != nil {
			return err
		}
		if err := table.CreateTriggers(q); err != nil {
			return err
		}
	}

	for _, query := range indexes {
		if _, err := q.ExecContext(context.Background(), query); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}
