package database

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"
	"time"

	"labrain/models"
)

// Tag is a hydrated row of the tags table. Its fields are a snapshot taken
// when it was loaded or created.
type Tag struct {
	tagRow

	store *Store
	// owned is false for tags hydrated as part of a Note; those ride on the
	// note's reference.
	owned    bool
	released atomic.Bool
}

type tagRow struct {
	id          models.TagID
	name        string
	description string
	createdAt   time.Time
}

func newTag(s *Store, row tagRow, owned bool) *Tag {
	t := &Tag{tagRow: row, store: s, owned: owned}
	if owned {
		s.Share()
	}
	return t
}

func (t *Tag) ID() models.TagID { return t.id }

func (t *Tag) Name() string { return t.name }

func (t *Tag) Description() string { return t.description }

func (t *Tag) CreatedAt() time.Time { return t.createdAt }

// Equal reports whether both tags refer to the same row.
func (t *Tag) Equal(other *Tag) bool {
	if t == nil || other == nil {
		return t == other
	}
	return t.id == other.id
}

// View returns a plain copy suitable for output.
func (t *Tag) View() models.Tag {
	return models.Tag{
		ID:          t.id,
		Name:        t.name,
		Description: t.description,
		CreatedAt:   t.createdAt,
	}
}

// Release drops the tag's reference to the store. Tags that came with a
// Note are released together with it, so calling this on them is a no-op.
func (t *Tag) Release() error {
	if !t.owned || !t.released.CompareAndSwap(false, true) {
		return nil
	}
	return t.store.Release()
}

// CreateTag inserts a tag and returns it hydrated. Tag names are unique;
// a duplicate fails with a storage error for which IsUniqueViolation holds.
func CreateTag(s *Store, name, description string) (*Tag, error) {
	const op = "create tag"

	if err := s.validate.Validate(&models.CreateTagRequest{Name: name, Description: description}); err != nil {
		return nil, validationErr(op, err)
	}

	var row tagRow
	err := s.withTx(op, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(context.Background(),
			`INSERT INTO tags (name, description) VALUES (?, ?)`, name, description)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		row, err = selectTag(tx, models.NewTagID(id))
		return err
	})
	if err != nil {
		return nil, err
	}

	return newTag(s, row, true), nil
}

// LoadTag reads one tag by identifier.
func LoadTag(s *Store, id models.TagID) (*Tag, error) {
	var row tagRow
	err := s.do("load tag", func(q querier) error {
		var err error
		row, err = selectTag(q, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return newTag(s, row, true), nil
}

// TagsOfNote loads every tag attached to a note. An untagged or unknown
// note yields an empty slice.
func TagsOfNote(s *Store, noteID models.NoteID) ([]*Tag, error) {
	var rows []tagRow
	err := s.do("load tags of note", func(q querier) error {
		var err error
		rows, err = selectTagsOfNote(q, noteID)
		return err
	})
	if err != nil {
		return nil, err
	}

	tags := make([]*Tag, 0, len(rows))
	for _, row := range rows {
		tags = append(tags, newTag(s, row, true))
	}
	return tags, nil
}

// ListTags loads every tag ordered by name.
func ListTags(s *Store) ([]*Tag, error) {
	var rows []tagRow
	err := s.do("list tags", func(q querier) error {
		ids, err := selectIDs(q, `SELECT tag_id FROM tags ORDER BY name`, nil, models.NewTagID)
		if err != nil {
			return err
		}
		for _, id := range ids {
			row, err := selectTag(q, id)
			if err != nil {
				return err
			}
			rows = append(rows, row)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	tags := make([]*Tag, 0, len(rows))
	for _, row := range rows {
		tags = append(tags, newTag(s, row, true))
	}
	return tags, nil
}

func selectTag(q querier, id models.TagID) (tagRow, error) {
	var (
		row         = tagRow{id: id}
		description sql.NullString
		createdAt   sql.NullTime
	)

	err := q.QueryRowContext(context.Background(), `
		SELECT name, description, created_at
		FROM tags
		WHERE tag_id = ?
	`, id.Int64()).Scan(&row.name, &description, &createdAt)
	if err != nil {
		return tagRow{}, fmt.Errorf("tag %s: %w", id, err)
	}

	row.description = description.String
	row.createdAt = createdAt.Time
	return row, nil
}

// selectTagsOfNote reads the association ids first and then each tag, so no
// result set is open while the tag rows are fetched.
func selectTagsOfNote(q querier, noteID models.NoteID) ([]tagRow, error) {
	ids, err := selectIDs(q, `SELECT tag_id FROM note_tags WHERE note_id = ? ORDER BY tag_id`,
		[]any{noteID.Int64()}, models.NewTagID)
	if err != nil {
		return nil, err
	}

	rows := make([]tagRow, 0, len(ids))
	for _, id := range ids {
		row, err := selectTag(q, id)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// selectIDs collects a single integer column and wraps each value.
func selectIDs[T any](q querier, query string, args []any, wrap func(int64) T) ([]T, error) {
	rows, err := q.QueryContext(context.Background(), query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []T
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, wrap(id))
	}

	return ids, rows.Err()
}
