package database

import (
	"testing"

	"labrain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNote_CreateAndLoad(t *testing.T) {
	s := setupTestStore(t)

	note, err := CreateNote(s, "Test", "This is a test note...", nil)
	require.NoError(t, err)
	defer note.Release()

	assert.Positive(t, note.ID().Int64())
	assert.Equal(t, "Test", note.Title())
	assert.Equal(t, "This is a test note...", note.Content())
	assert.Empty(t, note.Tags())
	assert.False(t, note.CreatedAt().IsZero(), "created_at is assigned by the store")
	assert.False(t, note.UpdatedAt().IsZero(), "updated_at is assigned by the store")

	loaded, err := LoadNote(s, note.ID())
	require.NoError(t, err)
	defer loaded.Release()

	assert.Equal(t, note.ID(), loaded.ID())
	assert.Equal(t, note.Title(), loaded.Title())
	assert.Equal(t, note.Content(), loaded.Content())
	assert.Empty(t, loaded.Tags())
	assert.Equal(t, note.CreatedAt(), loaded.CreatedAt())
}

func TestNote_CreateAndAddTag(t *testing.T) {
	s := setupTestStore(t)

	note, err := CreateNote(s, "Test", "This is a test note...", nil)
	require.NoError(t, err)
	defer note.Release()

	tag, err := CreateTag(s, "TEST", "")
	require.NoError(t, err)
	defer tag.Release()

	require.NoError(t, note.AddTag(tag.ID()))
	assert.Empty(t, note.Tags(), "cached tags are not refreshed")

	loaded, err := LoadNote(s, note.ID())
	require.NoError(t, err)
	defer loaded.Release()

	require.Len(t, loaded.Tags(), 1)
	assert.True(t, loaded.Tags()[0].Equal(tag))
	assert.Equal(t, "TEST", loaded.Tags()[0].Name())
}

func TestNote_CreateWithTags(t *testing.T) {
	s := setupTestStore(t)

	work, err := CreateTag(s, "work", "")
	require.NoError(t, err)
	defer work.Release()
	home, err := CreateTag(s, "home", "")
	require.NoError(t, err)
	defer home.Release()

	note, err := CreateNote(s, "Tagged", "", []*Tag{work, home, work, nil})
	require.NoError(t, err)
	defer note.Release()

	require.Len(t, note.Tags(), 2, "duplicates and nil entries are dropped")

	loaded, err := LoadNote(s, note.ID())
	require.NoError(t, err)
	defer loaded.Release()

	var ids []models.TagID
	for _, tag := range loaded.Tags() {
		ids = append(ids, tag.ID())
	}
	assert.ElementsMatch(t, []models.TagID{work.ID(), home.ID()}, ids)
}

func TestNote_CreateWithMissingTagIsAtomic(t *testing.T) {
	s := setupTestStore(t)

	ghost, err := CreateTag(s, "ghost", "")
	require.NoError(t, err)
	defer ghost.Release()

	// Remove the row behind the cached tag so the insert hits the foreign key.
	require.NoError(t, s.do("delete tag", func(q querier) error {
		_, err := q.ExecContext(t.Context(), "DELETE FROM tags WHERE tag_id = ?", ghost.ID().Int64())
		return err
	}))

	_, err = CreateNote(s, "Never stored", "", []*Tag{ghost})
	require.Error(t, err)
	assert.True(t, IsForeignKeyViolation(err))

	assert.Equal(t, 0, queryInt(t, s, "SELECT COUNT(*) FROM notes"), "rolled back note row")
	assert.Equal(t, 0, queryInt(t, s, "SELECT COUNT(*) FROM note_tags"))
}

func TestNote_Validation(t *testing.T) {
	s := setupTestStore(t)

	t.Run("Empty title is rejected before storage", func(t *testing.T) {
		_, err := CreateNote(s, "", "content", nil)
		require.Error(t, err)
		assert.True(t, IsValidation(err))
		assert.False(t, IsStorage(err))
		assert.Contains(t, err.Error(), "title is required")

		notes, err := ListNotes(s)
		require.NoError(t, err)
		assert.Empty(t, notes)
	})

	t.Run("Empty content is allowed", func(t *testing.T) {
		note, err := CreateNote(s, "Title only", "", nil)
		require.NoError(t, err)
		defer note.Release()

		loaded, err := LoadNote(s, note.ID())
		require.NoError(t, err)
		defer loaded.Release()
		assert.Equal(t, "", loaded.Content())
	})
}

func TestNote_LoadMissing(t *testing.T) {
	s := setupTestStore(t)

	_, err := LoadNote(s, models.NewNoteID(42))
	require.Error(t, err)
	assert.True(t, IsStorage(err))
	assert.True(t, IsNotFound(err))
	assert.Equal(t, 1, s.Refs(), "failed loads take no reference")
}

func TestNote_AddTag_Errors(t *testing.T) {
	s := setupTestStore(t)

	note, err := CreateNote(s, "Integrity", "", nil)
	require.NoError(t, err)
	defer note.Release()

	t.Run("Missing tag violates the foreign key", func(t *testing.T) {
		err := note.AddTag(models.NewTagID(999))
		require.Error(t, err)
		assert.True(t, IsStorage(err))
		assert.True(t, IsForeignKeyViolation(err))

		tags, err := TagsOfNote(s, note.ID())
		require.NoError(t, err)
		assert.Empty(t, tags)
	})

	t.Run("Attaching twice violates the primary key", func(t *testing.T) {
		tag, err := CreateTag(s, "once", "")
		require.NoError(t, err)
		defer tag.Release()

		require.NoError(t, note.AddTag(tag.ID()))

		err = note.AddTag(tag.ID())
		require.Error(t, err)
		assert.True(t, IsStorage(err))
		assert.True(t, IsDuplicateAssociation(err))

		tags, err := TagsOfNote(s, note.ID())
		require.NoError(t, err)
		assert.Len(t, tags, 1)
		for _, tag := range tags {
			tag.Release()
		}
	})
}

func TestNote_IdentityEquality(t *testing.T) {
	s := setupTestStore(t)

	first, err := CreateNote(s, "Same", "text", nil)
	require.NoError(t, err)
	defer first.Release()
	second, err := CreateNote(s, "Same", "text", nil)
	require.NoError(t, err)
	defer second.Release()

	a, err := LoadNote(s, first.ID())
	require.NoError(t, err)
	defer a.Release()
	b, err := LoadNote(s, first.ID())
	require.NoError(t, err)
	defer b.Release()

	assert.True(t, a.Equal(b))
	assert.True(t, a.Equal(first))
	assert.False(t, a.Equal(second), "same fields, different identifier")
	assert.False(t, a.Equal(nil))
}

func TestNote_TagsReturnsCopy(t *testing.T) {
	s := setupTestStore(t)

	tag, err := CreateTag(s, "copy", "")
	require.NoError(t, err)
	defer tag.Release()

	note, err := CreateNote(s, "Copy", "", []*Tag{tag})
	require.NoError(t, err)
	defer note.Release()

	tags := note.Tags()
	tags[0] = nil

	require.Len(t, note.Tags(), 1)
	assert.NotNil(t, note.Tags()[0])
}

func TestNote_ListAll(t *testing.T) {
	s := setupTestStore(t)

	titles := []string{"first", "second", "third"}
	created := make(map[models.NoteID]string)
	for _, title := range titles {
		note, err := CreateNote(s, title, "body of "+title, nil)
		require.NoError(t, err)
		created[note.ID()] = title
		require.NoError(t, note.Release())
	}

	notes, err := ListNotes(s)
	require.NoError(t, err)
	require.Len(t, notes, len(titles))

	for i, note := range notes {
		if i > 0 {
			assert.True(t, notes[i-1].ID().Less(note.ID()), "ordered by identifier")
		}
		assert.Equal(t, created[note.ID()], note.Title())
		assert.Equal(t, "body of "+note.Title(), note.Content())
		require.NoError(t, note.Release())
	}
}

func TestNote_View(t *testing.T) {
	s := setupTestStore(t)

	tag, err := CreateTag(s, "view", "rendered")
	require.NoError(t, err)
	defer tag.Release()

	note, err := CreateNote(s, "View", "content", []*Tag{tag})
	require.NoError(t, err)
	defer note.Release()

	view := note.View()
	assert.Equal(t, note.ID(), view.ID)
	assert.Equal(t, "View", view.Title)
	assert.Equal(t, "content", view.Content)
	require.Len(t, view.Tags, 1)
	assert.Equal(t, "view", view.Tags[0].Name)
	assert.Equal(t, "rendered", view.Tags[0].Description)
}

func TestSchema_CascadeDelete(t *testing.T) {
	s := setupTestStore(t)

	tag, err := CreateTag(s, "cascade", "")
	require.NoError(t, err)
	defer tag.Release()

	note, err := CreateNote(s, "Cascade", "", []*Tag{tag})
	require.NoError(t, err)
	defer note.Release()
	other, err := CreateNote(s, "Other", "", []*Tag{tag})
	require.NoError(t, err)
	defer other.Release()

	require.Equal(t, 2, queryInt(t, s, "SELECT COUNT(*) FROM note_tags"))

	exec := func(query string, args ...any) {
		require.NoError(t, s.do("test exec", func(q querier) error {
			_, err := q.ExecContext(t.Context(), query, args...)
			return err
		}))
	}

	exec("DELETE FROM notes WHERE note_id = ?", note.ID().Int64())
	assert.Equal(t, 1, queryInt(t, s, "SELECT COUNT(*) FROM note_tags"), "note delete cascades")

	exec("DELETE FROM tags WHERE tag_id = ?", tag.ID().Int64())
	assert.Equal(t, 0, queryInt(t, s, "SELECT COUNT(*) FROM note_tags"), "tag delete cascades")
}

func TestSchema_Idempotent(t *testing.T) {
	s := setupTestStore(t)

	note, err := CreateNote(s, "Before", "", nil)
	require.NoError(t, err)
	defer note.Release()

	require.NoError(t, s.do("migrate again", migrate))

	for _, table := range Tables {
		require.NoError(t, s.do("create again", func(q querier) error { return table.Create(q) }))
	}

	assert.Equal(t, 1, queryInt(t, s, "SELECT COUNT(*) FROM notes"))
	assert.Equal(t, 0, queryInt(t, s,
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'trigger' AND name = 'update_note_timestamp'"))
}
