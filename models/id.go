package models

import (
	"cmp"
	"fmt"
	"strconv"
)

// kind marks which entity an ID belongs to. The method is unexported so
// only this package can declare new kinds.
type kind interface {
	kindName() string
}

type noteKind struct{}

func (noteKind) kindName() string { return "NoteId" }

type tagKind struct{}

func (tagKind) kindName() string { return "TagId" }

// ID is a store-assigned surrogate key. The type parameter keeps note and tag
// identifiers apart at compile time while the value stays a plain int64.
type ID[K kind] int64

// NoteID identifies a row in the notes table.
type NoteID = ID[noteKind]

// TagID identifies a row in the tags table.
type TagID = ID[tagKind]

// NewNoteID wraps a raw key read from the notes table.
func NewNoteID(v int64) NoteID { return NoteID(v) }

// NewTagID wraps a raw key read from the tags table.
func NewTagID(v int64) TagID { return TagID(v) }

// ParseNoteID parses a base-10 note identifier.
func ParseNoteID(s string) (NoteID, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid note id %q: %w", s, err)
	}
	return NoteID(v), nil
}

// ParseTagID parses a base-10 tag identifier.
func ParseTagID(s string) (TagID, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid tag id %q: %w", s, err)
	}
	return TagID(v), nil
}

// Int64 returns the raw key for binding query parameters.
func (id ID[K]) Int64() int64 { return int64(id) }

// Compare returns -1, 0 or +1 depending on the order of id and other.
func (id ID[K]) Compare(other ID[K]) int { return cmp.Compare(id, other) }

// Less reports whether id sorts before other.
func (id ID[K]) Less(other ID[K]) bool { return id < other }

// String formats the id as Kind(n), e.g. NoteId(7).
func (id ID[K]) String() string {
	var k K
	return k.kindName() + "(" + strconv.FormatInt(int64(id), 10) + ")"
}

func (id ID[K]) GoString() string { return id.String() }
