package core

import "strings"

type (
	// FormatterOptions provide various options for formatters
	FormatterOptions struct {
		// ChunkStart is the index of the first row passed to the formatter.
		ChunkStart int
		// NullText replaces null values in formats that have no native null.
		NullText string
	}

	// Formatter converts header and rows to bytes
	Formatter interface {
		Format(header Header, rows []Row, opts *FormatterOptions) ([]byte, error)
	}
)

type (
	// Row and Header are attributes of ResultStream iterator
	Row    []Value
	Header []string

	// Meta holds metadata
	Meta struct {
		// Source the stream is read from.
		Source string
	}

	// ResultStream is a result from executed query and has a form of an iterator
	ResultStream interface {
		Meta() *Meta
		Header() Header
		Next() (Row, error)
		HasNext() bool
		Close()
	}
)

// RowSet holds every row read from the target table of a single source.
type RowSet struct {
	Source string
	Header Header
	Rows   []Row
}

func (rs *RowSet) Len() int {
	return len(rs.Rows)
}

// Column is a declared column of a table.
type Column struct {
	Name string
	Type string
}

type StructureType int

const (
	StructureTypeNone StructureType = iota
	StructureTypeTable
	StructureTypeView
)

func (s StructureType) String() string {
	switch s {
	case StructureTypeNone:
		return ""
	case StructureTypeTable:
		return "table"
	case StructureTypeView:
		return "view"
	default:
		return ""
	}
}

// Structure represents the structure of a single database
type Structure struct {
	// Name to be displayed
	Name   string
	Schema string
	// Type of layout
	Type StructureType
	// Children layout nodes
	Children []*Structure
}

// HasRelation reports whether the structure tree contains a table or view with the given name.
// Names are compared case-insensitively, the way sqlite and duckdb resolve them.
func HasRelation(structure []*Structure, name string) bool {
	for _, s := range structure {
		if s == nil {
			continue
		}
		if strings.EqualFold(s.Name, name) && (s.Type == StructureTypeTable || s.Type == StructureTypeView) {
			return true
		}
		if HasRelation(s.Children, name) {
			return true
		}
	}
	return false
}
