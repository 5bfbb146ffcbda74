// Package store persists section records in sqlite via bun. A page is
// identified by its root section; document order within a page lives in the
// pos column.
package store

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// SectionRecord is one persisted section of a page. Records of a page form a
// strict tree via ParentID, and pos fixes the depth-first document order.
type SectionRecord struct {
	bun.BaseModel `bun:"table:sections,alias:s"`

	ID       uuid.UUID  `bun:"id,pk,type:uuid" json:"id"`
	PageID   uuid.UUID  `bun:"page_id,notnull,type:uuid" json:"page_id"`
	ParentID *uuid.UUID `bun:"parent_id,type:uuid" json:"parent_id,omitempty"`
	Pos      int        `bun:"pos,notnull" json:"pos"`

	Scope     string `bun:"scope,notnull" json:"scope"`
	SourceURL string `bun:"source_url" json:"source_url,omitempty"`

	HeadingLevel int    `bun:"heading_level,notnull" json:"heading_level"`
	Heading      string `bun:"heading,notnull" json:"heading"`
	Text         string `bun:"text" json:"text"`

	// Provenance fields, stored as-is. The embedding is an opaque vector
	// computed elsewhere.
	ProperNounsInSection string `bun:"proper_nouns_section" json:"proper_nouns_section,omitempty"`
	ProperNounsInDoc     string `bun:"proper_nouns_doc" json:"proper_nouns_doc,omitempty"`
	PrecedingContext     string `bun:"preceding_context" json:"preceding_context,omitempty"`
	Embedding            []byte `bun:"embedding" json:"-"`

	CreatedAt time.Time `bun:"created_at,notnull" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,notnull" json:"updated_at"`
}

// InsertRequest describes one user-authored section to splice into a page.
// Parent linkage is by position, not a pre-assigned id: the record's id is
// minted at write time.
type InsertRequest struct {
	ParentID uuid.UUID
	Position int    // ordinal among the parent's children
	Heading  string // plain text, without #-prefix
	Text     string // Markdown body
}
