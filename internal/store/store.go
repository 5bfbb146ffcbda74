package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/knowhub/sectiond/internal/layout"
	"github.com/knowhub/sectiond/internal/section"
)

// ErrNotFound is returned when a requested section or page does not exist.
// Callers decide whether to retry; the store never does.
var ErrNotFound = errors.New("section not found")

// Store gives the service access to persisted section records.
type Store struct {
	db *bun.DB
}

func New(db *bun.DB) *Store {
	return &Store{db: db}
}

// Init creates the schema when missing.
func (s *Store) Init(ctx context.Context) error {
	if _, err := s.db.NewCreateTable().
		Model((*SectionRecord)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return fmt.Errorf("create sections table: %w", err)
	}
	if _, err := s.db.NewCreateIndex().
		Model((*SectionRecord)(nil)).
		Index("idx_sections_page_pos").
		IfNotExists().
		Column("page_id", "pos").
		Exec(ctx); err != nil {
		return fmt.Errorf("create page order index: %w", err)
	}
	return nil
}

// CreateTree persists a freshly parsed section tree as one page, in a single
// transaction: either every section in the tree is stored or none is. It
// returns the new page id (the root section's id).
func (s *Store) CreateTree(ctx context.Context, scope, sourceURL string, tree *section.Tree) (uuid.UUID, error) {
	records, err := flattenTree(scope, sourceURL, tree)
	if err != nil {
		return uuid.Nil, err
	}

	err = s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().Model(&records).Exec(ctx)
		if err != nil {
			return fmt.Errorf("insert sections: %w", err)
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return records[0].PageID, nil
}

// flattenTree translates an in-memory tree into records in depth-first
// document order, minting uuids and rewiring parent linkage onto them.
func flattenTree(scope, sourceURL string, tree *section.Tree) ([]SectionRecord, error) {
	root := tree.Root()
	if root == nil {
		return nil, &section.MalformedTreeError{Reason: "tree has no root"}
	}

	pageID := uuid.New()
	ids := map[int]uuid.UUID{root.ID: pageID}
	now := time.Now().UTC()

	var records []SectionRecord
	tree.Walk(func(sec *section.Section) {
		id, ok := ids[sec.ID]
		if !ok {
			id = uuid.New()
			ids[sec.ID] = id
		}
		rec := SectionRecord{
			ID:                   id,
			PageID:               pageID,
			Pos:                  len(records),
			Scope:                scope,
			SourceURL:            sourceURL,
			HeadingLevel:         sec.HeadingLevel,
			Heading:              sec.Heading,
			Text:                 sec.Text,
			ProperNounsInSection: strings.Join(sec.ProperNounsInSection, " "),
			ProperNounsInDoc:     strings.Join(sec.ProperNounsInDoc, " "),
			PrecedingContext:     sec.PrecedingContext,
			Embedding:            encodeEmbedding(sec.SummaryEmbedding),
			CreatedAt:            now,
			UpdatedAt:            now,
		}
		if sec.ParentID != 0 {
			parentID := ids[sec.ParentID]
			rec.ParentID = &parentID
		}
		records = append(records, rec)
	})
	return records, nil
}

// SectionByID fetches one section record.
func (s *Store) SectionByID(ctx context.Context, id uuid.UUID) (*SectionRecord, error) {
	rec := new(SectionRecord)
	err := s.db.NewSelect().Model(rec).Where("s.id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select section: %w", err)
	}
	return rec, nil
}

// OrderedSectionsInPage returns every section of a page in document order.
func (s *Store) OrderedSectionsInPage(ctx context.Context, pageID uuid.UUID) ([]SectionRecord, error) {
	var recs []SectionRecord
	err := s.db.NewSelect().Model(&recs).
		Where("s.page_id = ?", pageID).
		Order("s.pos ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("select page sections: %w", err)
	}
	if len(recs) == 0 {
		return nil, ErrNotFound
	}
	return recs, nil
}

// ChildSections returns the direct children of a section in document order.
func (s *Store) ChildSections(ctx context.Context, parentID uuid.UUID) ([]SectionRecord, error) {
	var recs []SectionRecord
	err := s.db.NewSelect().Model(&recs).
		Where("s.parent_id = ?", parentID).
		Order("s.pos ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("select child sections: %w", err)
	}
	return recs, nil
}

// PagesInScope lists root sections (pages) for a scope.
func (s *Store) PagesInScope(ctx context.Context, scope string) ([]SectionRecord, error) {
	var recs []SectionRecord
	err := s.db.NewSelect().Model(&recs).
		Where("s.scope = ?", scope).
		Where("s.parent_id IS NULL").
		Order("s.created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("select pages: %w", err)
	}
	return recs, nil
}

// InsertSection splices one new section into a page at the document-order
// index implied by (parent, position), shifting later records down. The read
// of current order, the shift, and the insert happen in one transaction.
func (s *Store) InsertSection(ctx context.Context, pageID uuid.UUID, req InsertRequest) (*SectionRecord, error) {
	var rec *SectionRecord
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var ordered []SectionRecord
		if err := tx.NewSelect().Model(&ordered).
			Where("s.page_id = ?", pageID).
			Order("s.pos ASC").
			Scan(ctx); err != nil {
			return fmt.Errorf("select page sections: %w", err)
		}
		if len(ordered) == 0 {
			return ErrNotFound
		}

		parent := findRecord(ordered, req.ParentID)
		if parent == nil {
			return ErrNotFound
		}
		var childIDs []string
		for _, r := range ordered {
			if r.ParentID != nil && *r.ParentID == req.ParentID {
				childIDs = append(childIDs, r.ID.String())
			}
		}

		idx, err := layout.InsertionIndex(entries(ordered), req.ParentID.String(), childIDs, req.Position)
		if err != nil {
			return err
		}

		if _, err := tx.NewUpdate().Model((*SectionRecord)(nil)).
			Set("pos = pos + 1").
			Where("page_id = ?", pageID).
			Where("pos >= ?", idx).
			Exec(ctx); err != nil {
			return fmt.Errorf("shift section order: %w", err)
		}

		now := time.Now().UTC()
		parentID := req.ParentID
		rec = &SectionRecord{
			ID:           uuid.New(),
			PageID:       pageID,
			ParentID:     &parentID,
			Pos:          idx,
			Scope:        parent.Scope,
			SourceURL:    parent.SourceURL,
			HeadingLevel: parent.HeadingLevel + 1,
			Heading:      section.MarkdownHeading(req.Heading, parent.HeadingLevel+1),
			Text:         req.Text,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if _, err := tx.NewInsert().Model(rec).Exec(ctx); err != nil {
			return fmt.Errorf("insert section: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Entries projects records into the layout package's view of a page.
func entries(recs []SectionRecord) []layout.Entry {
	out := make([]layout.Entry, len(recs))
	for i, r := range recs {
		out[i] = layout.Entry{ID: r.ID.String(), Heading: r.Heading}
	}
	return out
}

// Entries is the exported form used by the API layer.
func Entries(recs []SectionRecord) []layout.Entry {
	return entries(recs)
}

func findRecord(recs []SectionRecord, id uuid.UUID) *SectionRecord {
	for i := range recs {
		if recs[i].ID == id {
			return &recs[i]
		}
	}
	return nil
}

// encodeEmbedding packs the pass-through vector as little-endian float32s.
func encodeEmbedding(v []float32) []byte {
	if len(v) == 0 {
		return nil
	}
	buf := make([]byte, 0, len(v)*4)
	for _, f := range v {
		bits := math.Float32bits(f)
		buf = append(buf, byte(bits), byte(bits>>8), byte(bits>>16), byte(bits>>24))
	}
	return buf
}
