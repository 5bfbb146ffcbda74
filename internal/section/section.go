// Package section builds heading-keyed section trees from HTML and
// Markdown documents. Headings and body text are stored as Markdown.
package section

// Section is one heading plus its body text and subsection children.
// IDs are sequential and scoped to a single parse.
type Section struct {
	ID           int
	HeadingLevel int    // 1-6, from the heading tag rank
	Heading      string // Markdown, includes the #-prefix
	Text         string // Markdown body
	ParentID     int    // 0 means no parent
	ChildIDs     []int  // document order

	// Provenance fields, carried through to storage untouched.
	ProperNounsInSection []string
	ProperNounsInDoc     []string
	PrecedingContext     string
	SummaryEmbedding     []float32
}

// Tree is an arena of sections keyed by parse-scoped integer id.
// A valid tree has exactly one root.
type Tree struct {
	RootID   int
	Sections map[int]*Section

	nextID int
}

func NewTree() *Tree {
	return &Tree{
		Sections: make(map[int]*Section),
		nextID:   1,
	}
}

// Root returns the root section, or nil if the tree has none.
func (t *Tree) Root() *Section {
	return t.Sections[t.RootID]
}

// Get returns the section with the given id.
func (t *Tree) Get(id int) (*Section, bool) {
	s, ok := t.Sections[id]
	return s, ok
}

// Len returns the number of sections in the tree.
func (t *Tree) Len() int {
	return len(t.Sections)
}

// Walk visits sections depth-first in document order, starting at the root.
func (t *Tree) Walk(fn func(s *Section)) {
	var visit func(id int)
	visit = func(id int) {
		s, ok := t.Sections[id]
		if !ok {
			return
		}
		fn(s)
		for _, childID := range s.ChildIDs {
			visit(childID)
		}
	}
	if t.RootID != 0 {
		visit(t.RootID)
	}
}

// addHeading creates a new section for a heading of the given level and
// attaches it below cur, popping ancestors whose level is >= level. When the
// walk pops the root itself, the new section replaces it as root. This
// tolerates pages whose true root heading does not occur first, at the cost
// of discarding the previously built subtree.
func (t *Tree) addHeading(cur *Section, level int) (*Section, error) {
	sec := &Section{
		ID:           t.nextID,
		HeadingLevel: level,
	}
	t.nextID++

	parent := cur
	for parent != nil && parent.HeadingLevel >= level {
		if parent.ID == t.RootID {
			t.RootID = 0
			parent = nil
			break
		}
		parent = t.Sections[parent.ParentID]
	}
	if parent == nil && t.RootID != 0 {
		return nil, &MalformedTreeError{Reason: "ancestor walk escaped a live root"}
	}

	if parent == nil {
		t.RootID = sec.ID
	} else {
		sec.ParentID = parent.ID
		parent.ChildIDs = append(parent.ChildIDs, sec.ID)
	}
	t.Sections[sec.ID] = sec
	return sec, nil
}

// validate checks the single-root invariant after a parse.
func (t *Tree) validate() error {
	if t.RootID == 0 || t.Sections[t.RootID] == nil {
		return &MalformedTreeError{Reason: "parse finished without a root section"}
	}
	return nil
}
