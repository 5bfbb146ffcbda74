package layout

import (
	"errors"
	"testing"

	"github.com/knowhub/sectiond/internal/section"
)

// docsPage is a page layout with one root, two h2 children, and nested
// subsections, in document order.
func docsPage() []Entry {
	return []Entry{
		{ID: "page", Heading: "# Guide"},
		{ID: "install", Heading: "## Install"},
		{ID: "linux", Heading: "### Linux"},
		{ID: "mac", Heading: "### macOS"},
		{ID: "usage", Heading: "## Usage"},
		{ID: "flags", Heading: "### Flags"},
	}
}

func TestInsertionIndex_ParentWithoutChildren(t *testing.T) {
	ordered := docsPage()

	// "linux" has no children: the new section goes right after it.
	idx, err := InsertionIndex(ordered, "linux", nil, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idx != 3 {
		t.Errorf("expected index 3, got %d", idx)
	}
}

func TestInsertionIndex_TakesExistingChildSlot(t *testing.T) {
	ordered := docsPage()
	children := []string{"install", "usage"}

	// Position 1 of the root's children displaces "usage".
	idx, err := InsertionIndex(ordered, "page", children, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idx != 4 {
		t.Errorf("expected index 4, got %d", idx)
	}

	// Position 0 displaces "install".
	idx, err = InsertionIndex(ordered, "page", children, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idx != 1 {
		t.Errorf("expected index 1, got %d", idx)
	}
}

func TestInsertionIndex_AfterLastChild(t *testing.T) {
	ordered := docsPage()

	// After the last child of "install": the scan from "mac" stops at the
	// first section at the new child's level or deeper, which is "flags".
	idx, err := InsertionIndex(ordered, "install", []string{"linux", "mac"}, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idx != 5 {
		t.Errorf("expected index 5, got %d", idx)
	}
}

func TestInsertionIndex_AfterLastChildAtPageEnd(t *testing.T) {
	ordered := docsPage()

	// "flags" is the last section of the page, so appending after the last
	// child of "usage" runs the scan off the end of the list.
	idx, err := InsertionIndex(ordered, "usage", []string{"flags"}, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idx != len(ordered) {
		t.Errorf("expected index %d (end of page), got %d", len(ordered), idx)
	}

	// Same boundary with a childless parent that is itself the last section.
	idx, err = InsertionIndex(ordered, "flags", nil, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idx != len(ordered) {
		t.Errorf("expected index %d, got %d", len(ordered), idx)
	}
}

func TestInsertionIndex_UnknownParent(t *testing.T) {
	_, err := InsertionIndex(docsPage(), "ghost", nil, 0)
	if !errors.Is(err, ErrParentNotInPage) {
		t.Fatalf("expected ErrParentNotInPage, got %v", err)
	}
}

func TestInsertionIndex_PositionOutOfRange(t *testing.T) {
	ordered := docsPage()
	children := []string{"install", "usage"}

	if _, err := InsertionIndex(ordered, "page", children, 3); err == nil {
		t.Fatal("expected error for position past the child count")
	}
	if _, err := InsertionIndex(ordered, "page", children, -1); err == nil {
		t.Fatal("expected error for negative position")
	}
}

func TestInsertionIndex_SplicePreservesHeadingOrder(t *testing.T) {
	ordered := docsPage()
	parents := map[string][]string{
		"page":    {"install", "usage"},
		"install": {"linux", "mac"},
		"usage":   {"flags"},
		"linux":   nil,
	}

	for parentID, children := range parents {
		for position := 0; position <= len(children); position++ {
			idx, err := InsertionIndex(ordered, parentID, children, position)
			if err != nil {
				t.Fatalf("parent %s position %d: unexpected error: %v", parentID, position, err)
			}

			parentLevel := section.HeadingLevel(ordered[indexOf(ordered, parentID)].Heading)
			placeholder := Entry{ID: "new", Heading: section.MarkdownHeading("New", parentLevel+1)}
			spliced := SpliceEntry(ordered, idx, placeholder)

			if len(spliced) != len(ordered)+1 {
				t.Fatalf("parent %s position %d: splice lost entries", parentID, position)
			}
			assertDepthFirstOrder(t, spliced)
		}
	}
}

// assertDepthFirstOrder checks that heading levels form a valid depth-first
// flattening: each entry is at most one level deeper than the one before it.
func assertDepthFirstOrder(t *testing.T, ordered []Entry) {
	t.Helper()
	prev := 0
	for i, e := range ordered {
		level := section.HeadingLevel(e.Heading)
		if level == 0 {
			t.Fatalf("entry %d %q has no heading level", i, e.Heading)
		}
		if level > prev+1 {
			t.Errorf("entry %d %q jumps from level %d to %d", i, e.Heading, prev, level)
		}
		prev = level
	}
}

func TestSpliceEntry(t *testing.T) {
	ordered := []Entry{{ID: "a"}, {ID: "b"}}
	out := SpliceEntry(ordered, 1, Entry{ID: "x"})
	if len(out) != 3 || out[0].ID != "a" || out[1].ID != "x" || out[2].ID != "b" {
		t.Errorf("unexpected splice result: %+v", out)
	}

	out = SpliceEntry(ordered, 2, Entry{ID: "x"})
	if out[2].ID != "x" {
		t.Errorf("expected entry appended at end, got %+v", out)
	}
}
