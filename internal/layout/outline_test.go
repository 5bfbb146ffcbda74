package layout

import (
	"testing"

	"github.com/knowhub/sectiond/internal/richtext"
)

func TestOutline_GroupsConsecutiveIndents(t *testing.T) {
	block := Outline("page_layout", docsPage(), NoHighlight)

	if block.Type != richtext.BlockTypeRichText {
		t.Fatalf("expected rich_text block, got %q", block.Type)
	}
	if block.BlockID != "page_layout" {
		t.Errorf("expected block id %q, got %q", "page_layout", block.BlockID)
	}

	// Guide | Install | Linux, macOS | Usage | Flags: five indent runs.
	if len(block.Elements) != 5 {
		t.Fatalf("expected 5 list elements, got %d", len(block.Elements))
	}

	wantIndents := []int{0, 1, 2, 1, 2}
	wantItems := []int{1, 1, 2, 1, 1}
	for i, el := range block.Elements {
		if el.Type != richtext.ElementTypeList {
			t.Fatalf("element %d: expected list, got %q", i, el.Type)
		}
		if el.Indent != wantIndents[i] {
			t.Errorf("element %d: expected indent %d, got %d", i, wantIndents[i], el.Indent)
		}
		if len(el.Items) != wantItems[i] {
			t.Errorf("element %d: expected %d items, got %d", i, wantItems[i], len(el.Items))
		}
		if el.Border != 1 {
			t.Errorf("element %d: expected border 1, got %d", i, el.Border)
		}
	}

	// Headings lose their #-prefix in the outline.
	first := block.Elements[0].Items[0].Runs[0]
	if first.Text != "Guide" {
		t.Errorf("expected %q, got %q", "Guide", first.Text)
	}
}

func TestOutline_HighlightsEntry(t *testing.T) {
	block := Outline("page_layout", docsPage(), 2)

	var styled, plain int
	for _, el := range block.Elements {
		for _, item := range el.Items {
			run := item.Runs[0]
			if run.Style != nil && run.Style.Code {
				styled++
				if run.Text != "Linux" {
					t.Errorf("expected %q highlighted, got %q", "Linux", run.Text)
				}
			} else {
				plain++
			}
		}
	}
	if styled != 1 {
		t.Errorf("expected exactly 1 highlighted entry, got %d", styled)
	}
	if plain != len(docsPage())-1 {
		t.Errorf("expected %d plain entries, got %d", len(docsPage())-1, plain)
	}
}

func TestOutline_HighlightsFirstEntry(t *testing.T) {
	// Index zero is a valid highlight target, not "no highlight".
	block := Outline("page_layout", docsPage(), 0)
	run := block.Elements[0].Items[0].Runs[0]
	if run.Style == nil || !run.Style.Code {
		t.Errorf("expected first entry highlighted, got %+v", run)
	}
}

func TestPreviewInsert(t *testing.T) {
	block, idx, err := PreviewInsert("insert_preview", docsPage(), "linux", nil, 0, "Packages")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idx != 3 {
		t.Errorf("expected insertion index 3, got %d", idx)
	}

	// The placeholder shows up highlighted at the computed slot, one level
	// below its parent.
	var entries []richtext.Object
	for _, el := range block.Elements {
		for _, item := range el.Items {
			entries = append(entries, item.Runs[0])
		}
	}
	if len(entries) != len(docsPage())+1 {
		t.Fatalf("expected %d entries, got %d", len(docsPage())+1, len(entries))
	}
	placeholder := entries[idx]
	if placeholder.Text != "Packages" {
		t.Errorf("expected placeholder %q at slot %d, got %q", "Packages", idx, placeholder.Text)
	}
	if placeholder.Style == nil || !placeholder.Style.Code {
		t.Errorf("expected placeholder highlighted, got %+v", placeholder.Style)
	}
}

func TestPreviewInsert_UnknownParent(t *testing.T) {
	if _, _, err := PreviewInsert("p", docsPage(), "ghost", nil, 0, "X"); err == nil {
		t.Fatal("expected error for unknown parent")
	}
}

func TestPositionOptions(t *testing.T) {
	children := []Entry{
		{ID: "a", Heading: "## Install"},
		{ID: "b", Heading: "## Usage"},
		{ID: "c", Heading: "## FAQ"},
	}
	got := PositionOptions(children)
	want := []string{
		`Before "Install" section`,
		`Between "Install" and "Usage" sections`,
		`Between "Usage" and "FAQ" sections`,
		`After "FAQ" section`,
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d options, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("option %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestPositionOptions_NoChildren(t *testing.T) {
	if got := PositionOptions(nil); got != nil {
		t.Errorf("expected nil for no children, got %v", got)
	}
}
