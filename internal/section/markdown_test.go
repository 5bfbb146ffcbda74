package section

import (
	"errors"
	"strings"
	"testing"
)

func TestParseMarkdown_HeadingHierarchy(t *testing.T) {
	input := `# Title

Intro text.

## Section A

Section A content.

### Subsection A1

Subsection A1 content.

## Section B

Section B content.
`
	tree, err := ParseMarkdown(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	root := tree.Root()
	if root.Heading != "# Title" {
		t.Errorf("expected root heading %q, got %q", "# Title", root.Heading)
	}
	if !strings.Contains(root.Text, "Intro text.") {
		t.Errorf("expected root text to contain %q, got %q", "Intro text.", root.Text)
	}
	if len(root.ChildIDs) != 2 {
		t.Fatalf("expected 2 children of root, got %d", len(root.ChildIDs))
	}

	secA, _ := tree.Get(root.ChildIDs[0])
	if secA.Heading != "## Section A" {
		t.Errorf("expected %q, got %q", "## Section A", secA.Heading)
	}
	if len(secA.ChildIDs) != 1 {
		t.Fatalf("expected 1 child under Section A, got %d", len(secA.ChildIDs))
	}
	sub, _ := tree.Get(secA.ChildIDs[0])
	if sub.Heading != "### Subsection A1" {
		t.Errorf("expected %q, got %q", "### Subsection A1", sub.Heading)
	}

	secB, _ := tree.Get(root.ChildIDs[1])
	if !strings.Contains(secB.Text, "Section B content.") {
		t.Errorf("expected section B text, got %q", secB.Text)
	}
}

func TestParseMarkdown_PreambleSkipped(t *testing.T) {
	input := "Stray intro before any heading.\n\n# Real\n\nbody\n"
	tree, err := ParseMarkdown(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	root := tree.Root()
	if root.Heading != "# Real" {
		t.Errorf("expected %q, got %q", "# Real", root.Heading)
	}
	if strings.Contains(root.Text, "Stray intro") {
		t.Errorf("expected preamble skipped, got %q", root.Text)
	}
}

func TestParseMarkdown_NoHeadings(t *testing.T) {
	_, err := ParseMarkdown(strings.NewReader("just a paragraph\n"))
	if !errors.Is(err, ErrNoHeading) {
		t.Fatalf("expected ErrNoHeading, got %v", err)
	}
}

func TestParseMarkdown_CodeBlockKeptInBody(t *testing.T) {
	input := "# API\n\n```\nGET /api/users\n```\n\nAfter code.\n"
	tree, err := ParseMarkdown(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := tree.Root().Text
	if !strings.Contains(text, "GET /api/users") {
		t.Errorf("expected code content in body, got %q", text)
	}
	if !strings.Contains(text, "After code.") {
		t.Errorf("expected trailing paragraph in body, got %q", text)
	}
}

func TestParseMarkdown_ListKeptInBody(t *testing.T) {
	input := "# T\n\n- alpha\n- beta\n"
	tree, err := ParseMarkdown(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := tree.Root().Text
	if !strings.Contains(text, "alpha") || !strings.Contains(text, "beta") {
		t.Errorf("expected list items in body, got %q", text)
	}
}
