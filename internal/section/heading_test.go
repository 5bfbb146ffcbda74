package section

import "testing"

func TestMarkdownHeading(t *testing.T) {
	if got := MarkdownHeading("Title", 1); got != "# Title" {
		t.Errorf("expected %q, got %q", "# Title", got)
	}
	if got := MarkdownHeading("Deep", 4); got != "#### Deep" {
		t.Errorf("expected %q, got %q", "#### Deep", got)
	}
}

func TestHeadingLevel(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"# Title", 1},
		{"### Sub", 3},
		{"###### Deepest", 6},
		{"Plain text", 0},
		{"#NoSpace", 0},
		{"#", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := HeadingLevel(tt.input); got != tt.want {
			t.Errorf("HeadingLevel(%q): expected %d, got %d", tt.input, tt.want, got)
		}
	}
}

func TestHeadingLevelAndContent(t *testing.T) {
	level, content := HeadingLevelAndContent("## Getting Started")
	if level != 2 {
		t.Errorf("expected level 2, got %d", level)
	}
	if content != "Getting Started" {
		t.Errorf("expected %q, got %q", "Getting Started", content)
	}

	level, content = HeadingLevelAndContent("not a heading")
	if level != 0 {
		t.Errorf("expected level 0, got %d", level)
	}
	if content != "not a heading" {
		t.Errorf("expected content unchanged, got %q", content)
	}
}
