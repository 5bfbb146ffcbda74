package section

import (
	"errors"
	"testing"
)

func TestStyleState_InlineWrapping(t *testing.T) {
	tests := []struct {
		name  string
		state styleState
		input string
		want  string
	}{
		{"plain", styleState{}, "hello", "hello"},
		{"bold", styleState{bold: true}, "hello", "**hello**"},
		{"italic", styleState{italic: true}, "hello", "*hello*"},
		{"strike", styleState{strike: true}, "hello", "~~hello~~"},
		{"code", styleState{code: true}, "hello", "`hello`"},
		{"bold italic", styleState{bold: true, italic: true}, "hello", "***hello***"},
		{"code inside bold", styleState{bold: true, code: true}, "x", "**`x`**"},
		{"newlines collapse", styleState{}, "a\nb\nc", "a b c"},
	}
	for _, tt := range tests {
		got, err := tt.state.apply(tt.input)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.name, err)
		}
		if got != tt.want {
			t.Errorf("%s: expected %q, got %q", tt.name, tt.want, got)
		}
	}
}

func TestStyleState_HeadingAndPreformattedBypass(t *testing.T) {
	// Heading and preformatted text skip inline styling entirely, including
	// newline normalization.
	st := styleState{heading: true, bold: true}
	got, err := st.apply("raw\ntext")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "raw\ntext" {
		t.Errorf("heading: expected %q, got %q", "raw\ntext", got)
	}

	st = styleState{preformatted: true, code: true}
	got, err = st.apply("GET /api\nPOST /api")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "GET /api\nPOST /api" {
		t.Errorf("preformatted: expected %q, got %q", "GET /api\nPOST /api", got)
	}
}

func TestStyleState_LinkResolution(t *testing.T) {
	st := styleState{link: true, url: "/x", pageURL: "https://h.example/docs/"}
	got, err := st.apply("link")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "[link](https://h.example/x)" {
		t.Errorf("expected %q, got %q", "[link](https://h.example/x)", got)
	}

	// Absolute hrefs pass through unchanged.
	st = styleState{link: true, url: "https://other.example/y", pageURL: "https://h.example/docs/"}
	got, err = st.apply("ext")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "[ext](https://other.example/y)" {
		t.Errorf("expected %q, got %q", "[ext](https://other.example/y)", got)
	}
}

func TestStyleState_LinkWithoutURLFails(t *testing.T) {
	st := styleState{link: true, pageURL: "https://h.example/"}
	if _, err := st.apply("text"); err == nil {
		t.Fatal("expected error for link style without URL")
	} else {
		var mt *MalformedTreeError
		if !errors.As(err, &mt) {
			t.Errorf("expected MalformedTreeError, got %T", err)
		}
	}
}

func TestStyleState_ListNesting(t *testing.T) {
	var st styleState

	st.pushList(false)
	prefix, err := st.listPrefix()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prefix != "    * " {
		t.Errorf("expected %q, got %q", "    * ", prefix)
	}

	st.pushList(true)
	prefix, err = st.listPrefix()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prefix != "        1. " {
		t.Errorf("expected %q, got %q", "        1. ", prefix)
	}

	st.bumpOrdinal()
	prefix, err = st.listPrefix()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prefix != "        2. " {
		t.Errorf("expected %q, got %q", "        2. ", prefix)
	}

	// Popping back to the bullet list restores its prefix.
	st.popList()
	prefix, err = st.listPrefix()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prefix != "    * " {
		t.Errorf("expected %q, got %q", "    * ", prefix)
	}
}

func TestStyleState_ListPrefixOutsideList(t *testing.T) {
	var st styleState
	if _, err := st.listPrefix(); err == nil {
		t.Fatal("expected error for list item outside any list")
	}
}

func TestStyleState_BumpOrdinalIgnoresBulletLists(t *testing.T) {
	var st styleState
	st.pushList(false)
	st.bumpOrdinal()
	prefix, err := st.listPrefix()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prefix != "    * " {
		t.Errorf("expected %q, got %q", "    * ", prefix)
	}
}
