package section

import (
	"bytes"
	"fmt"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// ParseMarkdown converts an already-written Markdown document into a section
// tree, so docs can be imported without an HTML fetch. Section nesting
// follows heading levels exactly as in ParseHTML; non-heading blocks keep
// their raw Markdown source as body text.
func ParseMarkdown(r io.Reader) (*Tree, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read markdown: %w", err)
	}

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	tree := NewTree()
	var cur *Section

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if heading, ok := n.(*ast.Heading); ok {
			sec, err := tree.addHeading(cur, heading.Level)
			if err != nil {
				return nil, err
			}
			sec.Heading = MarkdownHeading(string(heading.Text(src)), heading.Level)
			cur = sec
			continue
		}
		if cur == nil {
			// Preamble before the first heading has no section to live in.
			continue
		}
		if t := rawBlockSource(n, src); t != "" {
			cur.Text += "\n" + t
		}
	}

	if tree.RootID == 0 {
		return nil, ErrNoHeading
	}
	if err := tree.validate(); err != nil {
		return nil, err
	}
	return tree, nil
}

// rawBlockSource returns the source text of a block node, trimmed of the
// trailing newline so blocks join cleanly.
func rawBlockSource(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		buf.Write(line.Value(src))
	}
	if n.Type() == ast.TypeBlock && buf.Len() == 0 {
		// Container blocks (lists, quotes) carry no lines of their own.
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			if t := rawBlockSource(c, src); t != "" {
				if buf.Len() > 0 {
					buf.WriteByte('\n')
				}
				buf.WriteString(t)
			}
		}
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n"))
}
