package section

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Options control where in the document parsing begins and ends.
type Options struct {
	// StartMarker is a CSS class naming the element that contains the page
	// content. When empty or not found, parsing starts at <body>.
	StartMarker string
	// EndMarker is a CSS class that terminates parsing when encountered.
	// A footer or script element terminates parsing regardless.
	EndMarker string
}

// ParseHTML converts an HTML documentation page into a section tree. Headings
// and body text come out Markdown formatted; relative links and image sources
// are resolved against pageURL.
//
// Parsing is a three-phase walk: everything before the first occurrence of
// the shallowest heading tag on the page is skipped, content is accumulated
// until an end-of-content element is seen, and the remainder is ignored.
// The returned tree is complete or the call fails; callers never see a
// partial tree.
func ParseHTML(r io.Reader, pageURL string, opts Options) (*Tree, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	startTag, ok := startingHeadingTag(doc)
	if !ok {
		return nil, ErrNoHeading
	}

	start := doc
	if body := findBody(doc); body != nil {
		start = body
	}
	if opts.StartMarker != "" {
		if marked := findByClass(doc, opts.StartMarker); marked != nil {
			start = marked
		}
	}

	p := &htmlWalker{
		tree:      NewTree(),
		startTag:  startTag,
		endMarker: opts.EndMarker,
		style:     styleState{pageURL: pageURL},
	}
	if err := p.visit(start); err != nil {
		return nil, err
	}
	if err := p.tree.validate(); err != nil {
		return nil, err
	}
	return p.tree, nil
}

// htmlWalker holds the traversal state for one ParseHTML call.
type htmlWalker struct {
	tree  *Tree
	cur   *Section
	style styleState

	startTag  string
	endMarker string
	started   bool
	ended     bool
}

func (p *htmlWalker) visit(n *html.Node) error {
	if p.ended {
		return nil
	}
	if !p.started {
		if n.Type == html.ElementNode && n.Data == p.startTag {
			p.started = true
		}
	}
	if !p.started {
		return p.visitChildren(n)
	}
	if p.isEndOfContent(n) {
		p.ended = true
		return nil
	}
	return p.handle(n)
}

func (p *htmlWalker) visitChildren(n *html.Node) error {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := p.visit(c); err != nil {
			return err
		}
	}
	return nil
}

func (p *htmlWalker) handle(n *html.Node) error {
	if n.Type == html.TextNode {
		return p.handleText(n.Data)
	}
	if n.Type != html.ElementNode {
		return p.visitChildren(n)
	}

	if level := headingLevel(n.Data); level > 0 {
		return p.handleHeading(n, level)
	}

	if p.cur == nil {
		return &MalformedTreeError{Reason: "element " + n.Data + " before any section"}
	}

	switch n.Data {
	case "p":
		// A paragraph inside a list item continues the item's line.
		if !p.style.listElement {
			p.cur.Text += "\n"
		}
		return p.visitChildren(n)

	case "ol":
		p.cur.Text += "\n"
		p.style.pushList(true)
		if err := p.visitChildren(n); err != nil {
			return err
		}
		p.style.popList()
		return nil

	case "ul":
		p.cur.Text += "\n"
		p.style.pushList(false)
		if err := p.visitChildren(n); err != nil {
			return err
		}
		p.style.popList()
		return nil

	case "li":
		p.cur.Text += "\n"
		prefix, err := p.style.listPrefix()
		if err != nil {
			return err
		}
		p.cur.Text += prefix
		p.style.listElement = true
		if err := p.visitChildren(n); err != nil {
			return err
		}
		p.style.listElement = false
		p.style.bumpOrdinal()
		return nil

	case "pre":
		p.cur.Text += "\n```\n"
		p.style.preformatted = true
		if err := p.visitChildren(n); err != nil {
			return err
		}
		p.style.preformatted = false
		p.cur.Text += "\n```\n"
		return nil

	case "blockquote":
		p.cur.Text += "\n"
		p.style.blockquote = true
		p.style.blockquoteBuf.Reset()
		if err := p.visitChildren(n); err != nil {
			return err
		}
		lines := strings.Split(p.style.blockquoteBuf.String(), "\n")
		for i, line := range lines {
			lines[i] = "> " + line
		}
		p.cur.Text += strings.Join(lines, "\n")
		p.style.blockquote = false
		p.style.blockquoteBuf.Reset()
		return nil

	case "b", "strong":
		return p.withFlag(&p.style.bold, n)

	case "em":
		return p.withFlag(&p.style.italic, n)

	case "del":
		return p.withFlag(&p.style.strike, n)

	case "code":
		return p.withFlag(&p.style.code, n)

	case "a":
		href, ok := attr(n, "href")
		if !ok {
			// Anchors without an href carry no link semantics.
			return p.visitChildren(n)
		}
		p.style.link = true
		p.style.url = href
		if err := p.visitChildren(n); err != nil {
			return err
		}
		p.style.link = false
		p.style.url = ""
		return nil

	case "img":
		md, err := p.imageMarkdown(n)
		if err != nil {
			return err
		}
		p.cur.Text += "\n" + md
		return nil

	case "br":
		p.cur.Text += "\n"
		return nil
	}

	return p.visitChildren(n)
}

func (p *htmlWalker) handleText(text string) error {
	if p.cur == nil {
		return &MalformedTreeError{Reason: "text node before any section"}
	}
	formatted, err := p.style.apply(text)
	if err != nil {
		return err
	}
	switch {
	case p.style.blockquote:
		p.style.blockquoteBuf.WriteString(formatted)
	case p.style.heading:
		p.cur.Heading += formatted
	default:
		p.cur.Text += formatted
	}
	return nil
}

func (p *htmlWalker) handleHeading(n *html.Node, level int) error {
	sec, err := p.tree.addHeading(p.cur, level)
	if err != nil {
		return err
	}
	p.cur = sec

	p.style.heading = true
	sec.Heading = MarkdownHeading("", level)
	if err := p.visitChildren(n); err != nil {
		return err
	}
	p.style.heading = false
	return nil
}

func (p *htmlWalker) withFlag(flag *bool, n *html.Node) error {
	*flag = true
	err := p.visitChildren(n)
	*flag = false
	return err
}

func (p *htmlWalker) imageMarkdown(n *html.Node) (string, error) {
	src, ok := attr(n, "src")
	if !ok {
		return "", &MalformedTreeError{Reason: "img tag without a src attribute"}
	}
	alt, ok := attr(n, "alt")
	if !ok || alt == "" {
		alt = "image"
	}
	abs, err := resolveURL(p.style.pageURL, src)
	if err != nil {
		return "", &MalformedTreeError{Reason: "unresolvable image URL " + src}
	}
	return "![" + alt + "](" + abs + ")", nil
}

// isEndOfContent reports whether the element terminates the main content:
// a footer or script element, or any element carrying the end-marker class
// or a class literally named "footer".
func (p *htmlWalker) isEndOfContent(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	if n.Data == "footer" || n.Data == "script" {
		return true
	}
	class, ok := attr(n, "class")
	if !ok {
		return false
	}
	for _, c := range strings.Fields(class) {
		if p.endMarker != "" && c == p.endMarker {
			return true
		}
		if c == "footer" {
			return true
		}
	}
	return false
}

// startingHeadingTag returns the shallowest of h1-h4 present in the document.
func startingHeadingTag(doc *html.Node) (string, bool) {
	for _, tag := range []string{"h1", "h2", "h3", "h4"} {
		if findElement(doc, tag) != nil {
			return tag, true
		}
	}
	return "", false
}

func headingLevel(tag string) int {
	switch tag {
	case "h1":
		return 1
	case "h2":
		return 2
	case "h3":
		return 3
	case "h4":
		return 4
	case "h5":
		return 5
	case "h6":
		return 6
	}
	return 0
}

func attr(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func findBody(n *html.Node) *html.Node {
	return findElement(n, "body")
}

func findByClass(n *html.Node, class string) *html.Node {
	if n.Type == html.ElementNode {
		if v, ok := attr(n, "class"); ok {
			for _, c := range strings.Fields(v) {
				if c == class {
					return n
				}
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByClass(c, class); found != nil {
			return found
		}
	}
	return nil
}
