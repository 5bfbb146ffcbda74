package section

import (
	"net/url"
	"strconv"
	"strings"
)

const listIndentDelta = 4

// listFrame is the formatting state of one nesting level of an active list.
type listFrame struct {
	ordered bool
	offset  int // next ordinal for an ordered list
	indent  int // leading spaces for item prefixes at this level
}

// styleState captures the block and inline styles active at a point in the
// traversal. More than one flag can be set at once. The state is scoped to a
// single parse and mutated with stack discipline: each tag toggles its flag
// for the duration of its subtree and restores it on exit.
type styleState struct {
	heading     bool
	listElement bool
	lists       []listFrame

	preformatted  bool
	blockquote    bool
	blockquoteBuf strings.Builder

	bold   bool
	italic bool
	code   bool
	strike bool
	link   bool
	url    string

	// pageURL resolves relative hrefs and image sources.
	pageURL string
}

// apply formats text according to the active styles and returns Markdown.
// Heading and preformatted states bypass all inline styling, including the
// newline normalization applied in every other state.
func (st *styleState) apply(text string) (string, error) {
	if st.preformatted || st.heading {
		return text, nil
	}

	// Literal newlines inside HTML text nodes are layout artifacts and
	// would break Markdown line structure.
	text = strings.ReplaceAll(text, "\n", " ")

	if st.code {
		text = "`" + text + "`"
	}
	if st.bold {
		text = "**" + text + "**"
	}
	if st.italic {
		text = "*" + text + "*"
	}
	if st.strike {
		text = "~~" + text + "~~"
	}
	if st.link {
		if st.url == "" {
			return "", &MalformedTreeError{Reason: "link style active without a URL"}
		}
		if st.pageURL == "" {
			return "", &MalformedTreeError{Reason: "link style active without a page URL"}
		}
		abs, err := resolveURL(st.pageURL, st.url)
		if err != nil {
			return "", &MalformedTreeError{Reason: "unresolvable link URL " + st.url}
		}
		text = "[" + text + "](" + abs + ")"
	}
	return text, nil
}

// pushList opens a new list nesting level, indented one step past the
// innermost active list.
func (st *styleState) pushList(ordered bool) {
	indent := listIndentDelta
	if n := len(st.lists); n > 0 {
		indent = st.lists[n-1].indent + listIndentDelta
	}
	frame := listFrame{ordered: ordered, indent: indent}
	if ordered {
		frame.offset = 1
	}
	st.lists = append(st.lists, frame)
}

func (st *styleState) popList() {
	st.lists = st.lists[:len(st.lists)-1]
}

// listPrefix returns the indentation plus marker for the next item of the
// innermost list, e.g. "    * " or "        3. ".
func (st *styleState) listPrefix() (string, error) {
	if len(st.lists) == 0 {
		return "", &MalformedTreeError{Reason: "list item outside any list"}
	}
	frame := st.lists[len(st.lists)-1]
	marker := "*"
	if frame.ordered {
		marker = strconv.Itoa(frame.offset) + "."
	}
	return strings.Repeat(" ", frame.indent) + marker + " ", nil
}

// bumpOrdinal advances the ordinal of the innermost list when it is ordered.
func (st *styleState) bumpOrdinal() {
	if n := len(st.lists); n > 0 && st.lists[n-1].ordered {
		st.lists[n-1].offset++
	}
}

func resolveURL(pageURL, href string) (string, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return "", err
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(ref).String(), nil
}
