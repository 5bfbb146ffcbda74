package richtext

import (
	"regexp"
	"strconv"
	"strings"
)

// FromMarkdown tokenizes Markdown produced by this package (or by the HTML
// section parser, which emits the same dialect) into a rich text block.
// List nesting is derived from the leading-space run length (4 spaces per
// level); consecutive list lines sharing indent and style fold into one list
// element. Round-trip stability holds for Markdown this package emitted;
// arbitrary hand-written Markdown with unsupported constructs is out of
// contract.
func FromMarkdown(markdown string) (Block, error) {
	lines := strings.Split(markdown, "\n")

	var elements []Element
	i := 0
	for i < len(lines) {
		line := lines[i]

		if line == "```" {
			var code []string
			j := i + 1
			for j < len(lines) && lines[j] != "```" {
				code = append(code, lines[j])
				j++
			}
			elements = append(elements, Element{
				Type: ElementTypePreformatted,
				Runs: []Object{TextObject(strings.Join(code, "\n"), nil)},
			})
			if j < len(lines) {
				j++ // closing fence
			}
			i = j
			continue
		}

		if strings.HasPrefix(line, "> ") || line == ">" {
			var quoted []string
			for i < len(lines) && (strings.HasPrefix(lines[i], "> ") || lines[i] == ">") {
				quoted = append(quoted, strings.TrimPrefix(strings.TrimPrefix(lines[i], ">"), " "))
				i++
			}
			elements = append(elements, Element{
				Type: ElementTypeQuote,
				Runs: quoteRuns(quoted),
			})
			continue
		}

		if item, ok := parseListLine(line); ok {
			elements = appendListItem(elements, item)
			i++
			continue
		}

		elements = append(elements, SectionElement(tokenizeRuns(line)...))
		i++
	}

	return NewBlock("", elements...), nil
}

// listLine is one parsed list item line.
type listLine struct {
	indent  int // 0-based nesting level
	ordered bool
	ordinal int // 1-based number for ordered items
	runs    []Object
}

var listLineRe = regexp.MustCompile(`^( +)(\*|\d+\.) (.*)$`)

func parseListLine(line string) (listLine, bool) {
	m := listLineRe.FindStringSubmatch(line)
	if m == nil {
		return listLine{}, false
	}
	spaces := len(m[1])
	if spaces%4 != 0 {
		return listLine{}, false
	}
	item := listLine{
		indent: spaces/4 - 1,
		runs:   tokenizeRuns(m[3]),
	}
	if m[2] != "*" {
		item.ordered = true
		n, err := strconv.Atoi(strings.TrimSuffix(m[2], "."))
		if err != nil {
			return listLine{}, false
		}
		item.ordinal = n
	}
	return item, true
}

// appendListItem folds the item into the trailing list element when indent
// and style match, mirroring "open a new nested list on indent change".
func appendListItem(elements []Element, item listLine) []Element {
	style := ListStyleBullet
	if item.ordered {
		style = ListStyleOrdered
	}
	if n := len(elements); n > 0 {
		last := &elements[n-1]
		if last.Type == ElementTypeList && last.Indent == item.indent && last.Style == style {
			last.Items = append(last.Items, SectionElement(item.runs...))
			return elements
		}
	}
	el := Element{
		Type:   ElementTypeList,
		Style:  style,
		Indent: item.indent,
		Items:  []Element{SectionElement(item.runs...)},
	}
	if item.ordered {
		el.Offset = item.ordinal - 1
	}
	return append(elements, el)
}

// quoteRuns tokenizes quoted lines, joining them with literal newline runs
// so the quote renders back to one "> " prefixed line per run group.
func quoteRuns(lines []string) []Object {
	var runs []Object
	for i, line := range lines {
		if i > 0 {
			runs = append(runs, TextObject("\n", nil))
		}
		runs = append(runs, tokenizeRuns(line)...)
	}
	return runs
}

// inlineRe matches, in order of alternation: links, strikethrough spans,
// emphasis spans (1-3 stars), and code spans.
var inlineRe = regexp.MustCompile("\\[([^\\]]*)\\]\\(([^)]*)\\)|~~(.+?)~~|(\\*{1,3})([^*]+)(\\*{1,3})|`([^`]+)`")

// tokenizeRuns splits one line of Markdown into styled runs.
func tokenizeRuns(line string) []Object {
	var runs []Object
	rest := line
	for rest != "" {
		loc := inlineRe.FindStringSubmatchIndex(rest)
		if loc == nil {
			runs = append(runs, TextObject(rest, nil))
			break
		}
		if loc[0] > 0 {
			runs = append(runs, TextObject(rest[:loc[0]], nil))
		}
		runs = append(runs, matchedRun(rest, loc))
		rest = rest[loc[1]:]
	}
	return runs
}

func matchedRun(s string, loc []int) Object {
	group := func(i int) (string, bool) {
		if loc[2*i] < 0 {
			return "", false
		}
		return s[loc[2*i]:loc[2*i+1]], true
	}

	if text, ok := group(1); ok {
		url, _ := group(2)
		inner, style := peelStyles(text)
		return LinkObject(inner, url, &style)
	}
	if text, ok := group(3); ok {
		inner, style := peelStyles(text)
		style.Strike = true
		return TextObject(inner, &style)
	}
	if open, ok := group(4); ok {
		text, _ := group(5)
		close_, _ := group(6)
		if len(open) != len(close_) {
			// Unbalanced emphasis is outside the supported dialect; keep raw.
			return TextObject(s[loc[0]:loc[1]], nil)
		}
		inner, style := peelStyles(text)
		switch len(open) {
		case 1:
			style.Italic = true
		case 2:
			style.Bold = true
		default:
			style.Italic = true
			style.Bold = true
		}
		return TextObject(inner, &style)
	}
	text, _ := group(7)
	return TextObject(text, &Style{Code: true})
}

// peelStyles strips nested style wrappers outer-to-inner, accumulating flags.
// The emitter nests markers in a fixed order (link outermost, then strike,
// italic, bold, code), so peeling is unambiguous for our own output.
func peelStyles(s string) (string, Style) {
	var style Style
	for {
		switch {
		case len(s) >= 4 && strings.HasPrefix(s, "~~") && strings.HasSuffix(s, "~~"):
			style.Strike = true
			s = s[2 : len(s)-2]
		case len(s) >= 6 && strings.HasPrefix(s, "***") && strings.HasSuffix(s, "***"):
			style.Italic = true
			style.Bold = true
			s = s[3 : len(s)-3]
		case len(s) >= 4 && strings.HasPrefix(s, "**") && strings.HasSuffix(s, "**"):
			style.Bold = true
			s = s[2 : len(s)-2]
		case len(s) >= 2 && strings.HasPrefix(s, "*") && strings.HasSuffix(s, "*"):
			style.Italic = true
			s = s[1 : len(s)-1]
		case len(s) >= 2 && strings.HasPrefix(s, "`") && strings.HasSuffix(s, "`"):
			style.Code = true
			s = s[1 : len(s)-1]
		default:
			return s, style
		}
	}
}
