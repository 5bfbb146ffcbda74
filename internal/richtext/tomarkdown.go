package richtext

import (
	"strconv"
	"strings"
)

// ToMarkdown renders a rich text block back into Markdown, applying the same
// wrapping order as the section formatter: code, bold, italic, strike, then
// link. For blocks produced by FromMarkdown the result equals the original
// input.
func ToMarkdown(b Block) (string, error) {
	if b.Type != BlockTypeRichText {
		return "", &ValidationError{Field: "block type", Got: b.Type}
	}

	var lines []string
	for _, el := range b.Elements {
		switch el.Type {
		case ElementTypeSection:
			text, err := runsMarkdown(el.Runs)
			if err != nil {
				return "", err
			}
			lines = append(lines, text)

		case ElementTypeList:
			itemLines, err := listMarkdown(el)
			if err != nil {
				return "", err
			}
			lines = append(lines, itemLines...)

		case ElementTypePreformatted:
			lines = append(lines, "```")
			text, err := runsMarkdown(el.Runs)
			if err != nil {
				return "", err
			}
			if text != "" {
				lines = append(lines, strings.Split(text, "\n")...)
			}
			lines = append(lines, "```")

		case ElementTypeQuote:
			text, err := runsMarkdown(el.Runs)
			if err != nil {
				return "", err
			}
			for _, line := range strings.Split(text, "\n") {
				lines = append(lines, "> "+line)
			}

		default:
			return "", &ValidationError{Field: "element type", Got: el.Type}
		}
	}
	return strings.Join(lines, "\n"), nil
}

func listMarkdown(el Element) ([]string, error) {
	indent := strings.Repeat(" ", (el.Indent+1)*4)
	var lines []string
	for i, item := range el.Items {
		if item.Type != ElementTypeSection {
			return nil, &ValidationError{Field: "list item type", Got: item.Type}
		}
		marker := "*"
		if el.Style == ListStyleOrdered {
			marker = strconv.Itoa(el.Offset+1+i) + "."
		}
		text, err := runsMarkdown(item.Runs)
		if err != nil {
			return nil, err
		}
		lines = append(lines, indent+marker+" "+text)
	}
	return lines, nil
}

func runsMarkdown(runs []Object) (string, error) {
	var sb strings.Builder
	for _, run := range runs {
		switch run.Type {
		case ObjectTypeText:
			sb.WriteString(wrapStyles(run.Text, run.Style))
		case ObjectTypeLink:
			sb.WriteString("[" + wrapStyles(run.Text, run.Style) + "](" + run.URL + ")")
		default:
			return "", &ValidationError{Field: "object type", Got: run.Type}
		}
	}
	return sb.String(), nil
}

func wrapStyles(text string, style *Style) string {
	if style == nil {
		return text
	}
	if style.Code {
		text = "`" + text + "`"
	}
	if style.Bold {
		text = "**" + text + "**"
	}
	if style.Italic {
		text = "*" + text + "*"
	}
	if style.Strike {
		text = "~~" + text + "~~"
	}
	return text
}
