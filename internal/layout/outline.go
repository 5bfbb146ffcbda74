package layout

import (
	"fmt"

	"github.com/knowhub/sectiond/internal/richtext"
	"github.com/knowhub/sectiond/internal/section"
)

// NoHighlight disables highlighting in Outline.
const NoHighlight = -1

// Outline renders ordered sections as nested bullet lists, one bullet per
// section, indented by heading level. Consecutive sections at the same
// indent share one list element; an indent change opens a new one. The
// entry at highlight (when >= 0) is emphasized with code styling, which is
// how a pending insertion slot is shown to the user.
func Outline(blockID string, ordered []Entry, highlight int) richtext.Block {
	var lists []richtext.Element
	cur := -1 // index into lists, -1 when no open list

	for idx, entry := range ordered {
		level, content := section.HeadingLevelAndContent(entry.Heading)
		indent := level - 1

		var style *richtext.Style
		if idx == highlight {
			style = &richtext.Style{Code: true}
		}
		item := richtext.SectionElement(richtext.TextObject(content, style))

		if cur < 0 || lists[cur].Indent != indent {
			lists = append(lists, richtext.Element{
				Type:   richtext.ElementTypeList,
				Style:  richtext.ListStyleBullet,
				Border: 1,
				Indent: indent,
				Items:  []richtext.Element{item},
			})
			cur = len(lists) - 1
		} else {
			lists[cur].Items = append(lists[cur].Items, item)
		}
	}

	return richtext.NewBlock(blockID, lists...)
}

// PreviewInsert computes where a new section with the given plain-text
// heading would land and returns the outline with a synthetic placeholder
// highlighted at that slot, plus the insertion index itself.
func PreviewInsert(blockID string, ordered []Entry, parentID string, childIDs []string, position int, headingText string) (richtext.Block, int, error) {
	idx, err := InsertionIndex(ordered, parentID, childIDs, position)
	if err != nil {
		return richtext.Block{}, 0, err
	}
	parentLevel := section.HeadingLevel(ordered[indexOf(ordered, parentID)].Heading)
	placeholder := Entry{
		Heading: section.MarkdownHeading(headingText, parentLevel+1),
	}
	preview := SpliceEntry(ordered, idx, placeholder)
	return Outline(blockID, preview, idx), idx, nil
}

// PositionOptions describes each insertion position among the given children
// in document order, for presenting a position picker. For n children it
// returns n+1 labels: before the first, between each adjacent pair, and
// after the last.
func PositionOptions(children []Entry) []string {
	if len(children) == 0 {
		return nil
	}
	options := make([]string, 0, len(children)+1)
	options = append(options, fmt.Sprintf("Before %q section", section.HeadingContent(children[0].Heading)))
	for i := 1; i < len(children); i++ {
		options = append(options, fmt.Sprintf("Between %q and %q sections",
			section.HeadingContent(children[i-1].Heading),
			section.HeadingContent(children[i].Heading)))
	}
	options = append(options, fmt.Sprintf("After %q section", section.HeadingContent(children[len(children)-1].Heading)))
	return options
}
