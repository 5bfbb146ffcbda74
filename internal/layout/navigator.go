// Package layout answers placement questions over a page's persisted,
// flattened section list and renders outline previews of it.
package layout

import (
	"fmt"

	"github.com/knowhub/sectiond/internal/section"
)

// Entry is the slice of a persisted section record the layout logic needs:
// its id and its Markdown heading (the heading level is derived from the
// #-prefix).
type Entry struct {
	ID      string
	Heading string
}

// ErrParentNotInPage is returned when the chosen parent does not appear in
// the ordered section list.
var ErrParentNotInPage = fmt.Errorf("parent section not found in page")

// InsertionIndex computes the document-order index at which a new child of
// parentID, placed at position among its children, must be spliced into
// ordered. childIDs are the parent's current children in document order.
//
//   - A parent with no children places the new section immediately after the
//     parent itself.
//   - position < len(childIDs) takes that child's slot, pushing it and its
//     subtree down.
//   - position == len(childIDs) appends after the last child: scan forward
//     from the last child until a section at the new child's level or deeper,
//     or the end of the page.
func InsertionIndex(ordered []Entry, parentID string, childIDs []string, position int) (int, error) {
	parentIdx := indexOf(ordered, parentID)
	if parentIdx < 0 {
		return 0, ErrParentNotInPage
	}
	if position < 0 || position > len(childIDs) {
		return 0, fmt.Errorf("position %d out of range for %d children", position, len(childIDs))
	}

	if len(childIDs) == 0 {
		return parentIdx + 1, nil
	}

	if position < len(childIDs) {
		idx := indexOf(ordered, childIDs[position])
		if idx < 0 {
			return 0, fmt.Errorf("child section %s not found in page", childIDs[position])
		}
		return idx, nil
	}

	// After the last child: scan to the next section at the child level or
	// deeper, or the end of the page.
	childLevel := section.HeadingLevel(ordered[parentIdx].Heading) + 1
	idx := indexOf(ordered, childIDs[len(childIDs)-1])
	if idx < 0 {
		return 0, fmt.Errorf("child section %s not found in page", childIDs[len(childIDs)-1])
	}
	idx++
	for idx != len(ordered) {
		if section.HeadingLevel(ordered[idx].Heading) >= childLevel {
			break
		}
		idx++
	}
	return idx, nil
}

// SpliceEntry returns ordered with entry inserted at idx.
func SpliceEntry(ordered []Entry, idx int, entry Entry) []Entry {
	out := make([]Entry, 0, len(ordered)+1)
	out = append(out, ordered[:idx]...)
	out = append(out, entry)
	out = append(out, ordered[idx:]...)
	return out
}

func indexOf(ordered []Entry, id string) int {
	for i, e := range ordered {
		if e.ID == id {
			return i
		}
	}
	return -1
}
