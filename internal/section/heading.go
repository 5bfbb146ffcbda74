package section

import "strings"

// MarkdownHeading formats text as a Markdown heading of the given level.
func MarkdownHeading(text string, level int) string {
	return strings.Repeat("#", level) + " " + text
}

// HeadingLevel returns the level of a Markdown heading, i.e. the length of
// its leading run of '#'. Returns 0 for text that is not a heading.
func HeadingLevel(markdown string) int {
	level := 0
	for level < len(markdown) && markdown[level] == '#' {
		level++
	}
	if level == 0 || level >= len(markdown) || markdown[level] != ' ' {
		return 0
	}
	return level
}

// HeadingContent strips the #-prefix from a Markdown heading. Text without a
// heading prefix is returned unchanged.
func HeadingContent(markdown string) string {
	_, content := HeadingLevelAndContent(markdown)
	return content
}

// HeadingLevelAndContent splits a Markdown heading into level and content.
func HeadingLevelAndContent(markdown string) (int, string) {
	level := HeadingLevel(markdown)
	if level == 0 {
		return 0, markdown
	}
	return level, markdown[level+1:]
}
