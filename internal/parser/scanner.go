package parser

import "strings"

// LineKind classifies a scanned line.
type LineKind int

const (
	// Text is any line that is not a section or subsection heading.
	Text LineKind = iota
	// SectionStart is a level-2 heading ("## Name").
	SectionStart
	// SubsectionStart is a level-3 heading ("### Name").
	SubsectionStart
)

// Line is one trimmed document line tagged with the section and subsection
// it belongs to. For heading lines Text holds the heading name.
type Line struct {
	Kind       LineKind
	Section    string
	Subsection string
	Text       string
}

// Scan splits doc into lines and tags each with the most recent level-2
// heading and the most recent level-3 heading since it. Lines before the
// first level-2 heading carry an empty section. A leading byte order mark
// is dropped.
func Scan(doc string) []Line {
	raw := strings.Split(strings.TrimPrefix(doc, "\ufeff"), "\n")
	lines := make([]Line, 0, len(raw))

	var section, subsection string
	for _, r := range raw {
		text := strings.TrimSpace(r)
		switch {
		case strings.HasPrefix(text, "## "):
			section = strings.TrimSpace(text[3:])
			subsection = ""
			lines = append(lines, Line{Kind: SectionStart, Section: section, Text: section})
		case strings.HasPrefix(text, "### "):
			subsection = strings.TrimSpace(text[4:])
			lines = append(lines, Line{Kind: SubsectionStart, Section: section, Subsection: subsection, Text: subsection})
		default:
			lines = append(lines, Line{Kind: Text, Section: section, Subsection: subsection, Text: text})
		}
	}
	return lines
}
