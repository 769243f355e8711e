package parser

import "strings"

// itemList owns the item currently under construction for one list. An
// open item is appended exactly once, when the next item starts or the
// list is flushed.
type itemList[T any] struct {
	items *[]T
	open  *T
}

func newItemList[T any](items *[]T) *itemList[T] {
	return &itemList[T]{items: items}
}

// start flushes any open item and opens item in its place.
func (l *itemList[T]) start(item T) {
	l.flush()
	l.open = &item
}

// current returns the open item, or nil when none is open.
func (l *itemList[T]) current() *T {
	return l.open
}

func (l *itemList[T]) flush() {
	if l.open == nil {
		return
	}
	*l.items = append(*l.items, *l.open)
	l.open = nil
}

// textBuffer collects free-text lines for a single field.
type textBuffer struct {
	lines []string
	// paragraphs keeps one empty line for each run of blank lines that
	// follows content.
	paragraphs bool
}

func (b *textBuffer) add(text string) {
	if text == "" {
		if b.paragraphs && len(b.lines) > 0 && b.lines[len(b.lines)-1] != "" {
			b.lines = append(b.lines, "")
		}
		return
	}
	b.lines = append(b.lines, text)
}

// flush returns the joined, trimmed text and resets the buffer. ok is false
// when nothing was collected.
func (b *textBuffer) flush() (text string, ok bool) {
	if len(b.lines) == 0 {
		return "", false
	}
	text = strings.TrimSpace(strings.Join(b.lines, "\n"))
	b.lines = nil
	return text, true
}
