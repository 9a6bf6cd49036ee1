package parser

import "strings"

// Scanner is the line-oriented state machine behind both document
// segmentation and the authoritative sub-block parser. A header line flushes
// the buffered lines into the current section and opens a new one; skipped
// lines are dropped without touching the current section.
type Scanner[S comparable] struct {
	// Header reports whether line opens a section and which one.
	Header func(line string) (S, bool)
	// Skip reports lines to discard outright. May be nil.
	Skip func(line string) bool
}

// Scan feeds every line of text through the machine, calling flush once per
// opened section with the lines gathered for it. Lines seen before the first
// header are never flushed.
func (sc Scanner[S]) Scan(text string, flush func(section S, lines []string)) {
	var (
		current S
		active  bool
		buf     []string
	)
	emit := func() {
		if active {
			flush(current, buf)
		}
		buf = nil
	}

	for _, line := range strings.Split(text, "\n") {
		if s, ok := sc.Header(line); ok {
			emit()
			current, active = s, true
			continue
		}
		if sc.Skip != nil && sc.Skip(line) {
			continue
		}
		buf = append(buf, line)
	}
	emit()
}
