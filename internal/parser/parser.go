// Package parser strips presentational markup from meeting notes and splits
// them into named sections.
package parser

import (
	"regexp"
	"strings"

	"github.com/starford/sigil/internal/models"
)

var (
	asideOpenRe  = regexp.MustCompile(`<aside[^>]*>`)
	asideCloseRe = regexp.MustCompile(`</aside>`)
	headingRe    = regexp.MustCompile(`(?m)^#{1,6}[ \t]+`)
	blankRunRe   = regexp.MustCompile(`\n{3,}`)
	bareAsideRe  = regexp.MustCompile(`^(?:<aside[^>]*>|</aside>)$`)
)

// SectionHeaders is the catalog of line prefixes that open a document section.
var SectionHeaders = []string{
	"Summarized notes",
	"Work Identified",
	"Outcomes",
	"Context",
	"Key Signal",
	"Notes",
	"Synthesized Signals",
	"Risks / Open Questions",
	"Screenshots / Photos",
	"Notes (raw)",
	"Commitments / Ideas",
}

// Clean removes <aside> wrappers and markdown heading markers, collapses runs
// of blank lines and trims the result. Passes repeat until the text stops
// changing, so Clean(Clean(x)) == Clean(x).
func Clean(text string) string {
	if text == "" {
		return text
	}
	for {
		next := cleanOnce(text)
		if next == text {
			return next
		}
		text = next
	}
}

func cleanOnce(text string) string {
	text = asideOpenRe.ReplaceAllString(text, "")
	text = asideCloseRe.ReplaceAllString(text, "")
	text = headingRe.ReplaceAllString(text, "")
	text = blankRunRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// IsAsideTag reports whether line is nothing but an <aside ...> or </aside> tag.
func IsAsideTag(line string) bool {
	return bareAsideRe.MatchString(strings.TrimSpace(line))
}

// Segment splits text into sections keyed by their header line. Text before
// the first recognised header has no section and is dropped; input without
// any header yields an empty map.
func Segment(text string) models.SectionMap {
	var sections models.SectionMap
	sc := Scanner[string]{
		Header: matchSectionHeader,
		Skip:   IsAsideTag,
	}
	sc.Scan(text, func(header string, lines []string) {
		sections.Set(header, strings.TrimSpace(strings.Join(lines, "\n")))
	})
	return sections
}

func matchSectionHeader(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	for _, prefix := range SectionHeaders {
		if strings.HasPrefix(trimmed, prefix) {
			return trimmed, true
		}
	}
	return "", false
}
