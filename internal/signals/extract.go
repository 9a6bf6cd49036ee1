// Package signals turns a segmented meeting document into a typed SignalBag.
package signals

import (
	"github.com/starford/sigil/internal/models"
	"github.com/starford/sigil/internal/parser"
)

// Section header prefixes the extractor looks up.
const (
	headerAuthoritative = "Synthesized Signals (Authoritative)"
	headerSynthesized   = "Synthesized Signals"
	headerContext       = "Context"
	headerNotes         = "Notes"
	headerNotesRaw      = "Notes (raw)"
	headerKeySignal     = "Key Signal"
	headerRisks         = "Risks / Open Questions"
	headerIdeas         = "Ideas"
	headerCommitments   = "Commitments"
)

// Extract builds a SignalBag from sections. An authoritative synthesized
// block populates the lists first; standalone sections only fill lists that
// are still empty, except Commitments, which always extends action items.
func Extract(sections models.SectionMap) models.SignalBag {
	bag := models.NewSignalBag()

	if s, ok := sections.Find(headerAuthoritative, headerSynthesized); ok {
		parseSubBlocks(s.Body, &bag)
	}

	if s, ok := sections.Find(headerContext); ok {
		bag.Context = s.Body
	}
	if s, ok := sections.Find(headerNotes, headerNotesRaw); ok {
		bag.Notes = s.Body
	}

	if len(bag.KeySignals) == 0 {
		if s, ok := sections.Find(headerKeySignal); ok && s.Body != "" && !isDecoration(s.Body) {
			bag.KeySignals = models.ListOf(s.Body)
		}
	}
	if len(bag.Risks) == 0 {
		if s, ok := sections.Find(headerRisks); ok {
			bag.Risks = filterLines(s.Body, riskLines)
		}
	}
	if len(bag.Ideas) == 0 {
		if s, ok := sections.Find(headerIdeas); ok {
			bag.Ideas = filterLines(s.Body, plainLines)
		}
	}
	if s, ok := sections.Find(headerCommitments); ok {
		for _, it := range filterLines(s.Body, plainLines) {
			bag.ActionItems = appendUnique(bag.ActionItems, it.Text)
		}
	}

	return bag
}

// ExtractText runs the whole pipeline: Clean, Segment, Extract.
func ExtractText(raw string) (models.SectionMap, models.SignalBag) {
	sections := parser.Segment(parser.Clean(raw))
	return sections, Extract(sections)
}
