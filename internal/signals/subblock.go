package signals

import (
	"strings"

	"github.com/starford/sigil/internal/models"
	"github.com/starford/sigil/internal/parser"
)

// field names one list of a SignalBag inside an authoritative block.
type field int

const (
	fieldDecisions field = iota + 1
	fieldActionItems
	fieldBlockers
	fieldRisks
	fieldIdeas
	fieldKeySignals
)

// subHeaders maps inline sub-header prefixes to the list they open.
var subHeaders = []struct {
	prefix string
	field  field
}{
	{"Decision:", fieldDecisions},
	{"Action items:", fieldActionItems},
	{"Action Items:", fieldActionItems},
	{"Blocked:", fieldBlockers},
	{"Risks", fieldRisks},
	{"**Risks", fieldRisks},
	{"Ideas:", fieldIdeas},
	{"Key Signal", fieldKeySignals},
}

func matchSubHeader(line string) (field, bool) {
	trimmed := strings.TrimSpace(line)
	for _, h := range subHeaders {
		if strings.HasPrefix(trimmed, h.prefix) {
			return h.field, true
		}
	}
	return 0, false
}

func skipSubBlockLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	return isDecoration(trimmed) ||
		strings.HasPrefix(trimmed, "<aside") ||
		trimmed == "</aside>"
}

// list returns the bag list addressed by f.
func (f field) list(bag *models.SignalBag) *models.List {
	switch f {
	case fieldDecisions:
		return &bag.Decisions
	case fieldActionItems:
		return &bag.ActionItems
	case fieldBlockers:
		return &bag.Blockers
	case fieldRisks:
		return &bag.Risks
	case fieldIdeas:
		return &bag.Ideas
	case fieldKeySignals:
		return &bag.KeySignals
	}
	return nil
}

// parseSubBlocks fills bag from the body of an authoritative block. Lines
// before the first sub-header belong to no list and are dropped.
func parseSubBlocks(body string, bag *models.SignalBag) {
	sc := parser.Scanner[field]{
		Header: matchSubHeader,
		Skip:   skipSubBlockLine,
	}
	sc.Scan(body, func(f field, lines []string) {
		dst := f.list(bag)
		for _, line := range lines {
			s := stripBullet(line)
			if s == "" || isDecoration(s) {
				continue
			}
			*dst = appendUnique(*dst, s)
		}
	})
}
