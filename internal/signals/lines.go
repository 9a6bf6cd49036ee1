package signals

import (
	"strings"

	"github.com/starford/sigil/internal/models"
)

// decorations are emoji markers some templates put on lines of their own.
var decorations = map[string]struct{}{
	"🚦": {}, "🧩": {}, "✨": {}, "📝": {}, "🟩": {}, "🟪": {},
}

const bulletChars = "-• "

// isDecoration reports whether s is a lone decoration token, ignoring an
// emoji variation selector.
func isDecoration(s string) bool {
	s = strings.TrimSpace(strings.ReplaceAll(s, "\uFE0F", ""))
	_, ok := decorations[s]
	return ok
}

// stripBullet removes surrounding whitespace and any leading bullet marks.
func stripBullet(line string) string {
	return strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), bulletChars))
}

type filterMode int

const (
	plainLines filterMode = iota
	riskLines
)

// keep reports whether a bullet-stripped line belongs in an extracted list.
// Risk lines additionally drop anything starting with "!", which is how
// embedded images show up.
func keep(s string, mode filterMode) bool {
	switch {
	case s == "", isDecoration(s):
		return false
	case strings.HasPrefix(s, "<aside"), strings.HasSuffix(s, "</aside>"):
		return false
	case strings.HasPrefix(s, "#"), strings.HasPrefix(s, "**"):
		return false
	case mode == riskLines && strings.HasPrefix(s, "!"):
		return false
	}
	return true
}

// filterLines turns a standalone section body into a deduplicated list.
func filterLines(body string, mode filterMode) models.List {
	out := models.List{}
	for _, line := range strings.Split(body, "\n") {
		s := stripBullet(line)
		if !keep(s, mode) {
			continue
		}
		out = appendUnique(out, s)
	}
	return out
}

// appendUnique appends text unless an item with exactly that text exists.
func appendUnique(l models.List, text string) models.List {
	if l.Contains(text) {
		return l
	}
	return append(l, models.NewItem(text))
}
