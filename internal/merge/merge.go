// Package merge combines signal bags extracted from several documents about
// the same meeting without duplicating entries.
package merge

import (
	"strings"

	"github.com/starford/sigil/internal/models"
)

// keyLimit caps the normalisation key, in characters.
const keyLimit = 100

// Fields lists the merged fields in output order. KeySignals is not among
// them: the merger works on key_points, and key_signals pass through from
// the existing bag untouched.
var Fields = []string{"decisions", "action_items", "blockers", "risks", "ideas", "key_points"}

// FieldList returns the list of b named by a merged field, or nil for an
// unknown name.
func FieldList(b *models.SignalBag, name string) *models.List {
	switch name {
	case "decisions":
		return &b.Decisions
	case "action_items":
		return &b.ActionItems
	case "blockers":
		return &b.Blockers
	case "risks":
		return &b.Risks
	case "ideas":
		return &b.Ideas
	case "key_points":
		return &b.KeyPoints
	}
	return nil
}

// Key is the normalised identity of an item: lower-cased, trimmed, and cut
// to the first 100 characters.
func Key(it models.Item) string {
	k := strings.ToLower(strings.TrimSpace(it.Text))
	if r := []rune(k); len(r) > keyLimit {
		k = string(r[:keyLimit])
	}
	return k
}

// Merge appends incoming items whose key is not already present in existing.
// On collision the existing item always survives. Fields other than the
// merged lists are taken from existing. A list absent (nil) in both inputs
// stays absent in the result.
func Merge(existing, incoming models.SignalBag) models.MergeResult {
	merged := existing.Clone()
	res := models.MergeResult{AddedByField: make(map[string]int)}

	for _, name := range Fields {
		cur := FieldList(&existing, name)
		in := FieldList(&incoming, name)
		out := FieldList(&merged, name)
		if *cur == nil && *in == nil {
			continue
		}

		seen := make(map[string]struct{}, len(*cur)+len(*in))
		for _, it := range *cur {
			seen[Key(it)] = struct{}{}
		}
		if *out == nil {
			*out = models.List{}
		}
		for _, it := range *in {
			k := Key(it)
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			*out = append(*out, it)
			res.AddedByField[name]++
			res.AddedCount++
		}
	}

	res.Merged = merged
	return res
}
