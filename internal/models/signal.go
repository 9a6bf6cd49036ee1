// Package models defines the domain types for Sigil.
package models

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Item is one entry of a signal list. On the wire it is either a plain
// string or an object carrying a "text" attribute; objects keep every
// attribute they arrived with.
type Item struct {
	Text  string
	Attrs map[string]any
}

// NewItem returns a plain text item.
func NewItem(text string) Item {
	return Item{Text: text}
}

// UnmarshalJSON accepts a string, an object with "text", or any other JSON
// value (kept verbatim as text).
func (it *Item) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) > 0 && trimmed[0] == '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*it = Item{Text: s}
	case len(trimmed) > 0 && trimmed[0] == '{':
		var obj map[string]any
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return err
		}
		text, _ := obj["text"].(string)
		*it = Item{Text: text, Attrs: obj}
	case bytes.Equal(trimmed, []byte("null")):
		*it = Item{}
	default:
		*it = Item{Text: string(trimmed)}
	}
	return nil
}

// MarshalJSON writes plain items as strings and structured items as objects.
func (it Item) MarshalJSON() ([]byte, error) {
	if it.Attrs == nil {
		return json.Marshal(it.Text)
	}
	return json.Marshal(it.Attrs)
}

// List is an ordered signal list. A nil List means the field is absent.
type List []Item

// ListOf builds a List from plain strings.
func ListOf(texts ...string) List {
	out := make(List, 0, len(texts))
	for _, t := range texts {
		out = append(out, NewItem(t))
	}
	return out
}

// Texts returns the text of every item in order.
func (l List) Texts() []string {
	out := make([]string, len(l))
	for i, it := range l {
		out[i] = it.Text
	}
	return out
}

// Contains reports whether an item with exactly this text is present.
func (l List) Contains(text string) bool {
	for _, it := range l {
		if it.Text == text {
			return true
		}
	}
	return false
}

// SignalBag is the typed result of extracting one document, and the unit the
// merger combines. Extraction always fills the six standard lists and never
// sets KeyPoints; KeyPoints only arrives through stored or vendor bags.
type SignalBag struct {
	Decisions   List   `json:"decisions"`
	ActionItems List   `json:"action_items"`
	Blockers    List   `json:"blockers"`
	Risks       List   `json:"risks"`
	Ideas       List   `json:"ideas"`
	KeySignals  List   `json:"key_signals"`
	KeyPoints   List   `json:"key_points"`
	Context     string `json:"context"`
	Notes       string `json:"notes"`
}

// NewSignalBag returns a bag with all six standard lists present and empty.
func NewSignalBag() SignalBag {
	return SignalBag{
		Decisions:   List{},
		ActionItems: List{},
		Blockers:    List{},
		Risks:       List{},
		Ideas:       List{},
		KeySignals:  List{},
	}
}

// IsEmpty reports whether the bag carries no signals and no free text.
func (b SignalBag) IsEmpty() bool {
	return len(b.Decisions)+len(b.ActionItems)+len(b.Blockers)+len(b.Risks)+
		len(b.Ideas)+len(b.KeySignals)+len(b.KeyPoints) == 0 &&
		strings.TrimSpace(b.Context) == "" && strings.TrimSpace(b.Notes) == ""
}

// Clone returns a deep copy of the list backing arrays so callers can append
// without aliasing the original.
func (b SignalBag) Clone() SignalBag {
	out := b
	out.Decisions = cloneList(b.Decisions)
	out.ActionItems = cloneList(b.ActionItems)
	out.Blockers = cloneList(b.Blockers)
	out.Risks = cloneList(b.Risks)
	out.Ideas = cloneList(b.Ideas)
	out.KeySignals = cloneList(b.KeySignals)
	out.KeyPoints = cloneList(b.KeyPoints)
	return out
}

func cloneList(l List) List {
	if l == nil {
		return nil
	}
	out := make(List, len(l))
	copy(out, l)
	return out
}

// MarshalJSON omits absent (nil) lists and writes present ones as arrays.
func (b SignalBag) MarshalJSON() ([]byte, error) {
	type wire struct {
		Decisions   *List  `json:"decisions,omitempty"`
		ActionItems *List  `json:"action_items,omitempty"`
		Blockers    *List  `json:"blockers,omitempty"`
		Risks       *List  `json:"risks,omitempty"`
		Ideas       *List  `json:"ideas,omitempty"`
		KeySignals  *List  `json:"key_signals,omitempty"`
		KeyPoints   *List  `json:"key_points,omitempty"`
		Context     string `json:"context"`
		Notes       string `json:"notes"`
	}
	present := func(l List) *List {
		if l == nil {
			return nil
		}
		return &l
	}
	return json.Marshal(wire{
		Decisions:   present(b.Decisions),
		ActionItems: present(b.ActionItems),
		Blockers:    present(b.Blockers),
		Risks:       present(b.Risks),
		Ideas:       present(b.Ideas),
		KeySignals:  present(b.KeySignals),
		KeyPoints:   present(b.KeyPoints),
		Context:     b.Context,
		Notes:       b.Notes,
	})
}

// MergeResult is the outcome of merging an incoming bag into an existing one.
type MergeResult struct {
	Merged       SignalBag      `json:"merged"`
	AddedCount   int            `json:"added_count"`
	AddedByField map[string]int `json:"added_by_field,omitempty"`
}

// TemplateMatch names the summary template a document most resembles.
type TemplateMatch struct {
	TemplateName string `json:"template_name"`
	Score        int    `json:"score"`
}
