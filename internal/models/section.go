package models

import (
	"encoding/json"
	"strings"
	"time"
)

// Section is one recognised header line and the body that followed it.
type Section struct {
	Header string `json:"header"`
	Body   string `json:"body"`
}

// SectionMap is an insertion-ordered map from header line to body. Setting a
// header that already exists replaces its body but keeps its position.
type SectionMap struct {
	sections []Section
	index    map[string]int
}

// Set stores body under header.
func (m *SectionMap) Set(header, body string) {
	if m.index == nil {
		m.index = make(map[string]int)
	}
	if i, ok := m.index[header]; ok {
		m.sections[i].Body = body
		return
	}
	m.index[header] = len(m.sections)
	m.sections = append(m.sections, Section{Header: header, Body: body})
}

// Get returns the body stored under the exact header.
func (m SectionMap) Get(header string) (string, bool) {
	i, ok := m.index[header]
	if !ok {
		return "", false
	}
	return m.sections[i].Body, true
}

// Find returns the first section, in document order, whose header starts
// with any of the prefixes. Prefixes are tried in the order given.
func (m SectionMap) Find(prefixes ...string) (Section, bool) {
	for _, p := range prefixes {
		for _, s := range m.sections {
			if strings.HasPrefix(s.Header, p) {
				return s, true
			}
		}
	}
	return Section{}, false
}

// Len returns the number of sections.
func (m SectionMap) Len() int {
	return len(m.sections)
}

// Sections returns a copy of the sections in document order.
func (m SectionMap) Sections() []Section {
	out := make([]Section, len(m.sections))
	copy(out, m.sections)
	return out
}

// MarshalJSON writes the sections as an ordered array.
func (m SectionMap) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Sections())
}

// UnmarshalJSON reads an ordered array of sections.
func (m *SectionMap) UnmarshalJSON(data []byte) error {
	var sections []Section
	if err := json.Unmarshal(data, &sections); err != nil {
		return err
	}
	*m = SectionMap{}
	for _, s := range sections {
		m.Set(s.Header, s.Body)
	}
	return nil
}

// Document is one ingested piece of meeting content.
type Document struct {
	ID           string        `json:"id"`
	Source       string        `json:"source"`
	Checksum     string        `json:"checksum"`
	Template     TemplateMatch `json:"template"`
	Sections     SectionMap    `json:"sections"`
	Signals      SignalBag     `json:"signals"`
	Unstructured bool          `json:"unstructured"`
	Text         string        `json:"-"`
	IngestedAt   time.Time     `json:"ingested_at"`
}
