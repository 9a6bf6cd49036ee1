package ingest

import (
	"sync"

	"github.com/starford/sigil/internal/merge"
	"github.com/starford/sigil/internal/models"
)

// Meeting is the running signal bag of one meeting. Attach calls are
// serialised, so every merge sees the result of the previous one.
type Meeting struct {
	mu      sync.Mutex
	bag     models.SignalBag
	started bool
	sources []string
}

// NewMeeting starts a meeting from a stored bag.
func NewMeeting(stored models.SignalBag) *Meeting {
	return &Meeting{bag: stored.Clone(), started: true}
}

// Attach folds a document's signals into the meeting. The first document of
// an empty meeting is adopted as is.
func (m *Meeting) Attach(doc models.Document) models.MergeResult {
	return m.AttachBag(doc.Source, doc.Signals)
}

// AttachBag is Attach for a bag that did not come from a Document.
func (m *Meeting) AttachBag(source string, bag models.SignalBag) models.MergeResult {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sources = append(m.sources, source)
	if !m.started {
		m.started = true
		m.bag = bag.Clone()
		return adopted(m.bag)
	}
	res := merge.Merge(m.bag, bag)
	m.bag = res.Merged
	return res
}

// Bag returns a copy of the current bag.
func (m *Meeting) Bag() models.SignalBag {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bag.Clone()
}

// Sources lists attached sources in attach order.
func (m *Meeting) Sources() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.sources))
	copy(out, m.sources)
	return out
}

func adopted(bag models.SignalBag) models.MergeResult {
	res := models.MergeResult{Merged: bag.Clone(), AddedByField: make(map[string]int)}
	for _, name := range merge.Fields {
		n := len(*merge.FieldList(&bag, name))
		if n > 0 {
			res.AddedByField[name] = n
			res.AddedCount += n
		}
	}
	return res
}
