package classify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_Standup(t *testing.T) {
	text := "Yesterday\n- wired the importer\nToday\n- tests\nBlockers\n- none"
	m := Classify(text)
	assert.Equal(t, "Standup", m.TemplateName)
	assert.Equal(t, 3, m.Score)
}

func TestClassify_Fallback(t *testing.T) {
	m := Classify("lorem ipsum dolor sit amet")
	assert.Equal(t, Fallback, m.TemplateName)
	assert.Equal(t, 0, m.Score)
}

func TestClassify_EmptyText(t *testing.T) {
	assert.Equal(t, Fallback, Classify("").TemplateName)
}

func TestClassify_CaseInsensitive(t *testing.T) {
	m := Classify("ROOT CAUSE\nTIMELINE\nREMEDIATION\nINCIDENT 42")
	assert.Equal(t, "Incident Postmortem", m.TemplateName)
	assert.Equal(t, 4, m.Score)
}

func TestClassify_TieBreaksByCatalogOrder(t *testing.T) {
	c, err := NewCatalog([]Definition{
		{Name: "First", Patterns: []string{`alpha`}},
		{Name: "Second", Patterns: []string{`alpha`}},
	})
	require.NoError(t, err)
	assert.Equal(t, "First", c.Classify("alpha").TemplateName)
}

func TestDefaultCatalog_Size(t *testing.T) {
	assert.Equal(t, 27, Default().Len())
	for _, d := range builtin {
		assert.GreaterOrEqual(t, len(d.Patterns), 3, d.Name)
		assert.LessOrEqual(t, len(d.Patterns), 4, d.Name)
	}
}

func TestScores_CatalogOrder(t *testing.T) {
	scores := Default().Scores("yesterday")
	require.Len(t, scores, len(builtin))
	for i, d := range builtin {
		assert.Equal(t, d.Name, scores[i].TemplateName)
	}
	assert.Equal(t, 1, scores[0].Score)
}

func TestNewCatalog_BadPattern(t *testing.T) {
	_, err := NewCatalog([]Definition{{Name: "Broken", Patterns: []string{`(`}}})
	assert.Error(t, err)
}

func TestLoadCatalog(t *testing.T) {
	doc := `
templates:
  - name: Triage
    patterns: ['\bseverity\b', '\bowner\b']
`
	c, err := LoadCatalog(strings.NewReader(doc))
	require.NoError(t, err)
	m := c.Classify("Severity: high, owner: ops")
	assert.Equal(t, "Triage", m.TemplateName)
	assert.Equal(t, 2, m.Score)
}

func TestLoadCatalog_Empty(t *testing.T) {
	_, err := LoadCatalog(strings.NewReader("templates: []\n"))
	assert.Error(t, err)
}
