// Package classify labels meeting text with the third-party summary template
// whose required headings it matches best. The label is advisory only.
package classify

import (
	"fmt"
	"io"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/starford/sigil/internal/models"
)

// Fallback is returned when no template pattern matches.
const Fallback = "General Meeting"

// Definition is the uncompiled form of a template, as written in YAML.
type Definition struct {
	Name     string   `yaml:"name"`
	Patterns []string `yaml:"patterns"`
}

type template struct {
	name     string
	patterns []*regexp.Regexp
}

// Catalog is an ordered, immutable list of templates.
type Catalog struct {
	templates []template
}

var defaultCatalog = mustCatalog(builtin)

// Default returns the built-in catalog.
func Default() *Catalog {
	return defaultCatalog
}

// NewCatalog compiles defs in order. Patterns match case-insensitively
// anywhere in the text.
func NewCatalog(defs []Definition) (*Catalog, error) {
	c := &Catalog{templates: make([]template, 0, len(defs))}
	for _, d := range defs {
		if d.Name == "" {
			return nil, fmt.Errorf("classify: template without name")
		}
		t := template{name: d.Name}
		for _, p := range d.Patterns {
			re, err := regexp.Compile("(?i)" + p)
			if err != nil {
				return nil, fmt.Errorf("classify: template %q: %w", d.Name, err)
			}
			t.patterns = append(t.patterns, re)
		}
		c.templates = append(c.templates, t)
	}
	return c, nil
}

func mustCatalog(defs []Definition) *Catalog {
	c, err := NewCatalog(defs)
	if err != nil {
		panic(err)
	}
	return c
}

// LoadCatalog reads a YAML document of the form
//
//	templates:
//	  - name: Standup
//	    patterns: ['\byesterday\b', '\btoday\b']
func LoadCatalog(r io.Reader) (*Catalog, error) {
	var doc struct {
		Templates []Definition `yaml:"templates"`
	}
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("classify: decode catalog: %w", err)
	}
	if len(doc.Templates) == 0 {
		return nil, fmt.Errorf("classify: catalog has no templates")
	}
	return NewCatalog(doc.Templates)
}

// LoadCatalogFile is LoadCatalog over a file path.
func LoadCatalogFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("classify: open catalog: %w", err)
	}
	defer f.Close()
	return LoadCatalog(f)
}

// Len returns the number of templates.
func (c *Catalog) Len() int {
	return len(c.templates)
}

// Scores returns every template's score in catalog order.
func (c *Catalog) Scores(text string) []models.TemplateMatch {
	out := make([]models.TemplateMatch, len(c.templates))
	for i, t := range c.templates {
		score := 0
		for _, re := range t.patterns {
			if re.MatchString(text) {
				score++
			}
		}
		out[i] = models.TemplateMatch{TemplateName: t.name, Score: score}
	}
	return out
}

// Classify returns the highest-scoring template, the earliest on ties, or
// Fallback with score 0 when nothing matches.
func (c *Catalog) Classify(text string) models.TemplateMatch {
	best := models.TemplateMatch{TemplateName: Fallback}
	for _, m := range c.Scores(text) {
		if m.Score > best.Score {
			best = m
		}
	}
	return best
}

// Classify labels text against the built-in catalog.
func Classify(text string) models.TemplateMatch {
	return defaultCatalog.Classify(text)
}
