// Package catalog holds the embedded reference data: specialties, colleges,
// news, shorts, calendar events, top professions and quizzes.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/alexanderramin/vocnav/internal/domain"
)

//go:embed catalog.yaml
var embedded []byte

// ErrInvalidCatalog wraps validation failures.
var ErrInvalidCatalog = errors.New("invalid catalog")

// Default parses the embedded catalog.
func Default() (*Catalog, error) {
	return Parse(embedded)
}

// LoadFile parses and validates a catalog file, replacing the embedded data.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML, validates it and builds the lookup indexes.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}
	if errs := Validate(&c); len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Error()
		}
		return nil, fmt.Errorf("%w:\n  %s", ErrInvalidCatalog, strings.Join(msgs, "\n  "))
	}
	c.index()
	return &c, nil
}

func (c *Catalog) index() {
	c.specialtyIdx = make(map[string]int, len(c.Specialties))
	for i, s := range c.Specialties {
		c.specialtyIdx[s.ID] = i
	}
	c.collegeIdx = make(map[string]int, len(c.Colleges))
	for i, col := range c.Colleges {
		c.collegeIdx[col.ID] = i
	}
	c.newsIdx = make(map[string]int, len(c.News))
	for i, n := range c.News {
		c.newsIdx[n.ID] = i
	}
}

func (c *Catalog) Specialty(id string) (Specialty, bool) {
	i, ok := c.specialtyIdx[id]
	if !ok {
		return Specialty{}, false
	}
	return c.Specialties[i], true
}

func (c *Catalog) College(id string) (College, bool) {
	i, ok := c.collegeIdx[id]
	if !ok {
		return College{}, false
	}
	return c.Colleges[i], true
}

func (c *Catalog) NewsByID(id string) (NewsItem, bool) {
	i, ok := c.newsIdx[id]
	if !ok {
		return NewsItem{}, false
	}
	return c.News[i], true
}

// ItemType reports whether id names a specialty or a college.
func (c *Catalog) ItemType(id string) (domain.ItemType, bool) {
	if _, ok := c.specialtyIdx[id]; ok {
		return domain.ItemSpecialty, true
	}
	if _, ok := c.collegeIdx[id]; ok {
		return domain.ItemCollege, true
	}
	return "", false
}

// Title returns the display name of a specialty or college id.
func (c *Catalog) Title(id string) string {
	if s, ok := c.Specialty(id); ok {
		return s.Title
	}
	if col, ok := c.College(id); ok {
		return col.Name
	}
	return id
}

// Website returns a college's site or "". It satisfies checklist.SiteLookup.
func (c *Catalog) Website(collegeID string) string {
	col, ok := c.College(collegeID)
	if !ok {
		return ""
	}
	return col.Contacts.Website
}

// CollegesFor lists colleges teaching the specialty, in catalog order.
func (c *Catalog) CollegesFor(specialtyID string) []College {
	var out []College
	for _, col := range c.Colleges {
		for _, id := range col.SpecialtyIDs {
			if id == specialtyID {
				out = append(out, col)
				break
			}
		}
	}
	return out
}

// Quiz returns the quiz of the given type.
func (c *Catalog) Quiz(t domain.QuizType) (Quiz, bool) {
	for _, q := range c.Quizzes {
		if q.Type == t {
			return q, true
		}
	}
	return Quiz{}, false
}

// EventsFor returns events of the given colleges sorted by date. No ids
// means every event.
func (c *Catalog) EventsFor(collegeIDs ...string) []Event {
	want := make(map[string]bool, len(collegeIDs))
	for _, id := range collegeIDs {
		want[id] = true
	}
	var out []Event
	for _, e := range c.Events {
		if len(want) == 0 || want[e.CollegeID] {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// PassingScores lists every college's passing score.
func (c *Catalog) PassingScores() []float64 {
	out := make([]float64, len(c.Colleges))
	for i, col := range c.Colleges {
		out[i] = col.PassingScore
	}
	return out
}
