// Package checklist builds the per-item checklists attached to plan items.
package checklist

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/alexanderramin/vocnav/internal/domain"
)

// Generator produces a fresh, fully uncompleted checklist for a plan item.
type Generator interface {
	Generate(itemType domain.ItemType, itemID string) []domain.ChecklistItem
}

// SiteLookup resolves a college id to its website, or "" when unknown.
type SiteLookup func(collegeID string) string

const gosuslugiURL = "https://www.gosuslugi.ru/10204/1"

// Templates is the default Generator.
type Templates struct {
	newID func() string
	site  SiteLookup
}

// Option configures Templates.
type Option func(*Templates)

// WithIDs overrides checklist entry id generation.
func WithIDs(fn func() string) Option {
	return func(t *Templates) { t.newID = fn }
}

// WithSiteLookup lets college checklists link to the college website.
func WithSiteLookup(fn SiteLookup) Option {
	return func(t *Templates) { t.site = fn }
}

func NewTemplates(opts ...Option) *Templates {
	t := &Templates{newID: func() string { return uuid.NewString() }}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

type entry struct {
	text    string
	kind    domain.ChecklistItemType
	payload any
}

var specialtyTemplate = []entry{
	{"Read what a working day in this specialty looks like", domain.ChecklistInfo, nil},
	{"Take the career quiz to check your fit", domain.ChecklistNavigation, domain.NavigationPayload{Name: domain.ViewQuiz}},
	{"Calculate your average grade and compare it with the passing score", domain.ChecklistNavigation, domain.NavigationPayload{Name: domain.ViewProfile}},
	{"Pick colleges that teach this specialty", domain.ChecklistNavigation, domain.NavigationPayload{Name: domain.ViewColleges}},
	{"Talk to someone who already works in the field", domain.ChecklistAction, nil},
}

var collegeTemplate = []entry{
	{"Check open days and application deadlines", domain.ChecklistNavigation, domain.NavigationPayload{Name: domain.ViewCalendar}},
	{"Find out about the dormitory and meals", domain.ChecklistInfo, nil},
	{"Prepare documents: passport, school certificate, photos, medical form", domain.ChecklistAction, nil},
	{"Submit the application online", domain.ChecklistLink, gosuslugiURL},
	{"Track your position in the admission ranking", domain.ChecklistAction, nil},
}

func (t *Templates) Generate(itemType domain.ItemType, itemID string) []domain.ChecklistItem {
	var tpl []entry
	switch itemType {
	case domain.ItemSpecialty:
		tpl = specialtyTemplate
	case domain.ItemCollege:
		tpl = collegeTemplate
		if t.site != nil {
			if url := t.site(itemID); url != "" {
				tpl = append([]entry{{"Visit the college website", domain.ChecklistLink, url}}, tpl...)
			}
		}
	default:
		return []domain.ChecklistItem{}
	}

	out := make([]domain.ChecklistItem, 0, len(tpl))
	for _, e := range tpl {
		item := domain.ChecklistItem{ID: t.newID(), Text: e.text, Type: e.kind}
		if e.payload != nil {
			// Payloads are fixed literals; marshal cannot fail.
			raw, _ := json.Marshal(e.payload)
			item.Payload = raw
		}
		out = append(out, item)
	}
	return out
}
