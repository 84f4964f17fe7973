package catalog

import "sort"

// trendPriority returns a sort priority (lower = more in demand).
func trendPriority(t Trend) int {
	switch t {
	case TrendHot:
		return 0
	case TrendGrowing:
		return 1
	case TrendStable:
		return 2
	default:
		return 3
	}
}

// TopProfessions returns the professions ranked by:
// 1. Trend: hot > growing > stable > unset
// 2. Upper salary: higher first
// 3. Name: lexical ascending
// 4. ID: ascending
func (c *Catalog) TopProfessions() []Profession {
	out := append([]Profession(nil), c.Professions...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]

		if pa, pb := trendPriority(a.Trend), trendPriority(b.Trend); pa != pb {
			return pa < pb
		}
		if a.SalaryTo != b.SalaryTo {
			return a.SalaryTo > b.SalaryTo
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})
	return out
}

// PassableColleges returns colleges whose passing score is at or below
// average, hardest first so the most ambitious options lead.
func (c *Catalog) PassableColleges(average float64) []College {
	var out []College
	for _, col := range c.Colleges {
		if col.PassingScore <= average {
			out = append(out, col)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].PassingScore != out[j].PassingScore {
			return out[i].PassingScore > out[j].PassingScore
		}
		return out[i].Name < out[j].Name
	})
	return out
}
