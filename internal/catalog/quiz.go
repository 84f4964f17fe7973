package catalog

import (
	"sort"

	"github.com/alexanderramin/vocnav/internal/domain"
)

// Score tallies answers against q. answers[i] is the option index chosen
// for question i; out-of-range indexes and uncategorised options score
// nothing.
func Score(q Quiz, answers []int) domain.QuizScores {
	scores := domain.QuizScores{}
	for i, choice := range answers {
		if i >= len(q.Questions) {
			break
		}
		opts := q.Questions[i].Options
		if choice < 0 || choice >= len(opts) || opts[choice].Category == "" {
			continue
		}
		scores[opts[choice].Category]++
	}
	return scores
}

// CategoryScore is one ranked entry of a quiz result.
type CategoryScore struct {
	Category string
	Points   int
}

// Ranked orders scores by points, highest first, then by category name.
// Categories with no points are dropped.
func Ranked(scores domain.QuizScores) []CategoryScore {
	out := make([]CategoryScore, 0, len(scores))
	for cat, pts := range scores {
		if pts > 0 {
			out = append(out, CategoryScore{Category: cat, Points: pts})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// TopCategory returns the winning category, or false when nothing scored.
func TopCategory(scores domain.QuizScores) (string, bool) {
	ranked := Ranked(scores)
	if len(ranked) == 0 {
		return "", false
	}
	return ranked[0].Category, true
}

// Recommend lists specialties tagged with any of the top n categories,
// ordered by category rank and then catalog order.
func (c *Catalog) Recommend(scores domain.QuizScores, n int) []Specialty {
	ranked := Ranked(scores)
	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	seen := make(map[string]bool)
	var out []Specialty
	for _, r := range ranked {
		for _, s := range c.Specialties {
			if seen[s.ID] {
				continue
			}
			for _, cat := range s.Categories {
				if cat == r.Category {
					out = append(out, s)
					seen[s.ID] = true
					break
				}
			}
		}
	}
	return out
}
