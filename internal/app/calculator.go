package app

import "github.com/alexanderramin/vocnav/internal/calculator"

// ScoreResult is the outcome of a calculation.
type ScoreResult struct {
	Average  float64
	Passable int
	Total    int
}

func (s *Shell) Subjects() []calculator.Subject { return s.calc.Subjects() }

func (s *Shell) SetGrade(subjectID string, grade int) error {
	return s.calc.SetGrade(subjectID, grade)
}

// Calculate computes the weighted average. Only a calculation over at
// least one graded subject counts towards achievements.
func (s *Shell) Calculate() ScoreResult {
	avg, counted := s.calc.Calculate()
	if counted {
		s.MarkScoreCalculated()
	}
	return s.scoreResult(avg)
}

// SetAverage records a known average and counts as a calculation.
func (s *Shell) SetAverage(v float64) (ScoreResult, error) {
	if err := s.calc.SetAverage(v); err != nil {
		return ScoreResult{}, err
	}
	s.MarkScoreCalculated()
	return s.scoreResult(v), nil
}

// Score returns the stored average, if any.
func (s *Shell) Score() (ScoreResult, bool) {
	avg, ok := s.calc.Average()
	if !ok {
		return ScoreResult{}, false
	}
	return s.scoreResult(avg), true
}

func (s *Shell) scoreResult(avg float64) ScoreResult {
	scores := s.catalog.PassingScores()
	return ScoreResult{Average: avg, Passable: calculator.PassableCount(avg, scores), Total: len(scores)}
}
