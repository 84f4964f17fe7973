// Package calculator computes the school certificate average used to
// compare against college passing scores.
package calculator

import (
	"errors"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/alexanderramin/vocnav/internal/logging"
	"github.com/alexanderramin/vocnav/internal/storage"
)

const (
	MinGrade = 0
	MaxGrade = 5
)

var (
	// ErrGradeRange is returned for a manual average or typed grade outside 0-5.
	ErrGradeRange     = errors.New("grade out of range 0-5")
	ErrUnknownSubject = errors.New("unknown subject")
)

// Subject is one certificate line. Grade 0 means not graded.
type Subject struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Grade  int     `json:"grade"`
	Weight float64 `json:"weight"`
}

// DefaultSubjects is the first-run subject list. Core subjects weigh more.
func DefaultSubjects() []Subject {
	return []Subject{
		{ID: "russian", Name: "Russian language", Weight: 1.5},
		{ID: "math", Name: "Mathematics", Weight: 1.5},
		{ID: "physics", Name: "Physics", Weight: 1.2},
		{ID: "informatics", Name: "Computer science", Weight: 1.2},
		{ID: "chemistry", Name: "Chemistry", Weight: 1},
		{ID: "biology", Name: "Biology", Weight: 1},
		{ID: "literature", Name: "Literature", Weight: 1},
		{ID: "history", Name: "History", Weight: 1},
		{ID: "social", Name: "Social studies", Weight: 1},
		{ID: "geography", Name: "Geography", Weight: 1},
		{ID: "english", Name: "Foreign language", Weight: 1},
		{ID: "pe", Name: "Physical education", Weight: 0.5},
	}
}

// Clamp bounds a grade to the 0-5 scale.
func Clamp(grade int) int {
	if grade < MinGrade {
		return MinGrade
	}
	if grade > MaxGrade {
		return MaxGrade
	}
	return grade
}

// WeightedAverage averages graded subjects by weight. It reports false when
// no subject is graded.
func WeightedAverage(subjects []Subject) (float64, bool) {
	var sum, weight float64
	for _, s := range subjects {
		if s.Grade <= 0 {
			continue
		}
		sum += float64(s.Grade) * s.Weight
		weight += s.Weight
	}
	if weight == 0 {
		return 0, false
	}
	return sum / weight, true
}

// PassableCount counts passing scores at or below average.
func PassableCount(average float64, passingScores []float64) int {
	n := 0
	for _, p := range passingScores {
		if average >= p {
			n++
		}
	}
	return n
}

// Calculator holds the subject grades and the last average, persisted
// under calculatorSubjects and averageScore.
type Calculator struct {
	mu       sync.Mutex
	store    storage.Store
	logger   *zap.Logger
	subjects []Subject
	average  float64
	hasAvg   bool
}

func New(store storage.Store, logger *zap.Logger) *Calculator {
	c := &Calculator{store: store, logger: logging.OrNop(logger).Named("Calculator")}
	c.Reload()
	return c
}

// Reload re-reads persisted state, falling back to defaults.
func (c *Calculator) Reload() {
	c.mu.Lock()
	defer c.mu.Unlock()

	var subjects []Subject
	if !storage.GetJSON(c.store, c.logger, storage.KeyCalculatorSubjects, &subjects) || len(subjects) == 0 {
		subjects = DefaultSubjects()
	}
	for i := range subjects {
		subjects[i].Grade = Clamp(subjects[i].Grade)
	}
	c.subjects = subjects

	c.average, c.hasAvg = 0, false
	if raw, ok := c.store.Get(storage.KeyAverageScore); ok {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < MinGrade || v > MaxGrade {
			c.logger.Warn("ignoring stored average", zap.String("value", raw))
			return
		}
		c.average, c.hasAvg = v, true
	}
}

func (c *Calculator) Subjects() []Subject {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Subject(nil), c.subjects...)
}

// SetGrade stores a clamped grade for the subject.
func (c *Calculator) SetGrade(subjectID string, grade int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.subjects {
		if c.subjects[i].ID == subjectID {
			c.subjects[i].Grade = Clamp(grade)
			storage.SetJSON(c.store, c.logger, storage.KeyCalculatorSubjects, c.subjects)
			return nil
		}
	}
	return ErrUnknownSubject
}

// Calculate stores and returns the weighted average. counted is false when
// nothing was graded; the average is then 0 and should not count as a
// calculated score.
func (c *Calculator) Calculate() (average float64, counted bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	avg, ok := WeightedAverage(c.subjects)
	c.setAverageLocked(avg)
	return avg, ok
}

// SetAverage records a known average directly.
func (c *Calculator) SetAverage(v float64) error {
	if v < MinGrade || v > MaxGrade {
		return ErrGradeRange
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setAverageLocked(v)
	return nil
}

// ClearAverage forgets the stored average.
func (c *Calculator) ClearAverage() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.average, c.hasAvg = 0, false
	c.store.Remove(storage.KeyAverageScore)
}

func (c *Calculator) setAverageLocked(v float64) {
	c.average, c.hasAvg = v, true
	c.store.Set(storage.KeyAverageScore, strconv.FormatFloat(v, 'f', -1, 64))
}

// Average returns the last average, if any.
func (c *Calculator) Average() (float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.average, c.hasAvg
}
