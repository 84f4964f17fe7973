package app

import "github.com/alexanderramin/vocnav/internal/domain"

// ToggleCompare adds id to the comparison selection, or removes it when
// already selected. At most two items of the same type can be selected.
// It reports whether id is selected afterwards.
func (s *Shell) ToggleCompare(id string) (bool, error) {
	item, ok := s.plan.Item(id)
	if !ok {
		return false, ErrNotInPlan
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sel := range s.compare {
		if sel == id {
			s.compare = append(s.compare[:i:i], s.compare[i+1:]...)
			return false, nil
		}
	}
	if len(s.compare) >= 2 {
		return false, ErrComparisonFull
	}
	if len(s.compare) == 1 {
		if other, ok := s.plan.Item(s.compare[0]); ok && other.Type != item.Type {
			return false, ErrComparisonMixed
		}
	}
	s.compare = append(s.compare, id)
	return true, nil
}

// CompareSelection returns the selected ids in selection order.
func (s *Shell) CompareSelection() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.compare...)
}

func (s *Shell) ClearCompare() {
	s.mu.Lock()
	s.compare = nil
	s.mu.Unlock()
}

// Compare returns the two selected plan items and records that the
// comparison feature was used.
func (s *Shell) Compare() (domain.PlanItem, domain.PlanItem, error) {
	s.mu.Lock()
	sel := append([]string(nil), s.compare...)
	s.mu.Unlock()
	if len(sel) != 2 {
		return domain.PlanItem{}, domain.PlanItem{}, ErrComparisonIncomplete
	}
	return s.CompareItems(sel[0], sel[1])
}

// CompareItems compares two plan items directly.
func (s *Shell) CompareItems(a, b string) (domain.PlanItem, domain.PlanItem, error) {
	left, ok := s.plan.Item(a)
	if !ok {
		return domain.PlanItem{}, domain.PlanItem{}, ErrNotInPlan
	}
	right, ok := s.plan.Item(b)
	if !ok {
		return domain.PlanItem{}, domain.PlanItem{}, ErrNotInPlan
	}
	if a == b {
		return domain.PlanItem{}, domain.PlanItem{}, ErrComparisonIncomplete
	}
	if left.Type != right.Type {
		return domain.PlanItem{}, domain.PlanItem{}, ErrComparisonMixed
	}
	s.MarkComparisonUsed()
	return left, right, nil
}

func (s *Shell) dropFromCompareLocked(id string) {
	for i, sel := range s.compare {
		if sel == id {
			s.compare = append(s.compare[:i:i], s.compare[i+1:]...)
			return
		}
	}
}
