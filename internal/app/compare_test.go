package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/vocnav/internal/domain"
)

func TestToggleCompare_Rules(t *testing.T) {
	f := newShellFixture(t)
	sh := f.shell
	sh.AddToPlan("col-polytech", domain.ItemCollege)
	sh.AddToPlan("col-build", domain.ItemCollege)
	sh.AddToPlan("col-agro", domain.ItemCollege)
	sh.AddToPlan("09.02.07", domain.ItemSpecialty)

	_, err := sh.ToggleCompare("col-med")
	assert.ErrorIs(t, err, ErrNotInPlan)

	on, err := sh.ToggleCompare("col-polytech")
	require.NoError(t, err)
	assert.True(t, on)

	_, err = sh.ToggleCompare("09.02.07")
	assert.ErrorIs(t, err, ErrComparisonMixed)

	_, err = sh.ToggleCompare("col-build")
	require.NoError(t, err)
	_, err = sh.ToggleCompare("col-agro")
	assert.ErrorIs(t, err, ErrComparisonFull)

	on, err = sh.ToggleCompare("col-polytech")
	require.NoError(t, err)
	assert.False(t, on)
	assert.Equal(t, []string{"col-build"}, sh.CompareSelection())
}

func TestCompare_MarksUsage(t *testing.T) {
	f := newShellFixture(t)
	sh := f.shell
	sh.AddToPlan("col-polytech", domain.ItemCollege)
	sh.AddToPlan("col-build", domain.ItemCollege)

	_, _, err := sh.Compare()
	assert.ErrorIs(t, err, ErrComparisonIncomplete)
	assert.False(t, sh.Counters().HasUsedComparison)

	_, _ = sh.ToggleCompare("col-polytech")
	_, _ = sh.ToggleCompare("col-build")
	left, right, err := sh.Compare()
	require.NoError(t, err)
	assert.Equal(t, "col-polytech", left.ID)
	assert.Equal(t, "col-build", right.ID)
	assert.True(t, sh.IsUnlocked("analyst"))
}

func TestCompareItems_Validation(t *testing.T) {
	f := newShellFixture(t)
	sh := f.shell
	sh.AddToPlan("col-polytech", domain.ItemCollege)
	sh.AddToPlan("09.02.07", domain.ItemSpecialty)

	_, _, err := sh.CompareItems("col-polytech", "09.02.07")
	assert.ErrorIs(t, err, ErrComparisonMixed)
	_, _, err = sh.CompareItems("col-polytech", "col-polytech")
	assert.ErrorIs(t, err, ErrComparisonIncomplete)
	_, _, err = sh.CompareItems("col-polytech", "gone")
	assert.ErrorIs(t, err, ErrNotInPlan)
	assert.False(t, sh.Counters().HasUsedComparison)
}

func TestRemoveFromPlan_DropsSelection(t *testing.T) {
	f := newShellFixture(t)
	sh := f.shell
	sh.AddToPlan("col-polytech", domain.ItemCollege)
	_, _ = sh.ToggleCompare("col-polytech")

	sh.RemoveFromPlan("col-polytech")
	assert.Empty(t, sh.CompareSelection())
}
