package quote

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"quote-calc/internal/storage"
)

func TestValidateAssignments_Consistent(t *testing.T) {
	assert.NoError(t, ValidateAssignments(standardModules()))
	assert.NoError(t, ValidateAssignments(nil))
}

func TestValidateAssignments_Typo(t *testing.T) {
	modules := []storage.Module{{
		ID:                    "cart",
		Name:                  "Shopping cart",
		FrontendDays:          4,
		BackendDays:           2,
		DevelopmentPerformers: []string{"Fronted Developer", "Backend Developer"},
	}}

	err := ValidateAssignments(modules)
	require.Error(t, err)

	var ae *AssignmentError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, "cart", ae.ModuleID)
	assert.Equal(t, PhaseFrontend, ae.Phase)
	assert.Contains(t, err.Error(), "Shopping cart")
	assert.Contains(t, err.Error(), "frontend")
}

func TestValidateAssignments_CollectsAll(t *testing.T) {
	modules := []storage.Module{
		{ID: "a", Name: "API", BackendDays: 3, DevelopmentPerformers: []string{"QA Engineer"}},
		{ID: "b", Name: "UI", FrontendDays: 2, BackendDays: 1},
		// Zero days need nobody.
		{ID: "c", Name: "Docs", DesignDays: 2},
	}

	errs := AssignmentErrors(ValidateAssignments(modules))

	require.Len(t, errs, 3)
	assert.Equal(t, AssignmentError{ModuleID: "a", ModuleName: "API", Phase: PhaseBackend}, *errs[0])
	assert.Equal(t, AssignmentError{ModuleID: "b", ModuleName: "UI", Phase: PhaseFrontend}, *errs[1])
	assert.Equal(t, AssignmentError{ModuleID: "b", ModuleName: "UI", Phase: PhaseBackend}, *errs[2])
}

func TestValidateAssignments_DoesNotAffectCost(t *testing.T) {
	modules := []storage.Module{{
		ID:                    "cart",
		Name:                  "Shopping cart",
		FrontendDays:          4,
		DevelopmentPerformers: []string{"Fronted Developer"},
		IsEnabled:             true,
	}}
	rates := []storage.RateEntry{{Role: "Fronted Developer", MonthlyRate: 5000}}

	require.Error(t, ValidateAssignments(modules))
	// Classified as other, so the role is charged for the full span.
	assert.Equal(t, int64(1000), ComputeQuote(rates, modules, 0, FullyParallel).TotalQuote)
}

func TestAssignmentErrors_Nil(t *testing.T) {
	assert.Nil(t, AssignmentErrors(nil))
	assert.Empty(t, AssignmentErrors(errors.New("other")))
}

func TestAssignmentErrors_Wrapped(t *testing.T) {
	modules := []storage.Module{
		{ID: "a", Name: "API", BackendDays: 3},
		{ID: "b", Name: "UI", FrontendDays: 2},
	}

	err := fmt.Errorf("import: %w", ValidateAssignments(modules))

	assert.Len(t, AssignmentErrors(err), 2)
}
