package mysql

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"quote-calc/internal/config"
	"quote-calc/internal/storage"
)

func TestDSN(t *testing.T) {
	dsn := DSN(config.Config{
		DBUser:     "quote",
		DBPassword: "secret",
		DBHost:     "db",
		DBPort:     3307,
		DBName:     "quotes",
		ParseTime:  true,
	})

	assert.Contains(t, dsn, "quote:secret@tcp(db:3307)/quotes")
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "clientFoundRows=true")
}

func TestRates_RoundTrip(t *testing.T) {
	requireDB(t)

	ctx := context.Background()

	rates := []storage.RateEntry{
		{Role: "UI Designer", MonthlyRate: 4000, Discount: 30},
		{Role: "Backend Developer", MonthlyRate: 5000},
	}
	require.NoError(t, testStorage.SaveRates(ctx, rates))

	got, err := testStorage.GetRates(ctx)
	require.NoError(t, err)

	assert.Equal(t, []storage.RateEntry{
		{Role: "UI Designer", MonthlyRate: 4000},
		{Role: "Backend Developer", MonthlyRate: 5000},
	}, got)
}

func TestRates_Duplicate(t *testing.T) {
	requireDB(t)

	err := testStorage.SaveRates(context.Background(), []storage.RateEntry{
		{Role: "QA", MonthlyRate: 1},
		{Role: "QA", MonthlyRate: 2},
	})

	assert.True(t, errors.Is(err, storage.ErrDuplicateRole))
}

func TestProjects_CreateGetUpdate(t *testing.T) {
	requireDB(t)

	ctx := context.Background()

	id, err := testStorage.CreateProject(ctx, storage.Project{Name: "Shop", DiscountPercentage: 10})
	require.NoError(t, err)

	p, err := testStorage.GetProject(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Shop", p.Name)
	assert.Equal(t, 10.0, p.DiscountPercentage)
	assert.Nil(t, p.OverlapDays)

	overlap := 2.5
	require.NoError(t, testStorage.UpdateProjectSettings(ctx, id, storage.ProjectSettings{DiscountPercentage: 5, OverlapDays: &overlap}))
	// Same values again must not look like a missing row.
	require.NoError(t, testStorage.UpdateProjectSettings(ctx, id, storage.ProjectSettings{DiscountPercentage: 5, OverlapDays: &overlap}))

	p, err = testStorage.GetProject(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, p.OverlapDays)
	assert.Equal(t, 2.5, *p.OverlapDays)
	assert.Equal(t, 5.0, p.DiscountPercentage)
}

func TestProjects_NotFound(t *testing.T) {
	requireDB(t)

	ctx := context.Background()

	_, err := testStorage.GetProject(ctx, -1)
	assert.True(t, errors.Is(err, storage.ErrProjectNotFound))

	err = testStorage.UpdateProjectSettings(ctx, -1, storage.ProjectSettings{})
	assert.True(t, errors.Is(err, storage.ErrProjectNotFound))
}

func TestModules_ReplaceAndToggle(t *testing.T) {
	requireDB(t)

	ctx := context.Background()

	id, err := testStorage.CreateProject(ctx, storage.Project{Name: "Modules"})
	require.NoError(t, err)

	modules := []storage.Module{
		{
			ID:                    "auth",
			Name:                  "Authentication",
			DesignDays:            3,
			FrontendDays:          5,
			BackendDays:           8,
			DesignPerformers:      []string{"UI Designer"},
			DevelopmentPerformers: []string{"Frontend Developer", "Backend Developer"},
			IsEnabled:             true,
		},
		{ID: "docs", Name: "Docs", DesignDays: 1, IsEnabled: false},
	}
	require.NoError(t, testStorage.ReplaceModules(ctx, id, modules))

	got, err := testStorage.GetModules(ctx, id)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, modules[0], got[0])
	assert.Equal(t, []string{}, got[1].DesignPerformers)

	require.NoError(t, testStorage.SetModuleEnabled(ctx, id, "docs", true))
	got, err = testStorage.GetModules(ctx, id)
	require.NoError(t, err)
	assert.True(t, got[1].IsEnabled)

	err = testStorage.SetModuleEnabled(ctx, id, "missing", true)
	assert.True(t, errors.Is(err, storage.ErrModuleNotFound))
}

func TestModules_ReplaceUnknownProject(t *testing.T) {
	requireDB(t)

	err := testStorage.ReplaceModules(context.Background(), -1, []storage.Module{{ID: "a", Name: "A"}})

	assert.True(t, errors.Is(err, storage.ErrProjectNotFound))
}
