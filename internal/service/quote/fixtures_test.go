package quote

import "quote-calc/internal/storage"

func standardRates() []storage.RateEntry {
	return []storage.RateEntry{
		{Role: "UI Designer", MonthlyRate: 4000},
		{Role: "Frontend Developer", MonthlyRate: 5000},
		{Role: "Backend Developer", MonthlyRate: 5000},
		{Role: "QA Engineer", MonthlyRate: 4000},
		{Role: "Project Manager", MonthlyRate: 5000},
	}
}

func standardModules() []storage.Module {
	return []storage.Module{
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
		{
			ID:                    "catalog",
			Name:                  "Product catalog",
			DesignDays:            4,
			FrontendDays:          9,
			BackendDays:           7,
			DesignPerformers:      []string{"UI Designer"},
			DevelopmentPerformers: []string{"Frontend Developer", "Backend Developer"},
			IsEnabled:             true,
		},
		{
			ID:                    "reports",
			Name:                  "Reports",
			DesignDays:            2,
			FrontendDays:          3,
			BackendDays:           3,
			DesignPerformers:      []string{"UI Designer"},
			DevelopmentPerformers: []string{"Frontend Developer", "Backend Developer", "QA Engineer"},
			IsEnabled:             false,
		},
	}
}
