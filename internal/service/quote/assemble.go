package quote

import "quote-calc/internal/storage"

type Input struct {
	Rates              []storage.RateEntry
	Modules            []storage.Module
	DiscountPercentage float64
	OverlapDays        float64
}

// Quote is the combined shape the front end renders.
type Quote struct {
	Result       QuoteResult   `json:"result"`
	Stats        ModuleStats   `json:"stats"`
	ModulePrices []ModulePrice `json:"module_prices"`
}

func Assemble(in Input) Quote {
	return Quote{
		Result:       ComputeQuote(in.Rates, in.Modules, in.DiscountPercentage, in.OverlapDays),
		Stats:        ComputeModuleStats(in.Modules, in.OverlapDays),
		ModulePrices: ComputeModulePrices(in.Modules, in.Rates),
	}
}

// OverlapFromSetting turns the stored setting into engine input, nil being
// the fully parallel schedule.
func OverlapFromSetting(overlap *float64) float64 {
	if overlap == nil {
		return FullyParallel
	}
	return *overlap
}
