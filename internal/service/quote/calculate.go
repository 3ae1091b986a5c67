package quote

import (
	"math"

	"github.com/shopspring/decimal"
	"quote-calc/internal/storage"
)

// BusinessDaysPerMonth converts a monthly rate into a daily one.
const BusinessDaysPerMonth = 20

// FullyParallel lets development start together with design.
var FullyParallel = math.Inf(1)

var (
	hundred      = decimal.NewFromInt(100)
	businessDays = decimal.NewFromInt(BusinessDaysPerMonth)
)

type ModuleStats struct {
	TimelineDays float64 `json:"timeline_days"`
	EffortDays   float64 `json:"effort_days"`
}

type QuoteResult struct {
	DesignDays         float64 `json:"design_days"`
	DevelopmentDays    float64 `json:"development_days"`
	TotalDays          float64 `json:"total_days"`
	DesignCost         int64   `json:"design_cost"`
	DevelopmentCost    int64   `json:"development_cost"`
	TotalQuote         int64   `json:"total_quote"`
	MonthlyFee         float64 `json:"monthly_fee"`
	ProductPrice       int64   `json:"product_price"`
	DiscountAmount     int64   `json:"discount_amount"`
	FinalTotal         int64   `json:"final_total"`
	TeamSizeMultiplier int     `json:"team_size_multiplier"`
}

type ModulePrice struct {
	ModuleID     string  `json:"module_id"`
	Price        int64   `json:"price"`
	TimelineDays float64 `json:"timeline_days"`
}

type timeline struct {
	design      float64
	development float64
	total       float64
	effort      float64
}

func buildTimeline(modules []storage.Module, overlapDays float64) timeline {
	var totalDesign, totalFrontend, totalBackend, effort float64

	for _, m := range modules {
		if !m.IsEnabled {
			continue
		}
		totalDesign += m.DesignDays
		totalFrontend += m.FrontendDays
		totalBackend += m.BackendDays
		effort += m.DesignDays + m.FrontendDays + m.BackendDays
	}

	// FE and BE teams work side by side.
	totalDev := max(totalFrontend, totalBackend)

	if math.IsNaN(overlapDays) || overlapDays < 0 {
		overlapDays = 0
	}
	overlap := min(overlapDays, totalDesign, totalDev)

	return timeline{
		design:      totalDesign,
		development: totalDev,
		total:       totalDesign + totalDev - overlap,
		effort:      effort,
	}
}

// ComputeModuleStats summarises the enabled modules. overlapDays is how many
// days development may start before design ends: 0 is strictly sequential,
// FullyParallel (or anything past the shorter phase) gives max(design, dev).
func ComputeModuleStats(modules []storage.Module, overlapDays float64) ModuleStats {
	t := buildTimeline(modules, overlapDays)

	return ModuleStats{
		TimelineDays: t.total,
		EffortDays:   t.effort,
	}
}

type rateCard map[string]decimal.Decimal

// newRateCard resolves every role to its discounted daily rate. The first
// entry wins when a role is listed twice.
func newRateCard(rates []storage.RateEntry) rateCard {
	card := make(rateCard, len(rates))
	for _, r := range rates {
		if _, ok := card[r.Role]; ok {
			continue
		}
		monthly := decimal.NewFromFloat(r.MonthlyRate)
		factor := decimal.NewFromInt(1).Sub(decimal.NewFromFloat(r.Discount).Div(hundred))
		card[r.Role] = monthly.Mul(factor).Div(businessDays)
	}
	return card
}

// daily returns zero for performers missing from the card.
func (c rateCard) daily(role string) decimal.Decimal {
	rate, ok := c[role]
	if !ok {
		return decimal.Zero
	}
	return rate
}

func devDaysFor(performer string, m storage.Module) float64 {
	switch ClassifyPerformer(performer) {
	case PerformerFrontend:
		return m.FrontendDays
	case PerformerBackend:
		return m.BackendDays
	default:
		return max(m.FrontendDays, m.BackendDays)
	}
}

func (c rateCard) designCost(m storage.Module) decimal.Decimal {
	days := decimal.NewFromFloat(m.DesignDays)
	sum := decimal.Zero
	for _, p := range m.DesignPerformers {
		sum = sum.Add(c.daily(p).Mul(days))
	}
	return sum
}

func (c rateCard) developmentCost(m storage.Module) decimal.Decimal {
	sum := decimal.Zero
	for _, p := range m.DevelopmentPerformers {
		sum = sum.Add(c.daily(p).Mul(decimal.NewFromFloat(devDaysFor(p, m))))
	}
	return sum
}

// ComputeQuote prices the enabled modules. Design and development costs are
// rounded separately before they are added up; the project discount is
// applied once to that total.
func ComputeQuote(rates []storage.RateEntry, modules []storage.Module, discountPercentage, overlapDays float64) QuoteResult {
	card := newRateCard(rates)

	design, development := decimal.Zero, decimal.Zero
	for _, m := range modules {
		if !m.IsEnabled {
			continue
		}
		design = design.Add(card.designCost(m))
		development = development.Add(card.developmentCost(m))
	}

	designCost := design.Round(0).IntPart()
	developmentCost := development.Round(0).IntPart()
	total := designCost + developmentCost

	monthlyFee := decimal.Zero
	for _, r := range rates {
		monthlyFee = monthlyFee.Add(decimal.NewFromFloat(r.MonthlyRate))
	}

	discountAmount := decimal.NewFromInt(total).
		Mul(decimal.NewFromFloat(discountPercentage)).
		Div(hundred).
		Round(0).
		IntPart()

	t := buildTimeline(modules, overlapDays)

	return QuoteResult{
		DesignDays:         t.design,
		DevelopmentDays:    t.development,
		TotalDays:          t.total,
		DesignCost:         designCost,
		DevelopmentCost:    developmentCost,
		TotalQuote:         total,
		MonthlyFee:         monthlyFee.InexactFloat64(),
		ProductPrice:       total,
		DiscountAmount:     discountAmount,
		FinalTotal:         total - discountAmount,
		TeamSizeMultiplier: 1,
	}
}

// ComputeModulePrice prices a single module whatever its enabled flag.
// Unlike ComputeQuote the design and development parts are rounded together.
func ComputeModulePrice(m storage.Module, rates []storage.RateEntry) int64 {
	card := newRateCard(rates)
	return card.modulePrice(m)
}

func (c rateCard) modulePrice(m storage.Module) int64 {
	return c.designCost(m).Add(c.developmentCost(m)).Round(0).IntPart()
}

func ComputeModulePrices(modules []storage.Module, rates []storage.RateEntry) []ModulePrice {
	card := newRateCard(rates)

	prices := make([]ModulePrice, 0, len(modules))
	for _, m := range modules {
		prices = append(prices, ModulePrice{
			ModuleID:     m.ID,
			Price:        card.modulePrice(m),
			TimelineDays: max(m.DesignDays, m.FrontendDays, m.BackendDays),
		})
	}

	return prices
}
