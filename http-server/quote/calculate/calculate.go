package calculate

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"

	"github.com/go-chi/render"
	"quote-calc/internal/service/quote"
	"quote-calc/internal/storage"
)

type Request struct {
	Rates              []storage.RateEntry `json:"rates"`
	Modules            []storage.Module    `json:"modules"`
	DiscountPercentage float64             `json:"discount_percentage"`
	// Null or missing means fully parallel design and development.
	OverlapDays *float64 `json:"overlap_days"`
}

// CalculateQuote prices whatever the client sends without touching storage.
func CalculateQuote(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.quote.CalculateQuote"

		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Warn("invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Bad request: invalid JSON", http.StatusBadRequest)
			return
		}

		if err := req.Validate(); err != nil {
			log.Warn("invalid quote input", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, fmt.Sprintf("Bad request: %s", err), http.StatusBadRequest)
			return
		}

		render.JSON(w, r, quote.Assemble(quote.Input{
			Rates:              req.Rates,
			Modules:            req.Modules,
			DiscountPercentage: req.DiscountPercentage,
			OverlapDays:        quote.OverlapFromSetting(req.OverlapDays),
		}))
	}
}

// Validate rejects the numbers the engine expects callers to have filtered.
func (req Request) Validate() error {
	if req.DiscountPercentage < 0 || req.DiscountPercentage > 100 {
		return fmt.Errorf("discount_percentage must be between 0 and 100")
	}
	if req.OverlapDays != nil && *req.OverlapDays < 0 {
		return fmt.Errorf("overlap_days must not be negative")
	}

	for i, rate := range req.Rates {
		if rate.MonthlyRate < 0 {
			return fmt.Errorf("rates[%d]: monthly_rate must not be negative", i)
		}
		if rate.Discount < 0 || rate.Discount > 100 {
			return fmt.Errorf("rates[%d]: discount must be between 0 and 100", i)
		}
	}

	return ValidateModules(req.Modules)
}

func ValidateModules(modules []storage.Module) error {
	seen := make(map[string]bool, len(modules))

	for i, m := range modules {
		if m.ID == "" {
			return fmt.Errorf("modules[%d]: id is required", i)
		}
		if seen[m.ID] {
			return fmt.Errorf("modules[%d]: duplicate id %q", i, m.ID)
		}
		seen[m.ID] = true

		for _, d := range []float64{m.DesignDays, m.FrontendDays, m.BackendDays} {
			if d < 0 || math.IsNaN(d) || math.IsInf(d, 0) {
				return fmt.Errorf("modules[%d]: days must be non-negative numbers", i)
			}
		}
	}

	return nil
}
