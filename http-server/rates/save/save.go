package save

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/render"
	"quote-calc/internal/storage"
)

type RateSaver interface {
	SaveRates(ctx context.Context, rates []storage.RateEntry) error
}

// SaveRates replaces the rate card. Any discount in the request is ignored.
func SaveRates(log *slog.Logger, saver RateSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.rates.SaveRates"

		var rates []storage.RateEntry
		if err := json.NewDecoder(r.Body).Decode(&rates); err != nil {
			log.Error("invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Bad request: invalid JSON", http.StatusBadRequest)
			return
		}

		seen := make(map[string]bool, len(rates))
		for i := range rates {
			rates[i].Role = strings.TrimSpace(rates[i].Role)
			rates[i].Discount = 0

			if rates[i].Role == "" {
				http.Error(w, fmt.Sprintf("Rate %d: role is required", i), http.StatusBadRequest)
				return
			}
			if seen[rates[i].Role] {
				http.Error(w, fmt.Sprintf("Rate %d: duplicate role %q", i, rates[i].Role), http.StatusBadRequest)
				return
			}
			seen[rates[i].Role] = true

			if rates[i].MonthlyRate < 0 {
				http.Error(w, fmt.Sprintf("Rate %d: monthly_rate must not be negative", i), http.StatusBadRequest)
				return
			}
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := saver.SaveRates(ctx, rates); err != nil {
			if errors.Is(err, storage.ErrDuplicateRole) {
				http.Error(w, "Duplicate role", http.StatusConflict)
				return
			}

			log.Error("failed to save rates", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		log.Info("rate card saved", slog.Int("count", len(rates)))

		render.JSON(w, r, map[string]interface{}{
			"status": "success",
			"saved":  len(rates),
		})
	}
}
