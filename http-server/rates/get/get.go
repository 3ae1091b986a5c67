package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"quote-calc/internal/storage"
)

type RateProvider interface {
	GetRates(ctx context.Context) ([]storage.RateEntry, error)
}

type Response struct {
	Rates      []storage.RateEntry `json:"rates"`
	MonthlyFee float64             `json:"monthly_fee"`
}

func GetRates(log *slog.Logger, provider RateProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.rates.GetRates"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		rates, err := provider.GetRates(ctx)
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("failed to fetch rates")
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		var fee float64
		for _, rate := range rates {
			fee += rate.MonthlyRate
		}

		render.JSON(w, r, Response{Rates: rates, MonthlyFee: fee})
	}
}
