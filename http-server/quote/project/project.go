package project

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"quote-calc/internal/service/quote"
	"quote-calc/internal/storage"
)

type ProjectQuoter interface {
	CalculateProjectQuote(ctx context.Context, projectID int64, discounts map[string]float64) (quote.Quote, error)
}

type Request struct {
	// Per-role discounts for this calculation only.
	Discounts map[string]float64 `json:"discounts"`
}

func CalculateProjectQuote(log *slog.Logger, quoter ProjectQuoter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.quote.CalculateProjectQuote"

		projectID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "Bad request: invalid project id", http.StatusBadRequest)
			return
		}

		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			log.Warn("invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Bad request: invalid JSON", http.StatusBadRequest)
			return
		}

		for role, d := range req.Discounts {
			if d < 0 || d > 100 {
				http.Error(w, "Bad request: discount for "+strconv.Quote(role)+" must be between 0 and 100", http.StatusBadRequest)
				return
			}
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		q, err := quoter.CalculateProjectQuote(ctx, projectID, req.Discounts)
		if err != nil {
			if errors.Is(err, storage.ErrProjectNotFound) {
				log.With(slog.String("op", op), slog.Int64("project_id", projectID)).Warn("project not found")
				http.Error(w, "Project not found", http.StatusNotFound)
				return
			}

			log.Error("failed to calculate project quote", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, q)
	}
}
