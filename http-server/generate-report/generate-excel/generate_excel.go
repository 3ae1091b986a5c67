package generate_excel

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"quote-calc/internal/storage"
)

type GenerateExcelHandler interface {
	GenerateExcel(ctx context.Context, projectID int64, discounts map[string]float64) ([]byte, error)
}

// GenerateQuoteExcel streams the project quote as an xlsx file. Per-role
// discounts come as repeated query values: ?discount=QA%20Engineer:10.
func GenerateQuoteExcel(log *slog.Logger, gen GenerateExcelHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.report.GenerateQuoteExcel"

		projectID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "Bad request: invalid project id", http.StatusBadRequest)
			return
		}

		discounts, err := ParseDiscounts(r.URL.Query()["discount"])
		if err != nil {
			http.Error(w, "Bad request: "+err.Error(), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		excelBytes, err := gen.GenerateExcel(ctx, projectID, discounts)
		if err != nil {
			if errors.Is(err, storage.ErrProjectNotFound) {
				http.Error(w, "Project not found", http.StatusNotFound)
				return
			}

			log.Error("failed to generate excel", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		fileName := fmt.Sprintf("Quote_%d_%s.xlsx", projectID, time.Now().Format("2006-01-02_150405"))

		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", "attachment; filename="+fileName)
		if _, err := w.Write(excelBytes); err != nil {
			log.Warn("failed to write excel", slog.String("op", op), slog.String("error", err.Error()))
		}
	}
}

// ParseDiscounts reads "role:percent" pairs. The last colon splits, so roles
// may contain colons themselves.
func ParseDiscounts(values []string) (map[string]float64, error) {
	if len(values) == 0 {
		return nil, nil
	}

	discounts := make(map[string]float64, len(values))
	for _, v := range values {
		i := strings.LastIndex(v, ":")
		if i <= 0 {
			return nil, fmt.Errorf("discount %q must look like role:percent", v)
		}

		role := strings.TrimSpace(v[:i])
		pct, err := strconv.ParseFloat(strings.TrimSpace(v[i+1:]), 64)
		if err != nil || role == "" {
			return nil, fmt.Errorf("discount %q must look like role:percent", v)
		}
		if pct < 0 || pct > 100 {
			return nil, fmt.Errorf("discount for %q must be between 0 and 100", role)
		}

		discounts[role] = pct
	}

	return discounts, nil
}
