package get

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"quote-calc/internal/storage"
)

type ModuleProvider interface {
	GetModules(ctx context.Context, projectID int64) ([]storage.Module, error)
}

type Response struct {
	Modules []storage.Module `json:"modules"`
}

func GetModules(log *slog.Logger, provider ModuleProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.modules.GetModules"

		projectID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "Bad request: invalid project id", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		modules, err := provider.GetModules(ctx, projectID)
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("failed to fetch modules")
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, Response{Modules: modules})
	}
}
