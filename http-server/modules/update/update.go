package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"quote-calc/internal/storage"
)

type ModuleToggler interface {
	SetModuleEnabled(ctx context.Context, projectID int64, moduleID string, enabled bool) error
}

type Request struct {
	Enabled *bool `json:"enabled"`
}

func SetModuleEnabled(log *slog.Logger, toggler ModuleToggler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.modules.SetModuleEnabled"

		projectID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "Bad request: invalid project id", http.StatusBadRequest)
			return
		}
		moduleID := chi.URLParam(r, "moduleID")

		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Enabled == nil {
			http.Error(w, "Bad request: expected {\"enabled\": true|false}", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		err = toggler.SetModuleEnabled(ctx, projectID, moduleID, *req.Enabled)
		if err != nil {
			if errors.Is(err, storage.ErrModuleNotFound) {
				log.With(slog.String("op", op), slog.String("module_id", moduleID)).Warn("module not found")
				http.Error(w, "Module not found", http.StatusNotFound)
				return
			}

			log.Error("failed to toggle module", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, map[string]interface{}{
			"module_id": moduleID,
			"enabled":   *req.Enabled,
		})
	}
}
