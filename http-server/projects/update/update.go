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

type SettingsUpdater interface {
	UpdateProjectSettings(ctx context.Context, id int64, settings storage.ProjectSettings) error
}

// UpdateSettings stores the project discount and overlap. Sending
// "overlap_days": null switches the project to a fully parallel schedule.
func UpdateSettings(log *slog.Logger, updater SettingsUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.projects.UpdateSettings"

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "Bad request: invalid project id", http.StatusBadRequest)
			return
		}

		var settings storage.ProjectSettings
		if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
			http.Error(w, "Bad request: invalid JSON", http.StatusBadRequest)
			return
		}
		if msg := storage.ValidateSettings(settings); msg != "" {
			http.Error(w, "Bad request: "+msg, http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := updater.UpdateProjectSettings(ctx, id, settings); err != nil {
			if errors.Is(err, storage.ErrProjectNotFound) {
				http.Error(w, "Project not found", http.StatusNotFound)
				return
			}

			log.Error("failed to update project settings", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, settings)
	}
}
