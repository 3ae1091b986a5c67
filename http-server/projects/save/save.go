package save

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/render"
	"quote-calc/internal/storage"
)

type ProjectCreator interface {
	CreateProject(ctx context.Context, p storage.Project) (int64, error)
}

func CreateProject(log *slog.Logger, creator ProjectCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.projects.CreateProject"

		var req storage.Project
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Bad request: invalid JSON", http.StatusBadRequest)
			return
		}

		req.Name = strings.TrimSpace(req.Name)
		if req.Name == "" {
			http.Error(w, "Bad request: name is required", http.StatusBadRequest)
			return
		}
		if msg := storage.ValidateSettings(storage.ProjectSettings{
			DiscountPercentage: req.DiscountPercentage,
			OverlapDays:        req.OverlapDays,
		}); msg != "" {
			http.Error(w, "Bad request: "+msg, http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		id, err := creator.CreateProject(ctx, req)
		if err != nil {
			log.Error("failed to create project", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		req.ID = id

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, req)
	}
}
