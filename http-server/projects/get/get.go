package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"quote-calc/internal/storage"
)

type ProjectProvider interface {
	GetProject(ctx context.Context, id int64) (*storage.Project, error)
}

func GetProject(log *slog.Logger, provider ProjectProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.projects.GetProject"

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "Bad request: invalid project id", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		project, err := provider.GetProject(ctx, id)
		if err != nil {
			if errors.Is(err, storage.ErrProjectNotFound) {
				log.With(slog.String("op", op), slog.Int64("id", id)).Warn("project not found")
				http.Error(w, "Project not found", http.StatusNotFound)
				return
			}

			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("failed to fetch project")
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, project)
	}
}
