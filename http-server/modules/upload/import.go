package upload

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"quote-calc/internal/service/importer"
	"quote-calc/internal/service/quote"
	"quote-calc/internal/storage"
)

const maxUploadSize = 10 << 20

type ModuleSaver interface {
	ReplaceModules(ctx context.Context, projectID int64, modules []storage.Module) error
}

type Response struct {
	Imported int              `json:"imported"`
	Modules  []storage.Module `json:"modules"`
	Warnings []string         `json:"warnings"`
}

type AssignmentResponse struct {
	Error  string   `json:"error"`
	Errors []string `json:"errors"`
}

// ImportModules replaces the project's modules with the uploaded file. The
// file comes either as multipart field "file" or as the raw request body.
func ImportModules(log *slog.Logger, saver ModuleSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.modules.ImportModules"

		projectID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "Bad request: invalid project id", http.StatusBadRequest)
			return
		}

		strict, _ := strconv.ParseBool(r.URL.Query().Get("strict"))

		r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

		body, filename, err := uploadedFile(r)
		if err != nil {
			log.Warn("bad upload", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Bad request: "+err.Error(), http.StatusBadRequest)
			return
		}
		defer body.Close()

		format := importer.Format(strings.ToLower(r.URL.Query().Get("format")))
		if format == "" {
			format = formatFromName(filename)
		}

		res, err := importer.Import(body, format, strict)
		if err != nil {
			if assignErrs := quote.AssignmentErrors(err); len(assignErrs) > 0 {
				resp := AssignmentResponse{Error: "performer assignment check failed"}
				for _, ae := range assignErrs {
					resp.Errors = append(resp.Errors, ae.Error())
				}
				render.Status(r, http.StatusUnprocessableEntity)
				render.JSON(w, r, resp)
				return
			}

			log.Warn("import failed", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Bad request: "+err.Error(), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		if err := saver.ReplaceModules(ctx, projectID, res.Modules); err != nil {
			if errors.Is(err, storage.ErrProjectNotFound) {
				http.Error(w, "Project not found", http.StatusNotFound)
				return
			}

			log.Error("failed to save imported modules", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		log.Info("modules imported",
			slog.Int64("project_id", projectID),
			slog.Int("count", len(res.Modules)),
			slog.Int("warnings", len(res.Warnings)),
		)

		render.JSON(w, r, Response{
			Imported: len(res.Modules),
			Modules:  res.Modules,
			Warnings: res.Warnings,
		})
	}
}

func uploadedFile(r *http.Request) (io.ReadCloser, string, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		return r.Body, "", nil
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, "", err
	}

	return file, header.Filename, nil
}

func formatFromName(name string) importer.Format {
	if strings.EqualFold(filepath.Ext(name), ".xlsx") {
		return importer.FormatXLSX
	}
	return importer.FormatCSV
}
