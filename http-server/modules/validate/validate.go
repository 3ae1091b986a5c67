package validate

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"quote-calc/internal/service/quote"
	"quote-calc/internal/storage"
)

type Request struct {
	Modules []storage.Module `json:"modules"`
}

type Problem struct {
	ModuleID   string      `json:"module_id"`
	ModuleName string      `json:"module_name"`
	Phase      quote.Phase `json:"phase"`
	Message    string      `json:"message"`
}

type Response struct {
	Valid  bool      `json:"valid"`
	Errors []Problem `json:"errors"`
}

// ValidateModules runs the performer-assignment check on demand. Problems
// are reported in the body, the status stays 200.
func ValidateModules(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.modules.ValidateModules"

		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Warn("invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Bad request: invalid JSON", http.StatusBadRequest)
			return
		}

		resp := Response{Valid: true, Errors: []Problem{}}
		for _, ae := range quote.AssignmentErrors(quote.ValidateAssignments(req.Modules)) {
			resp.Valid = false
			resp.Errors = append(resp.Errors, Problem{
				ModuleID:   ae.ModuleID,
				ModuleName: ae.ModuleName,
				Phase:      ae.Phase,
				Message:    ae.Error(),
			})
		}

		render.JSON(w, r, resp)
	}
}
