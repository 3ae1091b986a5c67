package quote

import (
	"errors"
	"fmt"

	"quote-calc/internal/storage"
)

type Phase string

const (
	PhaseFrontend Phase = "frontend"
	PhaseBackend  Phase = "backend"
)

// AssignmentError reports a module whose development days for a phase have
// nobody to do them, usually a typo like "Fronted Developer".
type AssignmentError struct {
	ModuleID   string
	ModuleName string
	Phase      Phase
}

func (e *AssignmentError) Error() string {
	return fmt.Sprintf("module %q has %s days but no %s performer assigned", e.ModuleName, e.Phase, e.Phase)
}

// ValidateAssignments checks every module, enabled or not, and joins all
// problems found. It is never called by the cost functions.
func ValidateAssignments(modules []storage.Module) error {
	var errs []error

	for _, m := range modules {
		var hasFrontend, hasBackend bool
		for _, p := range m.DevelopmentPerformers {
			switch ClassifyPerformer(p) {
			case PerformerFrontend:
				hasFrontend = true
			case PerformerBackend:
				hasBackend = true
			}
		}

		if m.FrontendDays > 0 && !hasFrontend {
			errs = append(errs, &AssignmentError{ModuleID: m.ID, ModuleName: m.Name, Phase: PhaseFrontend})
		}
		if m.BackendDays > 0 && !hasBackend {
			errs = append(errs, &AssignmentError{ModuleID: m.ID, ModuleName: m.Name, Phase: PhaseBackend})
		}
	}

	return errors.Join(errs...)
}

// AssignmentErrors digs every *AssignmentError out of err, including ones
// wrapped by callers after ValidateAssignments returned.
func AssignmentErrors(err error) []*AssignmentError {
	switch e := err.(type) {
	case nil:
		return nil
	case *AssignmentError:
		return []*AssignmentError{e}
	case interface{ Unwrap() []error }:
		var out []*AssignmentError
		for _, inner := range e.Unwrap() {
			out = append(out, AssignmentErrors(inner)...)
		}
		return out
	case interface{ Unwrap() error }:
		return AssignmentErrors(e.Unwrap())
	}
	return nil
}
