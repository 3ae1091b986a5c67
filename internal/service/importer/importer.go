package importer

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"quote-calc/internal/service/quote"
	"quote-calc/internal/storage"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

const (
	colID          = "id"
	colName        = "name"
	colDesignDays  = "design_days"
	colFrontend    = "frontend_days"
	colBackend     = "backend_days"
	colDesigners   = "design_performers"
	colDevelopers  = "development_performers"
	colEnabled     = "enabled"
	performerSplit = ";"
)

var requiredColumns = []string{colID, colName, colDesignDays, colFrontend, colBackend, colDesigners, colDevelopers}

var (
	ErrUnknownFormat = errors.New("unknown import format")
	ErrEmptyFile     = errors.New("file has no header row")
)

// RowError points at the cell that failed to parse. Line is 1-based and
// counts the header.
type RowError struct {
	Line   int
	Column string
	Err    error
}

func (e *RowError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d, column %s: %v", e.Line, e.Column, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

type Result struct {
	Modules  []storage.Module `json:"modules"`
	Warnings []string         `json:"warnings"`
}

// Import reads modules from r. With strict set, a module whose front-end or
// back-end days have no matching performer fails the whole import; otherwise
// those problems come back as warnings.
func Import(r io.Reader, format Format, strict bool) (Result, error) {
	const op = "service.importer.Import"

	var (
		rows [][]string
		err  error
	)

	switch format {
	case FormatCSV:
		rows, err = readCSV(r)
	case FormatXLSX:
		rows, err = readXLSX(r)
	default:
		return Result{}, fmt.Errorf("%s: %w: %q", op, ErrUnknownFormat, format)
	}
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", op, err)
	}

	modules, err := parseRows(rows)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", op, err)
	}

	res := Result{Modules: modules, Warnings: []string{}}

	if err := quote.ValidateAssignments(modules); err != nil {
		if strict {
			return Result{}, fmt.Errorf("%s: %w", op, err)
		}
		for _, ae := range quote.AssignmentErrors(err) {
			res.Warnings = append(res.Warnings, ae.Error())
		}
	}

	return res, nil
}

func parseRows(rows [][]string) ([]storage.Module, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}

	index := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, c := range requiredColumns {
		if _, ok := index[c]; !ok {
			return nil, &RowError{Line: 1, Column: c, Err: errors.New("missing column")}
		}
	}

	seen := make(map[string]int)
	modules := make([]storage.Module, 0, len(rows)-1)

	for i, row := range rows[1:] {
		line := i + 2
		if blankRow(row) {
			continue
		}

		cell := func(col string) string {
			idx, ok := index[col]
			if !ok || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}

		m := storage.Module{
			ID:                    cell(colID),
			Name:                  cell(colName),
			DesignPerformers:      splitPerformers(cell(colDesigners)),
			DevelopmentPerformers: splitPerformers(cell(colDevelopers)),
			IsEnabled:             true,
		}

		if m.ID == "" {
			return nil, &RowError{Line: line, Column: colID, Err: errors.New("empty value")}
		}
		if first, ok := seen[m.ID]; ok {
			return nil, &RowError{Line: line, Column: colID, Err: fmt.Errorf("duplicate id %q, first seen on line %d", m.ID, first)}
		}
		seen[m.ID] = line

		if m.Name == "" {
			return nil, &RowError{Line: line, Column: colName, Err: errors.New("empty value")}
		}

		var err error
		if m.DesignDays, err = parseDays(cell(colDesignDays)); err != nil {
			return nil, &RowError{Line: line, Column: colDesignDays, Err: err}
		}
		if m.FrontendDays, err = parseDays(cell(colFrontend)); err != nil {
			return nil, &RowError{Line: line, Column: colFrontend, Err: err}
		}
		if m.BackendDays, err = parseDays(cell(colBackend)); err != nil {
			return nil, &RowError{Line: line, Column: colBackend, Err: err}
		}

		if v := cell(colEnabled); v != "" {
			if m.IsEnabled, err = strconv.ParseBool(strings.ToLower(v)); err != nil {
				return nil, &RowError{Line: line, Column: colEnabled, Err: err}
			}
		}

		modules = append(modules, m)
	}

	return modules, nil
}

// parseDays accepts a decimal comma as spreadsheets often export one.
func parseDays(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}

	v, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("not a finite number: %q", s)
	}
	if v < 0 {
		return 0, fmt.Errorf("negative days: %q", s)
	}

	return v, nil
}

func splitPerformers(s string) []string {
	out := []string{}
	for _, p := range strings.Split(s, performerSplit) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
