package mysql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"quote-calc/internal/storage"
)

const (
	mysqlErrDuplicateEntry = 1062
	mysqlErrNoReferenced   = 1452
)

func (s *Storage) GetModules(ctx context.Context, projectID int64) ([]storage.Module, error) {
	const op = "storage.mysql.GetModules"

	query := `
		SELECT module_id, name, design_days, frontend_days, backend_days,
		       design_performers, development_performers, is_enabled
		FROM quote_modules
		WHERE project_id = ?
		ORDER BY position
	`

	rows, err := s.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	modules := []storage.Module{}
	for rows.Next() {
		var (
			m                          storage.Module
			designJSON, developersJSON string
		)

		err := rows.Scan(&m.ID, &m.Name, &m.DesignDays, &m.FrontendDays, &m.BackendDays,
			&designJSON, &developersJSON, &m.IsEnabled)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}

		if err := json.Unmarshal([]byte(designJSON), &m.DesignPerformers); err != nil {
			return nil, fmt.Errorf("%s: module %q design performers: %w", op, m.ID, err)
		}
		if err := json.Unmarshal([]byte(developersJSON), &m.DevelopmentPerformers); err != nil {
			return nil, fmt.Errorf("%s: module %q development performers: %w", op, m.ID, err)
		}

		modules = append(modules, m)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return modules, nil
}

// ReplaceModules swaps the module list of a project, keeping input order.
func (s *Storage) ReplaceModules(ctx context.Context, projectID int64, modules []storage.Module) error {
	const op = "storage.mysql.ReplaceModules"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM quote_modules WHERE project_id = ?`, projectID); err != nil {
		return fmt.Errorf("%s: clear modules of project id=%d: %w", op, projectID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO quote_modules
		(project_id, module_id, name, design_days, frontend_days, backend_days,
		 design_performers, development_performers, is_enabled, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("%s: prepare: %w", op, err)
	}
	defer stmt.Close()

	for i, m := range modules {
		designJSON, err := marshalPerformers(m.DesignPerformers)
		if err != nil {
			return fmt.Errorf("%s: module %q: %w", op, m.ID, err)
		}
		developersJSON, err := marshalPerformers(m.DevelopmentPerformers)
		if err != nil {
			return fmt.Errorf("%s: module %q: %w", op, m.ID, err)
		}

		_, err = stmt.ExecContext(ctx, projectID, m.ID, m.Name, m.DesignDays, m.FrontendDays, m.BackendDays,
			designJSON, developersJSON, m.IsEnabled, i)
		if err != nil {
			switch mysqlErrorNumber(err) {
			case mysqlErrDuplicateEntry:
				return fmt.Errorf("%s: module %q: %w", op, m.ID, storage.ErrDuplicateModule)
			case mysqlErrNoReferenced:
				return fmt.Errorf("%s: id=%d: %w", op, projectID, storage.ErrProjectNotFound)
			}
			return fmt.Errorf("%s: insert module %q: %w", op, m.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit transaction: %w", op, err)
	}

	return nil
}

func (s *Storage) SetModuleEnabled(ctx context.Context, projectID int64, moduleID string, enabled bool) error {
	const op = "storage.mysql.SetModuleEnabled"

	res, err := s.db.ExecContext(ctx,
		`UPDATE quote_modules SET is_enabled = ? WHERE project_id = ? AND module_id = ?`,
		enabled, projectID, moduleID,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: project id=%d module %q: %w", op, projectID, moduleID, storage.ErrModuleNotFound)
	}

	return nil
}

// marshalPerformers stores nil as [] so the column is always a JSON array.
func marshalPerformers(performers []string) (string, error) {
	if performers == nil {
		performers = []string{}
	}

	b, err := json.Marshal(performers)
	if err != nil {
		return "", err
	}

	return string(b), nil
}

func mysqlErrorNumber(err error) uint16 {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number
	}
	return 0
}

func isDuplicate(err error) bool {
	return mysqlErrorNumber(err) == mysqlErrDuplicateEntry
}
