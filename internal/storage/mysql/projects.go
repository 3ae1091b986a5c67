package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"quote-calc/internal/storage"
)

func (s *Storage) GetProject(ctx context.Context, id int64) (*storage.Project, error) {
	const op = "storage.mysql.GetProject"

	p := &storage.Project{}
	var overlap sql.NullFloat64

	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, discount_percentage, overlap_days FROM quote_projects WHERE id = ?`, id,
	).Scan(&p.ID, &p.Name, &p.DiscountPercentage, &overlap)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: id=%d: %w", op, id, storage.ErrProjectNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if overlap.Valid {
		p.OverlapDays = &overlap.Float64
	}

	return p, nil
}

func (s *Storage) CreateProject(ctx context.Context, p storage.Project) (int64, error) {
	const op = "storage.mysql.CreateProject"

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO quote_projects (name, discount_percentage, overlap_days) VALUES (?, ?, ?)`,
		p.Name, p.DiscountPercentage, nullFloat(p.OverlapDays),
	)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%s: last insert id: %w", op, err)
	}

	return id, nil
}

func (s *Storage) UpdateProjectSettings(ctx context.Context, id int64, settings storage.ProjectSettings) error {
	const op = "storage.mysql.UpdateProjectSettings"

	res, err := s.db.ExecContext(ctx,
		`UPDATE quote_projects SET discount_percentage = ?, overlap_days = ? WHERE id = ?`,
		settings.DiscountPercentage, nullFloat(settings.OverlapDays), id,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return checkAffected(op, res, id)
}

// checkAffected tells a missing project from an update that changed nothing.
func checkAffected(op string, res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", op, err)
	}
	if n > 0 {
		return nil
	}
	return fmt.Errorf("%s: id=%d: %w", op, id, storage.ErrProjectNotFound)
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
