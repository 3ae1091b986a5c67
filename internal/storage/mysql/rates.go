package mysql

import (
	"context"
	"fmt"

	"quote-calc/internal/storage"
)

func (s *Storage) GetRates(ctx context.Context) ([]storage.RateEntry, error) {
	const op = "storage.mysql.GetRates"

	rows, err := s.db.QueryContext(ctx, `SELECT role, monthly_rate FROM quote_rates ORDER BY position, role`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	rates := []storage.RateEntry{}
	for rows.Next() {
		var r storage.RateEntry
		if err := rows.Scan(&r.Role, &r.MonthlyRate); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		rates = append(rates, r)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return rates, nil
}

// SaveRates replaces the whole rate card. Discounts are session only and
// are dropped here.
func (s *Storage) SaveRates(ctx context.Context, rates []storage.RateEntry) error {
	const op = "storage.mysql.SaveRates"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM quote_rates`); err != nil {
		return fmt.Errorf("%s: clear rates: %w", op, err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO quote_rates (role, monthly_rate, position) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("%s: prepare: %w", op, err)
	}
	defer stmt.Close()

	for i, r := range rates {
		if _, err := stmt.ExecContext(ctx, r.Role, r.MonthlyRate, i); err != nil {
			if isDuplicate(err) {
				return fmt.Errorf("%s: role %q: %w", op, r.Role, storage.ErrDuplicateRole)
			}
			return fmt.Errorf("%s: insert role %q: %w", op, r.Role, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit transaction: %w", op, err)
	}

	return nil
}
