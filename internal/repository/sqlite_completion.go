package repository

import (
	"context"
	"fmt"

	"github.com/dkalonji/tasbih/internal/db"
	"github.com/dkalonji/tasbih/internal/domain"
)

// SQLiteCompletionRepo implements CompletionRepo over SQLite.
type SQLiteCompletionRepo struct {
	db db.DBTX
}

// NewSQLiteCompletionRepo creates a new SQLiteCompletionRepo.
func NewSQLiteCompletionRepo(dbtx db.DBTX) *SQLiteCompletionRepo {
	return &SQLiteCompletionRepo{db: dbtx}
}

func (r *SQLiteCompletionRepo) ListByDate(ctx context.Context, date string) (domain.Ledger, error) {
	ledger := domain.NewLedger(date)

	rows, err := r.db.QueryContext(ctx,
		`SELECT date, scheduled, actual FROM completions WHERE date = ? ORDER BY scheduled`, date)
	if err != nil {
		return ledger, fmt.Errorf("listing completions for %s: %w", date, err)
	}
	defer rows.Close()

	for rows.Next() {
		var recDate, scheduledStr, actualStr string
		if err := rows.Scan(&recDate, &scheduledStr, &actualStr); err != nil {
			return ledger, fmt.Errorf("scanning completion: %w", err)
		}
		scheduled, err := domain.ParseTimeOfDay(scheduledStr)
		if err != nil {
			return ledger, fmt.Errorf("parsing stored scheduled time: %w", err)
		}
		actual, err := domain.ParseTimeOfDay(actualStr)
		if err != nil {
			return ledger, fmt.Errorf("parsing stored actual time: %w", err)
		}
		if err := ledger.Add(domain.CompletionRecord{Date: recDate, Scheduled: scheduled, Actual: actual}); err != nil {
			return ledger, fmt.Errorf("rebuilding ledger: %w", err)
		}
	}
	if err := rows.Err(); err != nil {
		return ledger, fmt.Errorf("iterating completions: %w", err)
	}
	return ledger, nil
}

func (r *SQLiteCompletionRepo) Add(ctx context.Context, rec domain.CompletionRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO completions (date, scheduled, actual) VALUES (?, ?, ?)`,
		rec.Date, rec.Scheduled.String(), rec.Actual.String())
	if err != nil {
		return fmt.Errorf("inserting completion %s %s: %w", rec.Date, rec.Scheduled, err)
	}
	return nil
}

func (r *SQLiteCompletionRepo) ClearOtherThan(ctx context.Context, keepDate string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM completions WHERE date != ?`, keepDate)
	if err != nil {
		return fmt.Errorf("clearing stale completions: %w", err)
	}
	return nil
}
