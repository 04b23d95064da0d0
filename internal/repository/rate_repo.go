package repository

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"time"
)

const (
	upsertRateSQL = `INSERT INTO eibor_rates (rate_date, tenor, rate, previous_rate, daily_change, created_at, updated_at)
                     VALUES ($1::date, $2, $3::numeric, $4::numeric, $5::numeric, NOW(), NOW())
                     ON CONFLICT (rate_date, tenor) DO UPDATE
                     SET rate          = EXCLUDED.rate,
                         previous_rate = EXCLUDED.previous_rate,
                         daily_change  = EXCLUDED.daily_change,
                         updated_at    = NOW()`

	listLatestSQL = `SELECT rate_date, tenor, rate::text, previous_rate::text, daily_change::text, updated_at
                     FROM eibor_rates
                     WHERE tenor = ANY($1::text[])
                     ORDER BY rate_date DESC, array_position($1::text[], tenor)
                     LIMIT $2`

	listLatestPerTenorSQL = `SELECT DISTINCT ON (tenor) rate_date, tenor, rate::text, previous_rate::text, daily_change::text, updated_at
                     FROM eibor_rates
                     ORDER BY tenor, rate_date DESC`

	listRangeSQL = `SELECT rate_date, tenor, rate::text, previous_rate::text, daily_change::text, updated_at
                     FROM eibor_rates
                     WHERE tenor = $1 AND rate_date BETWEEN $2::date AND $3::date
                     ORDER BY rate_date ASC`
)

// RateRepository defines storage operations for EIBOR observations.
type RateRepository interface {
	// UpsertBatch writes all rows in one transaction keyed by (rate_date, tenor).
	UpsertBatch(ctx context.Context, rows []RateObservation) error
	// ListLatest returns up to limit rows for the given tenors, newest date first.
	ListLatest(ctx context.Context, tenors []Tenor, limit int) ([]RateObservation, error)
	// ListLatestPerTenor returns the newest row of every tenor that has data.
	ListLatestPerTenor(ctx context.Context) ([]RateObservation, error)
	// ListRange returns rows of one tenor with from <= rate_date <= to, oldest first.
	ListRange(ctx context.Context, tenor Tenor, from, to time.Time) ([]RateObservation, error)
}

// PostgresRateRepository is a RateRepository backed by PostgreSQL.
type PostgresRateRepository struct {
	db *sql.DB
}

// NewPostgresRateRepository creates a new PostgresRateRepository.
func NewPostgresRateRepository(db *sql.DB) *PostgresRateRepository {
	return &PostgresRateRepository{db: db}
}

var _ RateRepository = (*PostgresRateRepository)(nil)

// UpsertBatch inserts or overwrites every row; either all rows commit or none do.
func (r *PostgresRateRepository) UpsertBatch(ctx context.Context, rows []RateObservation) (err error) {
	if len(rows) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, upsertRateSQL)
	if err != nil {
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close() //nolint:errcheck // closed with the transaction

	for _, row := range rows {
		var prev any
		if row.PreviousRate.Valid {
			prev = row.PreviousRate.Decimal.String()
		}
		if _, err = stmt.ExecContext(ctx,
			row.RateDate.Format(DateLayout),
			string(row.Tenor),
			row.Rate.String(),
			prev,
			row.DailyChange.String(),
		); err != nil {
			return fmt.Errorf("upsert %s %s: %w", row.RateDate.Format(DateLayout), row.Tenor, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert batch: %w", err)
	}
	return nil
}

// ListLatest returns the most recent rows for tenors ordered by date descending.
func (r *PostgresRateRepository) ListLatest(ctx context.Context, tenors []Tenor, limit int) ([]RateObservation, error) {
	keys := make([]string, len(tenors))
	for i, t := range tenors {
		keys[i] = string(t)
	}

	rows, err := r.db.QueryContext(ctx, listLatestSQL, keys, limit)
	if err != nil {
		return nil, fmt.Errorf("list latest rates: %w", err)
	}
	return scanObservations(rows, limit)
}

// ListLatestPerTenor returns one row per tenor ordered by maturity.
func (r *PostgresRateRepository) ListLatestPerTenor(ctx context.Context) ([]RateObservation, error) {
	rows, err := r.db.QueryContext(ctx, listLatestPerTenorSQL)
	if err != nil {
		return nil, fmt.Errorf("list latest rate per tenor: %w", err)
	}
	out, err := scanObservations(rows, len(AllTenors))
	if err != nil {
		return nil, err
	}
	sortByMaturity(out)
	return out, nil
}

// ListRange returns the history of one tenor between from and to inclusive.
func (r *PostgresRateRepository) ListRange(ctx context.Context, tenor Tenor, from, to time.Time) ([]RateObservation, error) {
	rows, err := r.db.QueryContext(ctx, listRangeSQL, string(tenor), from.Format(DateLayout), to.Format(DateLayout))
	if err != nil {
		return nil, fmt.Errorf("list %s rates between %s and %s: %w",
			tenor, from.Format(DateLayout), to.Format(DateLayout), err)
	}
	return scanObservations(rows, 0)
}

func scanObservations(rows *sql.Rows, capacity int) ([]RateObservation, error) {
	defer rows.Close() //nolint:errcheck // read-only cursor

	out := make([]RateObservation, 0, capacity)
	for rows.Next() {
		var (
			obs      RateObservation
			tenor    string
			rate     string
			prev     sql.NullString
			change   string
			rateDate time.Time
		)
		if err := rows.Scan(&rateDate, &tenor, &rate, &prev, &change, &obs.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan rate row: %w", err)
		}
		obs.RateDate = DateOnly(rateDate)
		obs.Tenor = Tenor(tenor)
		if err := obs.Rate.Scan(rate); err != nil {
			return nil, fmt.Errorf("parse rate %q: %w", rate, err)
		}
		if prev.Valid {
			if err := obs.PreviousRate.Scan(prev.String); err != nil {
				return nil, fmt.Errorf("parse previous_rate %q: %w", prev.String, err)
			}
		}
		if err := obs.DailyChange.Scan(change); err != nil {
			return nil, fmt.Errorf("parse daily_change %q: %w", change, err)
		}
		out = append(out, obs)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func sortByMaturity(rows []RateObservation) {
	slices.SortFunc(rows, func(a, b RateObservation) int {
		return a.Tenor.Index() - b.Tenor.Index()
	})
}
