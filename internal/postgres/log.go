package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AlexZav1327/converter/models"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	appendEntryQuery = `
	INSERT INTO conversion_log (entry_id, created_at, client_agent, from_currency, to_currency, amount, converted_amount, response_time_ms)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
`
	countEntriesQuery = `
	SELECT COUNT(*)
	FROM conversion_log;
`
	averageResponseTimeQuery = `
	SELECT COALESCE(AVG(response_time_ms), 0)
	FROM conversion_log;
`
	listEntriesQuery = `
	SELECT entry_id, created_at, client_agent, from_currency, to_currency, amount, converted_amount, response_time_ms
	FROM conversion_log
	ORDER BY seq;
`
)

// EmptyStoreSentinel is what MostCommonCurrency reports when there are no
// entries to aggregate.
const EmptyStoreSentinel = "N/A"

var (
	ErrLogUnavailable = errors.New("conversion log is unavailable")
	ErrUnknownField   = errors.New("no such aggregation field")
)

// mostCommonFields maps the aggregation field names accepted by
// MostCommonCurrency onto columns. Field names never reach the query text
// any other way.
var mostCommonFields = map[string]string{
	"fromCurrency": "from_currency",
	"toCurrency":   "to_currency",
}

// AppendEntry persists one completed conversion. The write stamps the entry
// with the current UTC time; entries are never updated or deleted afterwards.
func (p *Postgres) AppendEntry(ctx context.Context, entry models.ConversionLogEntry) error {
	started := time.Now()
	defer func() {
		p.metrics.duration.WithLabelValues("append").Observe(time.Since(started).Seconds())
	}()

	_, err := p.db.Exec(ctx, appendEntryQuery,
		uuid.New(),
		time.Now().UTC(),
		entry.ClientAgent,
		entry.FromCurrency,
		entry.ToCurrency,
		entry.Amount,
		entry.ConvertedAmount,
		entry.ResponseTimeMs,
	)
	if err != nil {
		return fmt.Errorf("db.Exec: %w", classify(err))
	}

	return nil
}

func (p *Postgres) CountEntries(ctx context.Context) (int64, error) {
	started := time.Now()
	defer func() {
		p.metrics.duration.WithLabelValues("count").Observe(time.Since(started).Seconds())
	}()

	var count int64

	err := p.db.QueryRow(ctx, countEntriesQuery).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("row.Scan: %w", classify(err))
	}

	return count, nil
}

func (p *Postgres) AverageResponseTime(ctx context.Context) (float64, error) {
	started := time.Now()
	defer func() {
		p.metrics.duration.WithLabelValues("average").Observe(time.Since(started).Seconds())
	}()

	var average float64

	err := p.db.QueryRow(ctx, averageResponseTimeQuery).Scan(&average)
	if err != nil {
		return 0, fmt.Errorf("row.Scan: %w", classify(err))
	}

	return average, nil
}

// MostCommonCurrency returns the most frequent value of the given field.
// Ties break to the lexicographically smallest value, so repeated calls over
// the same entries agree.
func (p *Postgres) MostCommonCurrency(ctx context.Context, field string) (string, error) {
	started := time.Now()
	defer func() {
		p.metrics.duration.WithLabelValues("most_common").Observe(time.Since(started).Seconds())
	}()

	column, ok := mostCommonFields[field]
	if !ok {
		return "", ErrUnknownField
	}

	query := fmt.Sprintf(`
	SELECT %[1]s
	FROM conversion_log
	GROUP BY %[1]s
	ORDER BY COUNT(*) DESC, %[1]s
	LIMIT 1;
`, column)

	var currency string

	err := p.db.QueryRow(ctx, query).Scan(&currency)
	if errors.Is(err, pgx.ErrNoRows) {
		return EmptyStoreSentinel, nil
	}

	if err != nil {
		return "", fmt.Errorf("row.Scan: %w", classify(err))
	}

	return currency, nil
}

func (p *Postgres) ListEntries(ctx context.Context) ([]models.ConversionLogEntry, error) {
	started := time.Now()
	defer func() {
		p.metrics.duration.WithLabelValues("list").Observe(time.Since(started).Seconds())
	}()

	rows, err := p.db.Query(ctx, listEntriesQuery)
	if err != nil {
		return nil, fmt.Errorf("db.Query: %w", classify(err))
	}

	defer rows.Close()

	entries := make([]models.ConversionLogEntry, 0)

	for rows.Next() {
		var entry models.ConversionLogEntry

		err := rows.Scan(&entry.EntryID, &entry.Timestamp, &entry.ClientAgent, &entry.FromCurrency,
			&entry.ToCurrency, &entry.Amount, &entry.ConvertedAmount, &entry.ResponseTimeMs)
		if err != nil {
			return nil, fmt.Errorf("rows.Scan: %w", err)
		}

		entries = append(entries, entry)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("rows.Err: %w", classify(err))
	}

	return entries, nil
}

func classify(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgerrcode.IsConnectionException(pgErr.Code) {
		return fmt.Errorf("%w: %s", ErrLogUnavailable, pgErr.Code)
	}

	return err
}
