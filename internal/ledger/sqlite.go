package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"fjacquet/budget-insight/internal/dateutils"
	"fjacquet/budget-insight/internal/events"
	"fjacquet/budget-insight/internal/fileutils"
	"fjacquet/budget-insight/internal/logging"
	"fjacquet/budget-insight/internal/models"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"
)

// SQLiteSource stores transactions in a SQLite database. Amounts are kept
// as decimal text and summed in Go.
type SQLiteSource struct {
	db        *sql.DB
	publisher events.Publisher
	logger    logging.Logger
}

// NewSQLiteSource opens (creating if needed) the database at dbPath and
// applies pending migrations. publisher may be nil.
func NewSQLiteSource(dbPath string, publisher events.Publisher, logger logging.Logger) (*SQLiteSource, error) {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	if err := fileutils.EnsureParentDirectory(dbPath); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteSource{
		db:        db,
		publisher: publisher,
		logger:    logger.WithFields(logging.F(logging.FieldComponent, "ledger.sqlite"), logging.F(logging.FieldFile, dbPath)),
	}, nil
}

// Close closes the database.
func (s *SQLiteSource) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Add records transactions in a single database transaction and publishes
// one TRANSACTIONS event.
func (s *SQLiteSource) Add(ctx context.Context, txs ...models.Transaction) error {
	if len(txs) == 0 {
		return nil
	}

	dbtx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer dbtx.Rollback()

	stmt, err := dbtx.PrepareContext(ctx,
		`INSERT INTO transactions (date, amount, category, description) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, tx := range txs {
		if _, err := stmt.ExecContext(ctx,
			dateutils.ToISODate(tx.Day()),
			tx.Amount.String(),
			tx.Category,
			tx.Description,
		); err != nil {
			return fmt.Errorf("insert transaction: %w", err)
		}
	}
	if err := dbtx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	s.logger.Info("Transactions recorded", logging.F(logging.FieldCount, len(txs)))
	if s.publisher != nil {
		s.publisher.Publish(events.Event{Type: events.Transactions})
	}
	return nil
}

// Transactions returns every stored transaction ordered by date, then by
// insertion.
func (s *SQLiteSource) Transactions(ctx context.Context) ([]models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT date, amount, category, description FROM transactions ORDER BY date, id`)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	txs := []models.Transaction{}
	for rows.Next() {
		var date, amount string
		var tx models.Transaction
		if err := rows.Scan(&date, &amount, &tx.Category, &tx.Description); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		if tx.Date, err = time.Parse(dateutils.DateLayoutISO, date); err != nil {
			return nil, fmt.Errorf("invalid stored date %q: %w", date, err)
		}
		if tx.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("invalid stored amount %q: %w", amount, err)
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return txs, nil
}

func (s *SQLiteSource) summary(ctx context.Context) (Summary, error) {
	txs, err := s.Transactions(ctx)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(txs), nil
}

// DailyIncomes implements Source.
func (s *SQLiteSource) DailyIncomes(ctx context.Context) (models.DailySeries, error) {
	sum, err := s.summary(ctx)
	return sum.Incomes, err
}

// DailyExpenses implements Source.
func (s *SQLiteSource) DailyExpenses(ctx context.Context) (models.DailySeries, error) {
	sum, err := s.summary(ctx)
	return sum.Expenses, err
}

// CategoryExpenses implements Source.
func (s *SQLiteSource) CategoryExpenses(ctx context.Context) (*models.Allocation, error) {
	sum, err := s.summary(ctx)
	return sum.CategoryExpenses, err
}

// Dates returns the distinct booking dates in ascending order.
func (s *SQLiteSource) Dates(ctx context.Context) ([]time.Time, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT date FROM transactions ORDER BY date`)
	if err != nil {
		return nil, fmt.Errorf("query dates: %w", err)
	}
	defer rows.Close()

	dates := []time.Time{}
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan date: %w", err)
		}
		d, err := time.Parse(dateutils.DateLayoutISO, raw)
		if err != nil {
			return nil, fmt.Errorf("invalid stored date %q: %w", raw, err)
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}
