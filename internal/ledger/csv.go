package ledger

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"fjacquet/budget-insight/internal/currencyutils"
	"fjacquet/budget-insight/internal/dateutils"
	"fjacquet/budget-insight/internal/fileutils"
	"fjacquet/budget-insight/internal/logging"
	"fjacquet/budget-insight/internal/models"

	"github.com/gocarina/gocsv"
)

// csvRow maps the columns of a ledger CSV file.
type csvRow struct {
	Date        string `csv:"Date"`
	Amount      string `csv:"Amount"`
	Category    string `csv:"Category"`
	Description string `csv:"Description"`
}

// CSVSource reads transactions from a CSV file with the header
// Date,Amount,Category,Description. The file is read on every query so
// edits are picked up without restarting.
type CSVSource struct {
	path   string
	logger logging.Logger
}

// NewCSVSource creates a CSV-backed Source.
func NewCSVSource(path string, logger logging.Logger) *CSVSource {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &CSVSource{
		path:   path,
		logger: logger.WithField(logging.FieldComponent, "ledger.csv"),
	}
}

// Transactions parses the file. A missing file is an empty ledger. Rows
// with an unreadable date or amount are skipped with a warning; an empty
// amount counts as zero.
func (s *CSVSource) Transactions(ctx context.Context) ([]models.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Debug("Ledger file not found, treating as empty",
				logging.F(logging.FieldFile, s.path))
			return []models.Transaction{}, nil
		}
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			s.logger.WithError(err).Warn("Failed to close file")
		}
	}()

	var rows []csvRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return []models.Transaction{}, nil
		}
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}

	txs := make([]models.Transaction, 0, len(rows))
	for i, row := range rows {
		date, err := dateutils.ParseDate(row.Date)
		if err != nil {
			s.logger.WithError(err).Warn("Skipping ledger row with invalid date",
				logging.F(logging.FieldFile, s.path),
				logging.F("row", i+2))
			continue
		}
		amount, err := currencyutils.ParseAmount(row.Amount)
		if err != nil {
			s.logger.WithError(err).Warn("Skipping ledger row with invalid amount",
				logging.F(logging.FieldFile, s.path),
				logging.F("row", i+2))
			continue
		}
		txs = append(txs, models.Transaction{
			Date:        date,
			Amount:      amount,
			Category:    strings.TrimSpace(row.Category),
			Description: strings.TrimSpace(row.Description),
		})
	}

	s.logger.Debug("Read ledger CSV",
		logging.F(logging.FieldFile, s.path),
		logging.F(logging.FieldCount, len(txs)))
	return txs, nil
}

func (s *CSVSource) summary(ctx context.Context) (Summary, error) {
	txs, err := s.Transactions(ctx)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(txs), nil
}

// DailyIncomes implements Source.
func (s *CSVSource) DailyIncomes(ctx context.Context) (models.DailySeries, error) {
	sum, err := s.summary(ctx)
	return sum.Incomes, err
}

// DailyExpenses implements Source.
func (s *CSVSource) DailyExpenses(ctx context.Context) (models.DailySeries, error) {
	sum, err := s.summary(ctx)
	return sum.Expenses, err
}

// CategoryExpenses implements Source.
func (s *CSVSource) CategoryExpenses(ctx context.Context) (*models.Allocation, error) {
	sum, err := s.summary(ctx)
	return sum.CategoryExpenses, err
}

// Dates implements Source.
func (s *CSVSource) Dates(ctx context.Context) ([]time.Time, error) {
	sum, err := s.summary(ctx)
	return sum.Dates, err
}

// WriteCSV writes transactions in the ledger CSV layout, creating parent
// directories as needed.
func WriteCSV(path string, txs []models.Transaction) (err error) {
	rows := make([]csvRow, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, csvRow{
			Date:        dateutils.ToISODate(tx.Date),
			Amount:      tx.Amount.StringFixed(2),
			Category:    tx.Category,
			Description: tx.Description,
		})
	}

	if err := fileutils.EnsureParentDirectory(path); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("error closing CSV file: %w", closeErr)
		}
	}()

	if err := gocsv.MarshalFile(&rows, file); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}
