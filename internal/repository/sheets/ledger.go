package sheets

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/aquafarm/internal/domain/models"
)

const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02 15:04:05"
)

// Ledger mirrors recorded events into the farm spreadsheet and reads the
// feed stock tab back.
type Ledger struct {
	repo   Repository
	logger *zap.Logger
}

// NewLedger wraps a sheets repository.
func NewLedger(repo Repository, logger *zap.Logger) *Ledger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ledger{repo: repo, logger: logger}
}

// AppendPopulation mirrors a population change.
func (l *Ledger) AppendPopulation(ctx context.Context, e models.PopulationEvent) error {
	return l.repo.AppendRow(ctx, populationTab, []interface{}{
		stampCell(e.Created), e.PondID, string(e.Kind), e.Delta, e.Total, e.Description,
	})
}

// AppendFeed mirrors a feeding.
func (l *Ledger) AppendFeed(ctx context.Context, e models.FeedEvent) error {
	return l.repo.AppendRow(ctx, feedTab, []interface{}{
		stampCell(e.Created), e.PondID, e.Kg, e.FeedType,
	})
}

// AppendHarvest mirrors a harvest.
func (l *Ledger) AppendHarvest(ctx context.Context, e models.HarvestEvent) error {
	return l.repo.AppendRow(ctx, harvestTab, []interface{}{
		stampCell(e.Created), e.PondID, e.Kg, e.Count, e.PricePerKg, string(e.Type), e.Revenue(),
	})
}

// AppendExpense mirrors an expense.
func (l *Ledger) AppendExpense(ctx context.Context, e models.ExpenseEvent) error {
	return l.repo.AppendRow(ctx, expenseTab, []interface{}{
		stampCell(e.Created), e.PondID, string(e.Category), e.Amount, e.Description,
	})
}

// AppendSample mirrors a biomass sample.
func (l *Ledger) AppendSample(ctx context.Context, s models.BiomassSample) error {
	return l.repo.AppendRow(ctx, sampleTab, []interface{}{
		s.Date.Format(dateLayout), s.PondID, s.FishPerKg, s.Note,
	})
}

// AppendStockMovement records feed entering or leaving the store.
func (l *Ledger) AppendStockMovement(ctx context.Context, m models.StockMovement) error {
	return l.repo.AppendRow(ctx, stockTab, []interface{}{
		m.Date.Format(dateLayout), m.FeedType, string(m.Kind), m.QuantityKg, m.UnitPrice,
	})
}

// StockMovements reads the stock tab. Header and malformed rows are skipped.
func (l *Ledger) StockMovements(ctx context.Context) ([]models.StockMovement, error) {
	rows, err := l.repo.ReadTab(ctx, stockTab)
	if err != nil {
		return nil, fmt.Errorf("load stock range: %w", err)
	}

	out := make([]models.StockMovement, 0, len(rows))
	for _, row := range rows {
		if len(row) < stockTab.Columns {
			continue
		}

		date, err := parseDate(row[0])
		if err != nil {
			l.logger.Debug("skip stock row with invalid date", zap.Any("value", row[0]), zap.Error(err))
			continue
		}

		kind := models.StockMovementKind(strings.ToLower(strings.TrimSpace(fmt.Sprint(row[2]))))
		if kind != models.StockPurchase && kind != models.StockUsage {
			l.logger.Debug("skip stock row with invalid kind", zap.Any("value", row[2]))
			continue
		}

		qty, err := parseFloat(row[3])
		if err != nil {
			l.logger.Debug("skip stock row with invalid quantity", zap.Any("value", row[3]), zap.Error(err))
			continue
		}

		price, err := parseFloat(row[4])
		if err != nil {
			l.logger.Debug("skip stock row with invalid price", zap.Any("value", row[4]), zap.Error(err))
			continue
		}

		out = append(out, models.StockMovement{
			Date:       date,
			FeedType:   strings.TrimSpace(fmt.Sprint(row[1])),
			Kind:       kind,
			QuantityKg: qty,
			UnitPrice:  price,
		})
	}

	return out, nil
}

func stampCell(s models.Stamp) string {
	if s.Precise {
		return s.Time.Format(timestampLayout)
	}
	return s.Time.Format(dateLayout)
}

func parseDate(value interface{}) (time.Time, error) {
	str := strings.TrimSpace(fmt.Sprint(value))
	if str == "" {
		return time.Time{}, errors.New("empty date")
	}
	if len(str) > 10 {
		str = str[:10]
	}
	return time.Parse(dateLayout, str)
}

func parseFloat(value interface{}) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	}

	str := strings.TrimSpace(fmt.Sprint(value))
	if str == "" {
		return 0, errors.New("empty numeric value")
	}
	return strconv.ParseFloat(strings.ReplaceAll(str, ",", "."), 64)
}
