package reporting

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/aquafarm/internal/analytics"
	"github.com/mamadbah2/aquafarm/internal/domain/models"
)

// EventStore is the part of the event repository reporting reads from.
type EventStore interface {
	ListPonds(ctx context.Context) ([]models.Pond, error)
	LoadSnapshot(ctx context.Context, pondID string) (models.Snapshot, error)
	SavePondReport(ctx context.Context, report models.PondReport) error
}

// StockSource supplies feed purchases used to price feed.
type StockSource interface {
	StockMovements(ctx context.Context) ([]models.StockMovement, error)
}

// Service loads pond snapshots and runs the analytics engine over them.
type Service struct {
	store  EventStore
	stock  StockSource
	loc    *time.Location
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a new reporting service instance. Times are read in loc.
func NewService(store EventStore, stock StockSource, loc *time.Location, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		store:  store,
		stock:  stock,
		loc:    loc,
		logger: logger,
		now:    func() time.Time { return time.Now().In(loc) },
	}
}

// Snapshot assembles everything known about one pond. Stock movements that
// cannot be read leave feed unpriced rather than failing the request.
func (s *Service) Snapshot(ctx context.Context, pondID string) (models.Snapshot, error) {
	stored, err := s.store.LoadSnapshot(ctx, pondID)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("load snapshot %s: %w", pondID, err)
	}
	snap := inLocation(stored, s.loc)

	if s.stock != nil {
		movements, err := s.stock.StockMovements(ctx)
		if err != nil {
			s.logger.Warn("stock movements unavailable, feed cost will be zero", zap.String("pond", pondID), zap.Error(err))
		} else {
			snap.Stock = movements
		}
	}

	return snap, nil
}

// ListPonds returns every pond.
func (s *Service) ListPonds(ctx context.Context) ([]models.Pond, error) {
	ponds, err := s.store.ListPonds(ctx)
	if err != nil {
		return nil, fmt.Errorf("list ponds: %w", err)
	}
	return ponds, nil
}

// Overview runs every calculation for one pond.
func (s *Service) Overview(ctx context.Context, pondID string) (models.PondOverview, error) {
	snap, err := s.Snapshot(ctx, pondID)
	if err != nil {
		return models.PondOverview{}, err
	}
	return analytics.Overview(snap, s.now()), nil
}

// Status classifies the pond's stocking density.
func (s *Service) Status(ctx context.Context, pondID string) (models.UnifiedStatus, error) {
	snap, err := s.Snapshot(ctx, pondID)
	if err != nil {
		return models.UnifiedStatus{}, err
	}
	return analytics.UnifiedStatus(snap.Pond, analytics.PondSample(snap)), nil
}

// Cycles returns the pond's production cycles, oldest first.
func (s *Service) Cycles(ctx context.Context, pondID string) ([]models.CycleSummary, error) {
	snap, err := s.Snapshot(ctx, pondID)
	if err != nil {
		return nil, err
	}
	return analytics.CycleHistory(snap, s.now()), nil
}

// FeedStatus compares today's feeding with the ration.
func (s *Service) FeedStatus(ctx context.Context, pondID string) (models.FeedStatus, error) {
	snap, err := s.Snapshot(ctx, pondID)
	if err != nil {
		return models.FeedStatus{}, err
	}
	return analytics.DailyFeedStatus(snap.Pond, analytics.PondSample(snap), analytics.PondFeed(snap), s.now()), nil
}

// Appetite reports whether feed consumption dropped recently.
func (s *Service) Appetite(ctx context.Context, pondID string) (models.AppetiteReport, error) {
	snap, err := s.Snapshot(ctx, pondID)
	if err != nil {
		return models.AppetiteReport{}, err
	}
	return analytics.AppetiteTrend(analytics.PondFeed(snap)), nil
}

// HarvestPrediction projects when the pond reaches market weight.
func (s *Service) HarvestPrediction(ctx context.Context, pondID string) (models.HarvestPrediction, error) {
	snap, err := s.Snapshot(ctx, pondID)
	if err != nil {
		return models.HarvestPrediction{}, err
	}
	return analytics.PredictHarvestDate(analytics.PondSample(snap), s.now()), nil
}

// WeeklyReport summarizes every stocked pond, persists one PondReport per
// pond and returns the text sent to the farm manager.
func (s *Service) WeeklyReport(ctx context.Context) (string, error) {
	ponds, err := s.ListPonds(ctx)
	if err != nil {
		return "", err
	}

	now := s.now()
	weekStart := now.AddDate(0, 0, -7)

	var b strings.Builder
	fmt.Fprintf(&b, "Weekly pond report (%s)\n", now.Format(dateLayout))

	reported := 0
	for _, pond := range ponds {
		snap, err := s.Snapshot(ctx, pond.ID)
		if err != nil {
			s.logger.Error("skip pond in weekly report", zap.String("pond", pond.ID), zap.Error(err))
			continue
		}
		ov := analytics.Overview(snap, now)

		report := models.PondReport{
			PondID:       pond.ID,
			WeekOf:       models.DateOf(weekStart),
			Population:   pond.Population,
			BiomassKg:    ov.Biomass.TotalKg,
			Status:       ov.Status,
			Cycle:        ov.CurrentCycle,
			FeedWeekKg:   feedSince(analytics.PondFeed(snap), weekStart),
			AppetiteDrop: ov.Appetite.HasDrop,
			CreatedAt:    now,
		}
		if err := s.store.SavePondReport(ctx, report); err != nil {
			s.logger.Error("failed to save pond report", zap.String("pond", pond.ID), zap.Error(err))
		}

		b.WriteString("\n")
		b.WriteString(FormatOverview(ov))
		fmt.Fprintf(&b, "\nFeed this week: %.1f kg", report.FeedWeekKg)
		reported++
	}

	if reported == 0 {
		b.WriteString("\nNo pond data available.")
	}

	return b.String(), nil
}

// FeedReminder lists the ration of the upcoming slot for every stocked pond.
func (s *Service) FeedReminder(ctx context.Context, slot models.NextFeed) (string, error) {
	ponds, err := s.ListPonds(ctx)
	if err != nil {
		return "", err
	}

	var lines []string
	for _, pond := range ponds {
		if pond.Population <= 0 {
			continue
		}
		st, err := s.FeedStatus(ctx, pond.ID)
		if err != nil {
			s.logger.Error("skip pond in feed reminder", zap.String("pond", pond.ID), zap.Error(err))
			continue
		}
		if st.Schedule.Next == models.NextComplete {
			lines = append(lines, fmt.Sprintf("- %s: ration complete (%.1f/%.1f kg)", pondLabel(pond), st.ActualKg, st.TargetKg))
			continue
		}
		lines = append(lines, fmt.Sprintf("- %s: %.1f kg (%.1f kg left today)", pondLabel(pond), slotKg(st, slot), st.RemainingKg))
	}

	if len(lines) == 0 {
		return "", nil
	}
	return fmt.Sprintf("Feeding time (%s)\n%s", slot, strings.Join(lines, "\n")), nil
}

// AppetiteAlerts returns a warning for every pond whose appetite dropped.
// The text is empty when no pond needs attention.
func (s *Service) AppetiteAlerts(ctx context.Context) (string, error) {
	ponds, err := s.ListPonds(ctx)
	if err != nil {
		return "", err
	}

	var lines []string
	for _, pond := range ponds {
		if pond.Population <= 0 {
			continue
		}
		report, err := s.Appetite(ctx, pond.ID)
		if err != nil {
			s.logger.Error("skip pond in appetite check", zap.String("pond", pond.ID), zap.Error(err))
			continue
		}
		if report.HasDrop {
			lines = append(lines, fmt.Sprintf("- %s: %s", pondLabel(pond), FormatAppetite(report)))
		}
	}

	if len(lines) == 0 {
		return "", nil
	}
	return "Appetite alert, check water quality:\n" + strings.Join(lines, "\n"), nil
}

func feedSince(feed []models.FeedEvent, since time.Time) float64 {
	var total float64
	for _, e := range feed {
		if !e.Stamp().Time.Before(since) {
			total += e.Kg
		}
	}
	return total
}

func slotKg(st models.FeedStatus, slot models.NextFeed) float64 {
	for _, s := range st.Schedule.Slots {
		if s.Label == string(slot) {
			return s.Kg
		}
	}
	return 0
}
