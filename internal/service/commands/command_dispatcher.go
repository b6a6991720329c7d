package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/aquafarm/internal/domain/models"
	"github.com/mamadbah2/aquafarm/internal/service/reporting"
)

// ErrInvalidArguments indicates the command payload could not be parsed.
var ErrInvalidArguments = errors.New("invalid command arguments")

// ErrUnsupportedCommand indicates we do not yet support the requested command.
var ErrUnsupportedCommand = errors.New("unsupported command")

// ErrPondEmpty rejects population changes that need fish in the pond.
// It wraps ErrInvalidArguments.
var ErrPondEmpty = fmt.Errorf("%w: pond has no fish", ErrInvalidArguments)

// ErrNoPondSelected indicates a pond command arrived before /pond.
var ErrNoPondSelected = errors.New("no pond selected")

const (
	dateFormat      = "2006-01-02"
	defaultFeedType = "standard"
)

// Recorder persists events in the source-of-truth store.
type Recorder interface {
	GetPond(ctx context.Context, id string) (models.Pond, error)
	RecordPopulation(ctx context.Context, event models.PopulationEvent) error
	RecordFeed(ctx context.Context, event models.FeedEvent) error
	RecordHarvest(ctx context.Context, event models.HarvestEvent) error
	RecordExpense(ctx context.Context, event models.ExpenseEvent) error
	RecordSample(ctx context.Context, sample models.BiomassSample) error
}

// Mirror copies events into the spreadsheet ledger.
type Mirror interface {
	AppendPopulation(ctx context.Context, e models.PopulationEvent) error
	AppendFeed(ctx context.Context, e models.FeedEvent) error
	AppendHarvest(ctx context.Context, e models.HarvestEvent) error
	AppendExpense(ctx context.Context, e models.ExpenseEvent) error
	AppendSample(ctx context.Context, s models.BiomassSample) error
	AppendStockMovement(ctx context.Context, m models.StockMovement) error
}

// ReportingAdapter defines the analytics the dispatcher replies with.
type ReportingAdapter interface {
	Overview(ctx context.Context, pondID string) (models.PondOverview, error)
	Cycles(ctx context.Context, pondID string) ([]models.CycleSummary, error)
	FeedStatus(ctx context.Context, pondID string) (models.FeedStatus, error)
	Appetite(ctx context.Context, pondID string) (models.AppetiteReport, error)
}

// Dispatcher executes parsed commands for a sender.
type Dispatcher interface {
	HandleCommand(ctx context.Context, cmd models.Command, sender string) (string, error)
}

// Service implements the Dispatcher interface.
type Service struct {
	store     Recorder
	mirror    Mirror
	reporting ReportingAdapter
	sessions  *SessionManager
	logger    *zap.Logger
	now       func() time.Time
	newID     func() string
}

// NewService constructs a command dispatcher. mirror may be nil. Event days
// are the calendar days of loc.
func NewService(store Recorder, mirror Mirror, reporting ReportingAdapter, sessions *SessionManager, loc *time.Location, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if sessions == nil {
		sessions = NewSessionManager()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		store:     store,
		mirror:    mirror,
		reporting: reporting,
		sessions:  sessions,
		logger:    logger,
		now:       func() time.Time { return time.Now().In(loc) },
		newID:     uuid.NewString,
	}
}

// HandleCommand converts the command to records, persists them and builds the reply.
func (s *Service) HandleCommand(ctx context.Context, cmd models.Command, sender string) (string, error) {
	now := s.now()

	s.logger.Debug("dispatching command", zap.String("command", string(cmd.Type)), zap.String("sender", sender), zap.Strings("args", cmd.Args))

	switch cmd.Type {
	case models.CommandHelp:
		return HelpText, nil
	case models.CommandPond:
		return s.selectPond(ctx, cmd, sender)
	case models.CommandPurchase:
		return s.purchase(ctx, cmd, now)
	case models.CommandExpense:
		return s.expense(ctx, cmd, s.sessions.Pond(sender), now)
	case models.CommandUnknown:
		return "", ErrUnsupportedCommand
	}

	pondID := s.sessions.Pond(sender)
	if pondID == "" {
		return "", ErrNoPondSelected
	}
	pond, err := s.store.GetPond(ctx, pondID)
	if err != nil {
		return "", err
	}

	switch cmd.Type {
	case models.CommandStock:
		return s.stock(ctx, cmd, pond, now)
	case models.CommandMortality:
		return s.mortality(ctx, cmd, pond, now)
	case models.CommandAdjust:
		return s.adjust(ctx, cmd, pond, now)
	case models.CommandFeed:
		return s.feed(ctx, cmd, pond, now)
	case models.CommandHarvest:
		return s.harvest(ctx, cmd, pond, now)
	case models.CommandSample:
		return s.sample(ctx, cmd, pond, now)
	case models.CommandStatus:
		ov, err := s.reporting.Overview(ctx, pond.ID)
		if err != nil {
			return "", err
		}
		return reporting.FormatOverview(ov), nil
	case models.CommandCycles:
		cycles, err := s.reporting.Cycles(ctx, pond.ID)
		if err != nil {
			return "", err
		}
		return reporting.FormatCycles(cycles), nil
	case models.CommandAppetite:
		report, err := s.reporting.Appetite(ctx, pond.ID)
		if err != nil {
			return "", err
		}
		return reporting.FormatAppetite(report), nil
	case models.CommandTarget:
		st, err := s.reporting.FeedStatus(ctx, pond.ID)
		if err != nil {
			return "", err
		}
		return reporting.FormatFeedStatus(st), nil
	default:
		return "", ErrUnsupportedCommand
	}
}

func (s *Service) selectPond(ctx context.Context, cmd models.Command, sender string) (string, error) {
	if len(cmd.Args) == 0 {
		if current := s.sessions.Pond(sender); current != "" {
			return fmt.Sprintf("Current pond: %s.", current), nil
		}
		return "", ErrInvalidArguments
	}

	pond, err := s.store.GetPond(ctx, cmd.Args[0])
	if err != nil {
		return "", err
	}
	s.sessions.Select(sender, pond.ID)
	return fmt.Sprintf("Pond %s selected: %d fish, %.1f m3.", pond.ID, pond.Population, pond.Volume()), nil
}

func (s *Service) stock(ctx context.Context, cmd models.Command, pond models.Pond, now time.Time) (string, error) {
	count, note, err := countAndNote(cmd.Args)
	if err != nil || count <= 0 {
		return "", ErrInvalidArguments
	}

	// Fish added to a stocked pond top it up within the running cycle.
	kind := models.PopulationStocking
	if pond.Population > 0 {
		kind = models.PopulationAdjustment
	}
	if note == "" {
		note = "stocking"
		if kind == models.PopulationAdjustment {
			note = "top-up"
		}
	}

	event := s.populationEvent(pond, count, kind, note, now)
	if err := s.recordPopulation(ctx, event); err != nil {
		return "", err
	}

	if kind == models.PopulationStocking {
		return fmt.Sprintf("New cycle started in %s with %d fish on %s.", pond.ID, count, now.Format(dateFormat)), nil
	}
	return fmt.Sprintf("Top-up of %d fish recorded in %s, population %d.", count, pond.ID, event.Total), nil
}

func (s *Service) mortality(ctx context.Context, cmd models.Command, pond models.Pond, now time.Time) (string, error) {
	count, reason, err := countAndNote(cmd.Args)
	if err != nil || count <= 0 {
		return "", ErrInvalidArguments
	}
	if count > pond.Population {
		count = pond.Population
	}
	if count == 0 {
		return "", ErrPondEmpty
	}

	event := s.populationEvent(pond, -count, models.PopulationMortality, "mortality "+reason, now)
	if err := s.recordPopulation(ctx, event); err != nil {
		return "", err
	}

	msg := fmt.Sprintf("Mortality logged for %s: %d fish, population %d.", pond.ID, count, event.Total)
	if reason != "" {
		msg += fmt.Sprintf(" Reason: %s.", reason)
	}
	return msg, nil
}

func (s *Service) adjust(ctx context.Context, cmd models.Command, pond models.Pond, now time.Time) (string, error) {
	delta, note, err := countAndNote(cmd.Args)
	if err != nil || delta == 0 || pond.Population+delta < 0 {
		return "", ErrInvalidArguments
	}
	// Fish entering an empty pond open a cycle, which only /stock records.
	if pond.Population == 0 {
		return "", ErrPondEmpty
	}

	event := s.populationEvent(pond, delta, models.PopulationAdjustment, strings.TrimSpace("adjustment "+note), now)
	if err := s.recordPopulation(ctx, event); err != nil {
		return "", err
	}
	return fmt.Sprintf("Population of %s adjusted by %+d to %d.", pond.ID, delta, event.Total), nil
}

func (s *Service) feed(ctx context.Context, cmd models.Command, pond models.Pond, now time.Time) (string, error) {
	if len(cmd.Args) == 0 {
		return "", ErrInvalidArguments
	}
	kg, err := parseAmount(cmd.Args[0])
	if err != nil || kg <= 0 {
		return "", ErrInvalidArguments
	}
	feedType := defaultFeedType
	if len(cmd.Args) > 1 {
		feedType = strings.Join(cmd.Args[1:], " ")
	}

	event := models.FeedEvent{
		ID:       s.newID(),
		PondID:   pond.ID,
		Date:     models.CalendarDate(now),
		Kg:       kg,
		FeedType: feedType,
		Created:  models.At(now),
	}
	if err := s.store.RecordFeed(ctx, event); err != nil {
		return "", err
	}
	s.mirrorEvent("feed", func(m Mirror) error { return m.AppendFeed(ctx, event) })

	message := fmt.Sprintf("Feed saved for %s: %.2f kg of %s.", pond.ID, kg, feedType)
	return s.withSummary(ctx, message, func(ctx context.Context) (string, error) {
		st, err := s.reporting.FeedStatus(ctx, pond.ID)
		if err != nil {
			return "", err
		}
		return reporting.FormatFeedStatus(st), nil
	}), nil
}

func (s *Service) harvest(ctx context.Context, cmd models.Command, pond models.Pond, now time.Time) (string, error) {
	if len(cmd.Args) < 3 {
		return "", ErrInvalidArguments
	}
	kg, err := parseAmount(cmd.Args[0])
	if err != nil || kg <= 0 {
		return "", ErrInvalidArguments
	}
	count, err := strconv.Atoi(cmd.Args[1])
	if err != nil || count < 0 {
		return "", ErrInvalidArguments
	}
	price, err := parseAmount(cmd.Args[2])
	if err != nil || price < 0 {
		return "", ErrInvalidArguments
	}

	harvestType := models.HarvestPartial
	if len(cmd.Args) > 3 {
		switch models.HarvestType(cmd.Args[3]) {
		case models.HarvestTotal:
			harvestType = models.HarvestTotal
		case models.HarvestPartial:
		default:
			return "", ErrInvalidArguments
		}
	}

	event := models.HarvestEvent{
		ID:         s.newID(),
		PondID:     pond.ID,
		Date:       models.CalendarDate(now),
		Kg:         kg,
		Count:      count,
		PricePerKg: price,
		Type:       harvestType,
		Created:    models.At(now),
	}
	if err := s.store.RecordHarvest(ctx, event); err != nil {
		return "", err
	}
	s.mirrorEvent("harvest", func(m Mirror) error { return m.AppendHarvest(ctx, event) })

	removed := count
	if harvestType == models.HarvestTotal || removed > pond.Population {
		removed = pond.Population
	}
	if removed > 0 {
		pop := s.populationEvent(pond, -removed, models.PopulationAdjustment, string(harvestType)+" harvest", now)
		if err := s.recordPopulation(ctx, pop); err != nil {
			return "", err
		}
	}

	message := fmt.Sprintf("Harvest (%s) recorded for %s: %.1f kg, %d fish @ %.0f = %.0f.",
		harvestType, pond.ID, kg, count, price, event.Revenue())
	if harvestType != models.HarvestTotal {
		return message, nil
	}
	return s.withSummary(ctx, message, func(ctx context.Context) (string, error) {
		cycles, err := s.reporting.Cycles(ctx, pond.ID)
		if err != nil || len(cycles) == 0 {
			return "", err
		}
		return reporting.FormatCycle(cycles[len(cycles)-1]), nil
	}), nil
}

func (s *Service) expense(ctx context.Context, cmd models.Command, pondID string, now time.Time) (string, error) {
	if len(cmd.Args) < 2 {
		return "", ErrInvalidArguments
	}
	amount, err := parseAmount(cmd.Args[0])
	if err != nil || amount <= 0 {
		return "", ErrInvalidArguments
	}
	category, ok := models.ParseExpenseCategory(cmd.Args[1])
	if !ok {
		return "", ErrInvalidArguments
	}

	event := models.ExpenseEvent{
		ID:          s.newID(),
		PondID:      pondID,
		Date:        models.CalendarDate(now),
		Category:    category,
		Amount:      amount,
		Description: strings.Join(cmd.Args[2:], " "),
		Created:     models.At(now),
	}
	if err := s.store.RecordExpense(ctx, event); err != nil {
		return "", err
	}
	s.mirrorEvent("expense", func(m Mirror) error { return m.AppendExpense(ctx, event) })

	scope := "farm"
	if pondID != "" {
		scope = pondID
	}
	return fmt.Sprintf("Expense logged for %s: %s %.0f on %s.", scope, category, amount, now.Format(dateFormat)), nil
}

func (s *Service) sample(ctx context.Context, cmd models.Command, pond models.Pond, now time.Time) (string, error) {
	if len(cmd.Args) == 0 {
		return "", ErrInvalidArguments
	}
	ratio, err := parseAmount(cmd.Args[0])
	if err != nil || ratio <= 0 {
		return "", ErrInvalidArguments
	}

	sample := models.BiomassSample{
		ID:        s.newID(),
		PondID:    pond.ID,
		Date:      models.CalendarDate(now),
		FishPerKg: ratio,
		Note:      strings.Join(cmd.Args[1:], " "),
	}
	if err := s.store.RecordSample(ctx, sample); err != nil {
		return "", err
	}
	s.mirrorEvent("sample", func(m Mirror) error { return m.AppendSample(ctx, sample) })

	message := fmt.Sprintf("Sample saved for %s: %.1f fish/kg (avg %.1f g).", pond.ID, ratio, 1000/ratio)
	return s.withSummary(ctx, message, func(ctx context.Context) (string, error) {
		ov, err := s.reporting.Overview(ctx, pond.ID)
		if err != nil {
			return "", err
		}
		return reporting.FormatStatus(ov.Status) + "\n" + reporting.FormatHarvest(ov.Harvest), nil
	}), nil
}

func (s *Service) purchase(ctx context.Context, cmd models.Command, now time.Time) (string, error) {
	if len(cmd.Args) < 3 || s.mirror == nil {
		return "", ErrInvalidArguments
	}
	n := len(cmd.Args)
	qty, err := parseAmount(cmd.Args[n-2])
	if err != nil || qty <= 0 {
		return "", ErrInvalidArguments
	}
	price, err := parseAmount(cmd.Args[n-1])
	if err != nil || price < 0 {
		return "", ErrInvalidArguments
	}

	movement := models.StockMovement{
		Date:       models.CalendarDate(now),
		FeedType:   strings.Join(cmd.Args[:n-2], " "),
		Kind:       models.StockPurchase,
		QuantityKg: qty,
		UnitPrice:  price,
	}
	if err := s.mirror.AppendStockMovement(ctx, movement); err != nil {
		return "", fmt.Errorf("record purchase: %w", err)
	}
	return fmt.Sprintf("Purchase recorded: %.0f kg of %s @ %.2f.", qty, movement.FeedType, price), nil
}

func (s *Service) populationEvent(pond models.Pond, delta int, kind models.PopulationKind, note string, now time.Time) models.PopulationEvent {
	return models.PopulationEvent{
		ID:          s.newID(),
		PondID:      pond.ID,
		Date:        models.CalendarDate(now),
		Delta:       delta,
		Total:       pond.Population + delta,
		Kind:        kind,
		Description: strings.TrimSpace(note),
		Created:     models.At(now),
	}
}

func (s *Service) recordPopulation(ctx context.Context, event models.PopulationEvent) error {
	if err := s.store.RecordPopulation(ctx, event); err != nil {
		return err
	}
	s.mirrorEvent("population", func(m Mirror) error { return m.AppendPopulation(ctx, event) })
	return nil
}

// mirrorEvent copies an event to the ledger. The store already holds it, so
// failures are only logged.
func (s *Service) mirrorEvent(kind string, fn func(Mirror) error) {
	if s.mirror == nil {
		return
	}
	if err := fn(s.mirror); err != nil {
		s.logger.Warn("failed to mirror event to sheets", zap.String("kind", kind), zap.Error(err))
	}
}

func (s *Service) withSummary(ctx context.Context, message string, fn func(context.Context) (string, error)) string {
	if s.reporting == nil || fn == nil {
		return message
	}

	summary, err := fn(ctx)
	if err != nil {
		s.logger.Debug("analytics summary failed", zap.Error(err))
		return message
	}
	if summary == "" {
		return message
	}
	return message + "\n" + summary
}

func countAndNote(args []string) (int, string, error) {
	if len(args) == 0 {
		return 0, "", ErrInvalidArguments
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, "", ErrInvalidArguments
	}
	return n, strings.Join(args[1:], " "), nil
}

func parseAmount(value string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(value, ",", "."), 64)
}
