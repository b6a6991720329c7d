package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/aquafarm/internal/config"
	"github.com/mamadbah2/aquafarm/internal/domain/models"
)

const jobTimeout = 2 * time.Minute

// Reports builds the texts of the recurring messages. An empty text means
// there is nothing to send.
type Reports interface {
	WeeklyReport(ctx context.Context) (string, error)
	FeedReminder(ctx context.Context, slot models.NextFeed) (string, error)
	AppetiteAlerts(ctx context.Context) (string, error)
}

// Sender delivers a message to the farm manager.
type Sender interface {
	SendOutbound(ctx context.Context, req models.OutboundMessageRequest) error
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron      *cron.Cron
	reports   Reports
	sender    Sender
	cfg       config.ScheduleConfig
	recipient string
	logger    *zap.Logger
}

// NewScheduler creates a scheduler running in the configured timezone.
func NewScheduler(cfg config.Config, reports Reports, sender Sender, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{
		cron:      cron.New(cron.WithLocation(cfg.Schedule.Location())),
		reports:   reports,
		sender:    sender,
		cfg:       cfg.Schedule,
		recipient: cfg.WhatsApp.ManagerID,
		logger:    logger,
	}
}

// Start registers every job and starts the scheduler.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler", zap.String("timezone", s.cfg.Timezone))

	jobs := []struct {
		name string
		spec string
		run  func(context.Context) (string, error)
	}{
		{"feed reminder (morning)", s.cfg.FeedMorningCron, s.feedReminder(models.NextMorning)},
		{"feed reminder (evening)", s.cfg.FeedEveningCron, s.feedReminder(models.NextEvening)},
		{"appetite check", s.cfg.AppetiteCron, s.reports.AppetiteAlerts},
		{"weekly report", s.cfg.WeeklyCron, s.reports.WeeklyReport},
	}

	for _, job := range jobs {
		if _, err := s.cron.AddFunc(job.spec, s.job(job.name, job.run)); err != nil {
			return fmt.Errorf("schedule %s %q: %w", job.name, job.spec, err)
		}
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) feedReminder(slot models.NextFeed) func(context.Context) (string, error) {
	return func(ctx context.Context) (string, error) {
		return s.reports.FeedReminder(ctx, slot)
	}
}

func (s *Scheduler) job(name string, build func(context.Context) (string, error)) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		if err := s.run(ctx, name, build); err != nil {
			s.logger.Error("scheduled job failed", zap.String("job", name), zap.Error(err))
		}
	}
}

func (s *Scheduler) run(ctx context.Context, name string, build func(context.Context) (string, error)) error {
	s.logger.Info("running scheduled job", zap.String("job", name))

	message, err := build(ctx)
	if err != nil {
		return fmt.Errorf("build message: %w", err)
	}
	if message == "" {
		s.logger.Debug("nothing to send", zap.String("job", name))
		return nil
	}

	req := models.OutboundMessageRequest{To: s.recipient, Message: message}
	if err := s.sender.SendOutbound(ctx, req); err != nil {
		return fmt.Errorf("send message: %w", err)
	}

	s.logger.Info("scheduled message sent", zap.String("job", name))
	return nil
}
