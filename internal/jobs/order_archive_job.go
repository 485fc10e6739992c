package jobs

import (
	"context"
	"log/slog"

	"fulfilment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// OrderArchiver saves the board into the archive. commands.ArchiveOrdersCommandHandler implements it.
type OrderArchiver interface {
	Handle(ctx context.Context, cmd commands.ArchiveOrdersCommand) (int, error)
}

// OrderArchiveJob keeps the order archive in step with the board.
type OrderArchiveJob struct {
	archiver OrderArchiver
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewOrderArchiveJob creates a job running archiver on schedule, a cron
// expression with a seconds field such as "*/10 * * * * *".
func NewOrderArchiveJob(archiver OrderArchiver, schedule string, logger *slog.Logger) *OrderArchiveJob {
	return &OrderArchiveJob{
		archiver: archiver,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "order_archive_job"),
	}
}

// Name identifies the job in start-up errors.
func (j *OrderArchiveJob) Name() string {
	return "order archive job"
}

// Start schedules the archive sync.
func (j *OrderArchiveJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		_, _ = j.Run(context.Background())
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order archive job started", "schedule", j.schedule)
	return nil
}

// Run performs one archive sync and returns how many orders were saved.
func (j *OrderArchiveJob) Run(ctx context.Context) (int, error) {
	saved, err := j.archiver.Handle(ctx, commands.NewArchiveOrdersCommand())
	if err != nil {
		j.logger.ErrorContext(ctx, "Order archive job failed", "error", err)
		return 0, err
	}

	if saved > 0 {
		j.logger.InfoContext(ctx, "Archived orders", "saved", saved)
	}
	return saved, nil
}

// Stop stops the schedule and waits for a running sync to finish.
func (j *OrderArchiveJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Order archive job stopped")
}
