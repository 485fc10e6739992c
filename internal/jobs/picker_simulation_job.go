package jobs

import (
	"context"
	"errors"
	"log/slog"

	"fulfilment/internal/clients/picker"
	"fulfilment/internal/core/domain/model/order"

	"github.com/robfig/cron/v3"
)

// PickingStation is one picker the simulation drives. *picker.Picker implements it.
type PickingStation interface {
	Claimed() (int64, bool)
	TakeNext(ctx context.Context) (int64, error)
	Collected(ctx context.Context) (int64, error)
}

// PickerSimulationJob moves orders through the warehouse without a human at
// the picking stations. Each tick every station takes one step: a busy
// station collects its order, a free one claims the oldest waiting order.
type PickerSimulationJob struct {
	stations []PickingStation
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewPickerSimulationJob creates a job stepping stations on schedule.
func NewPickerSimulationJob(stations []PickingStation, schedule string, logger *slog.Logger) *PickerSimulationJob {
	return &PickerSimulationJob{
		stations: stations,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "picker_simulation_job"),
	}
}

// Name identifies the job in start-up errors.
func (j *PickerSimulationJob) Name() string {
	return "picker simulation job"
}

// Start schedules the simulation.
func (j *PickerSimulationJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.Run(context.Background())
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Picker simulation job started",
		"schedule", j.schedule, "pickers", len(j.stations))
	return nil
}

// Run takes one step at every station.
func (j *PickerSimulationJob) Run(ctx context.Context) {
	for _, station := range j.stations {
		if err := j.step(ctx, station); err != nil {
			j.logger.ErrorContext(ctx, "Picker simulation step failed", "error", err)
		}
	}
}

// Stop stops the schedule and waits for a running step to finish.
func (j *PickerSimulationJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Picker simulation job stopped")
}

func (j *PickerSimulationJob) step(ctx context.Context, station PickingStation) error {
	if _, busy := station.Claimed(); busy {
		_, err := station.Collected(ctx)
		if isExpected(err) {
			return nil
		}
		return err
	}

	_, err := station.TakeNext(ctx)
	if isExpected(err) {
		return nil
	}
	return err
}

// isExpected reports the outcomes of a normal shift: nothing to pick, or an
// order another station got to first.
func isExpected(err error) bool {
	if err == nil {
		return true
	}
	if errors.Is(err, picker.ErrNoOrdersWaiting) || errors.Is(err, picker.ErrNoOrderClaimed) ||
		errors.Is(err, picker.ErrOrderAlreadyClaimed) {
		return true
	}

	var transitionErr *order.InvalidTransitionError
	var unknownErr *order.UnknownOrderError
	return errors.As(err, &transitionErr) || errors.As(err, &unknownErr)
}
