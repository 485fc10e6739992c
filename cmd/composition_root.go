package cmd

import (
	"log/slog"

	httpin "fulfilment/internal/adapters/in/http"
	"fulfilment/internal/adapters/out/postgres"
	"fulfilment/internal/clients/customer"
	"fulfilment/internal/clients/picker"
	"fulfilment/internal/clients/tracker"
	"fulfilment/internal/core/application/usecases/commands"
	"fulfilment/internal/core/application/usecases/queries"
	"fulfilment/internal/core/hub"
	"fulfilment/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot owns the single order hub and builds everything that talks to it.
// gormDB is nil when the archive is disabled.
type CompositionRoot struct {
	config     Config
	hub        *hub.Hub
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) *CompositionRoot {
	h := hub.New(hub.WithLogger(logger))
	h.Initialize()

	root := &CompositionRoot{
		config: config,
		hub:    h,
		gormDB: gormDB,
		logger: logger,
	}
	if gormDB != nil {
		root.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB)
	}
	return root
}

func (c *CompositionRoot) Hub() *hub.Hub {
	return c.hub
}

func (c *CompositionRoot) ArchiveEnabled() bool {
	return c.gormDB != nil
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	return commands.NewPlaceOrderCommandHandler(c.hub)
}

func (c *CompositionRoot) CreateAdvanceOrderCommandHandler() commands.AdvanceOrderCommandHandler {
	return commands.NewAdvanceOrderCommandHandler(c.hub)
}

func (c *CompositionRoot) CreateArchiveOrdersCommandHandler() commands.ArchiveOrdersCommandHandler {
	var f commands.ArchiveUoWFactory = FuncArchiveUoWFactory(func() commands.ArchiveUoW {
		return c.uowFactory.Create()
	})
	return commands.NewArchiveOrdersCommandHandler(c.hub, f)
}

func (c *CompositionRoot) CreateGetOrderBoardQueryHandler() queries.GetOrderBoardQueryHandler {
	return queries.NewGetOrderBoardQueryHandler(c.hub)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.hub)
}

func (c *CompositionRoot) CreateGetArchivedOrderQueryHandler() queries.GetArchivedOrderQueryHandler {
	return queries.NewGetArchivedOrderQueryHandler(c.gormDB)
}

// CreateTrolley opens a customer session checking out through the hub.
func (c *CompositionRoot) CreateTrolley() *customer.Trolley {
	return customer.NewTrolley(c.CreatePlaceOrderCommandHandler(), c.logger)
}

// CreateTracker registers a new board tracker.
func (c *CompositionRoot) CreateTracker() (*tracker.Tracker, error) {
	t := tracker.New(c.logger)
	if err := c.hub.Register(t); err != nil {
		return nil, err
	}
	return t, nil
}

// CreatePickers registers n picking stations.
func (c *CompositionRoot) CreatePickers(n int) ([]*picker.Picker, error) {
	advancer := c.CreateAdvanceOrderCommandHandler()
	pickers := make([]*picker.Picker, 0, n)
	for range n {
		p := picker.New(advancer, c.logger)
		if err := c.hub.Register(p); err != nil {
			return nil, err
		}
		pickers = append(pickers, p)
	}
	return pickers, nil
}

// CreateJobManager builds the archive job when the archive is enabled and
// the picker simulation when PickerCount is positive.
func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	var scheduled []jobs.Job

	if c.ArchiveEnabled() {
		scheduled = append(scheduled,
			jobs.NewOrderArchiveJob(c.CreateArchiveOrdersCommandHandler(), c.config.ArchiveSchedule, c.logger))
	}

	if c.config.PickerCount > 0 {
		pickers, err := c.CreatePickers(c.config.PickerCount)
		if err != nil {
			return nil, err
		}
		stations := make([]jobs.PickingStation, len(pickers))
		for i, p := range pickers {
			stations[i] = p
		}
		scheduled = append(scheduled,
			jobs.NewPickerSimulationJob(stations, c.config.PickerSchedule, c.logger))
	}

	return jobs.NewJobManager(scheduled...), nil
}

// CreateHTTPServer builds the operational server. The archive route is only
// served when the archive is enabled.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	var archive httpin.ArchiveReader
	if c.ArchiveEnabled() {
		archive = c.CreateGetArchivedOrderQueryHandler()
	}
	return httpin.NewServer(
		c.CreateGetOrderBoardQueryHandler(),
		c.CreateGetOrderQueryHandler(),
		archive,
		c.logger,
	)
}

// Close stops observer delivery. Call once, after the jobs have stopped.
func (c *CompositionRoot) Close() {
	c.hub.Close()
}

type FuncArchiveUoWFactory func() commands.ArchiveUoW

func (f FuncArchiveUoWFactory) Create() commands.ArchiveUoW {
	return f()
}
