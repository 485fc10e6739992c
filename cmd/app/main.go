package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fulfilment/cmd"
	"fulfilment/internal/adapters/out/postgres/orderarchive"
	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	_ "github.com/lib/pq"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 5 * time.Second

func main() {
	configs, err := cmd.LoadConfig(".env")
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: configs.LogLevel}))

	var gormDB *gorm.DB
	if configs.ArchiveEnabled {
		gormDB, err = openArchive(configs)
		if err != nil {
			log.Fatalf("Error opening order archive: %v", err)
		}
	}

	app := cmd.NewCompositionRoot(configs, gormDB, logger)

	board, err := app.CreateTracker()
	if err != nil {
		log.Fatalf("Error registering tracker: %v", err)
	}

	jobManager, err := app.CreateJobManager()
	if err != nil {
		log.Fatalf("Error creating jobs: %v", err)
	}
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err = seedOrders(ctx, app, configs.SeedOrders); err != nil {
		log.Fatalf("Error placing seed orders: %v", err)
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-board.Updated():
				logger.Debug("Order board\n" + board.Render())
			}
		}
	}()

	e := startWebServer(app, configs.HTTPPort)

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err = e.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}

	jobManager.StopAll()
	app.Close()
}

func openArchive(configs cmd.Config) (*gorm.DB, error) {
	sqlDB, err := sql.Open("postgres", configs.DSN())
	if err != nil {
		return nil, err
	}

	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB}), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err = gormDB.AutoMigrate(&orderarchive.ArchivedOrderDTO{}); err != nil {
		return nil, fmt.Errorf("failed to migrate archive: %w", err)
	}
	return gormDB, nil
}

// seedOrders checks out n demo trolleys so a fresh instance has something on the board.
func seedOrders(ctx context.Context, app *cmd.CompositionRoot, n int) error {
	catalogue := []order.LineItem{
		{ProductID: "P100", Description: "Kettle", UnitPrice: kernel.MustMoney(2499), Quantity: 1},
		{ProductID: "P200", Description: "Tea towel", UnitPrice: kernel.MustMoney(350), Quantity: 2},
		{ProductID: "P300", Description: "Mug", UnitPrice: kernel.MustMoney(599), Quantity: 4},
	}

	for i := range n {
		trolley := app.CreateTrolley()
		for _, item := range catalogue[:1+i%len(catalogue)] {
			if err := trolley.Add(item); err != nil {
				return err
			}
		}
		if _, err := trolley.Checkout(ctx); err != nil {
			return err
		}
	}
	return nil
}

func startWebServer(app *cmd.CompositionRoot, port string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	app.CreateHTTPServer().Register(e)

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()
	return e
}
