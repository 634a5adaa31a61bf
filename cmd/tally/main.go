package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/alexanderramin/tally/internal/cli"
	"github.com/alexanderramin/tally/internal/config"
	"github.com/alexanderramin/tally/internal/connector"
	"github.com/alexanderramin/tally/internal/connector/rest"
	"github.com/alexanderramin/tally/internal/db"
	"github.com/alexanderramin/tally/internal/repository"
	"github.com/alexanderramin/tally/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	dbPath, err := config.DBPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories and the unit of work for transactional operations.
	slotRepo := repository.NewSQLiteSlotRepo(database)
	aliasRepo := repository.NewSQLiteAliasRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	connectors, defaultConnector := buildConnectors(cfg)

	app := &cli.App{
		Tracking:         service.NewTrackingService(slotRepo, uow),
		Aliases:          service.NewAliasService(aliasRepo),
		Review:           service.NewReviewService(slotRepo, connectors),
		Billing:          service.NewBillingService(slotRepo, connectors, cfg, cfg.BillablePercentage, cfg.HoursPerDay),
		Send:             service.NewSendService(slotRepo, connectors),
		DefaultConnector: defaultConnector,
	}

	return cli.NewRootCmd(app).Execute()
}

// buildConnectors instantiates one backend client per configured connector
// block. The first id in lexical order becomes the default.
func buildConnectors(cfg *config.Config) (*connector.Manager, string) {
	logLevel := slog.LevelWarn
	if os.Getenv("TALLY_DEBUG") != "" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	registry := make(map[string]connector.Connector, len(cfg.Connectors))
	defaultID := ""
	for id, c := range cfg.Connectors {
		var backend connector.Connector = rest.New(c.BaseURL, c.BrowseURL, c.Token, logger.With("connector", id))
		if c.CacheTTLSeconds > 0 {
			backend = connector.WithCache(backend, time.Duration(c.CacheTTLSeconds)*time.Second)
		}
		registry[id] = backend
		if defaultID == "" || id < defaultID {
			defaultID = id
		}
	}
	return connector.NewManager(registry), defaultID
}
