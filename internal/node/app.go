// Package node initializes and runs the ledger node. It selects a storage
// backend, runs schema migrations, and starts the HTTP API and the optional
// snapshot backup loop, shutting everything down gracefully on SIGINT/SIGTERM.
package node

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/locshare/internal/logging"
	"github.com/dmitrijs2005/locshare/internal/node/backup"
	"github.com/dmitrijs2005/locshare/internal/node/config"
	"github.com/dmitrijs2005/locshare/internal/node/httpapi"
	"github.com/dmitrijs2005/locshare/internal/node/ledger"
	"github.com/dmitrijs2005/locshare/internal/node/repositories/records"
	"github.com/dmitrijs2005/locshare/internal/node/repositories/repomanager"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	service  *ledger.Service
	db       *sql.DB
	exporter *backup.Exporter
}

func NewApp(c *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	var repo records.Repository
	var db *sql.DB

	if c.DatabaseDSN != "" {
		var err error
		db, err = sql.Open("pgx", c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}

		rm := repomanager.NewPostgresRepositoryManager()
		if err := rm.RunMigrations(context.Background(), db); err != nil {
			return nil, fmt.Errorf("migration error: %w", err)
		}
		repo = rm.Records(db)
	} else {
		repo = records.NewInMemoryRepository()
	}

	svc := ledger.NewService(repo, []byte(c.RelayerKey), c.ContractAddress, logger)

	exporter := backup.NewExporter(svc, backup.Config{
		RootUser:     c.S3RootUser,
		RootPassword: c.S3RootPassword,
		Bucket:       c.S3Bucket,
		Region:       c.S3Region,
		BaseEndpoint: c.S3BaseEndpoint,
		Interval:     c.BackupInterval,
	}, logger)

	return &App{config: c, logger: logger, service: svc, db: db, exporter: exporter}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := httpapi.NewServer(app.service, app.logger, httpapi.Options{
		Addr:          app.config.EndpointAddr,
		SecretKey:     []byte(app.config.SecretKey),
		TokenValidity: app.config.SessionValidityDuration,
		WriteRPS:      app.config.WriteRPS,
		WriteBurst:    app.config.WriteBurst,
	})

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting node...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	if app.exporter.Enabled() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.exporter.Run(ctx)
		}()
	}

	wg.Wait()

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error(ctx, err.Error())
		}
	}
}
