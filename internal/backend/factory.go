package backend

import (
	"context"
	"errors"
	"fmt"

	"conciergerie/internal/amqp"
	"conciergerie/internal/log"
	"conciergerie/internal/repository"
	gsheet "conciergerie/internal/repository/google"
	"conciergerie/internal/repository/memory"
	"conciergerie/internal/storage"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *log.Logger
}

func NewFactory(logger *log.Logger) Factory {
	if logger == nil {
		logger = log.Discard()
	}
	return &DefaultFactory{
		logger: logger.WithComponent(log.ComponentBackend),
	}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case SQLiteBackend:
		return f.createSQLiteBackend(ctx, config)
	case SheetsBackend:
		return f.createSheetsBackend(ctx, config)
	case MemoryBackend:
		return f.createMemoryBackend(config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createSQLiteBackend(ctx context.Context, config Config) (*BackendResult, error) {
	sqliteRepo, err := storage.NewSQLiteRepository(config.SQLiteDBPath, f.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}

	if err := f.seedIfEmpty(ctx, sqliteRepo, config.SeedFile); err != nil {
		_ = sqliteRepo.Close()
		return nil, err
	}

	// AMQP is optional: bookings are still stored without it.
	var amqpClient *amqp.Client
	if config.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPQueue, f.logger)
		if err != nil {
			f.logger.Warn("Failed to initialize AMQP client, continuing without notifications", log.FieldError, err.Error())
			amqpClient = nil
		} else {
			f.logger.Info("Initialized AMQP client",
				"exchange", config.AMQPExchange,
				"queue", config.AMQPQueue)
		}
	}

	f.logger.Info("Initialized SQLite backend",
		"db_path", config.SQLiteDBPath,
		"amqp_enabled", amqpClient != nil)

	return &BackendResult{
		Repository: sqliteRepo,
		Publisher:  amqpClient,
		Cleanup: func() error {
			var errs []error
			if amqpClient != nil {
				errs = append(errs, amqpClient.Close())
			}
			errs = append(errs, sqliteRepo.Close())
			return errors.Join(errs...)
		},
	}, nil
}

// seedIfEmpty loads the seed file, or the built-in fixtures, into a fresh
// database. A database with properties is left alone.
func (f *DefaultFactory) seedIfEmpty(ctx context.Context, repo *storage.SQLiteRepository, seedFile string) error {
	empty, err := repo.IsEmpty(ctx)
	if err != nil {
		return fmt.Errorf("check database contents: %w", err)
	}
	if !empty {
		return nil
	}

	seed := repository.Fixtures()
	if seedFile != "" {
		seed, err = repository.ReadSeedFile(seedFile)
		if err != nil {
			return err
		}
	}
	if err := repo.Import(ctx, seed); err != nil {
		return fmt.Errorf("seed database: %w", err)
	}
	f.logger.Info("Seeded empty database",
		"seed_file", seedFile,
		"properties", len(seed.Properties),
		"bookings", len(seed.Bookings))
	return nil
}

func (f *DefaultFactory) createSheetsBackend(ctx context.Context, config Config) (*BackendResult, error) {
	cli, err := gsheet.New(ctx, gsheet.Config{
		SpreadsheetID:      config.GoogleSpreadsheetID,
		ServiceAccountJSON: config.GoogleServiceAccountJSON,
		ServiceAccountFile: config.GoogleServiceAccountFile,
		Tabs:               gsheet.DefaultTabs(),
	}, f.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Google Sheets client: %w", err)
	}

	f.logger.Info("Initialized Google Sheets backend", "read_only", true)

	return &BackendResult{Repository: cli}, nil
}

func (f *DefaultFactory) createMemoryBackend(config Config) (*BackendResult, error) {
	store, err := memory.NewFromFile(config.SeedFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load memory seed: %w", err)
	}

	f.logger.Info("Initialized memory backend", "seed_file", config.SeedFile)

	return &BackendResult{Repository: store}, nil
}
