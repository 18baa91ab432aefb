package backend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"tally/internal/amqp"
	"tally/internal/storage"
	"tally/internal/store/memory"
)

// Factory creates backends based on configuration
type Factory struct {
	logger *slog.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *slog.Logger) *Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Factory{logger: logger}
}

// CreateBackend builds the store named by config.Type, attaching an AMQP
// publisher when a broker URL is configured. A broker that cannot be reached
// downgrades to no events rather than failing startup.
func (f *Factory) CreateBackend(_ context.Context, config Config) (*Result, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	publisher, amqpClose := f.connectAMQP(config)

	switch config.Type {
	case SQLiteBackend:
		repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath)
		if err != nil {
			if amqpClose != nil {
				_ = amqpClose()
			}
			return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
		}
		f.logger.Info("Initialized SQLite backend",
			"db_path", config.SQLiteDBPath,
			"amqp_enabled", publisher != nil)
		return &Result{
			Store:     repo,
			Publisher: publisher,
			Cleanup:   combineCleanup(repo.Close, amqpClose),
		}, nil

	case MemoryBackend:
		f.logger.Info("Initialized memory backend", "amqp_enabled", publisher != nil)
		return &Result{
			Store:     memory.New(),
			Publisher: publisher,
			Cleanup:   combineCleanup(nil, amqpClose),
		}, nil

	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *Factory) connectAMQP(config Config) (EventPublisher, CleanupFunc) {
	if config.AMQPURL == "" {
		return nil, nil
	}
	client, err := amqp.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPQueue)
	if err != nil {
		f.logger.Warn("Failed to initialize AMQP client, continuing without events", "error", err)
		return nil, nil
	}
	f.logger.Info("Initialized AMQP client",
		"exchange", config.AMQPExchange,
		"queue", config.AMQPQueue)
	return client, client.Close
}

func combineCleanup(fns ...CleanupFunc) CleanupFunc {
	return func() error {
		var errs []error
		for _, fn := range fns {
			if fn == nil {
				continue
			}
			if err := fn(); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}
}
