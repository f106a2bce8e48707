package backend

import (
	"context"
	"fmt"
	"log/slog"

	"ledgerlite/internal/amqp"
	"ledgerlite/internal/ledger/memory"
	ledgermongo "ledgerlite/internal/ledger/mongo"
	"ledgerlite/internal/services"
	"ledgerlite/internal/storage"
)

// DefaultFactory implements the Factory interface.
type DefaultFactory struct {
	logger *slog.Logger
}

func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{logger: logger}
}

func (f *DefaultFactory) CreateStore(ctx context.Context, config Config) (*Result, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case SQLiteBackend:
		return f.createSQLiteStore(config)
	case MongoBackend:
		return f.createMongoStore(ctx, config)
	case MemoryBackend:
		return f.createMemoryStore()
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createSQLiteStore(config Config) (*Result, error) {
	repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("initialize SQLite repository: %w", err)
	}

	amqpClient := f.dialAMQP(config)
	svc := services.NewLedgerService(repo, publisherOrNil(amqpClient)).WithCloser(func() error {
		if amqpClient != nil {
			amqpClient.Close()
		}
		return repo.Close()
	})

	f.logger.Info("Initialized SQLite backend",
		"db_path", config.SQLiteDBPath,
		"amqp_enabled", amqpClient != nil)

	return &Result{Store: svc, Cleanup: svc.Close}, nil
}

func (f *DefaultFactory) createMongoStore(ctx context.Context, config Config) (*Result, error) {
	store, err := ledgermongo.New(ctx, config.MongoURI, config.MongoDatabase)
	if err != nil {
		return nil, fmt.Errorf("initialize Mongo store: %w", err)
	}

	amqpClient := f.dialAMQP(config)
	svc := services.NewLedgerService(store, publisherOrNil(amqpClient)).WithCloser(func() error {
		if amqpClient != nil {
			amqpClient.Close()
		}
		return store.Close(context.Background())
	})

	f.logger.Info("Initialized Mongo backend",
		"database", config.MongoDatabase,
		"amqp_enabled", amqpClient != nil)

	return &Result{Store: svc, Cleanup: svc.Close}, nil
}

func (f *DefaultFactory) createMemoryStore() (*Result, error) {
	store := memory.New()
	f.logger.Info("Initialized memory backend")
	return &Result{Store: services.NewLedgerService(store, nil), Cleanup: nil}, nil
}

// dialAMQP attempts an AMQP connection; failure downgrades to store-only
// operation rather than aborting startup.
func (f *DefaultFactory) dialAMQP(config Config) *amqp.Client {
	if config.AMQPURL == "" {
		return nil
	}
	client, err := amqp.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPQueue)
	if err != nil {
		f.logger.Warn("Failed to initialize AMQP client, continuing without record events", "error", err)
		return nil
	}
	f.logger.Info("Initialized AMQP client",
		"exchange", config.AMQPExchange,
		"queue", config.AMQPQueue)
	return client
}

// publisherOrNil avoids handing a typed-nil *amqp.Client to the service.
func publisherOrNil(client *amqp.Client) services.Publisher {
	if client == nil {
		return nil
	}
	return client
}
