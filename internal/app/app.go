package app

import (
	"database/sql"
	"errors"
	"time"

	"employee-api/internal/config"
	"employee-api/internal/employee"
	"employee-api/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Infra holds the long-lived clients shared by the modules.
type Infra struct {
	GormDB    *gorm.DB
	DB        *sql.DB
	Publisher employee.EventPublisher

	closers []func() error
}

func (i *Infra) Close() error {
	var errs []error
	for n := len(i.closers) - 1; n >= 0; n-- {
		errs = append(errs, i.closers[n]())
	}
	return errors.Join(errs...)
}

func BuildApp(router *gin.Engine, cfg *config.Config) (*Infra, error) {
	logger := zap.L().Named("app")

	// 1. Setup Infrastructure
	gormDB, err := connection.ConnectGORMWithRetry(
		cfg.Database.DSN(),
		cfg.Database.MaxRetries,
		cfg.Database.RetryDelay,
		connection.DefaultPool,
	)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	infra := &Infra{GormDB: gormDB, DB: sqlDB}
	infra.closers = append(infra.closers, sqlDB.Close)
	logger.Info("database connection established")

	infra.Publisher = employee.NewNoopEventPublisher()
	if len(cfg.Kafka.Brokers) > 0 {
		writer := newKafkaWriter(cfg.Kafka.Brokers)
		infra.closers = append(infra.closers, writer.Close)
		infra.Publisher = employee.NewKafkaEventPublisher(writer, cfg.Kafka.Topic)
		logger.Info("kafka event publisher enabled", zap.Strings("brokers", cfg.Kafka.Brokers))
	}

	// 2. Register Modules & Routes
	registerModules(router, infra, cfg)

	return infra, nil
}

// newKafkaWriter flushes single-message batches right away and gives up
// quickly on an unreachable broker.
func newKafkaWriter(brokers []string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		BatchSize:              1,
		BatchTimeout:           10 * time.Millisecond,
		MaxAttempts:            3,
		WriteTimeout:           time.Second,
		ReadTimeout:            time.Second,
	}
}
