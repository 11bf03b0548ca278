package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/viniciusmecosta/spe-api/internal/biometric"
	"github.com/viniciusmecosta/spe-api/internal/events"
	"github.com/viniciusmecosta/spe-api/internal/messaging/kafka/consumer"
	"github.com/viniciusmecosta/spe-api/internal/messaging/kafka/producer"
	"github.com/viniciusmecosta/spe-api/internal/punch"
	"github.com/viniciusmecosta/spe-api/internal/shared/connection"
	"github.com/viniciusmecosta/spe-api/internal/user"
)

const deviceConsumerGroup = "spe-api-device"

func newDeviceReader(broker, topic string) *kafkago.Reader {
	return kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{broker},
		Topic:          topic,
		GroupID:        deviceConsumerGroup,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
}

// RunDeviceConsumer drains every device-channel topic: punches, clock-sync
// requests, and the biometric template sync handshake.
func RunDeviceConsumer() error {
	logger := zap.L().Named("app.device")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	kafkaWriter, err := connection.ConnectKafkaWithRetry(kafkaBroker, 5)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	loc, err := loadLocation()
	if err != nil {
		return err
	}

	// Redis-backed dedup survives consumer restarts. Without Redis the
	// in-memory window still covers device retry bursts within one run.
	var deduper punch.Deduper
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rdb, err := connection.ConnectRedisWithRetry(addr, 5)
		if err != nil {
			return err
		}
		defer rdb.Close()
		deduper = punch.NewRedisDeduper(rdb)
	} else {
		logger.Warn("REDIS_ADDR not set, using in-memory punch dedup")
		deduper = punch.NewMemoryDeduper()
	}

	publisher := producer.NewDevicePublisher(kafkaWriter)
	punchService := newPunchService(gormDB, deduper, loc)
	biometricRepo := biometric.NewRepository(gormDB)
	userRepo := user.NewRepository(gormDB)
	biometricService := biometric.NewService(biometricRepo, userRepo, publisher)

	readers := map[string]*kafkago.Reader{
		events.PunchTopic:        newDeviceReader(kafkaBroker, events.PunchTopic),
		events.TimeRequestTopic:  newDeviceReader(kafkaBroker, events.TimeRequestTopic),
		events.SyncStartTopic:    newDeviceReader(kafkaBroker, events.SyncStartTopic),
		events.SyncAckTopic:      newDeviceReader(kafkaBroker, events.SyncAckTopic),
		events.EnrollResultTopic: newDeviceReader(kafkaBroker, events.EnrollResultTopic),
	}
	defer func() {
		for _, r := range readers {
			r.Close()
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeDevicePunch(ctx, readers[events.PunchTopic], punchService, publisher, logger)
	go consumer.ConsumeTimeRequest(ctx, readers[events.TimeRequestTopic], publisher, loc, logger)
	go consumer.ConsumeSyncStart(ctx, readers[events.SyncStartTopic], biometricService, logger)
	go consumer.ConsumeSyncAck(ctx, readers[events.SyncAckTopic], biometricService, logger)
	go consumer.ConsumeEnrollResult(ctx, readers[events.EnrollResultTopic], biometricService, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("device consumer shutting down")
	cancel()

	return nil
}
