package consumer

import (
	"context"
	"encoding/json"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/viniciusmecosta/spe-api/internal/biometric"
	"github.com/viniciusmecosta/spe-api/internal/events"
)

// ConsumeSyncStart triggers a full template fan-out whenever the device
// asks for one, typically after a flash wipe or firmware update.
func ConsumeSyncStart(
	ctx context.Context,
	reader *kafkago.Reader,
	biometricService biometric.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.sync_start")
	log.Info("sync start consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("sync start consumer stopped")
				return
			}
			log.Error("fetch sync start message failed", zap.Error(err))
			continue
		}

		if _, err := biometricService.SyncAll(ctx); err != nil {
			log.Error("template fan-out failed", zap.Error(err))
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit sync start message failed", zap.Error(err))
		}
	}
}

func ConsumeSyncAck(
	ctx context.Context,
	reader *kafkago.Reader,
	biometricService biometric.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.sync_ack")
	log.Info("sync ack consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("sync ack consumer stopped")
				return
			}
			log.Error("fetch sync ack message failed", zap.Error(err))
			continue
		}

		var ack events.BiometricSyncAck
		if err := json.Unmarshal(msg.Value, &ack); err != nil {
			log.Error("decode sync ack failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := biometricService.ProcessSyncAck(ctx, ack); err != nil {
			log.Error("process sync ack failed",
				zap.String("biometric_id", ack.BiometricID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit sync ack message failed", zap.Error(err))
		}
	}
}

func ConsumeEnrollResult(
	ctx context.Context,
	reader *kafkago.Reader,
	biometricService biometric.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.enroll_result")
	log.Info("enroll result consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("enroll result consumer stopped")
				return
			}
			log.Error("fetch enroll result failed", zap.Error(err))
			continue
		}

		var result events.EnrollResult
		if err := json.Unmarshal(msg.Value, &result); err != nil {
			log.Error("decode enroll result failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := biometricService.SaveEnrolled(ctx, result); err != nil {
			log.Error("store enroll result failed",
				zap.String("user_id", result.UserID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit enroll result failed", zap.Error(err))
		}
	}
}
