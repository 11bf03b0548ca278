package consumer

import (
	"context"
	"encoding/json"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/viniciusmecosta/spe-api/internal/events"
	"github.com/viniciusmecosta/spe-api/internal/messaging/kafka/producer"
	"github.com/viniciusmecosta/spe-api/internal/punch"
)

// ConsumeDevicePunch drains the punch topic. Every message gets a
// feedback frame back, including rejected and malformed ones: the device
// blocks its display waiting for a response.
func ConsumeDevicePunch(
	ctx context.Context,
	reader *kafkago.Reader,
	punchService punch.Service,
	publisher producer.DevicePublisher,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.device_punch")
	log.Info("device punch consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("device punch consumer stopped")
				return
			}
			log.Error("fetch punch message failed", zap.Error(err))
			continue
		}

		var event events.PunchMessage
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode punch message failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		result, err := punchService.Ingest(ctx, event.RequestID, event.SensorIndex, event.TimestampDevice)
		if err != nil {
			log.Warn("punch rejected",
				zap.String("request_id", event.RequestID),
				zap.Int("sensor_index", event.SensorIndex),
				zap.Error(err),
			)
		}

		feedback := punch.FeedbackFor(event.RequestID, result, err)
		if err := publisher.PublishFeedback(ctx, feedback); err != nil {
			log.Error("publish feedback failed",
				zap.String("request_id", event.RequestID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit punch message failed", zap.Error(err))
		}
	}
}
