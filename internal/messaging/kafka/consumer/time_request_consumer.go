package consumer

import (
	"context"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/viniciusmecosta/spe-api/internal/events"
	"github.com/viniciusmecosta/spe-api/internal/messaging/kafka/producer"
)

// ConsumeTimeRequest answers device clock-sync requests. The device has
// no RTC battery and asks for wall time on every boot.
func ConsumeTimeRequest(
	ctx context.Context,
	reader *kafkago.Reader,
	publisher producer.DevicePublisher,
	loc *time.Location,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.time_request")
	log.Info("time request consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("time request consumer stopped")
				return
			}
			log.Error("fetch time request failed", zap.Error(err))
			continue
		}

		now := time.Now().In(loc)
		err = publisher.PublishTimeResponse(ctx, events.TimeResponse{
			Unix:      now.Unix(),
			Formatted: now.Format("2006-01-02 15:04:05"),
		})
		if err != nil {
			log.Error("publish time response failed", zap.Error(err))
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit time request failed", zap.Error(err))
		}
	}
}
