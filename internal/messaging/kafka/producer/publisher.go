package producer

import (
	"context"
	"encoding/json"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/viniciusmecosta/spe-api/internal/events"
)

// DevicePublisher is the engine-to-device half of the channel. Every
// payload is JSON; the key carries the correlation id so a device can
// consume partition-ordered responses.
//
//go:generate mockgen -source=publisher.go -destination=mock/publisher_mock.go -package=mock
type DevicePublisher interface {
	PublishFeedback(ctx context.Context, feedback events.FeedbackMessage) error
	PublishSyncData(ctx context.Context, data events.BiometricSyncData) error
	PublishSyncEnd(ctx context.Context, end events.SyncEnd) error
	PublishTimeResponse(ctx context.Context, resp events.TimeResponse) error
}

type devicePublisher struct {
	writer *kafkago.Writer
}

func NewDevicePublisher(writer *kafkago.Writer) DevicePublisher {
	return &devicePublisher{writer: writer}
}

func (p *devicePublisher) publish(ctx context.Context, topic, key string, payload any) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafkago.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: value,
	})
}

func (p *devicePublisher) PublishFeedback(ctx context.Context, feedback events.FeedbackMessage) error {
	return p.publish(ctx, events.FeedbackTopic, feedback.RequestID, feedback)
}

func (p *devicePublisher) PublishSyncData(ctx context.Context, data events.BiometricSyncData) error {
	return p.publish(ctx, events.SyncDataTopic, data.BiometricID, data)
}

func (p *devicePublisher) PublishSyncEnd(ctx context.Context, end events.SyncEnd) error {
	return p.publish(ctx, events.SyncEndTopic, "sync", end)
}

func (p *devicePublisher) PublishTimeResponse(ctx context.Context, resp events.TimeResponse) error {
	return p.publish(ctx, events.TimeResponseTopic, "time", resp)
}
