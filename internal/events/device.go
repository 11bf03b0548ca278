package events

import "unicode/utf8"

// Topics of the device channel. The embedded reader on the other side is
// an ESP32 with a fingerprint sensor and a 2x16 character display.
const (
	PunchTopic        = "timeclock.device.punch.v1"
	FeedbackTopic     = "timeclock.device.feedback.v1"
	TimeRequestTopic  = "timeclock.device.time.req.v1"
	TimeResponseTopic = "timeclock.device.time.resp.v1"
	SyncStartTopic    = "timeclock.admin.sync.start.v1"
	SyncDataTopic     = "timeclock.admin.sync.data.v1"
	SyncAckTopic      = "timeclock.admin.sync.ack.v1"
	SyncEndTopic      = "timeclock.admin.sync.end.v1"
	EnrollResultTopic = "timeclock.admin.enroll.result.v1"
)

// deviceLineWidth is the display width. Longer strings are truncated,
// never rejected: the device must always get a renderable frame.
const deviceLineWidth = 16

type PunchMessage struct {
	RequestID       string `json:"request_id"`
	SensorIndex     int    `json:"sensor_index"`
	TimestampDevice int64  `json:"timestamp_device"`
}

type DeviceActions struct {
	LedColor         string `json:"led_color"`
	LedDurationMs    int    `json:"led_duration_ms"`
	BuzzerPattern    int    `json:"buzzer_pattern"`
	BuzzerDurationMs int    `json:"buzzer_duration_ms"`
}

type FeedbackMessage struct {
	RequestID string        `json:"request_id"`
	Line1     string        `json:"line1"`
	Line2     string        `json:"line2"`
	Actions   DeviceActions `json:"actions"`
}

type TimeResponse struct {
	Unix      int64  `json:"unix"`
	Formatted string `json:"formatted"`
}

type BiometricSyncData struct {
	BiometricID  string `json:"biometric_id"`
	TemplateData string `json:"template_data"`
	UserID       string `json:"user_id"`
}

type BiometricSyncAck struct {
	BiometricID string `json:"biometric_id"`
	SensorIndex int    `json:"sensor_index"`
	Success     bool   `json:"success"`
	Error       string `json:"error,omitempty"`
}

type SyncEnd struct {
	Total int `json:"total"`
}

type EnrollResult struct {
	RequestID    string `json:"request_id,omitempty"`
	UserID       string `json:"user_id"`
	SensorIndex  int    `json:"sensor_index"`
	Success      bool   `json:"success"`
	TemplateData string `json:"template_data,omitempty"`
	Error        string `json:"error,omitempty"`
}

// TruncateLine enforces the display width on a feedback line. The cut is
// by rune, not byte: accented names must never leave a half-encoded rune
// on the wire.
func TruncateLine(s string) string {
	if utf8.RuneCountInString(s) <= deviceLineWidth {
		return s
	}
	return string([]rune(s)[:deviceLineWidth])
}

// NewFeedback builds a display frame with both lines truncated.
func NewFeedback(requestID, line1, line2 string, actions DeviceActions) FeedbackMessage {
	return FeedbackMessage{
		RequestID: requestID,
		Line1:     TruncateLine(line1),
		Line2:     TruncateLine(line2),
		Actions:   actions,
	}
}

// SuccessActions is the green-LED short-beep pattern used on accepted punches.
func SuccessActions() DeviceActions {
	return DeviceActions{LedColor: "green", LedDurationMs: 3000, BuzzerPattern: 1, BuzzerDurationMs: 500}
}

// ErrorActions is the red-LED long-beep pattern used on rejections.
func ErrorActions() DeviceActions {
	return DeviceActions{LedColor: "red", LedDurationMs: 3000, BuzzerPattern: 2, BuzzerDurationMs: 1000}
}
