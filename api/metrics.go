package api

import (
	"time"

	log "github.com/sirupsen/logrus"
)

type uploadRequestMetrics struct {
	logger       *log.Logger
	start        time.Time
	declaredSize int64
	storedName   string
	storedSize   int64
	errorStage   string
}

func newUploadRequestMetrics(logger *log.Logger) *uploadRequestMetrics {
	return &uploadRequestMetrics{
		logger: logger,
		start:  time.Now(),
	}
}

func (m *uploadRequestMetrics) SetDeclaredSize(size int64) {
	if size < 0 {
		return
	}
	m.declaredSize = size
}

func (m *uploadRequestMetrics) SetStored(name string, size int64) {
	m.storedName = name
	m.storedSize = size
}

func (m *uploadRequestMetrics) SetErrorStage(stage string) {
	if stage == "" {
		return
	}
	m.errorStage = stage
}

func (m *uploadRequestMetrics) Log(status int, err error) {
	if m == nil || m.logger == nil {
		return
	}

	fields := log.Fields{
		"route":    "/api/upload",
		"status":   status,
		"total_ms": durationToMillis(time.Since(m.start)),
	}

	if m.declaredSize > 0 {
		fields["declared_bytes"] = m.declaredSize
	}
	if m.storedName != "" {
		fields["stored_name"] = m.storedName
		fields["stored_bytes"] = m.storedSize
	}
	if m.errorStage != "" {
		fields["error_stage"] = m.errorStage
	}
	if err != nil {
		fields["error"] = err.Error()
	}

	m.logger.WithFields(fields).Info("upload.request.metrics")
}

func durationToMillis(d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return float64(d) / float64(time.Millisecond)
}
