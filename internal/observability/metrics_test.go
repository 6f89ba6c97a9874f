package observability

import (
	"testing"
	"time"
)

func TestRegisterMetricsAndRecordersAreSafe(t *testing.T) {
	RegisterMetrics()
	RegisterMetrics()

	RecordFrameDecoded("bench-a", "telemetry", 18, 3*time.Microsecond)
	RecordFrameRejected("bench-a", "crc", 18)
	RecordPayloadFallback("bench-a", "telemetry")
	RecordFramesLost("bench-a", 3)
	RecordDuplicateFrame("bench-a")
	RecordHTTPRequest("bench-a", "GET", "/health", 200, 12*time.Millisecond)
}
