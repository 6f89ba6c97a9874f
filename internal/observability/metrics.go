package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	framesDecoded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "beamlink",
			Subsystem: "link",
			Name:      "frames_decoded_total",
			Help:      "Frames that passed size and CRC validation.",
		},
		[]string{"node", "category"},
	)
	framesRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "beamlink",
			Subsystem: "link",
			Name:      "frames_rejected_total",
			Help:      "Frames rejected during parsing.",
		},
		[]string{"node", "reason"},
	)
	payloadFallbacks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "beamlink",
			Subsystem: "link",
			Name:      "payload_fallback_total",
			Help:      "Known-category frames decoded as raw because the declared length was short.",
		},
		[]string{"node", "category"},
	)
	framesLost = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "beamlink",
			Subsystem: "link",
			Name:      "frames_lost_total",
			Help:      "Sequence gaps observed between accepted frames.",
		},
		[]string{"node"},
	)
	framesDuplicate = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "beamlink",
			Subsystem: "link",
			Name:      "frames_duplicate_total",
			Help:      "Frames dropped as sequence duplicates.",
		},
		[]string{"node"},
	)
	bytesReceived = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "beamlink",
			Subsystem: "link",
			Name:      "bytes_received_total",
			Help:      "Datagram bytes handed to the parser.",
		},
		[]string{"node"},
	)
	decodeDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "beamlink",
			Subsystem: "link",
			Name:      "decode_duration_seconds",
			Help:      "Frame parse duration in seconds.",
			Buckets:   prometheus.ExponentialBuckets(1e-7, 4, 10),
		},
		[]string{"node"},
	)
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "beamlink",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests on the monitor surface.",
		},
		[]string{"node", "method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "beamlink",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"node", "method", "path", "status"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			framesDecoded, framesRejected, payloadFallbacks,
			framesLost, framesDuplicate, bytesReceived, decodeDuration,
			httpRequests, httpDuration,
		)
	})
}

func RecordFrameDecoded(node, category string, size int, duration time.Duration) {
	RegisterMetrics()
	framesDecoded.WithLabelValues(node, category).Inc()
	bytesReceived.WithLabelValues(node).Add(float64(size))
	decodeDuration.WithLabelValues(node).Observe(duration.Seconds())
}

func RecordFrameRejected(node, reason string, size int) {
	RegisterMetrics()
	framesRejected.WithLabelValues(node, reason).Inc()
	bytesReceived.WithLabelValues(node).Add(float64(size))
}

func RecordPayloadFallback(node, category string) {
	RegisterMetrics()
	payloadFallbacks.WithLabelValues(node, category).Inc()
}

func RecordFramesLost(node string, n int) {
	RegisterMetrics()
	framesLost.WithLabelValues(node).Add(float64(n))
}

func RecordDuplicateFrame(node string) {
	RegisterMetrics()
	framesDuplicate.WithLabelValues(node).Inc()
}

func RecordHTTPRequest(node, method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(node, method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(node, method, path, statusLabel).Observe(duration.Seconds())
}
