// Package link implements the caller-side duties the codec leaves open:
// sequence tracking across the wrapping counter, duplicate drops, and
// surfacing of ack-required frames. One Session per transport peer.
package link

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/ivsomov/beamlink/internal/beam"
	"github.com/ivsomov/beamlink/internal/observability"
)

// ErrDuplicateFrame reports a frame whose sequence number matches the
// previously accepted one. The frame is still returned for inspection.
var ErrDuplicateFrame = errors.New("link: duplicate frame")

// Handler receives every accepted frame in feed order.
type Handler func(beam.Frame)

// Stats is a point-in-time snapshot of session counters.
type Stats struct {
	Received   uint64 `json:"received"`
	Rejected   uint64 `json:"rejected"`
	CRCErrors  uint64 `json:"crc_errors"`
	SizeErrors uint64 `json:"size_errors"`
	Lost       uint64 `json:"lost"`
	Duplicates uint64 `json:"duplicates"`
	Fallbacks  uint64 `json:"fallbacks"`
}

// Session decodes datagrams for one peer and tracks link health.
// Feed may be called from one goroutine; snapshots are safe from any.
type Session struct {
	node    string
	log     zerolog.Logger
	handler Handler
	acker   Handler

	mu            sync.Mutex
	started       bool
	lastSeq       uint8
	stats         Stats
	lastTelemetry beam.TelemetryPayload
	haveTelemetry bool
	lastBattery   beam.BatteryPayload
	haveBattery   bool
}

type Option func(*Session)

// WithHandler sets the callback invoked for every accepted frame.
func WithHandler(h Handler) Option {
	return func(s *Session) {
		if h != nil {
			s.handler = h
		}
	}
}

// WithAckHandler sets the callback invoked for frames carrying FlagAckRequired.
func WithAckHandler(h Handler) Option {
	return func(s *Session) {
		if h != nil {
			s.acker = h
		}
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *Session) {
		s.log = l
	}
}

func NewSession(node string, opts ...Option) *Session {
	s := &Session{
		node: node,
		log:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Feed parses one datagram and runs it through sequence accounting.
// Rejected datagrams return the parse error; duplicates return the decoded
// frame together with ErrDuplicateFrame and are not handed to the handler.
func (s *Session) Feed(datagram []byte) (beam.Frame, error) {
	start := time.Now()
	frame, err := beam.Parse(datagram)
	if err != nil {
		s.recordRejection(datagram, err)
		return beam.Frame{}, err
	}
	observability.RecordFrameDecoded(s.node, frame.Header.Category.String(), len(datagram), time.Since(start))

	fallback := frame.Header.Category.Known() && frame.Payload.Kind == beam.KindRaw
	if fallback {
		observability.RecordPayloadFallback(s.node, frame.Header.Category.String())
	}

	s.mu.Lock()
	s.stats.Received++
	if fallback {
		s.stats.Fallbacks++
	}
	if s.started && frame.Header.Seq == s.lastSeq {
		s.stats.Duplicates++
		s.mu.Unlock()
		observability.RecordDuplicateFrame(s.node)
		s.log.Debug().Uint8("seq", frame.Header.Seq).Msg("duplicate frame dropped")
		return frame, ErrDuplicateFrame
	}
	lost := 0
	if s.started {
		// uint8 subtraction wraps, so gaps across 255->0 count correctly.
		lost = int(frame.Header.Seq-s.lastSeq) - 1
		s.stats.Lost += uint64(lost)
	}
	s.started = true
	s.lastSeq = frame.Header.Seq

	switch frame.Payload.Kind {
	case beam.KindTelemetry:
		s.lastTelemetry = frame.Payload.Telemetry
		s.haveTelemetry = true
	case beam.KindBattery:
		s.lastBattery = frame.Payload.Battery
		s.haveBattery = true
	}
	s.mu.Unlock()

	if lost > 0 {
		observability.RecordFramesLost(s.node, lost)
		s.log.Warn().Int("lost", lost).Uint8("seq", frame.Header.Seq).Msg("sequence gap")
	}
	if frame.Header.Flags&beam.FlagAckRequired != 0 && s.acker != nil {
		s.acker(frame)
	}
	if s.handler != nil {
		s.handler(frame)
	}
	return frame, nil
}

func (s *Session) recordRejection(datagram []byte, err error) {
	reason := "argument"
	s.mu.Lock()
	s.stats.Rejected++
	switch {
	case errors.Is(err, beam.ErrInvalidCRC):
		s.stats.CRCErrors++
		reason = "crc"
	case errors.Is(err, beam.ErrInvalidSize):
		s.stats.SizeErrors++
		reason = "size"
	}
	s.mu.Unlock()

	observability.RecordFrameRejected(s.node, reason, len(datagram))
	s.log.Warn().Err(err).Int("bytes", len(datagram)).Msg("frame rejected")
}

// Stats returns a snapshot of the session counters.
func (s *Session) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// LastTelemetry returns the most recent decoded orientation, if any.
func (s *Session) LastTelemetry() (beam.TelemetryPayload, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastTelemetry, s.haveTelemetry
}

// LastBattery returns the most recent decoded battery status, if any.
func (s *Session) LastBattery() (beam.BatteryPayload, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastBattery, s.haveBattery
}
