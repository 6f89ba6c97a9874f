// Package transport moves BEAM frames over UDP datagrams, one frame per
// datagram, with no delivery or integrity guarantees. It stands in for the
// radio on a bench: corruption and loss are surfaced to the link layer as-is.
package transport

import (
	"context"
	"net"
	"time"

	"github.com/ivsomov/beamlink/internal/beam"
)

// MaxDatagramSize bounds one received datagram. A full extended-profile
// frame is 206 bytes; the buffer leaves headroom for oversized garbage so
// the parser, not the transport, rejects it.
const MaxDatagramSize = 512

// Listener receives datagrams and forwards them on a caller-owned channel.
type Listener struct {
	conn         net.PacketConn
	out          chan<- []byte
	readTimeout  time.Duration
	errorHandler func(error)
}

type Option func(*Listener)

func WithReadTimeout(d time.Duration) Option {
	return func(l *Listener) {
		if d > 0 {
			l.readTimeout = d
		}
	}
}

func WithErrorHandler(fn func(error)) Option {
	return func(l *Listener) {
		if fn != nil {
			l.errorHandler = fn
		}
	}
}

// Listen binds addr and forwards every received datagram to out until ctx is
// cancelled. The channel is never closed by the listener.
func Listen(ctx context.Context, addr string, out chan<- []byte, opts ...Option) (*Listener, error) {
	conn, err := net.ListenPacket("udp", addr)
	if err != nil {
		return nil, err
	}
	l := &Listener{
		conn:        conn,
		out:         out,
		readTimeout: 1 * time.Second,
	}
	for _, opt := range opts {
		opt(l)
	}
	go l.run(ctx)
	return l, nil
}

// Addr reports the bound local address.
func (l *Listener) Addr() net.Addr {
	return l.conn.LocalAddr()
}

func (l *Listener) run(ctx context.Context) {
	defer l.conn.Close()
	buf := make([]byte, MaxDatagramSize)
	for {
		if ctx.Err() != nil {
			return
		}
		_ = l.conn.SetReadDeadline(time.Now().Add(l.readTimeout))
		n, _, err := l.conn.ReadFrom(buf)
		if err != nil {
			if nerr, ok := err.(net.Error); ok && nerr.Timeout() {
				continue
			}
			if ctx.Err() != nil {
				return
			}
			l.handleError(err)
			continue
		}
		if n == 0 {
			continue
		}
		dgram := append([]byte(nil), buf[:n]...)
		select {
		case l.out <- dgram:
		case <-ctx.Done():
			return
		}
	}
}

func (l *Listener) handleError(err error) {
	if l.errorHandler != nil {
		l.errorHandler(err)
	}
}

// Sender writes frames to one peer.
type Sender struct {
	conn net.Conn
}

func Dial(addr string) (*Sender, error) {
	conn, err := net.Dial("udp", addr)
	if err != nil {
		return nil, err
	}
	return &Sender{conn: conn}, nil
}

// Send serializes f and writes it as a single datagram.
func (s *Sender) Send(f beam.Frame) error {
	buf, err := beam.Append(f, nil)
	if err != nil {
		return err
	}
	_, err = s.conn.Write(buf)
	return err
}

// SendRaw writes b verbatim, corrupted frames included.
func (s *Sender) SendRaw(b []byte) error {
	_, err := s.conn.Write(b)
	return err
}

func (s *Sender) Close() error {
	return s.conn.Close()
}
