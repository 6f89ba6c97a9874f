package transport

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/ivsomov/beamlink/internal/beam"
)

func TestListenerReceivesFrameDatagram(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := make(chan []byte, 4)
	l, err := Listen(ctx, "127.0.0.1:0", out, WithReadTimeout(100*time.Millisecond))
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	sender, err := Dial(l.Addr().String())
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer sender.Close()

	want := beam.NewTelemetryFrame(1, 0, 10, 20, 30)
	if err := sender.Send(want); err != nil {
		t.Fatalf("send: %v", err)
	}

	select {
	case dgram := <-out:
		got, err := beam.Parse(dgram)
		if err != nil {
			t.Fatalf("parse received datagram: %v", err)
		}
		if got.Header != want.Header || got.Payload.Telemetry != want.Payload.Telemetry {
			t.Fatalf("frame mismatch: got=%+v want=%+v", got, want)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no datagram received")
	}
}

func TestListenerPassesCorruptBytesThrough(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := make(chan []byte, 4)
	l, err := Listen(ctx, "127.0.0.1:0", out, WithReadTimeout(100*time.Millisecond))
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	sender, err := Dial(l.Addr().String())
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer sender.Close()

	garbage := []byte{0xDE, 0xAD, 0xBE}
	if err := sender.SendRaw(garbage); err != nil {
		t.Fatalf("send raw: %v", err)
	}

	select {
	case dgram := <-out:
		if !bytes.Equal(dgram, garbage) {
			t.Fatalf("datagram altered: got=%x want=%x", dgram, garbage)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no datagram received")
	}
}
