package beam

import (
	"bytes"
	"errors"
	"testing"

	"github.com/ivsomov/beamlink/internal/beam/crc16"
)

func TestSerializeBatteryWireLayout(t *testing.T) {
	f := NewBatteryFrame(0x2A, FlagPriority, 0x0E80, 0x01A4, 87)
	buf := make([]byte, FrameSize(BatterySize))
	n, err := Serialize(f, buf)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if n != FrameSize(BatterySize) {
		t.Fatalf("bytes written: got=%d want=%d", n, FrameSize(BatterySize))
	}

	want := []byte{
		byte(CategoryBattery), byte(FlagPriority), 0x2A, BatterySize,
		0x80, 0x0E, // voltage_mv LE
		0xA4, 0x01, // current_ma LE
		87,
	}
	if !bytes.Equal(buf[:HeaderSize+BatterySize], want) {
		t.Fatalf("wire layout mismatch:\n got=%x\nwant=%x", buf[:HeaderSize+BatterySize], want)
	}

	crc := crc16.Sum(buf[:HeaderSize+BatterySize])
	if buf[n-2] != byte(crc&0xFF) || buf[n-1] != byte(crc>>8) {
		t.Fatalf("crc not LSB-first: trailer=%x crc=0x%04X", buf[n-2:n], crc)
	}
}

func TestSerializeNilBuffer(t *testing.T) {
	if _, err := Serialize(NewBatteryFrame(0, 0, 0, 0, 0), nil); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestSerializeShortBuffer(t *testing.T) {
	f := NewTelemetryFrame(0, 0, 1, 2, 3)
	short := make([]byte, FrameSize(TelemetrySize)-1)
	if _, err := Serialize(f, short); !errors.Is(err, ErrInvalidSize) {
		t.Fatalf("expected ErrInvalidSize, got %v", err)
	}

	exact := make([]byte, FrameSize(TelemetrySize))
	if _, err := Serialize(f, exact); err != nil {
		t.Fatalf("exact-size buffer: %v", err)
	}
}

func TestSerializeOversizeLength(t *testing.T) {
	f := Frame{Header: Header{Category: CategoryBattery, Length: MaxPayloadSize + 1}}
	buf := make([]byte, FrameSize(MaxPayloadSize+1))
	if _, err := Serialize(f, buf); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestSerializeRawShorterThanDeclared(t *testing.T) {
	f := Frame{
		Header:  Header{Category: CategoryBattery, Length: 5},
		Payload: Payload{Kind: KindRaw, Raw: []byte{1, 2, 3}},
	}
	buf := make([]byte, FrameSize(5))
	if _, err := Serialize(f, buf); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestSerializeTypedShorterThanVariant(t *testing.T) {
	f := Frame{
		Header:  Header{Category: CategoryTelemetry, Length: 4},
		Payload: Payload{Kind: KindTelemetry},
	}
	buf := make([]byte, FrameSize(4))
	if _, err := Serialize(f, buf); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

// A typed variant carried in a longer declared payload zero-pads the tail so
// serialization is deterministic.
func TestSerializeTypedWithPaddedLength(t *testing.T) {
	f := Frame{
		Header:  Header{Category: CategoryBattery, Seq: 1, Length: 16},
		Payload: Payload{Kind: KindBattery, Battery: BatteryPayload{VoltageMV: 3700, CurrentMA: 200, Percent: 50}},
	}
	buf := make([]byte, FrameSize(16))
	for i := range buf {
		buf[i] = 0xFF
	}
	if _, err := Serialize(f, buf); err != nil {
		t.Fatalf("serialize: %v", err)
	}
	for i := HeaderSize + BatterySize; i < HeaderSize+16; i++ {
		if buf[i] != 0 {
			t.Fatalf("padding byte %d not zeroed: 0x%02X", i, buf[i])
		}
	}
}

func TestAppendFrame(t *testing.T) {
	prefix := []byte{0x01, 0x02}
	out, err := Append(NewBatteryFrame(5, 0, 3000, 100, 10), prefix)
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if !bytes.Equal(out[:2], prefix) {
		t.Fatalf("prefix clobbered: %x", out[:2])
	}
	if _, err := Parse(out[2:]); err != nil {
		t.Fatalf("parse appended frame: %v", err)
	}
}

func TestSerializeParseSerializeStable(t *testing.T) {
	first := mustSerialize(t, NewTelemetryFrame(11, FlagAckRequired, -0.5, 12.75, 180))
	parsed, err := Parse(first)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	second := mustSerialize(t, parsed)
	if !bytes.Equal(first, second) {
		t.Fatalf("re-serialization differs:\n first=%x\nsecond=%x", first, second)
	}
}
