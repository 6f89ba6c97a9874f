package beam

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"
)

func TestDecodePayloadTelemetry(t *testing.T) {
	src := make([]byte, TelemetrySize)
	binary.LittleEndian.PutUint32(src[0:4], math.Float32bits(10.5))
	binary.LittleEndian.PutUint32(src[4:8], math.Float32bits(-4.25))
	binary.LittleEndian.PutUint32(src[8:12], math.Float32bits(270))

	p := decodePayload(CategoryTelemetry, src)
	if p.Kind != KindTelemetry {
		t.Fatalf("expected telemetry kind, got %d", p.Kind)
	}
	want := TelemetryPayload{Roll: 10.5, Pitch: -4.25, Yaw: 270}
	if p.Telemetry != want {
		t.Fatalf("telemetry mismatch: got=%+v want=%+v", p.Telemetry, want)
	}
}

func TestDecodePayloadBattery(t *testing.T) {
	src := []byte{0x84, 0x0E, 0x2C, 0x01, 64}
	p := decodePayload(CategoryBattery, src)
	if p.Kind != KindBattery {
		t.Fatalf("expected battery kind, got %d", p.Kind)
	}
	want := BatteryPayload{VoltageMV: 3716, CurrentMA: 300, Percent: 64}
	if p.Battery != want {
		t.Fatalf("battery mismatch: got=%+v want=%+v", p.Battery, want)
	}
}

func TestDecodePayloadUnknownCategory(t *testing.T) {
	src := []byte{1, 2, 3}
	p := decodePayload(MsgCategory(0xEE), src)
	if p.Kind != KindRaw || !bytes.Equal(p.Raw, src) {
		t.Fatalf("expected raw copy, got %+v", p)
	}
}

func TestDecodePayloadShortTypedDegradesToRaw(t *testing.T) {
	short := []byte{1, 2, 3, 4}
	for _, cat := range []MsgCategory{CategoryTelemetry, CategoryBattery} {
		p := decodePayload(cat, short)
		if p.Kind != KindRaw || !bytes.Equal(p.Raw, short) {
			t.Fatalf("category %d: expected raw fallback, got %+v", cat, p)
		}
	}
}

func TestDecodePayloadCopiesInput(t *testing.T) {
	src := []byte{9, 8, 7}
	p := decodePayload(MsgCategory(0xEE), src)
	src[0] = 0
	if p.Raw[0] != 9 {
		t.Fatalf("raw payload aliases caller buffer")
	}
}

func TestDecodePayloadOversizedTypedStillTyped(t *testing.T) {
	src := make([]byte, TelemetrySize+8)
	p := decodePayload(CategoryTelemetry, src)
	if p.Kind != KindTelemetry {
		t.Fatalf("expected telemetry kind for padded payload, got %d", p.Kind)
	}
}

func TestEncodePayloadUnknownKind(t *testing.T) {
	dst := make([]byte, 4)
	if err := encodePayload(Payload{Kind: PayloadKind(9)}, dst); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}
