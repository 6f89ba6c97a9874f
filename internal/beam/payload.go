package beam

import (
	"encoding/binary"
	"math"
)

// Fixed byte sizes of the typed payload variants on the wire.
const (
	TelemetrySize = 12
	BatterySize   = 5
)

// PayloadKind tags the active Payload variant.
type PayloadKind uint8

const (
	KindRaw PayloadKind = iota
	KindTelemetry
	KindBattery
)

// TelemetryPayload is the orientation variant: three little-endian
// IEEE-754 floats, 12 bytes, no padding.
type TelemetryPayload struct {
	Roll  float32
	Pitch float32
	Yaw   float32
}

// BatteryPayload is the battery status variant: 5 bytes little-endian.
type BatteryPayload struct {
	VoltageMV uint16
	CurrentMA uint16
	Percent   uint8
}

// Payload is a tagged variant selected by the header category. Exactly one
// member is active per Kind; unknown categories and declared lengths shorter
// than the typed size degrade to Raw.
type Payload struct {
	Kind      PayloadKind
	Telemetry TelemetryPayload
	Battery   BatteryPayload
	Raw       []byte
}

// decodePayload interprets src according to category. It never fails:
// short or unrecognized payloads are stored verbatim as Raw.
func decodePayload(category MsgCategory, src []byte) Payload {
	switch category {
	case CategoryTelemetry:
		if len(src) >= TelemetrySize {
			return Payload{Kind: KindTelemetry, Telemetry: TelemetryPayload{
				Roll:  math.Float32frombits(binary.LittleEndian.Uint32(src[0:4])),
				Pitch: math.Float32frombits(binary.LittleEndian.Uint32(src[4:8])),
				Yaw:   math.Float32frombits(binary.LittleEndian.Uint32(src[8:12])),
			}}
		}
	case CategoryBattery:
		if len(src) >= BatterySize {
			return Payload{Kind: KindBattery, Battery: BatteryPayload{
				VoltageMV: binary.LittleEndian.Uint16(src[0:2]),
				CurrentMA: binary.LittleEndian.Uint16(src[2:4]),
				Percent:   src[4],
			}}
		}
	}
	raw := make([]byte, len(src))
	copy(raw, src)
	return Payload{Kind: KindRaw, Raw: raw}
}

// encodePayload writes the active variant into dst (len(dst) is the declared
// payload length). Typed variants are re-encoded field by field; bytes past
// the fixed variant size are zeroed.
func encodePayload(p Payload, dst []byte) error {
	switch p.Kind {
	case KindTelemetry:
		if len(dst) < TelemetrySize {
			return ErrInvalidState
		}
		binary.LittleEndian.PutUint32(dst[0:4], math.Float32bits(p.Telemetry.Roll))
		binary.LittleEndian.PutUint32(dst[4:8], math.Float32bits(p.Telemetry.Pitch))
		binary.LittleEndian.PutUint32(dst[8:12], math.Float32bits(p.Telemetry.Yaw))
		zero(dst[TelemetrySize:])
	case KindBattery:
		if len(dst) < BatterySize {
			return ErrInvalidState
		}
		binary.LittleEndian.PutUint16(dst[0:2], p.Battery.VoltageMV)
		binary.LittleEndian.PutUint16(dst[2:4], p.Battery.CurrentMA)
		dst[4] = p.Battery.Percent
		zero(dst[BatterySize:])
	case KindRaw:
		if len(p.Raw) < len(dst) {
			return ErrInvalidState
		}
		copy(dst, p.Raw)
	default:
		return ErrInvalidState
	}
	return nil
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
