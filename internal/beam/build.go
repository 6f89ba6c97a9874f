package beam

// NewTelemetryFrame builds an orientation frame ready to serialize.
func NewTelemetryFrame(seq uint8, flags Flags, roll, pitch, yaw float32) Frame {
	return Frame{
		Header: Header{
			Category: CategoryTelemetry,
			Flags:    flags,
			Seq:      seq,
			Length:   TelemetrySize,
		},
		Payload: Payload{
			Kind:      KindTelemetry,
			Telemetry: TelemetryPayload{Roll: roll, Pitch: pitch, Yaw: yaw},
		},
	}
}

// NewBatteryFrame builds a battery status frame ready to serialize.
func NewBatteryFrame(seq uint8, flags Flags, voltageMV, currentMA uint16, percent uint8) Frame {
	return Frame{
		Header: Header{
			Category: CategoryBattery,
			Flags:    flags,
			Seq:      seq,
			Length:   BatterySize,
		},
		Payload: Payload{
			Kind:    KindBattery,
			Battery: BatteryPayload{VoltageMV: voltageMV, CurrentMA: currentMA, Percent: percent},
		},
	}
}

// NewRawFrame builds a frame carrying opaque payload bytes.
func NewRawFrame(category MsgCategory, seq uint8, flags Flags, payload []byte) (Frame, error) {
	if len(payload) > MaxPayloadSize {
		return Frame{}, ErrInvalidState
	}
	raw := make([]byte, len(payload))
	copy(raw, payload)
	return Frame{
		Header: Header{
			Category: category,
			Flags:    flags,
			Seq:      seq,
			Length:   uint8(len(payload)),
		},
		Payload: Payload{Kind: KindRaw, Raw: raw},
	}, nil
}
