package beam

import "fmt"

// Wire layout (extended profile), all multi-byte integers little-endian:
//
//	offset 0            category (1)
//	offset 1            flags    (1)
//	offset 2            seq      (1)
//	offset 3            length   (1)  payload byte count
//	offset 4            payload  (length)
//	offset 4+length     crc      (2)  CRC-16/CCITT over header+payload, LSB first
const (
	HeaderSize     = 4
	CRCSize        = 2
	MaxPayloadSize = 200
	MinFrameSize   = HeaderSize + CRCSize
)

// FrameSize returns the total wire size for the given payload length.
func FrameSize(payloadLen int) int {
	return HeaderSize + payloadLen + CRCSize
}

// MsgCategory selects how payload bytes are interpreted.
type MsgCategory uint8

const (
	CategoryTelemetry MsgCategory = 0
	CategoryBattery   MsgCategory = 1
)

func (c MsgCategory) String() string {
	switch c {
	case CategoryTelemetry:
		return "telemetry"
	case CategoryBattery:
		return "battery"
	default:
		return fmt.Sprintf("category-0x%02X", uint8(c))
	}
}

// Known reports whether the category maps to a typed payload variant.
func (c MsgCategory) Known() bool {
	return c == CategoryTelemetry || c == CategoryBattery
}

// Flags is the header bitmask.
type Flags uint8

const (
	FlagPriority    Flags = 1 << 0
	FlagAckRequired Flags = 1 << 1
)

// Header is the fixed 4-byte frame header.
type Header struct {
	Category MsgCategory
	Flags    Flags
	Seq      uint8
	Length   uint8
}

// Frame is one complete wire message.
type Frame struct {
	Header  Header
	Payload Payload
	CRC     uint16
}
