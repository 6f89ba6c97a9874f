package beam

import (
	"encoding/binary"

	"github.com/ivsomov/beamlink/internal/beam/crc16"
)

// Parse validates and decodes one raw frame buffer.
//
// Checks run in a fixed order: buffer presence and minimum size, declared
// payload length against MaxPayloadSize, buffer size against the declared
// frame size, then CRC. On any failure the zero Frame is returned with the
// error; a returned Frame is always fully populated.
func Parse(data []byte) (Frame, error) {
	if data == nil {
		return Frame{}, ErrInvalidArgument
	}
	if len(data) < MinFrameSize {
		return Frame{}, ErrInvalidSize
	}

	length := data[3]
	if int(length) > MaxPayloadSize {
		return Frame{}, ErrInvalidSize
	}
	if len(data) < FrameSize(int(length)) {
		return Frame{}, ErrInvalidSize
	}

	end := HeaderSize + int(length)
	received := binary.LittleEndian.Uint16(data[end : end+CRCSize])
	if crc16.Sum(data[:end]) != received {
		return Frame{}, ErrInvalidCRC
	}

	f := Frame{
		Header: Header{
			Category: MsgCategory(data[0]),
			Flags:    Flags(data[1]),
			Seq:      data[2],
			Length:   length,
		},
		CRC: received,
	}
	f.Payload = decodePayload(f.Header.Category, data[HeaderSize:end])
	return f, nil
}
