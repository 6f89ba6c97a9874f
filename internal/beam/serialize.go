package beam

import (
	"encoding/binary"

	"github.com/ivsomov/beamlink/internal/beam/crc16"
)

// Serialize encodes f into dst and returns the number of bytes written.
//
// The header length must not exceed MaxPayloadSize (ErrInvalidState) and dst
// must hold the full frame (ErrInvalidSize). The CRC is computed over
// header+payload and written LSB first; f.CRC is not consulted.
func Serialize(f Frame, dst []byte) (int, error) {
	if dst == nil {
		return 0, ErrInvalidArgument
	}
	if int(f.Header.Length) > MaxPayloadSize {
		return 0, ErrInvalidState
	}
	need := FrameSize(int(f.Header.Length))
	if len(dst) < need {
		return 0, ErrInvalidSize
	}

	dst[0] = byte(f.Header.Category)
	dst[1] = byte(f.Header.Flags)
	dst[2] = f.Header.Seq
	dst[3] = f.Header.Length

	end := HeaderSize + int(f.Header.Length)
	if err := encodePayload(f.Payload, dst[HeaderSize:end]); err != nil {
		return 0, err
	}

	binary.LittleEndian.PutUint16(dst[end:end+CRCSize], crc16.Sum(dst[:end]))
	return need, nil
}

// Append serializes f and appends the encoded frame to dst.
func Append(f Frame, dst []byte) ([]byte, error) {
	buf := make([]byte, FrameSize(int(f.Header.Length)))
	n, err := Serialize(f, buf)
	if err != nil {
		return dst, err
	}
	return append(dst, buf[:n]...), nil
}
