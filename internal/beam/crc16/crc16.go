// Package crc16 computes the CRC-16/CCITT checksum used by BEAM frames.
//
// Parameters: polynomial 0x1021, initial register 0xFFFF, MSB-first,
// no reflection, no final XOR. Every Engine implementation must be
// bit-identical to Bitwise on the same input.
package crc16

const (
	// Poly is the CRC-16/CCITT generator polynomial.
	Poly uint16 = 0x1021
	// Seed is the initial register value.
	Seed uint16 = 0xFFFF
)

// Engine computes a 16-bit checksum over an arbitrary byte range.
type Engine interface {
	Sum(data []byte) uint16
}

// Update folds one byte into crc, MSB-first.
func Update(crc uint16, b byte) uint16 {
	crc ^= uint16(b) << 8
	for i := 0; i < 8; i++ {
		if crc&0x8000 != 0 {
			crc = crc<<1 ^ Poly
		} else {
			crc <<= 1
		}
	}
	return crc
}

// Bitwise is the reference implementation, one bit at a time.
type Bitwise struct{}

func (Bitwise) Sum(data []byte) uint16 {
	crc := Seed
	for _, b := range data {
		crc = Update(crc, b)
	}
	return crc
}

// Table is a byte-at-a-time lookup implementation.
type Table struct{}

var table [256]uint16

func init() {
	for i := range table {
		table[i] = Update(0, byte(i))
	}
}

func (Table) Sum(data []byte) uint16 {
	crc := Seed
	for _, b := range data {
		crc = crc<<8 ^ table[byte(crc>>8)^b]
	}
	return crc
}

// Sum computes the checksum with the default engine.
func Sum(data []byte) uint16 {
	return Table{}.Sum(data)
}
