// Package crc16 implements the 16-bit CRC with polynomial 0x1021, computed
// most significant bit first.
package crc16

import (
	"encoding/binary"
	"hash"
)

const Size = 2

// CCITT is the normal form of the polynomial x^16 + x^12 + x^5 + 1.
const CCITT = 0x1021

// Init is the register value a computation starts from.
const Init = 0xffff

var table [256]uint16

func init() {
	for i := uint16(0); i < 256; i++ {
		sum := i << 8
		for j := 0; j < 8; j++ {
			if (sum & 0x8000) != 0 {
				sum = (sum << 1) ^ CCITT
			} else {
				sum <<= 1
			}
		}
		table[i] = sum
	}
}

// Update shifts p into the CRC register sum.  No inversion is applied.
func Update(sum uint16, p []byte) uint16 {
	for _, ch := range p {
		sum = table[byte(sum>>8)^ch] ^ (sum << 8)
	}
	return sum
}

// Checksum returns the CRC of p, starting from Init.
func Checksum(p []byte) uint16 {
	return Update(Init, p)
}

type Hash struct {
	sum uint16
}

func New() *Hash {
	return &Hash{sum: Init}
}

func (h *Hash) Size() int      { return Size }
func (h *Hash) BlockSize() int { return 1 }

func (h *Hash) Reset() {
	h.sum = Init
}

func (h *Hash) Write(p []byte) (int, error) {
	h.sum = Update(h.sum, p)
	return len(p), nil
}

func (h *Hash) Sum(slice []byte) []byte {
	var tmp [Size]byte
	binary.BigEndian.PutUint16(tmp[:], h.sum)
	return append(slice, tmp[:]...)
}

func (h *Hash) Sum16() uint16 {
	return h.sum
}

var _ hash.Hash = (*Hash)(nil)
