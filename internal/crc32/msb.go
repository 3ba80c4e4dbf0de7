package crc32

import (
	"github.com/chronos-tachyon/assert"
)

// Normal polynomials, used by UpdateMSB.
const (
	NormalIEEE       = 0x04c11db7
	NormalCastagnoli = 0x1edc6f41
)

var msbIEEE basicTable
var msbCastagnoli basicTable

func init() {
	makeMSBTable(&msbIEEE, NormalIEEE)
	makeMSBTable(&msbCastagnoli, NormalCastagnoli)
}

func makeMSBTable(t *basicTable, poly uint32) {
	for i := uint32(0); i < 256; i++ {
		sum := i << 24
		for j := 0; j < 8; j++ {
			if (sum & 0x80000000) != 0 {
				sum = (sum << 1) ^ poly
			} else {
				sum <<= 1
			}
		}
		t[i] = sum
	}
}

func msbTableFor(poly uint32) *basicTable {
	switch poly {
	case NormalIEEE:
		return &msbIEEE
	case NormalCastagnoli:
		return &msbCastagnoli
	default:
		assert.Raisef("unsupported polynomial %#08x", poly)
		return nil
	}
}

// UpdateMSB returns the result of shifting p, most significant bit first,
// into the CRC register sum using the given normal polynomial.  No
// inversion is applied to the input or output.
func UpdateMSB(poly uint32, sum uint32, p []byte) uint32 {
	t := msbTableFor(poly)
	for _, ch := range p {
		sum = t[byte(sum>>24)^ch] ^ (sum << 8)
	}
	return sum
}
