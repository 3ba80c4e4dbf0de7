// Package crc32 implements 32-bit cyclic redundancy checks for the IEEE and
// Castagnoli polynomials, in both the reflected (least significant bit
// first) and normal (most significant bit first) bit orders.
package crc32

import (
	"encoding/binary"
	"hash"
	"sync"

	"github.com/chronos-tachyon/assert"
)

const Size = 4

// Reflected polynomials, used by Update and Checksum.
const (
	IEEE       = 0xedb88320
	Castagnoli = 0x82f63b78
)

type basicTable [256]uint32

type slicingTable [8]basicTable

var ieee slicingTable
var castagnoli slicingTable

var gArchOnce sync.Once
var gArchOkay bool

func init() {
	makeSlicingTable(&ieee, IEEE)
	makeSlicingTable(&castagnoli, Castagnoli)
}

func makeSlicingTable(t *slicingTable, poly uint32) {
	for i := uint32(0); i < 256; i++ {
		sum := i
		for j := 0; j < 8; j++ {
			if (sum & 1) == 1 {
				sum = (sum >> 1) ^ poly
			} else {
				sum >>= 1
			}
		}
		t[0][i] = sum
	}
	for i := uint32(0); i < 256; i++ {
		sum := t[0][i]
		for j := 1; j < 8; j++ {
			sum = t[0][sum&0xff] ^ (sum >> 8)
			t[j][i] = sum
		}
	}
}

func tableFor(poly uint32) *slicingTable {
	switch poly {
	case IEEE:
		return &ieee
	case Castagnoli:
		return &castagnoli
	default:
		assert.Raisef("unsupported polynomial %#08x", poly)
		return nil
	}
}

// Update returns the result of adding p to the running checksum sum, using
// the given reflected polynomial.  The input and output are bit-inverted.
func Update(poly uint32, sum uint32, p []byte) uint32 {
	gArchOnce.Do(func() {
		gArchOkay = archAvailable()
	})
	if gArchOkay {
		return archUpdate(poly, sum, p)
	}
	return genericUpdate(tableFor(poly), sum, p)
}

// Checksum returns the checksum of p using the given reflected polynomial.
func Checksum(poly uint32, p []byte) uint32 {
	return Update(poly, 0, p)
}

func genericUpdate(t *slicingTable, sum uint32, p []byte) uint32 {
	length := uint(len(p))
	if length == 0 {
		return sum
	}
	sum = ^sum
	if length >= 16 {
		for length >= 8 {
			sum ^= binary.LittleEndian.Uint32(p)
			sum = (t[0][p[7]] ^
				t[1][p[6]] ^
				t[2][p[5]] ^
				t[3][p[4]] ^
				t[4][sum>>24] ^
				t[5][(sum>>16)&0xff] ^
				t[6][(sum>>8)&0xff] ^
				t[7][sum&0xff])
			p = p[8:]
			length -= 8
		}
	}
	for _, ch := range p {
		sum = t[0][byte(sum)^ch] ^ (sum >> 8)
	}
	sum = ^sum
	return sum
}

// Hash computes a CRC-32 incrementally.
type Hash struct {
	poly uint32
	init uint32
	sum  uint32
	msb  bool
}

// New returns a Hash for the given reflected polynomial, equivalent to
// Checksum.
func New(poly uint32) *Hash {
	tableFor(poly)
	return &Hash{poly: poly}
}

// NewMSB returns a Hash for the given normal polynomial, equivalent to
// UpdateMSB with the register starting at all ones.
func NewMSB(poly uint32) *Hash {
	msbTableFor(poly)
	return &Hash{poly: poly, init: 0xffffffff, sum: 0xffffffff, msb: true}
}

func (h *Hash) Size() int      { return Size }
func (h *Hash) BlockSize() int { return 1 }

func (h *Hash) Reset() {
	h.sum = h.init
}

func (h *Hash) Write(p []byte) (int, error) {
	if h.msb {
		h.sum = UpdateMSB(h.poly, h.sum, p)
	} else {
		h.sum = Update(h.poly, h.sum, p)
	}
	return len(p), nil
}

func (h *Hash) Sum(slice []byte) []byte {
	var tmp [Size]byte
	binary.BigEndian.PutUint32(tmp[:], h.Sum32())
	return append(slice, tmp[:]...)
}

func (h *Hash) Sum32() uint32 {
	return h.sum
}

var _ hash.Hash32 = (*Hash)(nil)
