package crcdriver

import (
	"fmt"

	"github.com/chronos-tachyon/enumhelper"
)

// Algorithm indicates which CRC algorithm a client wants computed over its
// buffer.
//
// In the polynomial values below, more-significant bits correspond to
// higher-order terms, and the most significant bit is omitted because it
// always equals one.  The SAM4L algorithms consume each input byte from
// most-significant bit to least-significant and start from an all-ones
// register.
//
type Algorithm byte

const (
	// CRC32Algorithm is the CRC-32 used by Ethernet and many other
	// applications.  Polynomial 0x04C11DB7.  The output is bit-reversed
	// and then bit-inverted; the check value of "123456789" is
	// 0xCBF43926.
	CRC32Algorithm Algorithm = iota

	// CRC32CAlgorithm is CRC-32C, due to Castagnoli.  Polynomial
	// 0x1EDC6F41.  The output is bit-reversed and then bit-inverted; the
	// check value of "123456789" is 0xE3069283.
	CRC32CAlgorithm

	// SAM4L16Algorithm is a sixteen-bit CRC with polynomial 0x1021 and no
	// post-processing.  The CRC is placed in the low-order bits of the
	// result and the high-order bits are all set, so results always have
	// the form 0xFFFFxxxx.
	SAM4L16Algorithm

	// SAM4L32Algorithm uses the CRC-32 polynomial with no post-processing
	// of the output value.
	SAM4L32Algorithm

	// SAM4L32CAlgorithm uses the CRC-32C polynomial with no
	// post-processing of the output value.
	SAM4L32CAlgorithm

	// DefaultAlgorithm is the Algorithm used when none is specified.
	DefaultAlgorithm = CRC32Algorithm
)

var algorithmData = []enumhelper.EnumData{
	{GoName: "CRC32Algorithm", Name: "crc32", Aliases: []string{"crc-32", strDefault}},
	{GoName: "CRC32CAlgorithm", Name: "crc32c", Aliases: []string{"crc-32c"}},
	{GoName: "SAM4L16Algorithm", Name: "sam4l-16", Aliases: []string{"sam4l16"}},
	{GoName: "SAM4L32Algorithm", Name: "sam4l-32", Aliases: []string{"sam4l32"}},
	{GoName: "SAM4L32CAlgorithm", Name: "sam4l-32c", Aliases: []string{"sam4l32c"}},
}

var algorithmPolynomials = [...]uint32{
	CRC32Algorithm:    0x04c11db7,
	CRC32CAlgorithm:   0x1edc6f41,
	SAM4L16Algorithm:  0x1021,
	SAM4L32Algorithm:  0x04c11db7,
	SAM4L32CAlgorithm: 0x1edc6f41,
}

// AlgorithmFromSelector maps the numeric selector passed by a client to the
// Algorithm it names.  Returns false for any unrecognized selector.
func AlgorithmFromSelector(selector uint) (Algorithm, bool) {
	if selector > uint(SAM4L32CAlgorithm) {
		return 0, false
	}
	return Algorithm(selector), true
}

// IsValid returns true if alg is a valid Algorithm constant.
func (alg Algorithm) IsValid() bool {
	return alg >= CRC32Algorithm && alg <= SAM4L32CAlgorithm
}

// Selector returns the numeric selector which clients use to request alg.
func (alg Algorithm) Selector() uint {
	return uint(alg)
}

// Polynomial returns the generator polynomial of alg, with the implied
// most significant bit omitted.
func (alg Algorithm) Polynomial() uint32 {
	if !alg.IsValid() {
		return 0
	}
	return algorithmPolynomials[alg]
}

// Width returns the number of significant CRC bits that alg produces.
func (alg Algorithm) Width() uint {
	if alg == SAM4L16Algorithm {
		return 16
	}
	return 32
}

// GoString returns the Go string representation of this Algorithm constant.
func (alg Algorithm) GoString() string {
	return enumhelper.DereferenceEnumData("Algorithm", algorithmData, uint(alg)).GoName
}

// String returns the string representation of this Algorithm constant.
func (alg Algorithm) String() string {
	return enumhelper.DereferenceEnumData("Algorithm", algorithmData, uint(alg)).Name
}

// MarshalJSON returns the JSON representation of this Algorithm constant.
func (alg Algorithm) MarshalJSON() ([]byte, error) {
	return enumhelper.MarshalEnumToJSON("Algorithm", algorithmData, uint(alg))
}

// Parse parses a string representation of an Algorithm constant.
func (alg *Algorithm) Parse(str string) error {
	value, err := enumhelper.ParseEnum("Algorithm", algorithmData, str)
	*alg = Algorithm(value)
	return err
}

var _ fmt.GoStringer = Algorithm(0)
var _ fmt.Stringer = Algorithm(0)
