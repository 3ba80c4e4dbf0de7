package crcdriver

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Checksum32 is a lightweight wrapper around uint32 that is used for the raw
// result words produced by the CRC unit.  It stringifies to hexadecimal
// format.
type Checksum32 uint32

// Low16 returns the low-order sixteen bits, which hold the CRC for
// SAM4L16Algorithm.
func (csum Checksum32) Low16() uint16 {
	return uint16(csum)
}

// StringFor returns the string representation of csum, trimmed to the width of
// the given Algorithm.
func (csum Checksum32) StringFor(alg Algorithm) string {
	if alg.Width() == 16 {
		return fmt.Sprintf("%#04x", csum.Low16())
	}
	return csum.String()
}

// GoString returns the Go string representation of this Checksum32 value.
func (csum Checksum32) GoString() string {
	return fmt.Sprintf("Checksum32(%#08x)", uint32(csum))
}

// String returns the string representation of this Checksum32 value.
func (csum Checksum32) String() string {
	return fmt.Sprintf("%#08x", uint32(csum))
}

// MarshalJSON returns the JSON representation of this Checksum32 value.
func (csum Checksum32) MarshalJSON() ([]byte, error) {
	return json.Marshal(csum.String())
}

// UnmarshalJSON parses the JSON representation of a Checksum32 value.
func (csum *Checksum32) UnmarshalJSON(raw []byte) error {
	var str string
	if err := json.Unmarshal(raw, &str); err != nil {
		return err
	}
	return csum.Parse(str)
}

// Parse parses a hexadecimal representation of a Checksum32 value, with or
// without the "0x" prefix.
func (csum *Checksum32) Parse(str string) error {
	str = strings.TrimPrefix(strings.ToLower(str), "0x")
	u64, err := strconv.ParseUint(str, 16, 32)
	if err != nil {
		return err
	}
	*csum = Checksum32(u64)
	return nil
}

var _ fmt.GoStringer = Checksum32(0)
var _ fmt.Stringer = Checksum32(0)
var _ json.Marshaler = Checksum32(0)
var _ json.Unmarshaler = (*Checksum32)(nil)
