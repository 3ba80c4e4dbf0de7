package crc32

import (
	stdcrc32 "hash/crc32"
	"math/bits"
	"math/rand"
	"testing"
)

var checkInput = []byte("123456789")

func randomBytes(rng *rand.Rand, n int) []byte {
	p := make([]byte, n)
	rng.Read(p)
	return p
}

func reverseBytes(p []byte) []byte {
	out := make([]byte, len(p))
	for i, ch := range p {
		out[i] = bits.Reverse8(ch)
	}
	return out
}

func TestChecksum(t *testing.T) {
	type testRow struct {
		name   string
		poly   uint32
		expect uint32
	}

	var testData = [...]testRow{
		{name: "ieee", poly: IEEE, expect: 0xcbf43926},
		{name: "castagnoli", poly: Castagnoli, expect: 0xe3069283},
	}

	rng := rand.New(rand.NewSource(42))
	lengths := []int{0, 1, 7, 8, 15, 16, 17, 63, 64, 65, 1000, 4099}

	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			if actual := Checksum(row.poly, checkInput); actual != row.expect {
				t.Errorf("Checksum: expect %#08x, actual %#08x", row.expect, actual)
			}
			if actual := genericUpdate(tableFor(row.poly), 0, checkInput); actual != row.expect {
				t.Errorf("genericUpdate: expect %#08x, actual %#08x", row.expect, actual)
			}

			table := stdcrc32.MakeTable(row.poly)
			for _, n := range lengths {
				p := randomBytes(rng, n)
				expect := stdcrc32.Checksum(p, table)
				if actual := genericUpdate(tableFor(row.poly), 0, p); actual != expect {
					t.Errorf("genericUpdate(len=%d): expect %#08x, actual %#08x", n, expect, actual)
				}
				if actual := Checksum(row.poly, p); actual != expect {
					t.Errorf("Checksum(len=%d): expect %#08x, actual %#08x", n, expect, actual)
				}
			}
		})
	}
}

func TestHash(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	p := randomBytes(rng, 777)

	for _, poly := range []uint32{IEEE, Castagnoli} {
		h := New(poly)
		for q := p; len(q) > 0; {
			n := rng.Intn(50) + 1
			if n > len(q) {
				n = len(q)
			}
			h.Write(q[:n])
			q = q[n:]
		}
		expect := Checksum(poly, p)
		if actual := h.Sum32(); actual != expect {
			t.Errorf("poly %#08x: expect %#08x, actual %#08x", poly, expect, actual)
		}

		sum := h.Sum(nil)
		if len(sum) != Size || uint32(sum[0])<<24|uint32(sum[3]) != expect&0xff0000ff {
			t.Errorf("poly %#08x: Sum returned %x", poly, sum)
		}

		h.Reset()
		if h.Sum32() != 0 {
			t.Errorf("poly %#08x: Reset did not clear the sum", poly)
		}
	}
}

func TestHashMSB(t *testing.T) {
	h := NewMSB(NormalIEEE)
	h.Write(checkInput[:4])
	h.Write(checkInput[4:])
	if actual := h.Sum32(); actual != 0x0376e6e7 {
		t.Errorf("expect 0x0376e6e7, actual %#08x", actual)
	}

	h = NewMSB(NormalCastagnoli)
	h.Write(checkInput)
	if actual := h.Sum32(); actual != 0xfabbf0ea {
		t.Errorf("expect 0xfabbf0ea, actual %#08x", actual)
	}

	h.Reset()
	if h.Sum32() != 0xffffffff {
		t.Errorf("Reset: expect 0xffffffff, actual %#08x", h.Sum32())
	}
}

func bitwiseMSB(poly uint32, sum uint32, p []byte) uint32 {
	for _, ch := range p {
		sum ^= uint32(ch) << 24
		for i := 0; i < 8; i++ {
			if sum&0x80000000 != 0 {
				sum = (sum << 1) ^ poly
			} else {
				sum <<= 1
			}
		}
	}
	return sum
}

func TestUpdateMSB(t *testing.T) {
	// CRC-32/MPEG-2: polynomial 0x04C11DB7, all-ones start, no inversion
	if actual := UpdateMSB(NormalIEEE, 0xffffffff, checkInput); actual != 0x0376e6e7 {
		t.Errorf("UpdateMSB(NormalIEEE): expect 0x0376e6e7, actual %#08x", actual)
	}

	rng := rand.New(rand.NewSource(99))
	pairs := [...][2]uint32{
		{NormalIEEE, IEEE},
		{NormalCastagnoli, Castagnoli},
	}
	for _, pair := range pairs {
		normal, reflected := pair[0], pair[1]
		if bits.Reverse32(normal) != reflected {
			t.Errorf("polynomial %#08x does not reflect to %#08x", normal, reflected)
		}
		for _, n := range []int{0, 1, 9, 100, 513} {
			p := randomBytes(rng, n)

			expect := bitwiseMSB(normal, 0xffffffff, p)
			if actual := UpdateMSB(normal, 0xffffffff, p); actual != expect {
				t.Errorf("UpdateMSB(%#08x, len=%d): expect %#08x, actual %#08x", normal, n, expect, actual)
			}

			// the reflected CRC is the MSB-first CRC of the bit-reversed
			// input, bit-reversed and inverted
			mirrored := ^bits.Reverse32(UpdateMSB(normal, 0xffffffff, reverseBytes(p)))
			if actual := Checksum(reflected, p); actual != mirrored {
				t.Errorf("Checksum(%#08x, len=%d): expect %#08x, actual %#08x", reflected, n, mirrored, actual)
			}
		}
	}
}
