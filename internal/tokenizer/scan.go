package tokenizer

import (
	"encoding/binary"
	"math/bits"
)

// Broadcast structural bytes for SWAR matching.
const (
	quoteMask = 0x2222222222222222
	commaMask = 0x2c2c2c2c2c2c2c2c
	lfMask    = 0x0a0a0a0a0a0a0a0a

	loBits = 0x0101010101010101
	hiBits = 0x8080808080808080
)

// IndexStructural returns the index of the first quote, comma or line feed in
// data, or -1 if data holds only literal bytes. It tests eight bytes per step
// using SIMD Within A Register.
//
// Only single ASCII bytes are matched. Bytes of multi-byte UTF-8 sequences all
// have the high bit set and can never match.
func IndexStructural(data []byte) int {
	i := 0
	for ; i+8 <= len(data); i += 8 {
		chunk := binary.LittleEndian.Uint64(data[i : i+8])
		found := zeroBytes(chunk^quoteMask) | zeroBytes(chunk^commaMask) | zeroBytes(chunk^lfMask)
		if found != 0 {
			// The lowest flagged byte is always a true match; borrows only
			// produce false flags above it.
			return i + bits.TrailingZeros64(found)/8
		}
	}
	for ; i < len(data); i++ {
		if classTable[data[i]] != ClassOther {
			return i
		}
	}
	return -1
}

// zeroBytes flags the high bit of every zero byte in x.
func zeroBytes(x uint64) uint64 {
	return (x - loBits) & ^x & hiBits
}
