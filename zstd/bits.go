package zstd

import (
	"fmt"
	"math/bits"

	"github.com/bitvault-io/zstdcore/internal/le"
)

// HighestBit returns the zero-based index of the most significant set bit of
// v. v must not be zero.
func HighestBit(v uint32) uint32 {
	return uint32(31 - bits.LeadingZeros32(v))
}

// IsPowerOf2 reports whether at most one bit of v is set.
func IsPowerOf2(v uint32) bool {
	return v&(v-1) == 0
}

// Mask returns the all-ones pattern of the given width. n must be in [0, 31].
func Mask(n uint32) uint32 {
	return 1<<n - 1
}

// Clamp saturates v into [min, max]. Panics if min > max.
func Clamp(v int64, min, max int32) int32 {
	CheckArgument(min <= max, fmt.Sprintf("%d > %d", min, max))
	if v < int64(min) {
		return min
	}
	if v > int64(max) {
		return max
	}
	return int32(v)
}

// Get24BitLittleEndian reads a 3-byte little-endian value at off, as a 2-byte
// load combined with a 1-byte load.
func Get24BitLittleEndian(b []byte, off int) uint32 {
	return uint32(le.Load16(b, off)) | uint32(b[off+sizeOfShort])<<16
}

// Put24BitLittleEndian writes the low 24 bits of v at off. The caller
// guarantees v fits in 24 bits.
func Put24BitLittleEndian(b []byte, off int, v uint32) {
	le.Store16(b[off:], uint16(v))
	b[off+sizeOfShort] = byte(v >> 16)
}

// CycleLog returns the cycle indexing width for the given hash log. Binary
// tree strategies hold two candidates per slot and need one bit less.
func CycleLog(hashLog uint32, strategy Strategy) uint32 {
	if strategy == StrategyBTLazy2 || strategy == StrategyBTOpt || strategy == StrategyBTUltra {
		return hashLog - 1
	}
	return hashLog
}

// MinTableLog returns the minimum log2 table size that can safely represent a
// distribution of inputSize symbols with values up to maxSymbolValue.
// Degenerate inputs of one byte or less must use RLE instead of table coding
// and are rejected.
func MinTableLog(inputSize int, maxSymbolValue uint32) uint32 {
	CheckArgument(inputSize > 1, "not supported, RLE should be used instead")
	minBitsSrc := HighestBit(uint32(inputSize-1)) + 1
	minBitsSymbols := HighestBit(maxSymbolValue) + 2
	return min(minBitsSrc, minBitsSymbols)
}
