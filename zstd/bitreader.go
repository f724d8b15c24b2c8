package zstd

import (
	"github.com/bitvault-io/zstdcore/internal/le"
)

// BitReader is the cursor of one backward read session over in[start:end).
// Bits holds the 64-bit lookahead window with the most recently loaded byte
// at the high end; BitsConsumed counts the high-order bits of the window
// already read. Callers do their own bit accounting: peek with PeekBits,
// advance BitsConsumed, and call Load when the window runs dry.
//
// A BitReader is single-session state. It must not be shared between
// goroutines; the underlying buffer is never written and may back any number
// of concurrent readers.
type BitReader struct {
	in    []byte
	start int

	// Current is the offset of the first byte backing Bits.
	// start <= Current <= end-1 holds for the whole session.
	Current      int
	Bits         uint64
	BitsConsumed uint32
	// Overflow latches once more bits have been consumed than the stream
	// ever held. A set flag means the stream is corrupt; window contents
	// are undefined from then on.
	Overflow bool
}

// NewBitReader validates in[start:end) and seeds the lookahead window from
// the tail of the range. The last byte must be non-zero: its highest set bit
// is the end mark, and any bits above it count as already consumed.
//
// Bad start/end indexes are a caller bug and panic via CheckPositionIndexes;
// an empty or markless stream is untrusted input and returns a
// *MalformedInputError.
func NewBitReader(in []byte, start, end int) (*BitReader, error) {
	CheckPositionIndexes(start, end, len(in))

	if err := Verify(end-start >= 1, int64(start), "Bitstream is empty"); err != nil {
		return nil, err
	}
	lastByte := in[end-1]
	if err := Verify(lastByte != 0, int64(end), "Bitstream end mark not present"); err != nil {
		return nil, err
	}

	b := &BitReader{in: in, start: start}
	b.BitsConsumed = 64 - (HighestBit(uint32(lastByte)) + 1)

	inputSize := end - start
	if inputSize >= sizeOfLong {
		// Normal case: the window is the last 8 bytes of the range.
		b.Current = end - sizeOfLong
		b.Bits = le.Load64(in, b.Current)
	} else {
		// Tail case: the short range is read as a little-endian
		// integer, zero padded at the high end. The padding counts as
		// consumed.
		b.Current = start
		b.Bits = uint64(in[start])
		for i := 1; i < inputSize; i++ {
			b.Bits |= uint64(in[start+i]) << (8 * i)
		}
		b.BitsConsumed += uint32(sizeOfLong-inputSize) * 8
	}
	if debug {
		printf("bitreader: init size=%d bits=%#x consumed=%d", inputSize, b.Bits, b.BitsConsumed)
	}
	return b, nil
}

// PeekBits returns n bits of the window, starting bitsConsumed bits from its
// high end, in the low-order bits of the result. The shift is split in two so
// n == 0 stays defined.
func PeekBits(bitsConsumed uint32, bitContainer uint64, n uint32) uint64 {
	return bitContainer << bitsConsumed >> 1 >> (63 - n)
}

// PeekBitsFast is the hot-path variant of PeekBits. n must be > 0.
func PeekBitsFast(bitsConsumed uint32, bitContainer uint64, n uint32) uint64 {
	return bitContainer << bitsConsumed >> (64 - n)
}

// IsEndOfStream reports whether a stream cursor is fully drained: the window
// is backed by the first byte of the range and all 64 window bits are
// consumed.
func IsEndOfStream(start, current int, bitsConsumed uint32) bool {
	return start == current && bitsConsumed == 64
}

// EndOfStream reports whether b is fully drained.
func (b *BitReader) EndOfStream() bool {
	return IsEndOfStream(b.start, b.Current, b.BitsConsumed)
}

// Start returns the lower bound of the range backing b.
func (b *BitReader) Start() int {
	return b.start
}

// Load refills the window after bits have been consumed, walking backward
// toward the start of the range. It returns true once the stream is
// exhausted; the Overflow flag distinguishes corruption from a normal drain.
//
// Bounds hold by construction, proven here once per call rather than per
// byte: Current never moves below start, and every 8-byte window read stays
// inside [start, end).
func (b *BitReader) Load() bool {
	if b.BitsConsumed > 64 {
		b.Overflow = true
		if debug {
			println("bitreader: overflow, consumed", b.BitsConsumed)
		}
		return true
	}
	if b.Current == b.start {
		// No bytes remain behind the cursor. The window is left as-is
		// for any final partial reads.
		return true
	}

	bytes := int(b.BitsConsumed >> 3) // whole bytes consumed
	switch {
	case b.Current >= b.start+sizeOfLong:
		if bytes > 0 {
			b.Current -= bytes
			b.Bits = le.Load64(b.in, b.Current)
		}
		b.BitsConsumed &= 0b111
		return false
	case b.Current-bytes < b.start:
		// Rewinding the full amount would pass the start of the
		// range: clamp to it. This is the final partial load at the
		// head of the buffer.
		bytes = b.Current - b.start
		b.Current = b.start
		b.BitsConsumed -= uint32(bytes) * 64
		b.Bits = le.Load64(b.in, b.start)
		return true
	default:
		b.Current -= bytes
		b.BitsConsumed -= uint32(bytes) * 64
		b.Bits = le.Load64(b.in, b.Current)
		return false
	}
}
