// Package zstd provides the low-level bitstream substrate shared by the
// Zstandard entropy coding stages.
//
// Bit streams are encoded as a byte-aligned little-endian stream. Bits are
// laid out in the following manner, and the stream is read from right to
// left, from the last byte toward the first:
//
//	... [16 17 18 19 20 21 22 23] [8 9 10 11 12 13 14 15] [0 1 2 3 4 5 6 7]
//
// The final byte of a stream carries an end mark: its highest set bit is the
// last meaningful bit of the stream, so no separate bit count is stored.
package zstd

import "log"

const (
	sizeOfShort = 2
	sizeOfLong  = 8

	// MinWindowLog and MaxWindowLog bound CompressionParameters.WindowLog.
	MinWindowLog = 10
	MaxWindowLog = 31

	// MaxBlockSize is the largest block a compressor may emit.
	MaxBlockSize = 128 << 10

	// RepeatedOffsetCount is the number of recently used offsets the
	// sequence encoding can refer back to.
	RepeatedOffsetCount = 3

	// Highest symbol values of the three sequence code alphabets.
	MaxLiteralsLengthSymbol = 35
	MaxMatchLengthSymbol    = 52
	MaxOffsetCodeSymbol     = 31
)

const debug = false

func println(a ...interface{}) {
	if debug {
		log.Println(a...)
	}
}

func printf(format string, a ...interface{}) {
	if debug {
		log.Printf(format, a...)
	}
}
