package zstd

import "github.com/pkg/errors"

// ErrUnsupportedStrategy is returned when a strategy slot has no block
// compressor implementation.
var ErrUnsupportedStrategy = errors.New("unsupported compression strategy")

// BlockCompressor is the contract every match-finding strategy implements.
//
// CompressBlock scans src[srcOffset:srcOffset+srcSize], appends discovered
// sequences and their literals to output, and returns the number of input
// bytes consumed. state and offsets are updated in place; parameters are read
// only. Implementations run synchronously on the calling goroutine.
type BlockCompressor interface {
	CompressBlock(src []byte, srcOffset, srcSize int, output *SequenceStore,
		state *BlockCompressionState, offsets *RepeatedOffsets, parameters CompressionParameters) (int, error)
}

// Unsupported is the placeholder compressor for strategy slots that are not
// implemented. Invoking it always fails with ErrUnsupportedStrategy.
var Unsupported BlockCompressor = unsupportedBlockCompressor{}

type unsupportedBlockCompressor struct{}

func (unsupportedBlockCompressor) CompressBlock([]byte, int, int, *SequenceStore,
	*BlockCompressionState, *RepeatedOffsets, CompressionParameters) (int, error) {
	return 0, errors.WithStack(ErrUnsupportedStrategy)
}
