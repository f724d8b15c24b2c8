package zstd

// RepeatedOffsets tracks the most recently used match offsets across
// sequences. A block compressor stages candidate offsets with the save
// methods; they only become visible once the block is accepted and Commit is
// called.
type RepeatedOffsets struct {
	offset0 int32
	offset1 int32

	tempOffset0 int32
	tempOffset1 int32
}

// NewRepeatedOffsets returns the cache in its format-defined initial state.
func NewRepeatedOffsets() *RepeatedOffsets {
	return &RepeatedOffsets{offset0: 1, offset1: 4}
}

func (r *RepeatedOffsets) Offset0() int32 { return r.offset0 }
func (r *RepeatedOffsets) Offset1() int32 { return r.offset1 }

func (r *RepeatedOffsets) SaveOffset0(offset int32) { r.tempOffset0 = offset }
func (r *RepeatedOffsets) SaveOffset1(offset int32) { r.tempOffset1 = offset }

// Commit publishes the staged offsets.
func (r *RepeatedOffsets) Commit() {
	r.offset0 = r.tempOffset0
	r.offset1 = r.tempOffset1
}

// BlockCompressionState holds the match-finder tables for one compression
// stream. Table entries are offsets relative to baseOffset.
type BlockCompressionState struct {
	HashTable  []int32
	ChainTable []int32

	baseOffset int

	// start of the valid window, relative to baseOffset
	windowBaseOffset int32
}

// NewBlockCompressionState sizes the tables from parameters. The chain table
// is unused by the fast strategy but sized regardless, matching the
// parameter contract.
func NewBlockCompressionState(parameters CompressionParameters, baseOffset int) *BlockCompressionState {
	return &BlockCompressionState{
		HashTable:  make([]int32, 1<<parameters.HashLog),
		ChainTable: make([]int32, 1<<parameters.ChainLog),
		baseOffset: baseOffset,
	}
}

// SlideWindow rebases both tables after the input window slid forward by
// slideWindowSize bytes. Entries that fall behind the new base clamp to zero,
// branchless.
func (s *BlockCompressionState) SlideWindow(slideWindowSize int32) {
	for i, v := range s.HashTable {
		v -= slideWindowSize
		s.HashTable[i] = v &^ (v >> 31)
	}
	for i, v := range s.ChainTable {
		v -= slideWindowSize
		s.ChainTable[i] = v &^ (v >> 31)
	}
}

// Reset clears both tables and the window base.
func (s *BlockCompressionState) Reset() {
	clear(s.HashTable)
	clear(s.ChainTable)
	s.windowBaseOffset = 0
}

// EnforceMaxDistance advances the window base so no match can reach further
// back than maxDistance from inputLimit. The base never moves backward.
func (s *BlockCompressionState) EnforceMaxDistance(inputLimit, maxDistance int) {
	distance := inputLimit - s.baseOffset

	newOffset := int32(distance - maxDistance)
	if s.windowBaseOffset < newOffset {
		s.windowBaseOffset = newOffset
	}
}

func (s *BlockCompressionState) BaseOffset() int { return s.baseOffset }

func (s *BlockCompressionState) WindowBaseOffset() int32 { return s.windowBaseOffset }
