package zstd

import (
	"github.com/bitvault-io/zstdcore/internal/le"
)

// SequenceStore collects the literals and (offset, literal length, match
// length) triples a block compressor emits, ready for the sequence entropy
// coder. One store is reused across the blocks of a stream.
type SequenceStore struct {
	LiteralsBuffer []byte
	LiteralsLength int

	Offsets        []int32
	LiteralLengths []int32
	MatchLengths   []int32
	SequenceCount  int

	LiteralLengthCodes []byte
	MatchLengthCodes   []byte
	OffsetCodes        []byte

	longLengthField    longField
	longLengthPosition int
}

// longField marks which field of one sequence exceeded 16 bits and needs the
// long-length symbol.
type longField int

const (
	longFieldNone longField = iota
	longFieldLiteral
	longFieldMatch
)

var literalLengthCode = [64]byte{0, 1, 2, 3, 4, 5, 6, 7,
	8, 9, 10, 11, 12, 13, 14, 15,
	16, 16, 17, 17, 18, 18, 19, 19,
	20, 20, 20, 20, 21, 21, 21, 21,
	22, 22, 22, 22, 22, 22, 22, 22,
	23, 23, 23, 23, 23, 23, 23, 23,
	24, 24, 24, 24, 24, 24, 24, 24,
	24, 24, 24, 24, 24, 24, 24, 24}

var matchLengthCode = [128]byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15,
	16, 17, 18, 19, 20, 21, 22, 23, 24, 25, 26, 27, 28, 29, 30, 31,
	32, 32, 33, 33, 34, 34, 35, 35, 36, 36, 36, 36, 37, 37, 37, 37,
	38, 38, 38, 38, 38, 38, 38, 38, 39, 39, 39, 39, 39, 39, 39, 39,
	40, 40, 40, 40, 40, 40, 40, 40, 40, 40, 40, 40, 40, 40, 40, 40,
	41, 41, 41, 41, 41, 41, 41, 41, 41, 41, 41, 41, 41, 41, 41, 41,
	42, 42, 42, 42, 42, 42, 42, 42, 42, 42, 42, 42, 42, 42, 42, 42,
	42, 42, 42, 42, 42, 42, 42, 42, 42, 42, 42, 42, 42, 42, 42, 42}

// NewSequenceStore sizes the store for one block. The literals buffer keeps
// 8 bytes of slack so StoreSequence can copy in whole words.
func NewSequenceStore(blockSize, maxSequences int) *SequenceStore {
	s := &SequenceStore{
		LiteralsBuffer: make([]byte, blockSize+sizeOfLong),

		Offsets:        make([]int32, maxSequences),
		LiteralLengths: make([]int32, maxSequences),
		MatchLengths:   make([]int32, maxSequences),

		LiteralLengthCodes: make([]byte, maxSequences),
		MatchLengthCodes:   make([]byte, maxSequences),
		OffsetCodes:        make([]byte, maxSequences),
	}
	s.Reset()
	return s
}

// AppendLiterals copies literals verbatim with no sequence attached, used for
// the tail of a block after the last match.
func (s *SequenceStore) AppendLiterals(src []byte, srcOffset, srcSize int) {
	copy(s.LiteralsBuffer[s.LiteralsLength:], src[srcOffset:srcOffset+srcSize])
	s.LiteralsLength += srcSize
}

// StoreSequence records one sequence: literalLength literals starting at
// literals[literalOffset], then a match of matchLengthBase (the match length
// with the minimum already subtracted) at offsetCode. Literals are copied in
// 8-byte words; the buffer slack absorbs the overshoot.
func (s *SequenceStore) StoreSequence(literals []byte, literalOffset, literalLength, offsetCode, matchLengthBase int) {
	input := literalOffset
	output := s.LiteralsLength
	copied := 0
	for {
		le.Store64(s.LiteralsBuffer[output:], le.Load64(literals, input))
		input += sizeOfLong
		output += sizeOfLong
		copied += sizeOfLong
		if copied >= literalLength {
			break
		}
	}
	s.LiteralsLength += literalLength

	if literalLength > 65535 {
		s.longLengthField = longFieldLiteral
		s.longLengthPosition = s.SequenceCount
	}
	s.LiteralLengths[s.SequenceCount] = int32(literalLength)

	s.Offsets[s.SequenceCount] = int32(offsetCode) + 1

	if matchLengthBase > 65535 {
		s.longLengthField = longFieldMatch
		s.longLengthPosition = s.SequenceCount
	}
	s.MatchLengths[s.SequenceCount] = int32(matchLengthBase)

	s.SequenceCount++
}

// Reset empties the store for the next block.
func (s *SequenceStore) Reset() {
	s.LiteralsLength = 0
	s.SequenceCount = 0
	s.longLengthField = longFieldNone
}

// GenerateCodes fills the per-sequence code arrays the entropy tables are
// built from, then patches in the long-length symbols where a field did not
// fit in 16 bits.
func (s *SequenceStore) GenerateCodes() {
	for i := 0; i < s.SequenceCount; i++ {
		s.LiteralLengthCodes[i] = literalLengthToCode(int(s.LiteralLengths[i]))
		s.OffsetCodes[i] = byte(HighestBit(uint32(s.Offsets[i])))
		s.MatchLengthCodes[i] = matchLengthToCode(int(s.MatchLengths[i]))
	}

	if s.longLengthField == longFieldLiteral {
		s.LiteralLengthCodes[s.longLengthPosition] = MaxLiteralsLengthSymbol
	}
	if s.longLengthField == longFieldMatch {
		s.MatchLengthCodes[s.longLengthPosition] = MaxMatchLengthSymbol
	}
}

func literalLengthToCode(literalLength int) byte {
	if literalLength >= 64 {
		return byte(HighestBit(uint32(literalLength)) + 19)
	}
	return literalLengthCode[literalLength]
}

// matchLengthToCode takes the match length with MINMATCH already subtracted,
// as stored by StoreSequence.
func matchLengthToCode(matchLengthBase int) byte {
	if matchLengthBase >= 128 {
		return byte(HighestBit(uint32(matchLengthBase)) + 36)
	}
	return matchLengthCode[matchLengthBase]
}
