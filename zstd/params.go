package zstd

import "fmt"

// Strategy selects the match-finding algorithm for a compression level. The
// set is fixed by the format: hash-chain family first, binary-tree family
// after.
type Strategy int

const (
	StrategyFast Strategy = iota
	StrategyDFast
	StrategyGreedy
	StrategyLazy
	StrategyLazy2
	StrategyBTLazy2
	StrategyBTOpt
	StrategyBTUltra
)

func (s Strategy) String() string {
	switch s {
	case StrategyFast:
		return "fast"
	case StrategyDFast:
		return "dfast"
	case StrategyGreedy:
		return "greedy"
	case StrategyLazy:
		return "lazy"
	case StrategyLazy2:
		return "lazy2"
	case StrategyBTLazy2:
		return "btlazy2"
	case StrategyBTOpt:
		return "btopt"
	case StrategyBTUltra:
		return "btultra"
	}
	return fmt.Sprintf("strategy(%d)", int(s))
}

const (
	// MinCompressionLevel and MaxCompressionLevel bound the level argument
	// of ComputeCompressionParameters.
	MinCompressionLevel = 1
	MaxCompressionLevel = 22

	// DefaultCompressionLevel mirrors the reference codec.
	DefaultCompressionLevel = 3

	minHashLog  = 6
	minChainLog = 6
)

// CompressionParameters sizes the match-finder tables and selects the
// strategy for one compression stream. Instances are immutable; derive
// adjusted copies with ComputeCompressionParameters.
type CompressionParameters struct {
	WindowLog uint32 // largest match distance: 1 << WindowLog
	ChainLog  uint32 // fully searched segment: 1 << ChainLog
	HashLog   uint32 // dispatch table: 1 << HashLog
	SearchLog uint32 // number of searches: 1 << SearchLog
	// SearchLength is the length of the match considered for searching.
	SearchLength uint32
	// TargetLength is the acceptable match size for optimal parser.
	TargetLength uint32
	Strategy     Strategy
}

// Default parameters for inputs larger than 256 KiB, indexed by
// compression level - 1.
var defaultParameters = [MaxCompressionLevel]CompressionParameters{
	{19, 13, 14, 1, 7, 1, StrategyFast},
	{19, 15, 16, 1, 6, 1, StrategyFast},
	{20, 16, 17, 1, 5, 8, StrategyDFast},
	{20, 17, 18, 1, 5, 8, StrategyDFast},
	{20, 17, 18, 2, 5, 16, StrategyGreedy},
	{21, 17, 19, 2, 5, 16, StrategyLazy},
	{21, 18, 19, 3, 5, 16, StrategyLazy},
	{21, 18, 20, 3, 5, 16, StrategyLazy2},
	{21, 19, 20, 3, 5, 16, StrategyLazy2},
	{21, 19, 21, 4, 5, 16, StrategyLazy2},
	{22, 20, 22, 4, 5, 16, StrategyLazy2},
	{22, 20, 22, 5, 5, 16, StrategyLazy2},
	{22, 21, 22, 4, 5, 32, StrategyBTLazy2},
	{22, 21, 22, 5, 5, 32, StrategyBTLazy2},
	{22, 22, 22, 6, 5, 32, StrategyBTLazy2},
	{22, 21, 22, 4, 5, 48, StrategyBTOpt},
	{23, 22, 22, 4, 4, 64, StrategyBTOpt},
	{23, 23, 22, 6, 3, 256, StrategyBTOpt},
	{23, 24, 22, 7, 3, 256, StrategyBTUltra},
	{25, 25, 23, 7, 3, 256, StrategyBTUltra},
	{26, 26, 24, 7, 3, 512, StrategyBTUltra},
	{27, 27, 25, 9, 3, 999, StrategyBTUltra},
}

// ComputeCompressionParameters returns the parameters for a compression
// level, shrunk to fit the estimated input size when one is known. Pass a
// non-positive estimate when the size is unknown. Levels outside the valid
// range saturate.
func ComputeCompressionParameters(level int, estimatedInputSize int64) CompressionParameters {
	p := defaultParameters[Clamp(int64(level), MinCompressionLevel, MaxCompressionLevel)-1]
	if estimatedInputSize <= 0 {
		return p
	}

	// A window larger than the input buys nothing; shrink it, then keep
	// the hash and chain tables proportionate.
	srcLog := uint32(MinWindowLog)
	if estimatedInputSize > 1 {
		srcLog = max(srcLog, HighestBit(uint32(Clamp(estimatedInputSize-1, 1, 1<<30)))+1)
	}
	if p.WindowLog > srcLog {
		p.WindowLog = srcLog
	}
	if p.HashLog > p.WindowLog+1 {
		p.HashLog = max(p.WindowLog+1, minHashLog)
	}
	cycle := CycleLog(p.ChainLog, p.Strategy)
	if cycle > p.WindowLog {
		p.ChainLog = max(p.ChainLog-(cycle-p.WindowLog), minChainLog)
	}
	p.Validate()
	return p
}

// Validate panics with an *InvalidArgumentError if any field is outside the
// range the format allows.
func (p CompressionParameters) Validate() {
	CheckArgument(p.WindowLog >= MinWindowLog && p.WindowLog <= MaxWindowLog,
		fmt.Sprintf("windowLog %d outside [%d, %d]", p.WindowLog, MinWindowLog, MaxWindowLog))
	CheckArgument(p.ChainLog >= minChainLog && p.ChainLog <= MaxWindowLog+1,
		fmt.Sprintf("chainLog %d outside [%d, %d]", p.ChainLog, minChainLog, MaxWindowLog+1))
	CheckArgument(p.HashLog >= minHashLog && p.HashLog <= MaxWindowLog,
		fmt.Sprintf("hashLog %d outside [%d, %d]", p.HashLog, minHashLog, MaxWindowLog))
	CheckArgument(p.SearchLog <= p.WindowLog,
		fmt.Sprintf("searchLog %d above windowLog %d", p.SearchLog, p.WindowLog))
	CheckArgument(p.Strategy >= StrategyFast && p.Strategy <= StrategyBTUltra,
		fmt.Sprintf("unknown strategy %d", int(p.Strategy)))
}
