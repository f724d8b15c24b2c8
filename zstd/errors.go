package zstd

import "fmt"

// MalformedInputError reports untrusted input that violates a structural
// invariant of the stream. Offset is the byte offset of the violation within
// the caller's buffer.
type MalformedInputError struct {
	Offset int64
	Reason string
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed input: %s (offset %d)", e.Reason, e.Offset)
}

// InvalidArgumentError reports a violated caller contract. It is raised as a
// panic; correct callers never trigger it.
type InvalidArgumentError struct {
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return "invalid argument: " + e.Reason
}

// InvalidStateError reports internal state that a caller contract promised
// could not occur. It is raised as a panic.
type InvalidStateError struct {
	Reason string
}

func (e *InvalidStateError) Error() string {
	return "invalid state: " + e.Reason
}

// IndexOutOfRangeError reports a start/end/size bounds violation. Detail
// names the offending bound.
type IndexOutOfRangeError struct {
	Detail string
}

func (e *IndexOutOfRangeError) Error() string {
	return "index out of range: " + e.Detail
}

// Verify returns a *MalformedInputError carrying offset and reason when cond
// is false. It guards every data-dependent validity check, so the returned
// error is the caller-facing corruption signal.
func Verify(cond bool, offset int64, reason string) error {
	if !cond {
		return &MalformedInputError{Offset: offset, Reason: reason}
	}
	return nil
}

// CheckArgument panics with an *InvalidArgumentError when cond is false.
// Never used for untrusted input.
func CheckArgument(cond bool, reason string) {
	if !cond {
		panic(&InvalidArgumentError{Reason: reason})
	}
}

// CheckState panics with an *InvalidStateError when cond is false.
func CheckState(cond bool, reason string) {
	if !cond {
		panic(&InvalidStateError{Reason: reason})
	}
}

// CheckPositionIndexes panics with an *IndexOutOfRangeError unless
// 0 <= start <= end <= size.
func CheckPositionIndexes(start, end, size int) {
	if start < 0 || end < start || end > size {
		panic(&IndexOutOfRangeError{Detail: badPositionIndexes(start, end, size)})
	}
}

func badPositionIndexes(start, end, size int) string {
	if start < 0 || start > size {
		return badPositionIndex(start, size, "start index")
	}
	if end < 0 || end > size {
		return badPositionIndex(end, size, "end index")
	}
	// end < start
	return fmt.Sprintf("end index (%d) must not be less than start index (%d)", end, start)
}

func badPositionIndex(index, size int, desc string) string {
	if index < 0 {
		return fmt.Sprintf("%s (%d) must not be negative", desc, index)
	}
	return fmt.Sprintf("%s (%d) must not be greater than size (%d)", desc, index, size)
}
