package emulator

import (
	"strconv"

	"github.com/ezrec/toymachine/translate"
)

var f = translate.From

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Pc     uint64 // PC at the start of the failing step.
	LineNo int    // Program line loaded at Pc, or 0 if unknown.
	Err    error
}

func (err *ErrRuntime) Error() string {
	if err.LineNo == 0 {
		return f("pc %v %v", strconv.FormatUint(err.Pc, 10), err.Err)
	}
	return f("pc %v line %v %v", strconv.FormatUint(err.Pc, 10), strconv.Itoa(err.LineNo), err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
