// Package xlog lets the codec emit optional debug output without depending
// on a particular logging setup.
//
// Logger is satisfied by *log.Logger. All functions accept a nil Logger and
// then do nothing, before any formatting takes place.
package xlog

import "fmt"

// Logger is the subset of *log.Logger the codec needs.
type Logger interface {
	Output(calldepth int, s string) error
}

// Printf formats and writes a line to l if l is not nil.
func Printf(l Logger, format string, v ...any) {
	if l == nil {
		return
	}
	_ = l.Output(2, fmt.Sprintf(format, v...))
}
