// Package log routes daemon output through swappable leveled
// function vars, so packages log without holding a logger and
// tests can capture or silence output.
package log

import "github.com/tacusci/logging/v2"

// Func is the shape of every leveled logging hook.
type Func func(format string, a ...interface{})

var (
	Debug Func = func(format string, a ...interface{}) { logging.Debug(format, a...) } //nolint
	Info  Func = func(format string, a ...interface{}) { logging.Info(format, a...) }  //nolint
	Warn  Func = func(format string, a ...interface{}) { logging.Warn(format, a...) }  //nolint
	Error Func = func(format string, a ...interface{}) { logging.Error(format, a...) } //nolint
	Fatal Func = func(format string, a ...interface{}) { logging.Fatal(format, a...) } //nolint
)
