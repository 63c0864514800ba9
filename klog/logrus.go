package klog

import "github.com/sirupsen/logrus"

// Logrus forwards lines to a logrus logger. Use it where allocation is
// acceptable, e.g. when the kernel runs hosted in an emulator harness.
type Logrus struct {
	Logger logrus.FieldLogger
}

func (l Logrus) Log(level Level, line []byte) {
	msg := string(line)
	switch level {
	case LevelError:
		l.Logger.Error(msg)
	case LevelWarning:
		l.Logger.Warn(msg)
	case LevelInfo:
		l.Logger.Info(msg)
	default:
		l.Logger.Debug(msg)
	}
}
