// Package klog defines the line oriented log interface used by code which runs
// in exception context, and some implementations of it.
package klog

import "io"

// Level is the severity of a log line.
type Level uint8

const (
	LevelError Level = iota + 1
	LevelWarning
	LevelInfo
	LevelDebug
)

var levelNames = [...]string{
	LevelError:   "err",
	LevelWarning: "wrn",
	LevelInfo:    "inf",
	LevelDebug:   "dbg",
}

func (l Level) String() string {
	if int(l) < len(levelNames) && levelNames[l] != "" {
		return levelNames[l]
	}
	return "unknown"
}

// Sink receives complete lines without line terminator. Implementations must
// not retain line after Log returns.
type Sink interface {
	Log(level Level, line []byte)
}

var prefixes = [...][]byte{
	LevelError:   []byte("E: "),
	LevelWarning: []byte("W: "),
	LevelInfo:    []byte("I: "),
	LevelDebug:   []byte("D: "),
}

var newline = []byte("\n")

// Writer writes lines to an io.Writer, prefixed by a single letter severity
// tag. It doesn't allocate, so it's safe to use from exception context if the
// underlying writer is.
type Writer struct {
	w io.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w}
}

func (w *Writer) Log(level Level, line []byte) {
	if int(level) < len(prefixes) && prefixes[level] != nil {
		w.w.Write(prefixes[level])
	}
	w.w.Write(line)
	w.w.Write(newline)
}

// Line is a log line captured by a Recorder.
type Line struct {
	Level Level
	Text  string
}

// Recorder keeps all lines in memory.
type Recorder struct {
	Lines []Line
}

func (r *Recorder) Log(level Level, line []byte) {
	r.Lines = append(r.Lines, Line{level, string(line)})
}

// Texts returns the text of all recorded lines.
func (r *Recorder) Texts() []string {
	texts := make([]string, len(r.Lines))
	for i, l := range r.Lines {
		texts[i] = l.Text
	}
	return texts
}

// Reset discards all recorded lines.
func (r *Recorder) Reset() {
	r.Lines = r.Lines[:0]
}
