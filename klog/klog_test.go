package klog

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.Log(LevelError, []byte("ESR_ELn: 0x0000000096000045"))
	w.Log(LevelWarning, []byte("careful"))
	w.Log(LevelInfo, nil)
	w.Log(LevelDebug, []byte("x"))
	w.Log(Level(0), []byte("untagged"))

	expected := "E: ESR_ELn: 0x0000000096000045\nW: careful\nI: \nD: x\nuntagged\n"
	if got := buf.String(); got != expected {
		t.Fatalf("expected %q, got %q", expected, got)
	}
}

func TestWriterNoAlloc(t *testing.T) {
	var buf bytes.Buffer
	buf.Grow(4096)
	w := NewWriter(&buf)
	line := []byte("x0:  0x0000000000000000  x1:  0x0000000000000000")
	allocs := testing.AllocsPerRun(10, func() {
		w.Log(LevelError, line)
	})
	if allocs != 0 {
		t.Fatalf("expected no allocations, got %v", allocs)
	}
}

func TestRecorder(t *testing.T) {
	var r Recorder
	line := []byte("first")
	r.Log(LevelError, line)
	copy(line, "XXXXX")
	r.Log(LevelInfo, []byte("second"))

	expected := []Line{{LevelError, "first"}, {LevelInfo, "second"}}
	if diff := cmp.Diff(expected, r.Lines); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"first", "second"}, r.Texts()); diff != "" {
		t.Fatalf("texts mismatch (-want +got):\n%s", diff)
	}
	r.Reset()
	if len(r.Lines) != 0 {
		t.Fatalf("expected empty recorder, got %d lines", len(r.Lines))
	}
}

func TestLogrus(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	sink := Logrus{logger}

	sink.Log(LevelError, []byte("SError interrupt"))
	sink.Log(LevelWarning, []byte("w"))
	sink.Log(LevelInfo, []byte("i"))
	sink.Log(LevelDebug, []byte("d"))

	expected := []logrus.Level{logrus.ErrorLevel, logrus.WarnLevel, logrus.InfoLevel, logrus.DebugLevel}
	entries := hook.AllEntries()
	if len(entries) != len(expected) {
		t.Fatalf("expected %d entries, got %d", len(expected), len(entries))
	}
	for i, e := range entries {
		if e.Level != expected[i] {
			t.Errorf("entry %d: expected level %v, got %v", i, expected[i], e.Level)
		}
	}
	if msg := entries[0].Message; msg != "SError interrupt" {
		t.Fatalf("expected message %q, got %q", "SError interrupt", msg)
	}
}

func TestLevelString(t *testing.T) {
	tests := map[Level]string{
		LevelError:   "err",
		LevelWarning: "wrn",
		LevelInfo:    "inf",
		LevelDebug:   "dbg",
		0:            "unknown",
		42:           "unknown",
	}
	for l, want := range tests {
		if got := l.String(); got != want {
			t.Errorf("level %d: expected %s, got %s", l, want, got)
		}
	}
}
