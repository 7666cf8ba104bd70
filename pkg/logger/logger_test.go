package logger

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

func TestStandardLoggerPrefixes(t *testing.T) {
	var buf bytes.Buffer
	l := NewStandardLogger(log.New(&buf, "", 0))

	l.Info("armed for %d minutes", 30)
	l.Warning("journal write failed: %s", "disk full")
	l.Error("bad credential attempt %d", 3)

	out := buf.String()
	for _, want := range []string{
		"[INFO] armed for 30 minutes",
		"[WARNING] journal write failed: disk full",
		"[ERROR] bad credential attempt 3",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q, got:\n%s", want, out)
		}
	}
	if err := l.Close(); err != nil {
		t.Errorf("Close returned error: %v", err)
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	l := NewNopLogger()
	l.Info("ignored %s", "message")
	l.Warning("ignored")
	l.Error("ignored")
	if err := l.Close(); err != nil {
		t.Errorf("Close returned error: %v", err)
	}
}

func TestMockLoggerRecords(t *testing.T) {
	m := NewMockLogger()
	m.Info("a %d", 1)
	m.Warning("b")
	m.Error("c %s", "x")

	if len(m.InfoCalls) != 1 || m.InfoCalls[0] != "a 1" {
		t.Errorf("InfoCalls = %v", m.InfoCalls)
	}
	if len(m.WarningCalls) != 1 || m.WarningCalls[0] != "b" {
		t.Errorf("WarningCalls = %v", m.WarningCalls)
	}
	if len(m.ErrorCalls) != 1 || m.ErrorCalls[0] != "c x" {
		t.Errorf("ErrorCalls = %v", m.ErrorCalls)
	}
	if m.CloseCalled {
		t.Error("CloseCalled before Close")
	}
	if err := m.Close(); err != nil {
		t.Errorf("Close returned error: %v", err)
	}
	if !m.CloseCalled {
		t.Error("CloseCalled not set after Close")
	}
}

func TestMultiLoggerFanOut(t *testing.T) {
	a := NewMockLogger()
	b := NewMockLogger()
	m := NewMultiLogger(a, b)

	m.Info("hello")
	m.Warning("warn")
	m.Error("err")

	for _, mock := range []*MockLogger{a, b} {
		if len(mock.InfoCalls) != 1 || len(mock.WarningCalls) != 1 || len(mock.ErrorCalls) != 1 {
			t.Errorf("backend missed calls: %+v", mock)
		}
	}
	if err := m.Close(); err != nil {
		t.Errorf("Close returned error: %v", err)
	}
	if !a.CloseCalled || !b.CloseCalled {
		t.Error("Close not propagated to all backends")
	}
}
