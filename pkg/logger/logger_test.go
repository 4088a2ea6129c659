package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewHonoursLevel(t *testing.T) {
	l := Must(New("warn"))
	if l.Core().Enabled(zapcore.InfoLevel) {
		t.Error("info should be disabled at warn level")
	}
	if !l.Core().Enabled(zapcore.WarnLevel) {
		t.Error("warn should be enabled")
	}
}

func TestNewUnknownLevelFallsBackToInfo(t *testing.T) {
	l := Must(New("chatty"))
	if !l.Core().Enabled(zapcore.InfoLevel) || l.Core().Enabled(zapcore.DebugLevel) {
		t.Error("unknown level should behave like info")
	}
}

func TestNamedNilBase(t *testing.T) {
	if Named(nil, "x") == nil {
		t.Error("Named should never return nil")
	}
}
