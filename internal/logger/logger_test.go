package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"INFO", zapcore.InfoLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
		{"verbose", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.in))
		})
	}
}

func TestNew_WritesJSONToFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "app.log")

	l, err := New(Config{Level: "warn", OutputPaths: []string{out}})
	require.NoError(t, err)

	l.Info("ignorado")
	l.With(String("produto", "DIPIRONA")).Warn("perto do vencimento", Int("dias", 10))
	_ = l.Sync()

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "ignorado")
	assert.Contains(t, string(b), `"produto":"DIPIRONA"`)
	assert.Contains(t, string(b), `"dias":10`)
}

func TestNewNop(t *testing.T) {
	l := NewNop()
	l.Error("nada acontece", Err(os.ErrNotExist))
	assert.NotNil(t, l.With(Bool("x", true)))
}
