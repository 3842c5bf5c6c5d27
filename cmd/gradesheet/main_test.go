package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestJSONTarget(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		explicit bool
		want     string
		wantErr  bool
	}{
		{"default output goes to stdout", defaultOutput, false, "", false},
		{"dash goes to stdout", "-", true, "", false},
		{"json file", "notas.json", true, "notas.json", false},
		{"explicit xlsx path is rejected", "notas.xlsx", true, "", true},
		{"xlsx check ignores case", "NOTAS.XLSX", true, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := jsonTarget(tt.path, tt.explicit)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewLogger(t *testing.T) {
	l, err := newLogger("warn", false)
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))

	l, err = newLogger("info", true)
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))

	l, err = newLogger("debug", false)
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))

	_, err = newLogger("loud", false)
	assert.Error(t, err)
}
