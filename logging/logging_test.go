package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		env     string
		lowest  zapcore.Level
		skipped bool
	}{
		{"", zapcore.DebugLevel, false},
		{"local", zapcore.DebugLevel, false},
		{"development", zapcore.InfoLevel, true},
		{"production", zapcore.ErrorLevel, true},
	}
	for _, tt := range tests {
		l, err := New(tt.env)
		require.NoError(t, err, tt.env)
		assert.True(t, l.Core().Enabled(tt.lowest), tt.env)
		if tt.skipped {
			assert.False(t, l.Core().Enabled(tt.lowest-1), tt.env)
		}
	}
}

func TestNewUnknownEnvironment(t *testing.T) {
	_, err := New("staging")
	assert.EqualError(t, err, `unknown environment "staging"`)
}
