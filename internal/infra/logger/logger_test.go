package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBuild_Levels(t *testing.T) {
	tests := []struct {
		level string
		env   string
		want  zap.AtomicLevel
	}{
		{level: "debug", env: "dev", want: zap.NewAtomicLevelAt(zap.DebugLevel)},
		{level: "WARN", env: "prod", want: zap.NewAtomicLevelAt(zap.WarnLevel)},
		{level: "chatty", env: "dev", want: zap.NewAtomicLevelAt(zap.InfoLevel)},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			l, err := Build(tt.level, tt.env)
			require.NoError(t, err)
			assert.True(t, l.Core().Enabled(tt.want.Level()))
			if tt.want.Level() > zap.DebugLevel {
				assert.False(t, l.Core().Enabled(tt.want.Level()-1))
			}
		})
	}
}

func TestIsProduction(t *testing.T) {
	assert.True(t, IsProduction("prod"))
	assert.True(t, IsProduction("Production"))
	assert.False(t, IsProduction("dev"))
	assert.False(t, IsProduction(""))
}
