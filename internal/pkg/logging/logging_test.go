package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	level, err := ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, zapcore.DebugLevel, level)

	level, err = ParseLevel(" WARN ")
	require.NoError(t, err)
	assert.Equal(t, zapcore.WarnLevel, level)

	level, err = ParseLevel("2")
	require.NoError(t, err)
	assert.Equal(t, zapcore.Level(2), level)

	_, err = ParseLevel("verbose")
	require.Error(t, err)
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	logConf := DefaultConfig()
	assert.Nil(t, logConf.Sampling)
	assert.Equal(t, "time", logConf.EncoderConfig.TimeKey)
	assert.Equal(t, "severity", logConf.EncoderConfig.LevelKey)

	logger, err := logConf.Build()
	require.NoError(t, err)
	defer logger.Sync()
}
