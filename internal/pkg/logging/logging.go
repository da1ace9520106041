// Package logging builds the zap configuration shared by the engine and
// the command line tools.
package logging

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultConfig returns the production config used across MiniDB. Sampling
// is disabled so debug traces of page evictions and row mutations are not
// dropped under load.
func DefaultConfig() zap.Config {
	logConf := zap.NewProductionConfig()
	logConf.Sampling = nil
	logConf.EncoderConfig.TimeKey = "time"
	logConf.EncoderConfig.LevelKey = "severity"
	logConf.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logConf.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	return logConf
}

var levelNames = map[string]zapcore.Level{
	"debug":  zapcore.DebugLevel,
	"info":   zapcore.InfoLevel,
	"warn":   zapcore.WarnLevel,
	"error":  zapcore.ErrorLevel,
	"dpanic": zapcore.DPanicLevel,
	"panic":  zapcore.PanicLevel,
	"fatal":  zapcore.FatalLevel,
}

// ParseLevel converts a level name such as "debug" or a numeric zap level
// into a zapcore.Level. Matching is case insensitive.
func ParseLevel(name string) (zapcore.Level, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if level, ok := levelNames[name]; ok {
		return level, nil
	}
	numeric, err := strconv.ParseInt(name, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("unrecognised log level '%s'", name)
	}
	return zapcore.Level(numeric), nil
}
