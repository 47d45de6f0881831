/*
SPDX-License-Identifier: Apache-2.0
*/

package flogging

import (
	"io"
	"os"
	"strings"
	"sync"

	zaplogfmt "github.com/sykesm/zap-logfmt"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config is used to provide dependencies to a Logging instance.
type Config struct {
	// Format selects the encoding of log records: "json", "logfmt", or
	// "console". An empty format defaults to logfmt.
	Format string

	// LogSpec determines the enabled log level. If empty, the value of the
	// BDD_LOGGING_SPEC environment variable is used, and failing that, INFO.
	LogSpec string

	// Writer is the sink for encoded log records. Defaults to os.Stderr.
	Writer io.Writer
}

// Logging maintains the state associated with the suite's logging system. It
// bridges named loggers onto a shared zap core so the enabled level and the
// record format can be changed in one place.
type Logging struct {
	mutex  sync.RWMutex
	level  zap.AtomicLevel
	core   zapcore.Core
	writer zapcore.WriteSyncer
}

var global *Logging

func init() {
	logging, err := New(Config{})
	if err != nil {
		panic(err)
	}
	global = logging
}

// New creates a logging system initialized with the provided configuration.
func New(c Config) (*Logging, error) {
	l := &Logging{level: zap.NewAtomicLevel()}
	if err := l.Apply(c); err != nil {
		return nil, err
	}
	return l, nil
}

// Apply applies the provided configuration to the logging system.
func (l *Logging) Apply(c Config) error {
	spec := c.LogSpec
	if spec == "" {
		spec = os.Getenv("BDD_LOGGING_SPEC")
	}
	level, err := NameToLevel(spec)
	if err != nil {
		return err
	}

	if c.Writer == nil {
		c.Writer = os.Stderr
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.NameKey = "name"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	switch strings.ToLower(c.Format) {
	case "json":
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	case "console":
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	case "", "logfmt":
		encoder = zaplogfmt.NewEncoder(encoderConfig)
	default:
		return errUnknownFormat(c.Format)
	}

	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.level.SetLevel(level)
	l.writer = zapcore.AddSync(c.Writer)
	l.core = zapcore.NewCore(encoder, l.writer, l.level)
	return nil
}

// Logger instantiates a named logger backed by the shared core. Loggers stay
// live across Apply: reconfiguring the system affects loggers that were
// created before it.
func (l *Logging) Logger(name string) *zap.SugaredLogger {
	return zap.New(dynamicCore{logging: l}, zap.AddCaller()).Named(name).Sugar()
}

func (l *Logging) currentCore() zapcore.Core {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	return l.core
}

// dynamicCore delegates to the logging system's current core so that
// reconfiguration reaches already-created loggers.
type dynamicCore struct {
	logging *Logging
}

func (d dynamicCore) Enabled(level zapcore.Level) bool {
	return d.logging.currentCore().Enabled(level)
}

func (d dynamicCore) With(fields []zapcore.Field) zapcore.Core {
	return d.logging.currentCore().With(fields)
}

func (d dynamicCore) Check(entry zapcore.Entry, checked *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	return d.logging.currentCore().Check(entry, checked)
}

func (d dynamicCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	return d.logging.currentCore().Write(entry, fields)
}

func (d dynamicCore) Sync() error {
	return d.logging.currentCore().Sync()
}

// MustGetLogger returns a named logger from the global logging system.
func MustGetLogger(name string) *zap.SugaredLogger {
	return global.Logger(name)
}

// Init applies the provided configuration to the global logging system and
// panics when the configuration is invalid.
func Init(c Config) {
	if err := global.Apply(c); err != nil {
		panic(err)
	}
}

// NameToLevel translates a level name to a zap level. An empty name enables
// INFO.
func NameToLevel(name string) (zapcore.Level, error) {
	switch strings.ToUpper(name) {
	case "DEBUG":
		return zapcore.DebugLevel, nil
	case "", "INFO":
		return zapcore.InfoLevel, nil
	case "WARN", "WARNING":
		return zapcore.WarnLevel, nil
	case "ERROR":
		return zapcore.ErrorLevel, nil
	case "PANIC":
		return zapcore.PanicLevel, nil
	case "FATAL":
		return zapcore.FatalLevel, nil
	default:
		return zapcore.InfoLevel, errUnknownLevel(name)
	}
}
