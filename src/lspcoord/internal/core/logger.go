package core

import (
	"fmt"
	"os"
	"sort"

	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	_loggingConfigKey = "logging"
	_rootLoggerName   = "lspcoord"
)

// LoggingConfig is the `logging` section of the daemon config.
type LoggingConfig struct {
	Level       string   `yaml:"level"`
	Development bool     `yaml:"development"`
	Encoding    string   `yaml:"encoding"`
	OutputPaths []string `yaml:"outputPaths"`
	// InitialFields are attached to every entry, in addition to the process id.
	InitialFields map[string]string `yaml:"initialFields"`
}

// LoggerModule provides the daemon loggers.
var LoggerModule = fx.Options(
	fx.Provide(NewSugaredLogger),
	fx.Provide(NewLogger),
)

func NewLogger(sugar *zap.SugaredLogger) *zap.Logger {
	return sugar.Desugar()
}

// NewSugaredLogger builds the root logger from the logging section.
// Every controller derives a named child from it.
func NewSugaredLogger(provider config.Provider) (*zap.SugaredLogger, error) {
	var cfg LoggingConfig
	if err := provider.Get(_loggingConfigKey).Populate(&cfg); err != nil {
		return nil, fmt.Errorf("reading logging config: %w", err)
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("logging level: %w", err)
	}

	sink, err := openOutputs(cfg.OutputPaths)
	if err != nil {
		return nil, err
	}

	core := zapcore.NewCore(newEncoder(cfg), sink, level)
	opts := []zap.Option{zap.Fields(initialFields(cfg.InitialFields)...)}
	if cfg.Development {
		opts = append(opts, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	}

	return zap.New(core, opts...).Named(_rootLoggerName).Sugar(), nil
}

func newEncoder(cfg LoggingConfig) zapcore.Encoder {
	encoderConfig := zap.NewProductionEncoderConfig()
	if cfg.Development {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
	}
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if cfg.Encoding == "console" {
		return zapcore.NewConsoleEncoder(encoderConfig)
	}
	return zapcore.NewJSONEncoder(encoderConfig)
}

// initialFields returns the configured fields in key order, followed by the pid.
func initialFields(configured map[string]string) []zap.Field {
	keys := make([]string, 0, len(configured))
	for k := range configured {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fields := make([]zap.Field, 0, len(keys)+1)
	for _, k := range keys {
		fields = append(fields, zap.String(k, configured[k]))
	}
	return append(fields, zap.Int("pid", os.Getpid()))
}

// openOutputs opens every configured output path, defaulting to stdout.
func openOutputs(paths []string) (zapcore.WriteSyncer, error) {
	if len(paths) == 0 {
		return zapcore.AddSync(os.Stdout), nil
	}

	sink, _, err := zap.Open(paths...)
	if err != nil {
		return nil, fmt.Errorf("opening log outputs: %w", err)
	}
	return sink, nil
}
