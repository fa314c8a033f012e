package logfilewriter

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gofrs/uuid"
	"github.com/nucleotide/lspcoord/src/lspcoord/internal/fs"
	"github.com/nucleotide/lspcoord/src/lspcoord/internal/serverinfofile"
	"go.uber.org/fx"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	_fmtOutputKey = "output:%s:%s"
	_logsDirName  = "lspcoord"
)

// Module is the Fx module for this package.
var Module = fx.Provide(New)

// Factory creates log files that capture the stderr output of language servers.
// Each file path is stored in the server info file, so that editors can tail it.
type Factory interface {
	NewServerWriter(serverName string, id uuid.UUID) (io.WriteCloser, error)
}

// Params define the dependencies for Factory.
type Params struct {
	fx.In

	FS             fs.CoordFS
	Lifecycle      fx.Lifecycle
	ServerInfoFile serverinfofile.ServerInfoFile
}

type factory struct {
	fs             fs.CoordFS
	serverInfoFile serverinfofile.ServerInfoFile
	logsDir        string

	mu    sync.Mutex
	files map[string]struct{}
}

// New creates a Factory writing under the user's temp directory. Files are removed on shutdown.
func New(p Params) Factory {
	f := &factory{
		fs:             p.FS,
		serverInfoFile: p.ServerInfoFile,
		logsDir:        filepath.Join(os.TempDir(), _logsDirName),
		files:          make(map[string]struct{}),
	}

	p.Lifecycle.Append(fx.Hook{
		OnStop: f.cleanup,
	})
	return f
}

func (f *factory) NewServerWriter(serverName string, id uuid.UUID) (io.WriteCloser, error) {
	if err := f.fs.MkdirAll(f.logsDir); err != nil {
		return nil, fmt.Errorf("creating logs directory: %w", err)
	}

	name := filepath.Join(f.logsDir, fmt.Sprintf("%s-%s.log", serverName, id))
	logFile, err := f.fs.OpenAppend(name)
	if err != nil {
		return nil, fmt.Errorf("opening server log file: %w", err)
	}

	f.mu.Lock()
	f.files[name] = struct{}{}
	f.mu.Unlock()

	key := fmt.Sprintf(_fmtOutputKey, serverName, id)
	if err := f.serverInfoFile.UpdateField(key, name); err != nil {
		logFile.Close()
		return nil, err
	}

	// Write via a logger for formatting, timestamp, and performance/buffering.
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(logFile),
		zap.InfoLevel,
	)

	return &loggerWriter{
		logger: zap.New(core).Sugar().Named(serverName),
		closeFunc: func() error {
			return multierr.Combine(
				logFile.Close(),
				f.serverInfoFile.RemoveField(key),
			)
		},
	}, nil
}

func (f *factory) cleanup(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	var errs error
	for name := range f.files {
		if err := f.fs.Remove(name); err != nil && !os.IsNotExist(err) {
			errs = multierr.Append(errs, err)
		}
	}
	f.files = make(map[string]struct{})
	return errs
}

type loggerWriter struct {
	logger    *zap.SugaredLogger
	closeOnce sync.Once
	closeFunc func() error
}

// Write implements the io.Writer interface by sending data to the given logger.
func (o *loggerWriter) Write(p []byte) (n int, err error) {
	// Incoming data may contain multiple lines, including blank ones.
	// Split and log each line individually.
	lines := strings.Split(string(p), "\n")
	for _, line := range lines {
		if len(line) > 0 {
			o.logger.Info(line)
		}
	}

	return len(p), nil
}

// Close flushes the logger and releases the file. The file itself is kept until shutdown.
func (o *loggerWriter) Close() error {
	var err error
	o.closeOnce.Do(func() {
		o.logger.Sync()
		err = o.closeFunc()
	})
	return err
}
