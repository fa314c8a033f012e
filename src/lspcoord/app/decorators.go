package app

import (
	"fmt"
	"os"
	"path"

	"github.com/nucleotide/lspcoord/src/lspcoord/internal/fs"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Context struct {
	Environment        string `yaml:"environment"`
	RuntimeEnvironment string `yaml:"runtimeEnvironment"`
}

const (
	// EnvLocal indicates that the daemon is running locally.
	EnvLocal = "local"

	// EnvDevelopment indicates that the daemon is running in a development environment.
	EnvDevelopment = "development"

	// Environment variables
	_envLspcoordEnvironment = "LSPCOORD_ENVIRONMENT"

	_configKeyServerInfoFile = "serverInfoFilePath"
)

func decorateEnvContext(env Context) Context {
	envValue := EnvLocal
	if os.Getenv(_envLspcoordEnvironment) == EnvDevelopment {
		envValue = EnvDevelopment
	}

	env.Environment = envValue
	env.RuntimeEnvironment = envValue
	return env
}

// DecorateConfigParams is the set of dependencies required to decorate the config.Provider.
type DecorateConfigParams struct {
	fx.In

	Env Context
	Cfg config.Provider
	FS  fs.CoordFS
}

// decorateConfigProvider includes any steps that modify the config.Provider before it is used, or use its data for any startup related activities.
func decorateConfigProvider(p DecorateConfigParams) (config.Provider, error) {
	combined := p.Cfg
	if p.Env.RuntimeEnvironment == EnvDevelopment {
		var err error
		if combined, err = withDevelopmentLogging(combined); err != nil {
			return nil, fmt.Errorf("applying development overrides: %v", err)
		}
	}

	combined, err := ensureLogFolder(combined, p.FS)
	if err != nil {
		return nil, fmt.Errorf("ensuring log folder: %v", err)
	}

	if err := ensureServerInfoFolder(combined, p.FS); err != nil {
		return nil, fmt.Errorf("ensuring server info folder: %v", err)
	}

	return combined, nil
}

// withDevelopmentLogging layers debug level, development mode logging over cfg.
func withDevelopmentLogging(cfg config.Provider) (config.Provider, error) {
	overrides, err := config.NewStaticProvider(map[string]interface{}{
		"logging": map[string]interface{}{
			"level":       "debug",
			"development": true,
		},
	})
	if err != nil {
		return nil, err
	}
	return config.NewProviderGroup("development", cfg, overrides)
}

// Ensure that all configured logging output directories exist or create if necessary.
func ensureLogFolder(cfg config.Provider, fs fs.CoordFS) (config.Provider, error) {
	var c zap.Config
	if err := cfg.Get("logging").Populate(&c); err != nil {
		return nil, fmt.Errorf("loading logging config: %v", err)
	}

	for _, outputPath := range c.OutputPaths {
		if outputPath == "stdout" || outputPath == "stderr" {
			continue
		}
		dir := path.Dir(outputPath)
		if err := fs.MkdirAll(dir); err != nil {
			return nil, fmt.Errorf("creating logging directory: %v", err)
		}
	}

	return cfg, nil
}

// ensureServerInfoFolder creates the directory of the server info file, when one is configured.
func ensureServerInfoFolder(cfg config.Provider, fs fs.CoordFS) error {
	var infoPath string
	if err := cfg.Get(_configKeyServerInfoFile).Populate(&infoPath); err != nil {
		return fmt.Errorf("loading server info path: %v", err)
	}
	if infoPath == "" {
		return nil
	}
	return fs.MkdirAll(path.Dir(infoPath))
}
