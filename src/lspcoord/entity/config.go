package entity

import "time"

// Configuration keys read from the config.Provider.
const (
	ProjectLspConfigKey      = "projectLsp"
	LanguageServersConfigKey = "languageServers"
	EnvironmentConfigKey     = "environment"
	CoordinatorConfigKey     = "coordinator"
	WorkspaceRootConfigKey   = "workspace.root"
)

// ProjectLspConfig controls project detection and proactive server startup.
type ProjectLspConfig struct {
	EnableProactiveStartup bool                    `yaml:"enableProactiveStartup"`
	HealthCheckInterval    time.Duration           `yaml:"healthCheckInterval"`
	StartupTimeout         time.Duration           `yaml:"startupTimeout"`
	MaxConcurrentStartups  int                     `yaml:"maxConcurrentStartups"`
	ProjectMarkers         []string                `yaml:"projectMarkers"`
	CustomMarkers          map[string]CustomMarker `yaml:"customMarkers"`
	WatchMarkers           bool                    `yaml:"watchMarkers"`
}

// CustomMarker describes a user defined project type. The highest priority match wins.
type CustomMarker struct {
	Markers        []string `yaml:"markers"`
	LanguageServer string   `yaml:"languageServer"`
	Priority       int      `yaml:"priority"`
}

// LanguageServerConfig describes how to launch a named language server.
type LanguageServerConfig struct {
	Command     string   `yaml:"command"`
	Args        []string `yaml:"args"`
	LanguageIDs []string `yaml:"languageIds"`
}

// LanguageServerConfigs maps a server name to its launch configuration.
type LanguageServerConfigs map[string]LanguageServerConfig

// EnvironmentConfig controls shell environment capture.
type EnvironmentConfig struct {
	CaptureTimeout        time.Duration     `yaml:"captureTimeout"`
	ProviderTimeout       time.Duration     `yaml:"providerTimeout"`
	MaxConcurrentCaptures int               `yaml:"maxConcurrentCaptures"`
	CLIEnvironment        map[string]string `yaml:"cliEnvironment"`
}

// CoordinatorConfig holds the timeouts applied by the command processor.
type CoordinatorConfig struct {
	StartServerTimeout time.Duration `yaml:"startServerTimeout"`
	EnvironmentTimeout time.Duration `yaml:"environmentTimeout"`
	CompletionTimeout  time.Duration `yaml:"completionTimeout"`
}

// DefaultProjectLspConfig returns the configuration used when the config section is absent.
func DefaultProjectLspConfig() ProjectLspConfig {
	return ProjectLspConfig{
		EnableProactiveStartup: true,
		HealthCheckInterval:    30 * time.Second,
		StartupTimeout:         10 * time.Second,
		MaxConcurrentStartups:  3,
		WatchMarkers:           true,
	}
}

// DefaultEnvironmentConfig returns the configuration used when the config section is absent.
func DefaultEnvironmentConfig() EnvironmentConfig {
	return EnvironmentConfig{
		CaptureTimeout:        2 * time.Second,
		ProviderTimeout:       3 * time.Second,
		MaxConcurrentCaptures: 3,
	}
}

// DefaultCoordinatorConfig returns the configuration used when the config section is absent.
func DefaultCoordinatorConfig() CoordinatorConfig {
	return CoordinatorConfig{
		StartServerTimeout: 15 * time.Second,
		EnvironmentTimeout: 3 * time.Second,
		CompletionTimeout:  5 * time.Second,
	}
}

// DefaultLanguageServers returns launch commands for the builtin servers.
func DefaultLanguageServers() LanguageServerConfigs {
	return LanguageServerConfigs{
		"rust-analyzer": {
			Command:     "rust-analyzer",
			LanguageIDs: []string{"rust"},
		},
		"typescript-language-server": {
			Command:     "typescript-language-server",
			Args:        []string{"--stdio"},
			LanguageIDs: []string{"typescript", "javascript", "typescriptreact", "javascriptreact"},
		},
		"pyright": {
			Command:     "pyright-langserver",
			Args:        []string{"--stdio"},
			LanguageIDs: []string{"python"},
		},
		"gopls": {
			Command:     "gopls",
			LanguageIDs: []string{"go"},
		},
		"clangd": {
			Command:     "clangd",
			LanguageIDs: []string{"c", "cpp"},
		},
	}
}

// SupportsLanguage reports whether the server handles documents of the given language.
// A server without configured languages accepts every document.
func (c LanguageServerConfig) SupportsLanguage(languageID string) bool {
	if len(c.LanguageIDs) == 0 {
		return true
	}
	for _, id := range c.LanguageIDs {
		if id == languageID {
			return true
		}
	}
	return false
}
