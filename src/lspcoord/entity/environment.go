package entity

import (
	"sort"
	"strings"
)

// EnvironmentOrigin records where an environment snapshot came from.
type EnvironmentOrigin string

// Known environment origins.
const (
	// EnvironmentOriginCLI is the environment of the terminal that launched the editor.
	EnvironmentOriginCLI EnvironmentOrigin = "cli"
	// EnvironmentOriginWorktreeShell is captured by running the user's login shell in the directory.
	EnvironmentOriginWorktreeShell EnvironmentOrigin = "worktree-shell"
	// EnvironmentOriginProcess is the environment of the running process, used as a fallback.
	EnvironmentOriginProcess EnvironmentOrigin = "process"
)

// EnvironmentSnapshot is a set of environment variables tagged with their provenance.
type EnvironmentSnapshot struct {
	Vars   map[string]string `json:"vars"`
	Origin EnvironmentOrigin `json:"origin"`
}

// Get returns the value of a variable and whether it is set.
func (s EnvironmentSnapshot) Get(key string) (string, bool) {
	v, ok := s.Vars[key]
	return v, ok
}

// Environ returns the snapshot in KEY=VALUE form, sorted by key.
func (s EnvironmentSnapshot) Environ() []string {
	keys := make([]string, 0, len(s.Vars))
	for k := range s.Vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := make([]string, 0, len(keys))
	for _, k := range keys {
		result = append(result, k+"="+s.Vars[k])
	}
	return result
}

// EnvironFromList parses KEY=VALUE entries, as returned by os.Environ.
// Later entries win over earlier ones.
func EnvironFromList(list []string) map[string]string {
	result := make(map[string]string, len(list))
	for _, entry := range list {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || key == "" {
			continue
		}
		result[key] = value
	}
	return result
}
