package shellenv

import (
	"sort"
	"strings"
)

var _allowedNames = map[string]struct{}{
	"PATH":          {},
	"RUSTUP_HOME":   {},
	"CARGO_HOME":    {},
	"RUSTC_WRAPPER": {},
	"RUSTFLAGS":     {},
	"JAVA_HOME":     {},
	"NODE_PATH":     {},
	"PYTHON_PATH":   {},
	"GOPATH":        {},
	"GOROOT":        {},
	"ASDF_DATA_DIR": {},
	"ASDF_DIR":      {},
}

var _allowedPrefixes = []string{"NIX_"}

var _excludedNames = map[string]struct{}{
	"HOME":            {},
	"USER":            {},
	"SHELL":           {},
	"PWD":             {},
	"OLDPWD":          {},
	"SESSION_MANAGER": {},
	"DISPLAY":         {},
	"WAYLAND_DISPLAY": {},
}

var _excludedPrefixes = []string{"XDG_SESSION_", "SSH_", "LC_", "LANG", "DBUS_"}

// Allowed reports whether a variable may be propagated to language server processes.
// Exclusions win over the safelist.
func Allowed(name string) bool {
	if _, ok := _excludedNames[name]; ok {
		return false
	}
	for _, prefix := range _excludedPrefixes {
		if strings.HasPrefix(name, prefix) {
			return false
		}
	}

	if _, ok := _allowedNames[name]; ok {
		return true
	}
	for _, prefix := range _allowedPrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// Overlay returns the safelisted subset of vars.
func Overlay(vars map[string]string) map[string]string {
	result := make(map[string]string)
	for k, v := range vars {
		if Allowed(k) {
			result[k] = v
		}
	}
	return result
}

// Apply returns base with the overlay variables replaced or appended, in KEY=VALUE form.
// Neither input is modified.
func Apply(base []string, overlay map[string]string) []string {
	result := make([]string, 0, len(base)+len(overlay))
	seen := make(map[string]struct{}, len(overlay))
	for _, entry := range base {
		key, _, _ := strings.Cut(entry, "=")
		if v, ok := overlay[key]; ok {
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			result = append(result, key+"="+v)
			continue
		}
		result = append(result, entry)
	}
	for _, key := range sortedKeys(overlay) {
		if _, ok := seen[key]; !ok {
			result = append(result, key+"="+overlay[key])
		}
	}
	return result
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
