// Package shellenv builds the login shell probe used to capture a directory's
// development environment and filters captured variables down to the set that
// may be handed to language server processes.
package shellenv

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// DefaultShell is used when $SHELL is unset.
const DefaultShell = "/bin/bash"

const _waitDelay = 100 * time.Millisecond

// Shell types with dedicated probe handling.
const (
	ShellBash    = "bash"
	ShellZsh     = "zsh"
	ShellFish    = "fish"
	ShellTcsh    = "tcsh"
	ShellCsh     = "csh"
	ShellNu      = "nu"
	ShellUnknown = "unknown"
)

// DetectShellType classifies a shell by the base name of its path.
func DetectShellType(shellPath string) string {
	switch name := filepath.Base(shellPath); name {
	case ShellBash, ShellZsh, ShellFish, ShellTcsh, ShellCsh, ShellNu:
		return name
	default:
		return ShellUnknown
	}
}

// CaptureCommand returns the command that enters dir in a login shell, so that
// directory hooks (direnv, asdf, nix) run, and prints the environment NUL separated.
// The shell is killed when ctx is done.
func CaptureCommand(ctx context.Context, shell, dir string) *exec.Cmd {
	if shell == "" {
		shell = DefaultShell
	}

	var args []string
	switch shellType := DetectShellType(shell); shellType {
	case ShellFish:
		args = []string{"-l", "-c", fmt.Sprintf("cd %s; emit fish_prompt; printenv -0", Quote(shellType, dir))}
	case ShellTcsh, ShellCsh:
		args = []string{"-c", fmt.Sprintf("cd %s && printenv -0", Quote(shellType, dir))}
	case ShellNu:
		args = []string{"-l", "-c", fmt.Sprintf("cd %s; ^printenv -0", Quote(shellType, dir))}
	default:
		args = []string{"-l", "-c", fmt.Sprintf("cd %s && printenv -0", Quote(shellType, dir))}
	}

	cmd := exec.CommandContext(ctx, shell, args...)
	cmd.Dir = dir
	// Background jobs started by shell hooks may keep the output pipe open.
	cmd.WaitDelay = _waitDelay
	return cmd
}

// Quote returns s as a single literal word in the syntax of shellType.
func Quote(shellType, s string) string {
	switch shellType {
	case ShellFish:
		// Inside fish single quotes only \\ and \' are escapes.
		return "'" + strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(s) + "'"
	case ShellNu:
		// Nu single quoted strings have no escapes, so use a raw string long enough to hold s.
		hashes := "#"
		for strings.Contains(s, "'"+hashes) {
			hashes += "#"
		}
		return "r" + hashes + "'" + s + "'" + hashes
	case ShellTcsh, ShellCsh:
		// History expansion applies even inside single quotes.
		return "'" + strings.NewReplacer(`'`, `'\''`, `!`, `\!`).Replace(s) + "'"
	default:
		return "'" + strings.ReplaceAll(s, `'`, `'\''`) + "'"
	}
}

// ParseEnvironment parses NUL separated KEY=VALUE entries. Entries without '=' are ignored.
// Output without any variable is an error.
func ParseEnvironment(output []byte) (map[string]string, error) {
	result := make(map[string]string)
	for _, entry := range bytes.Split(output, []byte{0}) {
		if len(entry) == 0 {
			continue
		}
		key, value, ok := strings.Cut(string(entry), "=")
		if !ok || key == "" {
			continue
		}
		result[key] = value
	}

	if len(result) == 0 {
		return nil, fmt.Errorf("no environment variables found in shell output")
	}
	return result, nil
}
