package project

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/nucleotide/lspcoord/src/lspcoord/entity"
	"github.com/nucleotide/lspcoord/src/lspcoord/internal/fs"
	"gopkg.in/yaml.v3"
)

// LocalConfigFile holds project specific settings at the root of a workspace.
const LocalConfigFile = ".lspcoord.yaml"

// _builtinMarkers are the files whose creation or removal changes the classification of a root.
var _builtinMarkers = []string{
	"Cargo.toml",
	"package.json",
	"tsconfig.json",
	"pyproject.toml",
	"requirements.txt",
	"setup.py",
	"go.mod",
	"CMakeLists.txt",
	"Makefile",
}

var _builtinServers = map[entity.ProjectKind][]string{
	entity.ProjectKindRust:       {"rust-analyzer"},
	entity.ProjectKindTypeScript: {"typescript-language-server"},
	entity.ProjectKindJavaScript: {"typescript-language-server"},
	entity.ProjectKindPython:     {"pyright"},
	entity.ProjectKindGo:         {"gopls"},
	entity.ProjectKindC:          {"clangd"},
	entity.ProjectKindCpp:        {"clangd"},
}

type localConfig struct {
	CustomMarkers map[string]entity.CustomMarker `yaml:"customMarkers"`
}

type customMatch struct {
	name   string
	marker entity.CustomMarker
}

type detector struct {
	fs            fs.CoordFS
	customMarkers map[string]entity.CustomMarker
}

// classify returns the project type of root and the servers it needs. Only root itself is scanned.
func (d *detector) classify(root string) (entity.ProjectType, []string, error) {
	markers, err := d.markersFor(root)
	if err != nil {
		return entity.UnknownProject, nil, err
	}

	if match, ok := d.bestCustomMatch(root, markers); ok {
		projectType := customProjectType(match.name)
		return projectType, entity.SortedUnique([]string{match.marker.LanguageServer}), nil
	}

	projectType := d.builtinProjectType(root)
	return projectType, builtinServers(projectType), nil
}

// markersFor merges the configured custom markers with the ones declared in the root's local config.
// Local entries win on name conflicts.
func (d *detector) markersFor(root string) (map[string]entity.CustomMarker, error) {
	merged := make(map[string]entity.CustomMarker, len(d.customMarkers))
	for name, m := range d.customMarkers {
		merged[name] = m
	}

	path := filepath.Join(root, LocalConfigFile)
	if ok, _ := d.fs.FileExists(path); !ok {
		return merged, nil
	}
	data, err := d.fs.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var local localConfig
	if err := yaml.Unmarshal(data, &local); err != nil {
		return nil, err
	}
	for name, m := range local.CustomMarkers {
		merged[name] = m
	}
	return merged, nil
}

func (d *detector) bestCustomMatch(root string, markers map[string]entity.CustomMarker) (customMatch, bool) {
	var matches []customMatch
	for name, m := range markers {
		for _, marker := range m.Markers {
			if d.exists(filepath.Join(root, marker)) {
				matches = append(matches, customMatch{name: name, marker: m})
				break
			}
		}
	}
	if len(matches) == 0 {
		return customMatch{}, false
	}

	// Highest priority first, names break ties so the choice is stable.
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].marker.Priority != matches[j].marker.Priority {
			return matches[i].marker.Priority > matches[j].marker.Priority
		}
		return matches[i].name < matches[j].name
	})
	return matches[0], true
}

func (d *detector) builtinProjectType(root string) entity.ProjectType {
	has := func(name string) bool { return d.exists(filepath.Join(root, name)) }

	switch {
	case has("Cargo.toml"):
		return entity.RustProject
	case has("package.json"):
		if has("tsconfig.json") || d.hasTypeScriptSources(root) {
			return entity.TypeScriptProject
		}
		return entity.JavaScriptProject
	case has("pyproject.toml"), has("requirements.txt"), has("setup.py"):
		return entity.PythonProject
	case has("go.mod"):
		return entity.GoProject
	case has("CMakeLists.txt"), has("Makefile"):
		if isDir, _ := d.fs.DirExists(filepath.Join(root, "src")); isDir {
			return entity.CppProject
		}
		return entity.CProject
	}
	return entity.UnknownProject
}

func (d *detector) hasTypeScriptSources(root string) bool {
	entries, err := d.fs.ReadDir(filepath.Join(root, "src"))
	if err != nil {
		return false
	}
	for _, e := range entries {
		switch filepath.Ext(e.Name()) {
		case ".ts", ".tsx":
			return true
		}
	}
	return false
}

// watchedMarkers returns the file names that trigger re-detection when they appear or disappear.
func (d *detector) watchedMarkers() map[string]struct{} {
	result := make(map[string]struct{})
	for _, m := range _builtinMarkers {
		result[m] = struct{}{}
	}
	for _, custom := range d.customMarkers {
		for _, m := range custom.Markers {
			result[filepath.Base(m)] = struct{}{}
		}
	}
	result[LocalConfigFile] = struct{}{}
	return result
}

func (d *detector) exists(path string) bool {
	if ok, _ := d.fs.FileExists(path); ok {
		return true
	}
	ok, _ := d.fs.DirExists(path)
	return ok
}

// customProjectType infers a builtin type from the name of a custom project.
func customProjectType(name string) entity.ProjectType {
	lower := strings.ToLower(name)
	containsAny := func(subs ...string) bool {
		for _, s := range subs {
			if strings.Contains(lower, s) {
				return true
			}
		}
		return false
	}

	switch {
	case containsAny("rust"):
		return entity.RustProject
	case containsAny("typescript", "ts"):
		return entity.TypeScriptProject
	case containsAny("javascript", "js", "node"):
		return entity.JavaScriptProject
	case containsAny("python", "py"):
		return entity.PythonProject
	case containsAny("go"):
		return entity.GoProject
	case containsAny("cpp", "c++"):
		return entity.CppProject
	case containsAny("c"):
		return entity.CProject
	}
	return entity.OtherProject(name)
}

func builtinServers(projectType entity.ProjectType) []string {
	if projectType.Kind == entity.ProjectKindMixed {
		var servers []string
		for _, member := range projectType.Members {
			servers = append(servers, builtinServers(member)...)
		}
		return entity.SortedUnique(servers)
	}
	return entity.SortedUnique(_builtinServers[projectType.Kind])
}
