// Package entity contains the domain types shared by the lspcoord controllers.
package entity

import (
	"sort"
	"strings"
	"time"

	"github.com/gofrs/uuid"
)

// ProjectKind identifies the variant of a ProjectType.
type ProjectKind string

// Supported project kinds.
const (
	ProjectKindUnknown    ProjectKind = "unknown"
	ProjectKindRust       ProjectKind = "rust"
	ProjectKindTypeScript ProjectKind = "typescript"
	ProjectKindJavaScript ProjectKind = "javascript"
	ProjectKindPython     ProjectKind = "python"
	ProjectKindGo         ProjectKind = "go"
	ProjectKindC          ProjectKind = "c"
	ProjectKindCpp        ProjectKind = "cpp"
	ProjectKindMixed      ProjectKind = "mixed"
	ProjectKindOther      ProjectKind = "other"
)

// ProjectType classifies a workspace. Name is only set for ProjectKindOther, Members only for ProjectKindMixed.
type ProjectType struct {
	Kind    ProjectKind   `json:"kind" yaml:"kind"`
	Name    string        `json:"name,omitempty" yaml:"name,omitempty"`
	Members []ProjectType `json:"members,omitempty" yaml:"members,omitempty"`
}

// Single-language project types.
var (
	UnknownProject    = ProjectType{Kind: ProjectKindUnknown}
	RustProject       = ProjectType{Kind: ProjectKindRust}
	TypeScriptProject = ProjectType{Kind: ProjectKindTypeScript}
	JavaScriptProject = ProjectType{Kind: ProjectKindJavaScript}
	PythonProject     = ProjectType{Kind: ProjectKindPython}
	GoProject         = ProjectType{Kind: ProjectKindGo}
	CProject          = ProjectType{Kind: ProjectKindC}
	CppProject        = ProjectType{Kind: ProjectKindCpp}
)

// OtherProject returns a project type for a named project that has no builtin classification.
func OtherProject(name string) ProjectType {
	return ProjectType{Kind: ProjectKindOther, Name: name}
}

// MixedProject returns a project type made of several languages.
func MixedProject(members ...ProjectType) ProjectType {
	return ProjectType{Kind: ProjectKindMixed, Members: members}
}

// IsUnknown reports whether no project could be classified.
func (p ProjectType) IsUnknown() bool {
	return p.Kind == ProjectKindUnknown || p.Kind == ""
}

// PrimaryLanguageID returns the LSP language identifier used when starting servers for this project.
func (p ProjectType) PrimaryLanguageID() string {
	switch p.Kind {
	case ProjectKindRust, ProjectKindTypeScript, ProjectKindJavaScript, ProjectKindPython,
		ProjectKindGo, ProjectKindC, ProjectKindCpp:
		return string(p.Kind)
	case ProjectKindOther:
		return strings.ReplaceAll(strings.ToLower(p.Name), " ", "_")
	default:
		return string(ProjectKindUnknown)
	}
}

// String implements fmt.Stringer.
func (p ProjectType) String() string {
	switch p.Kind {
	case ProjectKindOther:
		return "other(" + p.Name + ")"
	case ProjectKindMixed:
		members := make([]string, 0, len(p.Members))
		for _, m := range p.Members {
			members = append(members, m.String())
		}
		return "mixed(" + strings.Join(members, ",") + ")"
	case "":
		return string(ProjectKindUnknown)
	default:
		return string(p.Kind)
	}
}

// ProjectInfo is the result of a successful project detection. A new detection replaces it.
type ProjectInfo struct {
	WorkspaceRoot   string      `json:"workspaceRoot" zap:"workspaceRoot"`
	ProjectType     ProjectType `json:"projectType" zap:"projectType"`
	LanguageServers []string    `json:"languageServers" zap:"languageServers"`
	DetectedAt      time.Time   `json:"detectedAt" zap:"detectedAt"`
}

// ManagedServer records a language server instance started by the coordination layer.
type ManagedServer struct {
	ServerID      uuid.UUID `json:"serverId" zap:"serverId"`
	ServerName    string    `json:"serverName" zap:"serverName"`
	WorkspaceRoot string    `json:"workspaceRoot" zap:"workspaceRoot"`
	LanguageID    string    `json:"languageId" zap:"languageId"`
	StartedAt     time.Time `json:"startedAt" zap:"startedAt"`
}

// ServerStartResult is the success payload of a start server command.
type ServerStartResult struct {
	ServerID   uuid.UUID `json:"serverId"`
	ServerName string    `json:"serverName"`
	LanguageID string    `json:"languageId"`
}

// ProjectStatus summarizes what is known about a workspace root.
type ProjectStatus struct {
	WorkspaceRoot string          `json:"workspaceRoot"`
	Info          *ProjectInfo    `json:"info,omitempty"`
	Servers       []ManagedServer `json:"servers"`
}

// SortedUnique returns a sorted copy of names with duplicates and empty entries removed.
func SortedUnique(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	result := make([]string, 0, len(names))
	for _, n := range names {
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		result = append(result, n)
	}
	sort.Strings(result)
	return result
}
