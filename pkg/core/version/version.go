// ============================================================================
// minic - Toy Language Front End
// ============================================================================
//
// Package:     version
// Description: Central version management for the front end and its tools
// Author:      Mike Stoffels
// Created:     2026-10-13
// License:     MIT
// ============================================================================

package version

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/samber/lo"
)

// Version constants
const (
	// Release version
	Release = "0.1.0"

	// Component versions
	Lexer    = "0.1.1"
	Parser   = "0.1.2"
	Frontend = "0.1.2"
)

// Components lists the versioned front-end components in pipeline order
var Components = []string{"lexer", "parser", "frontend"}

// Set at build time via -ldflags "-X github.com/msto63/minic/pkg/core/version.GitCommit=..."
var (
	GitCommit = "development"
	BuildDate = "unknown"
)

// ComponentVersion returns the version for a given component name
func ComponentVersion(name string) string {
	switch name {
	case "lexer":
		return Lexer
	case "parser":
		return Parser
	case "frontend":
		return Frontend
	default:
		return Release
	}
}

// Info describes the running binary
type Info struct {
	Version   string `json:"version" yaml:"version"`
	GitCommit string `json:"git_commit" yaml:"git_commit"`
	BuildDate string `json:"build_date" yaml:"build_date"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	Platform  string `json:"platform" yaml:"platform"`

	Components map[string]string `json:"components" yaml:"components"`
}

// Get returns the build information
func Get() Info {
	return Info{
		Version:   Release,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,

		Components: lo.SliceToMap(Components, func(name string) (string, string) {
			return name, ComponentVersion(name)
		}),
	}
}

// String renders the multi-line version banner
func (i Info) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "minic v%s\n  Git Commit: %s\n  Build Date: %s\n  Go Version: %s\n  OS/Arch:    %s\n",
		i.Version, i.GitCommit, i.BuildDate, i.GoVersion, i.Platform)
	for _, name := range Components {
		if v, ok := i.Components[name]; ok {
			fmt.Fprintf(&b, "  %-11s %s\n", name+":", v)
		}
	}
	return b.String()
}
