package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	repoMarker        = ".git"
	defaultConfigDir  = "config"
	defaultConfigFile = "workflow_agents.yaml"
)

// Source says where a config location came from.
type Source int

const (
	SourceBuiltin Source = iota // no file; use DefaultAgents
	SourceArgument
	SourceEnvironment
	SourceDefault
)

func (s Source) String() string {
	switch s {
	case SourceArgument:
		return "argument"
	case SourceEnvironment:
		return EnvConfigPath
	case SourceDefault:
		return "default path"
	default:
		return "built-in defaults"
	}
}

// Location is the resolved config file, if any.
type Location struct {
	Path   string // empty for SourceBuiltin
	Source Source
}

// UseDefaults reports whether the built-in catalog should be used.
func (l Location) UseDefaults() bool {
	return l.Source == SourceBuiltin
}

// RepoRoot walks upward from start until it finds a directory containing a
// .git entry. It returns start itself when none is found.
func RepoRoot(start string) string {
	dir, err := filepath.Abs(start)
	if err != nil {
		return start
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, repoMarker)); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return start
		}
		dir = parent
	}
}

// DefaultPath returns the default config location under the repo root
// containing start.
func DefaultPath(start string) string {
	return filepath.Join(RepoRoot(start), defaultConfigDir, defaultConfigFile)
}

// Locate resolves the config file to read. Priority: explicit argument,
// then WORKFLOW_AGENTS_CONFIG, then the default path under the repo root.
// An explicit or environment path that does not exist is a NotFoundError;
// a missing default path means the built-in catalog is used.
func Locate(explicit string) (Location, error) {
	if explicit != "" {
		return requireExisting(explicit, SourceArgument)
	}
	if env := os.Getenv(EnvConfigPath); env != "" {
		return requireExisting(env, SourceEnvironment)
	}

	wd, err := os.Getwd()
	if err != nil {
		return Location{}, fmt.Errorf("get working directory: %w", err)
	}
	path := DefaultPath(wd)
	if !exists(path) {
		return Location{Source: SourceBuiltin}, nil
	}
	return Location{Path: path, Source: SourceDefault}, nil
}

func requireExisting(path string, source Source) (Location, error) {
	if !exists(path) {
		return Location{}, &NotFoundError{Path: path, Source: source}
	}
	return Location{Path: path, Source: source}, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
