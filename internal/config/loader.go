package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/soyeahso/workflow-agents/internal/domain"
	"github.com/soyeahso/workflow-agents/internal/logging"
	"gopkg.in/yaml.v3"
)

// Format is a config document syntax.
type Format string

const (
	FormatYAML Format = "YAML"
	FormatTOML Format = "TOML"
)

// FormatFor picks the document syntax from a file extension. Anything that
// is not .toml is read as YAML, which also covers JSON.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// Load reads the config file at path and returns its normalized agents.
func Load(path string, log *logging.Logger) ([]domain.Record, error) {
	format := FormatFor(path)
	log.Sub("loader").Debug().Str("path", path).Str("format", string(format)).Msg("loading config")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{Message: fmt.Sprintf("could not read %s: %v", path, err)}
	}
	raw, err := parseAgents(data, format, path)
	if err != nil {
		return nil, err
	}
	return Build(raw, log)
}

// parseAgents decodes a document read from source and returns its raw agent
// list without validating the entries.
func parseAgents(data []byte, format Format, source string) ([]any, error) {
	doc, err := decodeDocument(data, format)
	if err != nil {
		return nil, &ConfigError{Message: fmt.Sprintf("invalid %s in %s: %v", format, source, err)}
	}
	return agentsList(doc)
}

func decodeDocument(data []byte, format Format) (any, error) {
	if format == FormatTOML {
		var doc map[string]any
		if _, err := toml.Decode(string(data), &doc); err != nil {
			return nil, err
		}
		return doc, nil
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	var node yaml.Node
	if err := decoder.Decode(&node); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	var extra yaml.Node
	if err := decoder.Decode(&extra); !errors.Is(err, io.EOF) {
		if err == nil {
			return nil, errors.New("multiple documents are not supported")
		}
		return nil, err
	}
	var doc any
	if err := node.Decode(&doc); err != nil {
		return nil, err
	}
	return withKeyOrder(canonical(doc), &node), nil
}

// agentsList checks the top-level shape and returns the raw agent entries.
func agentsList(doc any) ([]any, error) {
	top, _, ok := asMapping(canonical(doc))
	if !ok {
		return nil, &ConfigError{Message: fmt.Sprintf("config must be a mapping with an '%s' key", AgentsKey)}
	}
	value, has := top[AgentsKey]
	if !has {
		return nil, &ConfigError{Message: fmt.Sprintf("config missing required '%s' key", AgentsKey)}
	}
	list, ok := value.([]any)
	if !ok {
		return nil, &ConfigError{Message: fmt.Sprintf("'%s' must be a list", AgentsKey)}
	}
	if len(list) == 0 {
		return nil, &ConfigError{Message: fmt.Sprintf("'%s' list is empty", AgentsKey)}
	}
	return list, nil
}
