// Package config loads copy-rule configuration documents.
package config

import (
	"os"

	"copycheck/internal/errors"
	"copycheck/pkg/types"

	"gopkg.in/yaml.v3"
)

// DefaultBranch is the branch assumed when a config omits one.
const DefaultBranch = "main"

// Config represents a copy-rule configuration document. It maps
// source-repository file patterns to destination repositories.
type Config struct {
	SourceRepo   string       `yaml:"source_repo" json:"source_repo"`
	SourceBranch string       `yaml:"source_branch,omitempty" json:"source_branch,omitempty"`
	CopyRules    []types.Rule `yaml:"copy_rules" json:"copy_rules"`
}

// Load reads and parses a configuration file into its typed form.
// JSON documents parse as well, since YAML is a superset of JSON.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewConfigError("config file not found", path, errors.ConfigNotFound, err)
		}
		return nil, errors.NewConfigError("error reading config file", path, errors.InvalidConfig, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.NewConfigError("error parsing config file", path, errors.ParseFailed, err)
	}

	cfg.ApplyDefaults()
	return &cfg, nil
}

// LoadDocument reads a configuration file as an untyped mapping. The
// validator works on this raw form so it can report shape problems a typed
// unmarshal would mask.
func LoadDocument(path string) (map[string]interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewConfigError("config file not found", path, errors.ConfigNotFound, err)
		}
		return nil, errors.NewConfigError("error reading config file", path, errors.InvalidConfig, err)
	}

	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.NewConfigError("error parsing config file", path, errors.ParseFailed, err)
	}

	root, ok := doc.(map[string]interface{})
	if !ok {
		return nil, errors.NewConfigError("config must be a mapping", path, errors.BadStructure, nil)
	}
	return root, nil
}

// ApplyDefaults fills in fallback values for optional fields.
func (c *Config) ApplyDefaults() {
	if c.SourceBranch == "" {
		c.SourceBranch = DefaultBranch
	}
	for i := range c.CopyRules {
		for j := range c.CopyRules[i].Targets {
			if c.CopyRules[i].Targets[j].Branch == "" {
				c.CopyRules[i].Targets[j].Branch = DefaultBranch
			}
		}
	}
}
