package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// Config is the root configuration structure.
type Config struct {
	Database        DatabaseConfig `json:"database"`
	Projects        []string       `json:"projects"`
	SentinelProject string         `json:"sentinelProject"`
	RepositoryType  string         `json:"repositoryType"`
	VCSSystemLimit  int64          `json:"vcsSystemLimit"` // 0 visits every matching VCS system
	Bugfix          BugfixConfig   `json:"bugfix"`
}

// DatabaseConfig holds the SmartSHARK MongoDB credentials.
type DatabaseConfig struct {
	User                          string `json:"user"`
	Password                      string `json:"password"`
	Hostname                      string `json:"hostname"`
	Port                          int    `json:"port"`
	AuthenticationDatabase        string `json:"authenticationDatabase"`
	SSLEnabled                    bool   `json:"sslEnabled"`
	Name                          string `json:"name"`
	ServerSelectionTimeoutSeconds int    `json:"serverSelectionTimeoutSeconds"`
}

// BugfixConfig holds the commit qualification rules.
type BugfixConfig struct {
	Labels          []string `json:"labels"`          // Every label must be truthy
	RequiredParents int      `json:"requiredParents"` // Default: 1
}

// LLTC4JProjects is the list of projects covered by the LLTC4J dataset.
var LLTC4JProjects = []string{
	"Ant-ivy",
	"archiva",
	"commons-bcel",
	"commons-beanutils",
	"commons-codec",
	"commons-collections",
	"commons-compress",
	"commons-configuration",
	"commons-dbcp",
	"commons-digester",
	"commons-io",
	"commons-jcs",
	"commons-lang",
	"commons-math",
	"commons-net",
	"commons-scxml",
	"commons-validator",
	"commons-vfs",
	"deltaspike",
	"eagle",
	"giraph",
	"gora",
	"jspwiki",
	"opennlp",
	"parquet-mr",
	"santuario-java",
	"systemml",
	"wss4j",
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			User:                          "",
			Password:                      "",
			Hostname:                      "localhost",
			Port:                          27017,
			AuthenticationDatabase:        "",
			SSLEnabled:                    false,
			Name:                          "smartshark_2_2",
			ServerSelectionTimeoutSeconds: 30,
		},
		Projects:        append([]string(nil), LLTC4JProjects...),
		SentinelProject: "giraph",
		RepositoryType:  "git",
		VCSSystemLimit:  1,
		Bugfix: BugfixConfig{
			Labels:          []string{"validated_bugfix"},
			RequiredParents: 1,
		},
	}
}

// Validate reports configuration values the exporter cannot work with.
func (c *Config) Validate() error {
	if c.Database.Hostname == "" {
		return fmt.Errorf("database hostname must not be empty")
	}
	if c.Database.Port <= 0 || c.Database.Port > 65535 {
		return fmt.Errorf("database port out of range: %d", c.Database.Port)
	}
	if c.Database.Name == "" {
		return fmt.Errorf("database name must not be empty")
	}
	if c.VCSSystemLimit < 0 {
		return fmt.Errorf("vcsSystemLimit must not be negative: %d", c.VCSSystemLimit)
	}
	if c.Bugfix.RequiredParents < 0 {
		return fmt.Errorf("bugfix.requiredParents must not be negative: %d", c.Bugfix.RequiredParents)
	}
	return nil
}

// SelectProjects narrows Projects down to the names matching any of the glob
// patterns. An empty pattern list keeps every project.
func (c *Config) SelectProjects(patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		if c.Projects == nil {
			return []string{}, nil
		}
		return c.Projects, nil
	}
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid project pattern: %q", p)
		}
	}

	selected := []string{}
	for _, name := range c.Projects {
		for _, p := range patterns {
			if ok, _ := doublestar.Match(p, name); ok {
				selected = append(selected, name)
				break
			}
		}
	}
	return selected, nil
}

// LoadConfig loads configuration from a file, merging with defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		// Try default locations
		candidates := []string{".lltc4j.json"}
		if home, err := os.UserHomeDir(); err == nil && home != "" {
			candidates = append(candidates, filepath.Join(home, ".lltc4j.json"))
		}
		for _, p := range candidates {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
