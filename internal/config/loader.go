package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Load reads a YAML configuration file and validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read configuration file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration from %s: %w", path, err)
	}
	applyDefaults(&cfg)
	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Solr.Shards == 0 {
		cfg.Solr.Shards = 1
	}
	if cfg.Solr.ReplicationFactor == 0 {
		cfg.Solr.ReplicationFactor = 1
	}
}

// Validate checks the loaded configuration for the mistakes a feed run
// would otherwise discover halfway through.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("configuration cannot be nil")
	}
	seen := make(map[string]bool)
	for _, schema := range cfg.Schemas {
		if schema.Name == "" {
			return fmt.Errorf("schema name cannot be empty")
		}
		if seen[schema.Name] {
			return fmt.Errorf("duplicate schema %q", schema.Name)
		}
		seen[schema.Name] = true
		if len(schema.Fields) == 0 {
			return fmt.Errorf("schema %q must define at least one field", schema.Name)
		}
		if _, err := schema.Bag(); err != nil {
			return err
		}
	}
	if cfg.Artifacts.S3Bucket != "" && cfg.Artifacts.Dir != "" {
		return fmt.Errorf("artifacts may name a directory or an s3 bucket, not both")
	}
	return nil
}
