// Package config loads the feed configuration file: server coordinates,
// artifact placement, record sources, and the named field schemas that
// build bags.
package config

import (
	"fmt"
	"strings"

	"github.com/AlColeNS/search-expiscor-sub001/expiscor"
	"github.com/AlColeNS/search-expiscor-sub001/expiscor/solr"
)

type Config struct {
	Solr      Solr      `yaml:"solr"`
	Artifacts Artifacts `yaml:"artifacts"`
	Sources   Sources   `yaml:"sources"`
	Schemas   []Schema  `yaml:"schemas"`
}

type Solr struct {
	BaseURL           string `yaml:"base_url"`
	Collection        string `yaml:"collection"`
	ConfigSet         string `yaml:"config_set"`
	Shards            int    `yaml:"shards"`
	ReplicationFactor int    `yaml:"replication_factor"`
	FullTextType      string `yaml:"full_text_type"`
	IncludeChildren   bool   `yaml:"include_children"`
}

type Artifacts struct {
	Dir      string `yaml:"dir"`
	S3Bucket string `yaml:"s3_bucket"`
	S3Prefix string `yaml:"s3_prefix"`
}

type Sources struct {
	SQLitePath    string `yaml:"sqlite_path"`
	SQLiteTable   string `yaml:"sqlite_table"`
	PostgresDSN   string `yaml:"postgres_dsn"`
	PostgresTable string `yaml:"postgres_table"`
}

type Field struct {
	Name       string `yaml:"name"`
	Type       string `yaml:"type"`
	Multi      bool   `yaml:"multi"`
	PrimaryKey bool   `yaml:"primary_key"`
	Required   bool   `yaml:"required"`
	Hidden     bool   `yaml:"hidden"`
	Content    bool   `yaml:"content"`
	OmitNorms  bool   `yaml:"omit_norms"`
	Default    string `yaml:"default"`
	IndexType  string `yaml:"index_type"`
}

type Schema struct {
	Name   string  `yaml:"name"`
	Fields []Field `yaml:"fields"`
}

// Schema returns the named schema entry.
func (c *Config) Schema(name string) (Schema, bool) {
	for _, s := range c.Schemas {
		if s.Name == name {
			return s, true
		}
	}
	return Schema{}, false
}

// Mapper builds the type mapper the config implies.
func (c *Config) Mapper() solr.TypeMapper {
	m := solr.NewTypeMapper()
	if c.Solr.FullTextType != "" {
		m.FullTextType = c.Solr.FullTextType
	}
	return m
}

// Bag builds the field bag a schema entry describes, in declaration order.
func (s Schema) Bag() (*expiscor.Bag, error) {
	bag := expiscor.NewBag()
	for _, fc := range s.Fields {
		domainType, err := ParseDomainType(fc.Type)
		if err != nil {
			return nil, fmt.Errorf("schema %q field %q: %w", s.Name, fc.Name, err)
		}
		f := expiscor.NewField(fc.Name, domainType)
		f.MultiValued = fc.Multi
		if fc.PrimaryKey {
			f.MarkPrimaryKey()
		}
		if fc.Required {
			f.SetFlag(expiscor.FeatureRequired, true)
		}
		if fc.Hidden {
			f.SetFlag(expiscor.FeatureHidden, true)
		}
		if fc.Content {
			f.SetFlag(expiscor.FeatureContent, true)
		}
		if fc.OmitNorms {
			f.SetFlag(expiscor.FeatureOmitNorms, true)
		}
		if fc.Default != "" {
			f.DefaultValue = fc.Default
			f.SetFlag(expiscor.FeatureHasDefault, true)
		}
		if fc.IndexType != "" {
			f.SetFeature(expiscor.FeatureIndexType, fc.IndexType)
		}
		if err := bag.Add(f); err != nil {
			return nil, fmt.Errorf("schema %q: %w", s.Name, err)
		}
	}
	return bag, nil
}

// ParseDomainType maps a config type name onto a domain type.
func ParseDomainType(name string) (expiscor.DomainType, error) {
	switch strings.ToLower(name) {
	case "", "text", "string":
		return expiscor.Text, nil
	case "integer", "int":
		return expiscor.Integer, nil
	case "long":
		return expiscor.Long, nil
	case "float":
		return expiscor.Float, nil
	case "double":
		return expiscor.Double, nil
	case "boolean", "bool":
		return expiscor.Boolean, nil
	case "date":
		return expiscor.Date, nil
	case "time":
		return expiscor.Time, nil
	case "datetime":
		return expiscor.DateTime, nil
	default:
		return expiscor.Text, fmt.Errorf("unknown field type %q", name)
	}
}
