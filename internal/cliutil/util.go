package cliutil

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/AlColeNS/search-expiscor-sub001/expiscor/artifact"
	"github.com/AlColeNS/search-expiscor-sub001/expiscor/solr"
	"github.com/AlColeNS/search-expiscor-sub001/internal/cliopt"
	"github.com/AlColeNS/search-expiscor-sub001/internal/config"
)

func PrintJSON(w io.Writer, v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(w, string(b))
}

// LoadConfig reads the configuration named by the global options.
func LoadConfig(g cliopt.GlobalOptions) (*config.Config, error) {
	return config.Load(g.ConfigPath)
}

// ServerURL resolves the effective server base URL, flag over config.
func ServerURL(g cliopt.GlobalOptions, cfg *config.Config) (string, error) {
	if g.ServerURL != "" {
		return g.ServerURL, nil
	}
	if cfg != nil && cfg.Solr.BaseURL != "" {
		return cfg.Solr.BaseURL, nil
	}
	return "", fmt.Errorf("no server URL: pass -server or set solr.base_url")
}

// Collection resolves the effective collection name, flag over config.
func Collection(g cliopt.GlobalOptions, cfg *config.Config) (string, error) {
	if g.Collection != "" {
		return g.Collection, nil
	}
	if cfg != nil && cfg.Solr.Collection != "" {
		return cfg.Solr.Collection, nil
	}
	return "", fmt.Errorf("no collection: pass -collection or set solr.collection")
}

// NewClient builds the transport for the resolved server.
func NewClient(g cliopt.GlobalOptions, cfg *config.Config) (*solr.Client, error) {
	base, err := ServerURL(g, cfg)
	if err != nil {
		return nil, err
	}
	return solr.NewClient(base), nil
}

// NewSource builds the index-backed data source for the resolved server
// and collection, honoring the configured full-text type and child toggle.
func NewSource(g cliopt.GlobalOptions, cfg *config.Config) (*solr.Source, error) {
	client, err := NewClient(g, cfg)
	if err != nil {
		return nil, err
	}
	coll, err := Collection(g, cfg)
	if err != nil {
		return nil, err
	}
	src := solr.NewSource(coll, client, coll)
	if cfg != nil {
		src.Codec.Mapper = cfg.Mapper()
		src.IncludeChildren = cfg.Solr.IncludeChildren
	}
	return src, nil
}

// ArtifactStore builds the configured artifact store, local dir or S3.
func ArtifactStore(cfg *config.Config) (artifact.Store, error) {
	if cfg.Artifacts.S3Bucket != "" {
		return artifact.NewS3(cfg.Artifacts.S3Bucket, cfg.Artifacts.S3Prefix)
	}
	dir := cfg.Artifacts.Dir
	if dir == "" {
		dir = "."
	}
	return artifact.NewLocal(dir)
}
