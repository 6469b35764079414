package cliopt

import "flag"

// GlobalOptions are parsed once at the CLI root and passed to subcommands.
//
// NOTE: This is a separate package to avoid import cycles between the root
// command router and per-command code.
type GlobalOptions struct {
	ConfigPath string
	ServerURL  string
	Collection string
}

func DefaultGlobalOptions() GlobalOptions {
	return GlobalOptions{
		ConfigPath: "expiscor.yml",
	}
}

func BindGlobalFlags(fs *flag.FlagSet, g *GlobalOptions) {
	fs.StringVar(&g.ConfigPath, "config", g.ConfigPath, "configuration file path")
	fs.StringVar(&g.ServerURL, "server", g.ServerURL, "index server base URL (overrides config)")
	fs.StringVar(&g.Collection, "collection", g.Collection, "collection name (overrides config)")
}
