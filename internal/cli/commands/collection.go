package commands

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/AlColeNS/search-expiscor-sub001/expiscor/solr"
	"github.com/AlColeNS/search-expiscor-sub001/internal/cliopt"
	"github.com/AlColeNS/search-expiscor-sub001/internal/cliutil"
	"github.com/AlColeNS/search-expiscor-sub001/internal/config"
)

func RunCollection(g cliopt.GlobalOptions, argv []string) int {
	if len(argv) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: expiscor collection <list|exists|create|reload|delete>")
		return 2
	}
	subcmd := argv[0]
	rest := argv[1:]

	cfg, err := cliutil.LoadConfig(g)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	client, err := cliutil.NewClient(g, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	admin := solr.NewAdmin(client)
	ctx := context.Background()

	switch subcmd {
	case "list":
		names, err := admin.List(ctx)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		for _, n := range names {
			fmt.Fprintln(os.Stdout, n)
		}
		return 0
	case "exists":
		name, code := collectionName(g, cfg, rest)
		if code != 0 {
			return code
		}
		ok, err := admin.Exists(ctx, name)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Fprintln(os.Stdout, ok)
		return 0
	case "create":
		return runCollectionCreate(ctx, admin, g, cfg, rest)
	case "reload":
		name, code := collectionName(g, cfg, rest)
		if code != 0 {
			return code
		}
		if err := admin.Reload(ctx, name); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Fprintln(os.Stdout, "reloaded")
		return 0
	case "delete":
		name, code := collectionName(g, cfg, rest)
		if code != 0 {
			return code
		}
		if err := admin.Delete(ctx, name); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Fprintln(os.Stdout, "deleted")
		return 0
	default:
		fmt.Fprintf(os.Stderr, "unknown collection subcommand: %s\n", subcmd)
		return 2
	}
}

func runCollectionCreate(ctx context.Context, admin *solr.Admin, g cliopt.GlobalOptions, cfg *config.Config, argv []string) int {
	fs := flag.NewFlagSet("collection create", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var configSet string
	var shards, rf int
	fs.StringVar(&configSet, "config-set", cfg.Solr.ConfigSet, "server-side config set")
	fs.IntVar(&shards, "shards", cfg.Solr.Shards, "number of shards")
	fs.IntVar(&rf, "replication-factor", cfg.Solr.ReplicationFactor, "replication factor")
	if err := fs.Parse(argv); err != nil {
		return 2
	}
	name, err := cliutil.Collection(g, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if err := admin.Create(ctx, configSet, name, shards, rf); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Fprintln(os.Stdout, "created")
	return 0
}

func collectionName(g cliopt.GlobalOptions, cfg *config.Config, argv []string) (string, int) {
	if len(argv) > 0 && argv[0] != "" {
		return argv[0], 0
	}
	name, err := cliutil.Collection(g, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return "", 2
	}
	return name, 0
}
