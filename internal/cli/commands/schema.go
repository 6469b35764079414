package commands

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/AlColeNS/search-expiscor-sub001/expiscor"
	"github.com/AlColeNS/search-expiscor-sub001/expiscor/artifact"
	"github.com/AlColeNS/search-expiscor-sub001/expiscor/solr"
	"github.com/AlColeNS/search-expiscor-sub001/internal/cliopt"
	"github.com/AlColeNS/search-expiscor-sub001/internal/cliutil"
)

func RunSchema(g cliopt.GlobalOptions, argv []string) int {
	if len(argv) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: expiscor schema <save|load|download>")
		return 2
	}
	switch argv[0] {
	case "save":
		return runSchemaSave(g, argv[1:])
	case "load":
		return runSchemaLoad(g, argv[1:])
	case "download":
		return runSchemaDownload(g, argv[1:])
	default:
		fmt.Fprintf(os.Stderr, "unknown schema subcommand: %s\n", argv[0])
		return 2
	}
}

func runSchemaSave(g cliopt.GlobalOptions, argv []string) int {
	fs := flag.NewFlagSet("schema save", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var name, tag, out string
	fs.StringVar(&name, "name", "", "schema name from the configuration")
	fs.StringVar(&tag, "tag", "fields", "wrapping element name")
	fs.StringVar(&out, "out", "", "write to this path instead of the artifact store")
	if err := fs.Parse(argv); err != nil {
		return 2
	}
	if name == "" {
		fmt.Fprintln(os.Stderr, "missing -name")
		return 2
	}

	cfg, err := cliutil.LoadConfig(g)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	sc, ok := cfg.Schema(name)
	if !ok {
		fmt.Fprintf(os.Stderr, "schema %q not found in configuration\n", name)
		return 1
	}
	bag, err := sc.Bag()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	codec := solr.SchemaCodec{Mapper: cfg.Mapper()}
	var buf bytes.Buffer
	if err := codec.Save(&buf, bag, tag, 0); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if out != "" {
		if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Fprintln(os.Stdout, out)
		return 0
	}

	store, err := cliutil.ArtifactStore(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fileName := artifact.SchemaFileName(name)
	if err := store.Put(context.Background(), fileName, &buf); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Fprintln(os.Stdout, fileName)
	return 0
}

func runSchemaLoad(g cliopt.GlobalOptions, argv []string) int {
	fs := flag.NewFlagSet("schema load", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var file string
	fs.StringVar(&file, "file", "", "schema descriptor path")
	if err := fs.Parse(argv); err != nil {
		return 2
	}
	if file == "" {
		fmt.Fprintln(os.Stderr, "missing -file")
		return 2
	}

	codec := solr.NewSchemaCodec()
	doc, err := codec.LoadFile(file)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	for _, f := range doc.Bag.Fields() {
		var marks []string
		if f.IsPrimaryKey() {
			marks = append(marks, "primary-key")
		}
		if f.MultiValued {
			marks = append(marks, "multi-valued")
		}
		if f.IsFlagged(expiscor.FeatureIndexed) {
			marks = append(marks, "indexed")
		}
		if f.IsFlagged(expiscor.FeatureStored) {
			marks = append(marks, "stored")
		}
		suffix := ""
		if len(marks) > 0 {
			suffix = " [" + strings.Join(marks, ",") + "]"
		}
		fmt.Fprintf(os.Stdout, "%s\t%s%s\n", f.Name, f.Type, suffix)
	}
	return 0
}

func runSchemaDownload(g cliopt.GlobalOptions, argv []string) int {
	fs := flag.NewFlagSet("schema download", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var out string
	fs.StringVar(&out, "out", "", "destination path (default ds_schema_<collection>.xml)")
	if err := fs.Parse(argv); err != nil {
		return 2
	}

	cfg, err := cliutil.LoadConfig(g)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	src, err := cliutil.NewSource(g, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if out == "" {
		out = artifact.SchemaFileName(src.Name())
	}
	if err := src.DownloadSchema(context.Background(), out); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Fprintln(os.Stdout, out)
	return 0
}
