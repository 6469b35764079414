package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/AlColeNS/search-expiscor-sub001/expiscor"
	"github.com/AlColeNS/search-expiscor-sub001/expiscor/solr"
	"github.com/AlColeNS/search-expiscor-sub001/internal/cliopt"
	"github.com/AlColeNS/search-expiscor-sub001/internal/cliutil"
)

// multiString is a repeatable string flag.
type multiString []string

func (m *multiString) String() string { return strings.Join(*m, ",") }
func (m *multiString) Set(v string) error {
	*m = append(*m, v)
	return nil
}

func RunDelete(g cliopt.GlobalOptions, argv []string) int {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var name, out string
	var keys multiString
	var post bool
	fs.StringVar(&name, "name", "", "schema name from the configuration")
	fs.Var(&keys, "key", "primary key value to delete (repeatable)")
	fs.StringVar(&out, "out", "-", "write the delete message here; - is stdout")
	fs.BoolVar(&post, "post", false, "post to the server instead of writing a file")
	if err := fs.Parse(argv); err != nil {
		return 2
	}
	if name == "" {
		fmt.Fprintln(os.Stderr, "missing -name")
		return 2
	}
	if len(keys) == 0 {
		fmt.Fprintln(os.Stderr, "missing -key")
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
	template, err := sc.Bag()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if template.PrimaryKeyField() == nil {
		fmt.Fprintf(os.Stderr, "schema %q has no primary key field\n", name)
		return 1
	}

	docs := make([]*expiscor.Document, 0, len(keys))
	for _, key := range keys {
		doc := expiscor.NewDocument(name)
		doc.Bag = template.Copy()
		doc.Bag.ClearValues()
		doc.Bag.PrimaryKeyField().SetValue(key)
		docs = append(docs, doc)
	}

	if post {
		src, serr := cliutil.NewSource(g, cfg)
		if serr != nil {
			fmt.Fprintln(os.Stderr, serr)
			return 1
		}
		ctx := context.Background()
		for _, doc := range docs {
			if err := src.Delete(ctx, doc); err != nil {
				fmt.Fprintln(os.Stderr, err)
				return 1
			}
		}
		fmt.Fprintf(os.Stdout, "deleted %d records\n", len(docs))
		return 0
	}

	sink, err := openSink(out)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	uw := solr.NewUpdateWriter(solr.OpDelete, sink)
	err = uw.WriteHeader()
	for _, doc := range docs {
		if err != nil {
			break
		}
		err = uw.WriteDocument(doc, false, 1)
	}
	if cerr := uw.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
