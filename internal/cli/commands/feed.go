package commands

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/AlColeNS/search-expiscor-sub001/expiscor"
	"github.com/AlColeNS/search-expiscor-sub001/expiscor/solr"
	storpg "github.com/AlColeNS/search-expiscor-sub001/expiscor/storage/postgres"
	storlite "github.com/AlColeNS/search-expiscor-sub001/expiscor/storage/sqlite"
	"github.com/AlColeNS/search-expiscor-sub001/internal/cliopt"
	"github.com/AlColeNS/search-expiscor-sub001/internal/cliutil"
	"github.com/AlColeNS/search-expiscor-sub001/internal/config"
)

func RunFeed(g cliopt.GlobalOptions, argv []string) int {
	fs := flag.NewFlagSet("feed", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var name, op, from, importPath, out string
	var jsonStdin, post, commit bool
	fs.StringVar(&name, "name", "", "schema name from the configuration")
	fs.StringVar(&op, "op", "add", "operation: add or update")
	fs.BoolVar(&jsonStdin, "json", false, "read JSON lines from stdin")
	fs.StringVar(&importPath, "import", "", "read JSON lines from this file")
	fs.StringVar(&from, "from", "", "read records from a configured source: sqlite or postgres")
	fs.StringVar(&out, "out", "-", "write the update message here; - is stdout")
	fs.BoolVar(&post, "post", false, "post to the server instead of writing a file")
	fs.BoolVar(&commit, "commit", false, "commit after feeding")
	if err := fs.Parse(argv); err != nil {
		return 2
	}
	if name == "" {
		fmt.Fprintln(os.Stderr, "missing -name")
		return 2
	}
	operation := solr.Operation(op)
	if operation != solr.OpAdd && operation != solr.OpUpdate {
		fmt.Fprintln(os.Stderr, "-op must be add or update")
		return 2
	}
	updateMode := operation == solr.OpUpdate

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

	ctx := context.Background()

	// Records arrive as a table (SQL sources) or as individual documents
	// (JSON lines); both shapes flow through the same writer.
	var table *expiscor.Table
	var docs []*expiscor.Document
	switch {
	case from == "sqlite":
		src := storlite.New(name, cfg.Sources.SQLitePath, cfg.Sources.SQLiteTable, template)
		defer src.Shutdown()
		table, err = src.Fetch(ctx)
	case from == "postgres":
		src := storpg.New(name, cfg.Sources.PostgresDSN, cfg.Sources.PostgresTable, template)
		defer src.Shutdown()
		table, err = src.Fetch(ctx)
	case from != "":
		fmt.Fprintf(os.Stderr, "unknown source %q\n", from)
		return 2
	case importPath != "":
		f, ferr := os.Open(importPath)
		if ferr != nil {
			fmt.Fprintln(os.Stderr, ferr)
			return 1
		}
		defer f.Close()
		docs, err = readRecords(template, name, f)
	case jsonStdin:
		docs, err = readRecords(template, name, os.Stdin)
	default:
		fmt.Fprintln(os.Stderr, "provide -json, -import, or -from")
		return 2
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if post {
		return feedToServer(ctx, g, cfg, table, docs, updateMode, commit)
	}
	return feedToSink(out, operation, table, docs, updateMode, commit)
}

func feedToServer(ctx context.Context, g cliopt.GlobalOptions, cfg *config.Config, table *expiscor.Table, docs []*expiscor.Document, updateMode, commit bool) int {
	src, err := cliutil.NewSource(g, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	count := 0
	if table != nil {
		if updateMode {
			for i := 0; i < table.RowCount(); i++ {
				doc := expiscor.NewDocument(table.Name)
				doc.Bag = table.RowBag(i)
				if err := src.Update(ctx, doc); err != nil {
					fmt.Fprintln(os.Stderr, err)
					return 1
				}
			}
		} else if err := src.AddTable(ctx, table); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		count = table.RowCount()
	}
	for _, doc := range docs {
		var err error
		if updateMode {
			err = src.Update(ctx, doc)
		} else {
			err = src.Add(ctx, doc)
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		count++
	}
	if commit {
		if err := src.Commit(ctx); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}
	fmt.Fprintf(os.Stdout, "fed %d records\n", count)
	return 0
}

func feedToSink(out string, operation solr.Operation, table *expiscor.Table, docs []*expiscor.Document, updateMode, commit bool) int {
	sink, err := openSink(out)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	// The writer owns the sink from here; Close releases file sinks.
	uw := solr.NewUpdateWriter(operation, sink)
	err = uw.WriteHeader()
	if err == nil && table != nil {
		err = uw.WriteTable(table, updateMode, 1)
	}
	for _, doc := range docs {
		if err != nil {
			break
		}
		err = uw.WriteDocument(doc, updateMode, 1)
	}
	if err == nil && commit {
		err = uw.WriteCommit()
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

// readRecords drains JSON lines into one document per line, shaped by the
// template bag. Unknown keys are ignored; array values expand into a
// multi-valued field one element at a time.
func readRecords(template *expiscor.Bag, name string, r io.Reader) ([]*expiscor.Document, error) {
	var docs []*expiscor.Document
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec map[string]any
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("record %d: %w", len(docs)+1, err)
		}
		doc := expiscor.NewDocument(name)
		doc.Bag = bagFromRecord(template, rec)
		docs = append(docs, doc)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}

// bagFromRecord shapes one record by the template, leaving absent keys
// unassigned.
func bagFromRecord(template *expiscor.Bag, rec map[string]any) *expiscor.Bag {
	bag := template.Copy()
	bag.ClearValues()
	for _, f := range bag.Fields() {
		v, ok := rec[f.Name]
		if !ok || v == nil {
			continue
		}
		if items, isList := v.([]any); isList && f.MultiValued {
			for _, item := range items {
				f.AddValue(scalarValue(item))
			}
			continue
		}
		f.SetValue(scalarValue(v))
	}
	return bag
}

func scalarValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		b, _ := json.Marshal(x)
		return string(b)
	}
}

// writerOnly hides a sink's Close method so the update writer cannot
// release stdout.
type writerOnly struct {
	io.Writer
}

func openSink(out string) (io.Writer, error) {
	if out == "" || out == "-" {
		return writerOnly{os.Stdout}, nil
	}
	return os.Create(out)
}
