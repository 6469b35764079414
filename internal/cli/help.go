package cli

import (
	"fmt"
	"io"
)

func PrintRootHelp(w io.Writer) {
	fmt.Fprintln(w, `expiscor — feed structured records into a Solr search index

USAGE
  expiscor [global flags] <command> [args]

GLOBAL FLAGS
  --config <path>       configuration file (default expiscor.yml)
  --server <url>        index server base URL (overrides config)
  --collection <name>   collection name (overrides config)

COMMANDS
  schema save -name <schema> [-out <path>]        write the schema descriptor artifact
  schema load -file <path>                        parse a schema descriptor and print its fields
  schema download [-out <path>]                   copy the live schema descriptor locally
  feed -name <schema> [-json|-import|-from]       stream records as an update message
  delete -name <schema> -key <value>...           emit or post a keyed delete
  commit                                          post a commit directive
  optimize                                        post an optimize directive
  collection list|exists|create|reload|delete     manage collections

Run "expiscor <command> --help" for per-command flags.`)
}
