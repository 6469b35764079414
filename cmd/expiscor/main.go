package main

import (
	"os"

	"github.com/AlColeNS/search-expiscor-sub001/internal/cli"
	_ "modernc.org/sqlite"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:]))
}
