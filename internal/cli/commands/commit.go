package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/AlColeNS/search-expiscor-sub001/internal/cliopt"
	"github.com/AlColeNS/search-expiscor-sub001/internal/cliutil"
)

func RunCommit(g cliopt.GlobalOptions, argv []string) int {
	return runDirective(g, "committed", func(ctx context.Context, src directiveSource) error {
		return src.Commit(ctx)
	})
}

func RunOptimize(g cliopt.GlobalOptions, argv []string) int {
	return runDirective(g, "optimized", func(ctx context.Context, src directiveSource) error {
		return src.Optimize(ctx)
	})
}

type directiveSource interface {
	Commit(ctx context.Context) error
	Optimize(ctx context.Context) error
}

func runDirective(g cliopt.GlobalOptions, done string, call func(context.Context, directiveSource) error) int {
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
	if err := call(context.Background(), src); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Fprintln(os.Stdout, done)
	return 0
}
