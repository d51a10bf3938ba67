package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dylanmaniatakes/Door-Config-Generator/internal/cli"
	"github.com/dylanmaniatakes/Door-Config-Generator/pkg/buildinfo"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	packaged := buildinfo.IsPackaged()
	err := run(ctx, packaged)
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, err)
	}
	if packaged && !errors.Is(err, context.Canceled) {
		// Double-clicked builds run in a window that closes on exit.
		fmt.Fprint(os.Stderr, "\nPress Enter to close.")
		_, _ = bufio.NewReader(os.Stdin).ReadString('\n')
	}

	if err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130) // Standard shell convention for SIGINT
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, packaged bool) error {
	c := cli.New(os.Stderr, cli.LogInfo, cli.WithPackagedBuild(packaged))
	return c.RootCommand().ExecuteContext(ctx)
}
