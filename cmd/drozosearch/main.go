// Command drozosearch indexes the configured filesystem roots and reports
// progress until the index is ready, then exits. It has no subcommands and
// no flags: all configuration comes from appconfig's defaults and an
// optional .drozosearch.toml in the working directory.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	drozosearch "github.com/drozosearch/drozosearch"
	"github.com/drozosearch/drozosearch/internal/applog"
	"github.com/drozosearch/drozosearch/internal/progress"
)

func main() {
	root := &cobra.Command{
		Use:   "drozosearch",
		Short: "Incrementally index and search local files",
		Long:  "drozosearch indexes one or more filesystem roots into a local, full-text, ranked search index.",
		RunE:  runIndex,
	}

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runIndex(cmd *cobra.Command, args []string) error {
	applog.Setup(applog.ResolveLevel(false), applog.ResolveFormat())

	cfg, err := drozosearch.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	engine, err := drozosearch.Open(cfg)
	if err != nil {
		return fmt.Errorf("opening index: %w", err)
	}
	defer engine.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sink := func(p progress.Progress) {
		fmt.Fprintf(os.Stderr, "\r%-12s %d/%d files", p.Status.String(), p.FilesIndexed, p.EstimatedTotal)
	}

	handle := engine.StartIndexing(ctx, sink, nil)
	if err := handle.Wait(); err != nil {
		fmt.Fprintln(os.Stderr)
		return fmt.Errorf("indexing: %w", err)
	}

	fmt.Fprintln(os.Stderr)

	count, err := engine.DocCount()
	if err != nil {
		return fmt.Errorf("reading index stats: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Done. %d documents indexed at %s.\n", count, cfg.IndexPath)
	return nil
}
