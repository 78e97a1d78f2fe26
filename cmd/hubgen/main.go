package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/broady/hub/cmd/hubgen/internal/check"
	"github.com/broady/hub/cmd/hubgen/internal/gen"
	"github.com/broady/hub/hubgen"
)

type CLI struct {
	Verbose bool `help:"Log generation stages." short:"v"`

	Version VersionCmd `cmd:"" help:"Print version information."`
	Gen     gen.Cmd    `cmd:"" help:"Generate a typed client proxy for a hub contract."`
	Check   check.Cmd  `cmd:"" help:"Build the proxy model without writing files."`
}

type VersionCmd struct{}

func (c *VersionCmd) Run(kctx *kong.Context) error {
	fmt.Fprintln(kctx.Stdout, Version())
	return nil
}

func newParser(ctx context.Context, cli *CLI, stdout, stderr io.Writer) (*kong.Kong, error) {
	return kong.New(cli,
		kong.Name("hubgen"),
		kong.Description("Generate typed client proxies for hub contracts."),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
		kong.Vars{"config_file": hubgen.DefaultConfigFile},
		kong.BindTo(ctx, (*context.Context)(nil)),
	)
}

func setupLogging(w io.Writer, verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cli := &CLI{}
	parser, err := newParser(ctx, cli, os.Stdout, os.Stderr)
	if err != nil {
		panic(err)
	}
	kctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	setupLogging(os.Stderr, cli.Verbose)
	err = kctx.Run()
	kctx.FatalIfErrorf(err)
}
