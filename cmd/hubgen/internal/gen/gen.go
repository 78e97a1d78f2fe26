package gen

import (
	"context"
	"fmt"

	"github.com/alecthomas/kong"
	"github.com/broady/hub/cmd/hubgen/internal/flags"
	"github.com/broady/hub/hubgen"
	"github.com/broady/hub/hubgen/sink"
)

type Cmd struct {
	flags.File
	DryRun bool `help:"Print the generated source instead of writing it." short:"n"`
}

func (c *Cmd) Run(ctx context.Context, kctx *kong.Context) error {
	cfg, err := c.Load()
	if err != nil {
		return err
	}

	g := hubgen.FromConfig(*cfg)
	if c.DryRun {
		g = g.WithSink(sink.NewWriterSink(kctx.Stdout))
	}

	res, err := g.Generate(ctx)
	if err != nil {
		return err
	}
	if !c.DryRun {
		fmt.Fprintf(kctx.Stdout, "wrote %s (%d methods, %d declarations)\n",
			res.Output, len(res.Model.Methods), len(res.Model.Declarations))
	}
	return nil
}
