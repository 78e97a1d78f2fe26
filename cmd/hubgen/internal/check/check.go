package check

import (
	"context"
	"fmt"

	"github.com/alecthomas/kong"
	"github.com/broady/hub/cmd/hubgen/internal/flags"
	"github.com/broady/hub/hubgen"
)

type Cmd struct {
	flags.File
}

func (c *Cmd) Run(ctx context.Context, kctx *kong.Context) error {
	cfg, err := c.Load()
	if err != nil {
		return err
	}

	res, err := hubgen.FromConfig(*cfg).Build(ctx)
	if err != nil {
		return err
	}

	m := res.Model
	fmt.Fprintf(kctx.Stdout, "✓ %s.%s: %d methods, %d declarations", m.Namespace, m.ClassName, len(m.Methods), len(m.Declarations))
	if len(res.Prior) > 0 {
		fmt.Fprintf(kctx.Stdout, ", %d already declared", len(res.Prior))
	}
	fmt.Fprintln(kctx.Stdout)
	for _, method := range m.Methods {
		fmt.Fprintf(kctx.Stdout, "  %s\n", method.Name)
	}
	return nil
}
