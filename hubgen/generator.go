// Package hubgen generates typed client proxies for hub contracts.
//
// A run loads a Go package, selects one contract and its client API, builds
// a language-neutral proxy model, and emits it for a target language:
//
//	res, err := hubgen.FromPackage("./server/chat").
//	    Namespace("Chat.Client").
//	    ClassName("ChatProxy").
//	    Output("client/src/ChatProxy.ts").
//	    Generate(ctx)
package hubgen

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/broady/hub/hubgen/codegen"
	"github.com/broady/hub/hubgen/ir"
	"github.com/broady/hub/hubgen/model"
	"github.com/broady/hub/hubgen/provider"
	"github.com/broady/hub/hubgen/sink"
)

// MetadataProvider loads hub metadata for a package.
type MetadataProvider interface {
	Load(ctx context.Context, opts provider.SourceOptions) (*ir.Metadata, error)
}

// Result describes a generation run.
type Result struct {
	Model  *model.ApiModel
	Source []byte

	// Output is the file the source was (or would be) written to.
	Output string

	// Prior lists the names read from the types source.
	Prior []string
}

// Generator provides a fluent API for proxy generation.
// Create with FromPackage() or FromConfig() and configure with method chaining.
type Generator struct {
	cfg      Config
	logger   *slog.Logger
	sink     sink.OutputSink
	provider MetadataProvider
}

// FromPackage creates a Generator for the Go package matching pattern.
func FromPackage(pattern string) *Generator {
	return &Generator{cfg: Config{Package: pattern}}
}

// FromConfig creates a Generator from a loaded config.
func FromConfig(cfg Config) *Generator {
	return &Generator{cfg: cfg}
}

// Dir sets the directory the package pattern is resolved in.
func (g *Generator) Dir(dir string) *Generator {
	g.cfg.Dir = dir
	return g
}

// Contract selects the contract to generate for.
func (g *Generator) Contract(name string) *Generator {
	g.cfg.Contract = name
	return g
}

// ClientAPI selects the client API to generate subscriptions for.
func (g *Generator) ClientAPI(name string) *Generator {
	g.cfg.ClientAPI = name
	return g
}

// Namespace sets the namespace enclosing the proxy.
func (g *Generator) Namespace(ns string) *Generator {
	g.cfg.Namespace = ns
	return g
}

// ClassName sets the proxy class name.
func (g *Generator) ClassName(name string) *Generator {
	g.cfg.ClassName = name
	return g
}

// Output sets the output file.
func (g *Generator) Output(path string) *Generator {
	g.cfg.Output = path
	return g
}

// TypesSource sets the file whose declarations are not generated again.
func (g *Generator) TypesSource(path string) *Generator {
	g.cfg.TypesSource = path
	return g
}

// Target selects the output language by name.
func (g *Generator) Target(name string) *Generator {
	g.cfg.Target = name
	return g
}

// ConnectionProperty names the connection accessor of the proxy.
func (g *Generator) ConnectionProperty(name string) *Generator {
	g.cfg.ConnectionProperty = name
	return g
}

// RuntimeModule sets the TypeScript module runtime types are imported from.
func (g *Generator) RuntimeModule(module string) *Generator {
	g.cfg.RuntimeModule = module
	return g
}

// Indent sets the number of spaces per indent level.
func (g *Generator) Indent(n int) *Generator {
	g.cfg.Indent = n
	return g
}

// WithLogger sets the logger for stage progress. Defaults to slog.Default().
func (g *Generator) WithLogger(l *slog.Logger) *Generator {
	g.logger = l
	return g
}

// WithSink replaces the filesystem as the destination of Generate.
func (g *Generator) WithSink(s sink.OutputSink) *Generator {
	g.sink = s
	return g
}

// WithProvider replaces the source provider.
func (g *Generator) WithProvider(p MetadataProvider) *Generator {
	g.provider = p
	return g
}

// Config returns the effective config, with defaults applied.
func (g *Generator) Config() Config {
	cfg := g.cfg
	cfg.ApplyDefaults()
	return cfg
}

func (g *Generator) log() *slog.Logger {
	if g.logger != nil {
		return g.logger
	}
	return slog.Default()
}

// Build loads the package and produces the proxy source without writing it.
func (g *Generator) Build(ctx context.Context) (*Result, error) {
	cfg := g.Config()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	target, err := NewTarget(&cfg)
	if err != nil {
		return nil, err
	}
	log := g.log().With("package", cfg.Package, "target", target.Name())

	p := g.provider
	if p == nil {
		p = &provider.SourceProvider{}
	}
	log.Debug("loading package")
	md, err := p.Load(ctx, provider.SourceOptions{Pattern: cfg.Package, Dir: cfg.Dir})
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", cfg.Package, err)
	}
	log.Debug("loaded package", "contracts", len(md.Contracts), "client_apis", len(md.ClientAPIs))

	prior, err := priorDeclarations(target, cfg.TypesSource, cfg.Namespace)
	if err != nil {
		return nil, err
	}
	if len(prior) > 0 {
		log.Debug("read prior declarations", "types_source", cfg.TypesSource, "declarations", len(prior))
	}

	m, err := codegen.Build(md, codegen.Options{
		Namespace:          cfg.Namespace,
		ClassName:          cfg.ClassName,
		ConnectionProperty: cfg.ConnectionProperty,
		Contract:           cfg.Contract,
		ClientAPI:          cfg.ClientAPI,
	}, target.Runtime(), codegen.NewRegistry(prior...))
	if err != nil {
		return nil, fmt.Errorf("build model: %w", err)
	}

	src, err := target.Emit(m)
	if err != nil {
		return nil, fmt.Errorf("emit %s: %w", target.Name(), err)
	}
	log.Info("generated proxy",
		"contract", cfg.Contract,
		"class", m.ClassName,
		"methods", len(m.Methods),
		"declarations", len(m.Declarations))

	return &Result{Model: m, Source: src, Output: cfg.Output, Prior: prior}, nil
}

// Generate builds the proxy and writes it to the output file, or to the
// sink set with WithSink.
func (g *Generator) Generate(ctx context.Context) (*Result, error) {
	res, err := g.Build(ctx)
	if err != nil {
		return nil, err
	}

	out := g.sink
	if out == nil {
		out = sink.NewFilesystemSink(filepath.Dir(res.Output))
	}
	name := filepath.ToSlash(filepath.Base(res.Output))
	if err := out.WriteFile(ctx, name, res.Source); err != nil {
		return nil, fmt.Errorf("write %s: %w", res.Output, err)
	}
	g.log().Info("wrote proxy", "output", res.Output, "bytes", len(res.Source))
	return res, nil
}

// priorDeclarations returns the names declared inside namespace in path.
// A missing file declares nothing.
func priorDeclarations(target Target, path, namespace string) ([]string, error) {
	if path == "" {
		return nil, nil
	}
	src, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read types source: %w", err)
	}
	return target.DeclaredNames(src, namespace), nil
}
