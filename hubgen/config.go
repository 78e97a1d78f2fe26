package hubgen

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"strings"

	"github.com/broady/hub/hubgen/codegen"
	"github.com/broady/hub/hubgen/csharp"
	"github.com/broady/hub/hubgen/typescript"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the config file read when none is named.
const DefaultConfigFile = "hubgen.yaml"

// Config holds the configuration for proxy generation.
type Config struct {
	// Package is the Go package containing the hub contract, in go command
	// pattern syntax. e.g. "./server/chat"
	Package string `yaml:"package" schema:"package" validate:"required"`

	// Dir is the directory Package is resolved in.
	Dir string `yaml:"dir,omitempty" schema:"dir"`

	// Contract selects a contract when the package declares several.
	Contract string `yaml:"contract,omitempty" schema:"contract" validate:"omitempty,identifier"`

	// ClientAPI selects a //hub:client type when the package declares several.
	ClientAPI string `yaml:"client_api,omitempty" schema:"client_api" validate:"omitempty,identifier"`

	// Namespace encloses the generated proxy. e.g. "Chat.Client"
	Namespace string `yaml:"namespace" schema:"namespace" validate:"required,namespace"`

	// ClassName is the name of the generated proxy class.
	ClassName string `yaml:"class_name" schema:"class_name" validate:"required,identifier"`

	// Output is the file the proxy is written to.
	Output string `yaml:"output" schema:"output" validate:"required"`

	// TypesSource is an existing file whose declarations inside Namespace
	// are not generated again. A missing file declares nothing.
	TypesSource string `yaml:"types_source,omitempty" schema:"types_source"`

	// Target selects the output language: "typescript" (default) or "csharp".
	Target string `yaml:"target,omitempty" schema:"target" validate:"oneof=typescript csharp"`

	// ConnectionProperty names the connection accessor of the proxy.
	// Default: "HubConnection"
	ConnectionProperty string `yaml:"connection_property,omitempty" schema:"connection_property" validate:"identifier"`

	// RuntimeModule is the TypeScript module HubConnection and Disposable
	// are imported from. Default: "./connection"
	RuntimeModule string `yaml:"runtime_module,omitempty" schema:"runtime_module"`

	// Indent is the number of spaces per indent level. Default: 4
	Indent int `yaml:"indent,omitempty" schema:"indent" validate:"gte=1,lte=8"`
}

var (
	identifierRE = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	namespaceRE  = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`)

	validate      = newValidator()
	schemaDecoder = schema.NewDecoder()
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("identifier", func(fl validator.FieldLevel) bool {
		return identifierRE.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("namespace", func(fl validator.FieldLevel) bool {
		return namespaceRE.MatchString(fl.Field().String())
	})
	return v
}

// ApplyDefaults fills unset optional fields.
func (c *Config) ApplyDefaults() {
	if c.Target == "" {
		c.Target = typescript.Name
	}
	if c.ConnectionProperty == "" {
		c.ConnectionProperty = codegen.DefaultConnectionProperty
	}
	if c.RuntimeModule == "" && c.Target == typescript.Name {
		c.RuntimeModule = typescript.DefaultRuntimeModule
	}
	if c.Indent == 0 {
		c.Indent = 4
	}
}

// Validate checks the config. Defaults should be applied first.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	var valErrs validator.ValidationErrors
	if !errors.As(err, &valErrs) {
		return err
	}
	msgs := make([]string, 0, len(valErrs))
	for _, ve := range valErrs {
		msgs = append(msgs, ve.Field()+": "+formatValidationError(ve))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

func formatValidationError(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required":
		return "required"
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", ve.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", ve.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", ve.Param())
	case "identifier":
		return fmt.Sprintf("%q is not a valid identifier", ve.Value())
	case "namespace":
		return fmt.Sprintf("%q is not a valid namespace", ve.Value())
	default:
		return "failed " + ve.Tag() + " validation"
	}
}

// ParseConfig decodes a YAML (or JSON) config. Unknown keys are rejected.
func ParseConfig(r io.Reader) (*Config, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var cfg Config
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

// LoadConfig reads the config file at path. Relative paths in the file are
// resolved against the file's directory.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := ParseConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	base := filepath.Dir(path)
	cfg.Output = resolvePath(base, cfg.Output)
	cfg.TypesSource = resolvePath(base, cfg.TypesSource)
	if cfg.Dir == "" {
		cfg.Dir = base
	} else {
		cfg.Dir = resolvePath(base, cfg.Dir)
	}
	return cfg, nil
}

func resolvePath(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

// ApplyOverrides sets config fields from key=value pairs. Keys are the
// config file keys; unknown keys are rejected.
func (c *Config) ApplyOverrides(sets []string) error {
	if len(sets) == 0 {
		return nil
	}
	values := make(map[string][]string, len(sets))
	for _, s := range sets {
		key, value, ok := strings.Cut(s, "=")
		if !ok || key == "" {
			return fmt.Errorf("invalid override %q: expected key=value", s)
		}
		values[key] = append(values[key], value)
	}
	if err := schemaDecoder.Decode(c, values); err != nil {
		return fmt.Errorf("apply overrides: %w", err)
	}
	return nil
}

// NewTarget returns the emitter target selected by cfg.Target.
func NewTarget(cfg *Config) (Target, error) {
	switch cfg.Target {
	case typescript.Name, "":
		return typescript.New(typescript.Config{
			IndentSize:    cfg.Indent,
			RuntimeModule: cfg.RuntimeModule,
		}), nil
	case csharp.Name:
		return csharp.New(csharp.Config{IndentSize: cfg.Indent}), nil
	default:
		return nil, fmt.Errorf("unknown target: %q (expected %q or %q)", cfg.Target, typescript.Name, csharp.Name)
	}
}
