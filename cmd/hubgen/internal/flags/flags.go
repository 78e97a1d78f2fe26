// Package flags holds the command line options shared by hubgen commands.
package flags

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/broady/hub/hubgen"
)

// File locates the config file and its overrides.
type File struct {
	Config string   `help:"Config file (YAML or JSON)." short:"c" default:"${config_file}" type:"path"`
	Set    []string `help:"Override a config key, e.g. --set target=csharp." placeholder:"KEY=VALUE" sep:"none"`
}

// Load reads the config file and applies overrides. A missing default config
// file is treated as empty so every key can come from --set.
func (f *File) Load() (*hubgen.Config, error) {
	cfg, err := hubgen.LoadConfig(f.Config)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) || len(f.Set) == 0 {
			return nil, err
		}
		cfg = &hubgen.Config{}
		if wd, err := os.Getwd(); err == nil {
			cfg.Dir = wd
		}
	}
	if err := cfg.ApplyOverrides(f.Set); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
