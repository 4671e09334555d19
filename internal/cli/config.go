package cli

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"

	errs "github.com/matzehuels/planviz/pkg/errors"
	"github.com/matzehuels/planviz/pkg/pipeline"
)

// defaultConfigFile is looked up in the working directory when --config is not given.
const defaultConfigFile = "planviz.toml"

// Config holds defaults read from planviz.toml.
//
//	plan     = "../plan.json"
//	var_file = "prod.tfvars"
//	output   = "docs/architecture"
//	format   = "svg"
//	no_cache = false
type Config struct {
	Plan    string `toml:"plan"`
	VarFile string `toml:"var_file"`
	Output  string `toml:"output"`
	Format  string `toml:"format"`
	NoCache bool   `toml:"no_cache"`
}

// loadConfig reads the config at path. With an empty path the default file
// is tried and silently skipped when absent; an explicit path must exist.
func loadConfig(path string) (Config, error) {
	var cfg Config

	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	} else if err := errs.ValidatePath(path); err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if explicit {
				return cfg, errs.Wrap(errs.ErrCodeFileNotFound, err, "config file %s", path)
			}
			return cfg, nil
		}
		return cfg, errs.Wrap(errs.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, errs.Wrap(errs.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errs.New(errs.ErrCodeInvalidConfig, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	if cfg.Format != "" {
		if err := pipeline.ValidateFormat(cfg.Format); err != nil {
			return cfg, errs.Wrap(errs.ErrCodeInvalidConfig, err, "config %s", path)
		}
	}
	return cfg, nil
}

// apply fills opts from the config wherever the matching flag was not set
// on the command line.
func (cfg Config) apply(flags *pflag.FlagSet, opts *pipeline.Options) {
	fill := func(flag string, dst *string, val string) {
		if val != "" && !changed(flags, flag) {
			*dst = val
		}
	}
	fill("plan", &opts.PlanPath, cfg.Plan)
	fill("var-file", &opts.VarFile, cfg.VarFile)
	fill("output", &opts.Output, cfg.Output)
	fill("format", &opts.Format, cfg.Format)
}

// noCache resolves --no-cache against the config.
func (cfg Config) noCache(flags *pflag.FlagSet, flagValue bool) bool {
	if changed(flags, "no-cache") {
		return flagValue
	}
	return flagValue || cfg.NoCache
}

func changed(flags *pflag.FlagSet, name string) bool {
	f := flags.Lookup(name)
	return f != nil && f.Changed
}
