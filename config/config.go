// Package config loads project settings from gelx.toml and the environment.
package config

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
	"golang.org/x/mod/modfile"

	"github.com/syssam/gelx/compiler/capability"
	"github.com/syssam/gelx/compiler/gen"
)

// FileName is the project configuration file searched for by Load.
const FileName = "gelx.toml"

// EnvPrefix prefixes every environment override, e.g. GELX_OUTPUT_PATH.
const EnvPrefix = "GELX"

// Config is the project configuration.
type Config struct {
	QueriesPath             string   `mapstructure:"queries_path" toml:"queries_path"`
	OutputPath              string   `mapstructure:"output_path" toml:"output_path"`
	Package                 string   `mapstructure:"package" toml:"package,omitempty"`
	InputStructName         string   `mapstructure:"input_struct_name" toml:"input_struct_name"`
	OutputStructName        string   `mapstructure:"output_struct_name" toml:"output_struct_name"`
	QueryFunctionName       string   `mapstructure:"query_function_name" toml:"query_function_name"`
	TransactionFunctionName string   `mapstructure:"transaction_function_name" toml:"transaction_function_name"`
	QueryConstantName       string   `mapstructure:"query_constant_name" toml:"query_constant_name"`
	RuntimePath             string   `mapstructure:"runtime_path" toml:"runtime_path"`
	Snapshot                string   `mapstructure:"snapshot" toml:"snapshot"`
	CacheDir                string   `mapstructure:"cache_dir" toml:"cache_dir,omitempty"`
	Features                Features `mapstructure:"features" toml:"features"`

	// Root is the directory relative paths are resolved against: the
	// directory holding gelx.toml, or the search start when none exists.
	Root string `mapstructure:"-" toml:"-"`
	// File is the loaded configuration file, empty when none was found.
	File string `mapstructure:"-" toml:"-"`
}

// Features holds one capability setting per key. Each value is true, false
// or a build tag the capability is gated behind.
type Features struct {
	Serde   any `mapstructure:"serde" toml:"serde"`
	Builder any `mapstructure:"builder" toml:"builder"`
	Query   any `mapstructure:"query" toml:"query"`
	Strum   any `mapstructure:"strum" toml:"strum"`
}

// Load reads the configuration for the project containing dir.
// Precedence (lowest to highest): defaults < gelx.toml < GELX_* variables.
func Load(dir string) (*Config, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve %s", dir)
	}
	v := newViper()
	c := &Config{Root: abs}
	if file := Find(abs); file != "" {
		v.SetConfigFile(file)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read %s", file)
		}
		c.File = file
		c.Root = filepath.Dir(file)
	}
	if err := v.Unmarshal(c); err != nil {
		return nil, errors.Wrap(err, "decode configuration")
	}
	return c, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// Find walks up from dir and returns the first gelx.toml, or "".
func Find(dir string) string {
	for {
		p := filepath.Join(dir, FileName)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// Abs resolves p against the configuration root.
func (c *Config) Abs(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Root, p)
}

// QueriesDir is the absolute queries directory.
func (c *Config) QueriesDir() string { return c.Abs(c.QueriesPath) }

// OutputDir is the absolute output directory.
func (c *Config) OutputDir() string { return c.Abs(c.OutputPath) }

// SnapshotFile is the absolute snapshot path.
func (c *Config) SnapshotFile() string { return c.Abs(c.Snapshot) }

// OutputPackage returns the configured import path of the output directory.
// When unset it is derived from the enclosing go.mod.
func (c *Config) OutputPackage() (string, error) {
	if c.Package != "" {
		return c.Package, nil
	}
	out := c.OutputDir()
	for dir := out; ; {
		data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
		if err == nil {
			mod := modfile.ModulePath(data)
			if mod == "" {
				return "", errors.Newf("%s has no module directive", filepath.Join(dir, "go.mod"))
			}
			rel, err := filepath.Rel(dir, out)
			if err != nil {
				return "", errors.Wrap(err, "derive package path")
			}
			return path.Join(mod, filepath.ToSlash(rel)), nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", errors.WithHint(
		errors.Newf("cannot derive the import path of %s", out),
		"set package in "+FileName+" or run inside a Go module",
	)
}

// Capabilities converts the features table.
func (c *Config) Capabilities() (capability.Options, error) {
	opts := capability.Default()
	for _, f := range []struct {
		name  capability.Name
		value any
	}{
		{capability.Serialization, c.Features.Serde},
		{capability.Builder, c.Features.Builder},
		{capability.Query, c.Features.Query},
		{capability.EnumString, c.Features.Strum},
	} {
		o, err := capability.ParseOption(f.value)
		if err != nil {
			return opts, errors.Wrapf(err, "features.%s", f.name)
		}
		if err := opts.Set(f.name, o); err != nil {
			return opts, errors.Wrapf(err, "features.%s", f.name)
		}
	}
	return opts, nil
}

// Names returns the query identifiers.
func (c *Config) Names() gen.Names {
	return gen.Names{
		Input:       c.InputStructName,
		Output:      c.OutputStructName,
		Query:       c.QueryFunctionName,
		Transaction: c.TransactionFunctionName,
		Statement:   c.QueryConstantName,
	}
}

func (c *Config) baseOptions() ([]gen.Option, error) {
	caps, err := c.Capabilities()
	if err != nil {
		return nil, err
	}
	opts := []gen.Option{
		gen.WithTarget(c.OutputDir()),
		gen.WithNames(c.Names()),
		gen.WithCapabilities(caps),
	}
	if c.RuntimePath != "" {
		opts = append(opts, gen.WithRuntime(c.RuntimePath))
	}
	return opts, nil
}

// GenConfig builds the generator configuration for standalone generation.
func (c *Config) GenConfig() (*gen.Config, error) {
	opts, err := c.baseOptions()
	if err != nil {
		return nil, err
	}
	pkg, err := c.OutputPackage()
	if err != nil {
		return nil, err
	}
	return gen.NewConfig(append(opts, gen.WithPackage(pkg))...)
}

// InlineConfig builds the generator configuration for embedded mode, which
// needs no output package.
func (c *Config) InlineConfig() (*gen.Config, error) {
	opts, err := c.baseOptions()
	if err != nil {
		return nil, err
	}
	return gen.NewConfig(opts...)
}
