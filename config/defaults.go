package config

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	"github.com/syssam/gelx/compiler/gen"
)

// SetDefaults registers the default value of every key.
func SetDefaults(v *viper.Viper) {
	names := gen.DefaultNames()

	v.SetDefault("queries_path", "queries")
	v.SetDefault("output_path", "internal/db")
	v.SetDefault("package", "")
	v.SetDefault("input_struct_name", names.Input)
	v.SetDefault("output_struct_name", names.Output)
	v.SetDefault("query_function_name", names.Query)
	v.SetDefault("transaction_function_name", names.Transaction)
	v.SetDefault("query_constant_name", names.Statement)
	v.SetDefault("runtime_path", gen.RuntimePackage)
	v.SetDefault("snapshot", "gelx.snapshot.yaml")
	v.SetDefault("cache_dir", "")

	// Capabilities: true, false or a build tag.
	v.SetDefault("features.serde", true)
	v.SetDefault("features.builder", true)
	v.SetDefault("features.query", true)
	v.SetDefault("features.strum", true)
}

// Default returns the configuration Load yields when neither a file nor the
// environment overrides anything.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	c := &Config{}
	// Defaults always decode.
	_ = v.Unmarshal(c)
	return c
}

// Encode renders c as gelx.toml.
func (c *Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, errors.Wrap(err, "encode configuration")
	}
	return buf.Bytes(), nil
}

// WriteFile writes c as gelx.toml into dir. It refuses to overwrite an
// existing file unless force is set.
func (c *Config) WriteFile(dir string, force bool) (string, error) {
	p := filepath.Join(dir, FileName)
	if _, err := os.Stat(p); err == nil && !force {
		return p, errors.WithHint(
			errors.Newf("%s already exists", p),
			"use --force to overwrite it",
		)
	}
	data, err := c.Encode()
	if err != nil {
		return p, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return p, errors.Wrapf(err, "create %s", dir)
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return p, errors.Wrapf(err, "write %s", p)
	}
	return p, nil
}
