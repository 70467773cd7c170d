package gen

import (
	"errors"
	"go/token"
	"path"
	"runtime"

	"github.com/syssam/gelx/compiler/capability"
)

// RuntimePackage is the default import path of the runtime package that
// generated code depends on.
const RuntimePackage = "github.com/syssam/gelx"

// Names are the identifiers used in every query package.
type Names struct {
	Input       string
	Output      string
	Query       string
	Transaction string
	Statement   string
}

// DefaultNames returns the default identifiers.
func DefaultNames() Names {
	return Names{
		Input:       "Input",
		Output:      "Output",
		Query:       "Query",
		Transaction: "Transaction",
		Statement:   "Statement",
	}
}

// Config holds the resolved generation settings.
type Config struct {
	// Target is the output directory.
	Target string
	// Package is the import path of Target. Query packages reference module
	// types through it.
	Package string
	// Runtime is the import path of the runtime package.
	Runtime string
	// Names of the generated query identifiers.
	Names Names
	// Capabilities toggles the cross-cutting attachments.
	Capabilities capability.Options
	// Workers bounds concurrent file writes.
	Workers int
}

// Option configures code generation.
type Option func(*Config) error

// WithTarget sets the output directory.
func WithTarget(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("Target", nil, "target directory cannot be empty")
		}
		c.Target = dir
		return nil
	}
}

// WithPackage sets the output package import path.
// For example: "github.com/org/project/internal/db".
func WithPackage(pkg string) Option {
	return func(c *Config) error {
		if pkg == "" {
			return NewConfigError("Package", nil, "package cannot be empty")
		}
		c.Package = pkg
		return nil
	}
}

// WithRuntime overrides the runtime package import path.
func WithRuntime(pkg string) Option {
	return func(c *Config) error {
		if pkg == "" {
			return NewConfigError("Runtime", nil, "runtime package cannot be empty")
		}
		c.Runtime = pkg
		return nil
	}
}

// WithNames sets the query identifiers. Empty names keep their current value.
func WithNames(n Names) Option {
	return func(c *Config) error {
		fields := []struct {
			option string
			value  string
			dst    *string
		}{
			{"Names.Input", n.Input, &c.Names.Input},
			{"Names.Output", n.Output, &c.Names.Output},
			{"Names.Query", n.Query, &c.Names.Query},
			{"Names.Transaction", n.Transaction, &c.Names.Transaction},
			{"Names.Statement", n.Statement, &c.Names.Statement},
		}
		for _, f := range fields {
			if f.value == "" {
				continue
			}
			if !token.IsIdentifier(f.value) || !token.IsExported(f.value) {
				return NewConfigError(f.option, f.value, "must be an exported Go identifier")
			}
			*f.dst = f.value
		}
		return nil
	}
}

// WithCapabilities replaces all capability options.
func WithCapabilities(opts capability.Options) Option {
	return func(c *Config) error {
		for _, cp := range capability.All {
			if o := opts.Get(cp.Name); o.IsAliased() {
				if err := capability.ValidateAlias(o.Alias); err != nil {
					return NewConfigError("Capabilities."+string(cp.Name), o.Alias, err.Error())
				}
			}
		}
		c.Capabilities = opts
		return nil
	}
}

// WithCapability sets a single capability option.
func WithCapability(name capability.Name, opt capability.Option) Option {
	return func(c *Config) error {
		if opt.IsAliased() {
			if err := capability.ValidateAlias(opt.Alias); err != nil {
				return NewConfigError("Capabilities."+string(name), opt.Alias, err.Error())
			}
		}
		if err := c.Capabilities.Set(name, opt); err != nil {
			return NewConfigError("Capabilities", name, err.Error())
		}
		return nil
	}
}

// WithWorkers sets the number of concurrent file writers.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n <= 0 {
			return NewConfigError("Workers", n, "must be positive")
		}
		c.Workers = n
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// DefaultConfig returns the settings used when no option overrides them.
func DefaultConfig() *Config {
	return &Config{
		Runtime:      RuntimePackage,
		Names:        DefaultNames(),
		Capabilities: capability.Default(),
		Workers:      runtime.GOMAXPROCS(0),
	}
}

// NewConfig creates a new Config with the given options applied on top of
// DefaultConfig.
func NewConfig(opts ...Option) (*Config, error) {
	c := DefaultConfig()
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNewConfig creates a new Config with the given options.
// It panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// Validate checks the settings required by standalone generation.
func (c *Config) Validate() error {
	if c.Package == "" {
		return NewConfigError("Package", nil, "missing output package import path")
	}
	if c.Runtime == "" {
		return NewConfigError("Runtime", nil, "missing runtime package import path")
	}
	if c.Package == c.Runtime {
		return NewConfigError("Package", c.Package, "output package cannot be the runtime package")
	}
	return nil
}

// modulePath returns the import path of the package at dir, relative to the
// output package.
func (c *Config) modulePath(dir string) string {
	if dir == "" {
		return c.Package
	}
	return path.Join(c.Package, dir)
}
