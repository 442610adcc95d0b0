package config

import (
	"fmt"
	"path/filepath"

	"github.com/akenore24/sawasew-keyboard/internal/domain"
)

// Validate performs business-rule validation on the loaded configuration.
// Load calls it automatically; callers of Read call it after overrides.
func (c *Config) Validate() error {
	if err := c.Paths.validate(); err != nil {
		return fmt.Errorf("paths: %w", err)
	}

	if err := c.Normalize.validate(); err != nil {
		return fmt.Errorf("normalize: %w", err)
	}

	if c.Run.Timeout <= 0 {
		return fmt.Errorf("run.timeout must be > 0 (got %v)", c.Run.Timeout)
	}

	if c.Catalog.Enabled() {
		if c.Catalog.MaxConns <= 0 {
			return fmt.Errorf("catalog.max_conns must be > 0 (got %d)", c.Catalog.MaxConns)
		}
		if c.Catalog.MinConns < 0 || c.Catalog.MinConns > c.Catalog.MaxConns {
			return fmt.Errorf("catalog.min_conns must be within [0, max_conns] (got %d)", c.Catalog.MinConns)
		}
		if c.Catalog.BatchSize <= 0 {
			return fmt.Errorf("catalog.batch_size must be > 0 (got %d)", c.Catalog.BatchSize)
		}
	}

	return nil
}

func (p *PathsConfig) validate() error {
	named := []struct {
		field string
		value string
	}{
		{"old_dict", p.OldDict},
		{"new_dict", p.NewDict},
		{"merged_output", p.MergedOutput},
		{"root_forms_output", p.RootFormsOutput},
	}
	for _, n := range named {
		if n.value == "" {
			return fmt.Errorf("%s must not be empty", n.field)
		}
	}

	inputs := []string{filepath.Clean(p.OldDict), filepath.Clean(p.NewDict)}
	for _, out := range []string{p.MergedOutput, p.RootFormsOutput} {
		for _, in := range inputs {
			if filepath.Clean(out) == in {
				return fmt.Errorf("output %s would overwrite an input file", out)
			}
		}
	}
	return nil
}

func (n *NormalizeConfig) validate() error {
	if len(n.Punctuation) == 0 {
		return fmt.Errorf("punctuation must list at least one mark")
	}
	for i, p := range n.Punctuation {
		if p == "" {
			return fmt.Errorf("punctuation[%d] must not be empty", i)
		}
	}

	if _, err := domain.ParseUnicodeForm(n.UnicodeForm); err != nil {
		return fmt.Errorf("unicode_form: %w", err)
	}
	return nil
}
