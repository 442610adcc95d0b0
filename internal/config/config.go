package config

import (
	"time"

	"github.com/akenore24/sawasew-keyboard/internal/domain"
)

// Config is the root configuration shared by the word-preparation commands.
type Config struct {
	Paths     PathsConfig     `yaml:"paths"`
	Normalize NormalizeConfig `yaml:"normalize"`
	Log       LogConfig       `yaml:"log"`
	Run       RunConfig       `yaml:"run"`
	Catalog   CatalogConfig   `yaml:"catalog"`
}

// PathsConfig holds input and output file locations.
type PathsConfig struct {
	OldDict         string `yaml:"old_dict"          env:"WORDPREP_OLD_DICT"          env-default:"mobile_dict.json"`
	NewDict         string `yaml:"new_dict"          env:"WORDPREP_NEW_DICT"          env-default:"amharic_root_forms_dictionary.json"`
	MergedOutput    string `yaml:"merged_output"     env:"WORDPREP_MERGED_OUTPUT"     env-default:"mobile_dict_merged.json"`
	RootFormsOutput string `yaml:"root_forms_output" env:"WORDPREP_ROOT_FORMS_OUTPUT" env-default:"root_forms_map.json"`
}

// NormalizeConfig holds word normalization settings.
type NormalizeConfig struct {
	Punctuation []string `yaml:"punctuation"  env:"WORDPREP_PUNCTUATION"  env-separator:"," env-default:"፡,።,፣,፤,፥,፦"`
	UnicodeForm string   `yaml:"unicode_form" env:"WORDPREP_UNICODE_FORM" env-default:"none"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// RunConfig holds per-invocation settings.
type RunConfig struct {
	Timeout time.Duration `yaml:"timeout" env:"WORDPREP_TIMEOUT" env-default:"5m"`
	DryRun  bool          `yaml:"dry_run" env:"WORDPREP_DRY_RUN"`
}

// CatalogConfig holds the optional PostgreSQL word catalog settings.
// An empty DSN disables publishing.
type CatalogConfig struct {
	DSN             string        `yaml:"dsn"                env:"CATALOG_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"CATALOG_MAX_CONNS"          env-default:"4"`
	MinConns        int32         `yaml:"min_conns"          env:"CATALOG_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"CATALOG_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"CATALOG_MAX_CONN_IDLE_TIME" env-default:"30m"`
	BatchSize       int           `yaml:"batch_size"         env:"CATALOG_BATCH_SIZE"         env-default:"500"`
}

// Enabled reports whether a catalog DSN is configured.
func (c CatalogConfig) Enabled() bool {
	return c.DSN != ""
}

// Normalizer builds the word normalizer described by the config.
// The unicode form must already be validated.
func (c NormalizeConfig) Normalizer() domain.Normalizer {
	form, err := domain.ParseUnicodeForm(c.UnicodeForm)
	if err != nil {
		form = domain.UnicodeFormNone
	}
	return domain.NewNormalizer(c.Punctuation, form)
}
