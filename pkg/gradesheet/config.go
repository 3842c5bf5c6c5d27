package gradesheet

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes environment overrides, e.g. GRADESHEET_PASS_THRESHOLD.
const EnvPrefix = "GRADESHEET"

var validate = validator.New()

// LoadOptions layers configuration: defaults, then the YAML layout profile at
// path (skipped when path is empty), then GRADESHEET_* environment variables.
// The result is validated.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Options{}, fmt.Errorf("failed to read layout profile: %w", err)
		}
		if err := yaml.Unmarshal(data, &opts); err != nil {
			return Options{}, fmt.Errorf("failed to parse layout profile %s: %w", path, err)
		}
	}

	if err := envconfig.Process(EnvPrefix, &opts); err != nil {
		return Options{}, fmt.Errorf("failed to load options from env: %w", err)
	}

	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// Validate checks option ranges and color formats.
func (o Options) Validate() error {
	o.FailFontColor = trimHash(o.FailFontColor)
	o.FailFillColor = trimHash(o.FailFillColor)
	if err := validate.Struct(o); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}
	return nil
}

func trimHash(s string) string {
	if len(s) > 0 && s[0] == '#' {
		return s[1:]
	}
	return s
}
