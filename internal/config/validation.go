package config

import (
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/cockroachdb/errors"

	"github.com/smykla-skalski/tmuxflash/pkg/config"
)

var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrEmptyValue is returned when a required value is empty.
	ErrEmptyValue = errors.New("empty value not allowed")

	// ErrInvalidOption is returned when an option value is invalid.
	ErrInvalidOption = errors.New("invalid option value")

	// ErrInvalidPattern is returned when a watch pattern does not parse.
	ErrInvalidPattern = errors.New("invalid watch pattern")
)

// tmux option names: lower-case words joined by dashes (status-left-bg).
var tmuxOptionName = regexp.MustCompile(`^[a-z][a-z0-9]*(-[a-z0-9]+)*$`)

// Validator validates configuration semantics.
type Validator struct{}

// NewValidator creates a new Validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate validates the entire configuration.
// Returns an error describing all validation failures.
func (v *Validator) Validate(cfg *config.Config) error {
	if cfg == nil {
		return errors.WithMessage(ErrInvalidConfig, "config is nil")
	}

	var validationErrors []error

	if cfg.Global != nil {
		if err := v.validateGlobalConfig(cfg.Global); err != nil {
			validationErrors = append(validationErrors, errors.Wrap(err, "global"))
		}
	}

	if cfg.Notification != nil && cfg.Notification.Tmux != nil {
		if err := v.validateTmuxConfig(cfg.Notification.Tmux); err != nil {
			validationErrors = append(validationErrors, errors.Wrap(err, "notification.tmux"))
		}
	}

	if cfg.Watch != nil {
		if err := v.validateWatchConfig(cfg.Watch); err != nil {
			validationErrors = append(validationErrors, errors.Wrap(err, "watch"))
		}
	}

	if len(validationErrors) > 0 {
		return errors.Join(
			errors.Wrapf(
				ErrInvalidConfig,
				"validation failed with %d error(s)",
				len(validationErrors),
			),
			combineErrors(validationErrors),
		)
	}

	return nil
}

func (*Validator) validateGlobalConfig(cfg *config.GlobalConfig) error {
	if cfg.TmuxPath != "" && strings.TrimSpace(cfg.TmuxPath) != cfg.TmuxPath {
		return errors.Wrapf(ErrInvalidOption, "tmux_path %q has surrounding whitespace", cfg.TmuxPath)
	}

	return nil
}

func (*Validator) validateTmuxConfig(cfg *config.TmuxNotifierConfig) error {
	var validationErrors []error

	if cfg.Timeout != nil && *cfg.Timeout < 0 {
		validationErrors = append(validationErrors,
			errors.Wrapf(ErrInvalidOption, "timeout must be non-negative, got %g", *cfg.Timeout))
	}

	colors := []struct {
		key   string
		value string
	}{
		{"default_message_color", cfg.DefaultMessageColor},
		{"success", cfg.Success},
		{"failure", cfg.Failure},
		{"pending", cfg.Pending},
	}

	for _, c := range colors {
		if strings.TrimSpace(c.value) == "" {
			validationErrors = append(validationErrors, errors.Wrap(ErrEmptyValue, c.key))

			continue
		}

		if strings.ContainsAny(c.value, " \t\n") {
			validationErrors = append(validationErrors,
				errors.Wrapf(ErrInvalidOption, "%s %q contains whitespace", c.key, c.value))
		}
	}

	for _, location := range cfg.ColorLocation {
		if !tmuxOptionName.MatchString(location) {
			validationErrors = append(validationErrors,
				errors.Wrapf(ErrInvalidOption, "color_location %q is not a tmux option name", location))
		}
	}

	return combineErrors(validationErrors)
}

func (*Validator) validateWatchConfig(cfg *config.WatchConfig) error {
	var validationErrors []error

	for _, path := range cfg.Paths {
		if strings.TrimSpace(path) == "" {
			validationErrors = append(validationErrors, errors.Wrap(ErrEmptyValue, "paths"))
		}
	}

	if cfg.Debounce < 0 {
		validationErrors = append(validationErrors,
			errors.Wrapf(ErrInvalidOption, "debounce must be non-negative, got %s", cfg.Debounce.ToDuration()))
	}

	for _, group := range []struct {
		key      string
		patterns []string
	}{
		{"include", cfg.Include},
		{"exclude", cfg.Exclude},
	} {
		for _, pattern := range group.patterns {
			if !doublestar.ValidatePattern(pattern) {
				validationErrors = append(validationErrors,
					errors.Wrapf(ErrInvalidPattern, "%s %q", group.key, pattern))
			}
		}
	}

	return combineErrors(validationErrors)
}

func combineErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	if len(errs) == 1 {
		return errs[0]
	}

	return errors.Join(errs...)
}
