// Package config provides internal configuration loading and processing.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	tomlparser "github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/smykla-skalski/tmuxflash/internal/xdg"
	"github.com/smykla-skalski/tmuxflash/pkg/config"
)

var (
	// ErrConfigNotFound is returned when an explicitly requested configuration file is missing.
	ErrConfigNotFound = errors.New("configuration file not found")

	// ErrInvalidPermissions is returned when config file has insecure permissions.
	ErrInvalidPermissions = errors.New("config file has insecure permissions")
)

const (
	// ProjectConfigDir is the directory name for project configuration.
	ProjectConfigDir = ".tmuxflash"

	// ProjectConfigFile is the primary project configuration file name.
	ProjectConfigFile = "config.toml"

	// ProjectConfigFileAlt is the alternative project configuration file name.
	ProjectConfigFileAlt = ".tmuxflash.toml"

	// EnvPrefix prefixes every environment variable read into the config.
	EnvPrefix = "TMUXFLASH_"

	// envLevelSeparator separates nesting levels in environment variable names:
	// TMUXFLASH_NOTIFICATION__TMUX__DISPLAY_MESSAGE → notification.tmux.display_message
	envLevelSeparator = "__"
)

// KoanfLoader handles configuration loading from multiple sources using koanf.
// Precedence order (highest to lowest):
// 1. CLI Flags
// 2. Environment Variables (TMUXFLASH_*)
// 3. Project Config (.tmuxflash/config.toml or .tmuxflash.toml)
// 4. Global Config ($XDG_CONFIG_HOME/tmuxflash/config.toml)
// 5. Defaults
type KoanfLoader struct {
	k           *koanf.Koanf
	globalPath  string
	workDir     string
	projectPath string
}

// NewKoanfLoader creates a new KoanfLoader using the XDG global config path
// and the current working directory.
func NewKoanfLoader() (*KoanfLoader, error) {
	workDir, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get working directory")
	}

	return NewKoanfLoaderWithPaths(xdg.GlobalConfigFile(), workDir), nil
}

// NewKoanfLoaderWithPaths creates a new KoanfLoader with a custom global
// config path and working directory (for testing).
func NewKoanfLoaderWithPaths(globalPath, workDir string) *KoanfLoader {
	return &KoanfLoader{
		k:          koanf.New("."),
		globalPath: globalPath,
		workDir:    workDir,
	}
}

// WithProjectConfig makes the loader read path instead of searching the
// working directory. A missing file is then an error.
func (l *KoanfLoader) WithProjectConfig(path string) *KoanfLoader {
	l.projectPath = path

	return l
}

// Load loads configuration from all sources with precedence and validates it.
func (l *KoanfLoader) Load(flags map[string]any) (*config.Config, error) {
	cfg, err := l.LoadWithoutValidation(flags)
	if err != nil {
		return nil, err
	}

	if err := NewValidator().Validate(cfg); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return cfg, nil
}

// LoadWithoutValidation loads configuration without running validation.
// Defaults → Global TOML → Project TOML → Env Vars → CLI Flags
func (l *KoanfLoader) LoadWithoutValidation(flags map[string]any) (*config.Config, error) {
	l.k = koanf.New(".")

	if err := l.k.Load(confmap.Provider(defaultsToMap(), "."), nil); err != nil {
		return nil, errors.Wrap(err, "failed to load defaults")
	}

	if err := l.loadTOMLFile(l.globalPath); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "failed to load global config")
	}

	projectPath, err := l.resolveProjectConfig()
	if err != nil {
		return nil, err
	}

	if projectPath != "" {
		if err := l.loadTOMLFile(projectPath); err != nil {
			return nil, errors.Wrap(err, "failed to load project config")
		}
	}

	envOpt := env.Opt{
		Prefix:        EnvPrefix,
		TransformFunc: envTransform,
	}

	if err := l.k.Load(env.Provider(".", envOpt), nil); err != nil {
		return nil, errors.Wrap(err, "failed to load env vars")
	}

	if len(flags) > 0 {
		if err := l.k.Load(confmap.Provider(flagsToConfig(flags), "."), nil); err != nil {
			return nil, errors.Wrap(err, "failed to load flags")
		}
	}

	var cfg config.Config

	decoderConfig := CustomDecoderConfig()
	decoderConfig.Result = &cfg

	unmarshalConf := koanf.UnmarshalConf{
		Tag:           "koanf",
		DecoderConfig: decoderConfig,
	}

	if err := l.k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	return &cfg, nil
}

func (l *KoanfLoader) resolveProjectConfig() (string, error) {
	if l.projectPath == "" {
		return l.findProjectConfig(), nil
	}

	if !fileExists(l.projectPath) {
		return "", errors.Wrapf(ErrConfigNotFound, "%s", l.projectPath)
	}

	return l.projectPath, nil
}

// loadTOMLFile loads a TOML configuration file with security checks.
func (l *KoanfLoader) loadTOMLFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	if info.Mode().Perm()&0o002 != 0 {
		return errors.Wrapf(
			ErrInvalidPermissions,
			"%s is world-writable (mode: %s)",
			path,
			info.Mode().Perm(),
		)
	}

	return l.k.Load(file.Provider(path), tomlparser.Parser())
}

// envTransform maps environment variable names to config paths. Variables
// without a level separator (TMUXFLASH_LOG_FILE) are not config keys and are
// skipped.
func envTransform(key, value string) (string, any) {
	key = strings.TrimPrefix(key, EnvPrefix)
	if !strings.Contains(key, envLevelSeparator) {
		return "", nil
	}

	key = strings.ToLower(key)
	key = strings.ReplaceAll(key, envLevelSeparator, ".")

	return key, value
}

// GlobalConfigPath returns the path to the global configuration file.
func (l *KoanfLoader) GlobalConfigPath() string {
	return l.globalPath
}

// ProjectConfigPaths returns the paths to check for project configuration.
func (l *KoanfLoader) ProjectConfigPaths() []string {
	return []string{
		filepath.Join(l.workDir, ProjectConfigDir, ProjectConfigFile),
		filepath.Join(l.workDir, ProjectConfigFileAlt),
	}
}

func (l *KoanfLoader) findProjectConfig() string {
	for _, path := range l.ProjectConfigPaths() {
		if fileExists(path) {
			return path
		}
	}

	return ""
}

// HasGlobalConfig checks if a global configuration file exists.
func (l *KoanfLoader) HasGlobalConfig() bool {
	return fileExists(l.globalPath)
}

// FindProjectConfigPath returns the project config file in effect, or an
// empty string when there is none.
func (l *KoanfLoader) FindProjectConfigPath() string {
	if l.projectPath != "" {
		return l.projectPath
	}

	return l.findProjectConfig()
}

// flagsToConfig converts CLI flags to a configuration map.
func flagsToConfig(flags map[string]any) map[string]any {
	result := make(map[string]any)

	for key, value := range flags {
		switch key {
		case "tmux-path":
			if strVal, ok := value.(string); ok && strVal != "" {
				ensureMapKey(result, "global")["tmux_path"] = strVal
			}

		case "timeout":
			if strVal, ok := value.(string); ok && strVal != "" {
				ensureMapKey(result, "global")["default_timeout"] = strVal
			}

		case "command":
			if strVal, ok := value.(string); ok && strVal != "" {
				ensureMapKey(result, "watch")["command"] = strVal
			}

		case "debounce":
			if strVal, ok := value.(string); ok && strVal != "" {
				ensureMapKey(result, "watch")["debounce"] = strVal
			}

		case "run-on-start":
			if boolVal, ok := value.(bool); ok {
				ensureMapKey(result, "watch")["run_on_start"] = boolVal
			}

		case "bell":
			if boolVal, ok := value.(bool); ok {
				notification := ensureMapKey(result, "notification")
				ensureMapKey(notification, "bell")["enabled"] = boolVal
			}
		}
	}

	return result
}

// ensureMapKey ensures a key exists as a map and returns it.
func ensureMapKey(cfg map[string]any, key string) map[string]any {
	if _, ok := cfg[key]; !ok {
		cfg[key] = make(map[string]any)
	}

	result, _ := cfg[key].(map[string]any)

	return result
}

// fileExists checks if a file exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}

	return !info.IsDir()
}
