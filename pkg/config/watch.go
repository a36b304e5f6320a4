package config

// WatchConfig configures the file watcher and the command run on changes.
type WatchConfig struct {
	// Paths are the roots to watch recursively.
	// Default: ["."]
	Paths []string `json:"paths,omitempty" koanf:"paths" toml:"paths,omitempty"`

	// Include lists doublestar patterns a changed path must match.
	// Empty means every path matches.
	Include []string `json:"include,omitempty" koanf:"include" toml:"include,omitempty"`

	// Exclude lists doublestar patterns to ignore. Excluded directories are
	// not watched at all.
	// Default: [".git/**", "node_modules/**", "vendor/**"]
	Exclude []string `json:"exclude,omitempty" koanf:"exclude" toml:"exclude,omitempty"`

	// Debounce is the quiet period after the last change before a run.
	// Default: "300ms"
	Debounce Duration `json:"debounce,omitempty" koanf:"debounce" toml:"debounce,omitempty"`

	// Command is run on every change batch. It is split with shell word
	// rules but not run through a shell.
	// Example: "go test ./..."
	Command string `json:"command,omitempty" koanf:"command" toml:"command,omitempty"`

	// RunOnStart runs the command once before waiting for changes.
	// Default: false
	RunOnStart *bool `json:"run_on_start,omitempty" koanf:"run_on_start" toml:"run_on_start,omitempty"`

	// Title is the notification title. Defaults to the base name of the
	// working directory.
	Title string `json:"title,omitempty" koanf:"title" toml:"title,omitempty"`
}

// ShouldRunOnStart returns whether the command runs before the first change.
func (w *WatchConfig) ShouldRunOnStart() bool {
	if w == nil || w.RunOnStart == nil {
		return false
	}

	return *w.RunOnStart
}
