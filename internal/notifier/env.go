package notifier

import "os"

// SessionEnvVar is set by tmux in every process it starts.
const SessionEnvVar = "TMUX"

// Environment looks up environment variables.
type Environment interface {
	LookupEnv(key string) (string, bool)
}

// MapEnv is an Environment backed by a map.
type MapEnv map[string]string

// LookupEnv implements Environment.
func (m MapEnv) LookupEnv(key string) (string, bool) {
	v, ok := m[key]

	return v, ok
}

// ProcessEnv is the environment of the running process.
type ProcessEnv struct{}

// LookupEnv implements Environment.
func (ProcessEnv) LookupEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}

// InMultiplexerSession reports whether env belongs to a process running inside
// tmux. An empty TMUX counts as outside.
func InMultiplexerSession(env Environment) bool {
	if env == nil {
		return false
	}

	v, ok := env.LookupEnv(SessionEnvVar)

	return ok && v != ""
}
