package exec

import (
	"os/exec"

	"github.com/cockroachdb/errors"
)

// ToolChecker resolves executables by name or path.
type ToolChecker interface {
	// LookPath returns the resolved path of tool.
	LookPath(tool string) (string, error)
}

type toolChecker struct{}

// NewToolChecker creates a ToolChecker backed by PATH lookups.
func NewToolChecker() ToolChecker {
	return toolChecker{}
}

// LookPath resolves tool in PATH. Paths containing a separator are checked
// for being executable.
func (toolChecker) LookPath(tool string) (string, error) {
	path, err := exec.LookPath(tool)
	if err != nil {
		return "", errors.WithSecondaryError(&ToolNotFoundError{Tool: tool}, err)
	}

	return path, nil
}

// ToolNotFoundError is returned when a tool cannot be resolved.
type ToolNotFoundError struct {
	Tool string
}

func (e *ToolNotFoundError) Error() string {
	return "tool not found in PATH: " + e.Tool
}
