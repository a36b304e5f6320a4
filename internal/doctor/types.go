// Package doctor provides health checks for a tmuxflash setup.
package doctor

import "context"

// Severity represents the severity level of a failed check.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Status represents the status of a health check.
type Status string

const (
	StatusPass    Status = "pass"
	StatusFail    Status = "fail"
	StatusSkipped Status = "skipped"
)

// Category groups related checks.
type Category string

const (
	// CategoryTmux checks the tmux binary and session.
	CategoryTmux Category = "tmux"
	// CategoryConfig checks configuration files.
	CategoryConfig Category = "config"
	// CategoryState checks the state directory used for logs.
	CategoryState Category = "state"
)

// categoryOrder is the display order of categories.
var categoryOrder = map[Category]int{
	CategoryTmux:   0,
	CategoryConfig: 1,
	CategoryState:  2,
}

// CheckResult represents the result of a health check.
type CheckResult struct {
	Name     string
	Category Category
	Severity Severity
	Status   Status
	Message  string

	// Details contains additional context, such as how to fix the problem.
	Details []string
}

// HealthChecker performs a health check.
type HealthChecker interface {
	Name() string
	Category() Category
	Check(ctx context.Context) CheckResult
}

// NewCheckResult creates a new CheckResult.
func NewCheckResult(name string, severity Severity, status Status, message string) CheckResult {
	return CheckResult{
		Name:     name,
		Severity: severity,
		Status:   status,
		Message:  message,
	}
}

// WithDetails adds details to a CheckResult.
func (r CheckResult) WithDetails(details ...string) CheckResult {
	r.Details = append(append([]string(nil), r.Details...), details...)

	return r
}

// Pass creates a passing check result.
func Pass(name, message string) CheckResult {
	return NewCheckResult(name, SeverityInfo, StatusPass, message)
}

// FailError creates a failing check result with error severity.
func FailError(name, message string) CheckResult {
	return NewCheckResult(name, SeverityError, StatusFail, message)
}

// FailWarning creates a failing check result with warning severity.
func FailWarning(name, message string) CheckResult {
	return NewCheckResult(name, SeverityWarning, StatusFail, message)
}

// Skip creates a skipped check result.
func Skip(name, message string) CheckResult {
	return NewCheckResult(name, SeverityInfo, StatusSkipped, message)
}

// IsError returns true if the result is an error.
func (r CheckResult) IsError() bool {
	return r.Status == StatusFail && r.Severity == SeverityError
}

// IsWarning returns true if the result is a warning.
func (r CheckResult) IsWarning() bool {
	return r.Status == StatusFail && r.Severity == SeverityWarning
}
