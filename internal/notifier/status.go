package notifier

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrInvalidStatus is returned for unknown status names.
var ErrInvalidStatus = errors.New("invalid status")

// Status is the state a notification reports.
type Status string

const (
	StatusPending Status = "pending"
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
	StatusNotify  Status = "notify"
)

// Statuses lists every status in display order.
func Statuses() []Status {
	return []Status{StatusPending, StatusSuccess, StatusFailed, StatusNotify}
}

// ParseStatus parses a status name. "failure" is accepted for failed.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending":
		return StatusPending, nil
	case "success":
		return StatusSuccess, nil
	case "failed", "failure":
		return StatusFailed, nil
	case "notify":
		return StatusNotify, nil
	default:
		return "", errors.Wrapf(ErrInvalidStatus, "%q", s)
	}
}

func (s Status) String() string {
	return string(s)
}

// Notification is a single message delivered to every registered notifier.
type Notification struct {
	Title   string
	Message string
	Status  Status
}
