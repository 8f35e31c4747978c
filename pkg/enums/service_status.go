package enums

import "fmt"

// ServiceStatus tracks the lifecycle of a service or job card.
type ServiceStatus string

const (
	ServiceStatusPending    ServiceStatus = "pending"
	ServiceStatusInProgress ServiceStatus = "in_progress"
	ServiceStatusCompleted  ServiceStatus = "completed"
	ServiceStatusCancelled  ServiceStatus = "cancelled"
)

var validServiceStatuses = []ServiceStatus{
	ServiceStatusPending,
	ServiceStatusInProgress,
	ServiceStatusCompleted,
	ServiceStatusCancelled,
}

// String implements fmt.Stringer.
func (s ServiceStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ServiceStatus.
func (s ServiceStatus) IsValid() bool {
	for _, candidate := range validServiceStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseServiceStatus converts raw input into a ServiceStatus.
func ParseServiceStatus(value string) (ServiceStatus, error) {
	for _, candidate := range validServiceStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid service status %q", value)
}
