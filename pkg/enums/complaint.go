package enums

import "fmt"

// ComplaintStatus tracks the handling state of a customer complaint.
type ComplaintStatus string

const (
	ComplaintStatusOpen       ComplaintStatus = "open"
	ComplaintStatusInProgress ComplaintStatus = "in_progress"
	ComplaintStatusResolved   ComplaintStatus = "resolved"
	ComplaintStatusClosed     ComplaintStatus = "closed"
)

var validComplaintStatuses = []ComplaintStatus{
	ComplaintStatusOpen,
	ComplaintStatusInProgress,
	ComplaintStatusResolved,
	ComplaintStatusClosed,
}

// String implements fmt.Stringer.
func (s ComplaintStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ComplaintStatus.
func (s ComplaintStatus) IsValid() bool {
	for _, candidate := range validComplaintStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseComplaintStatus converts raw input into a ComplaintStatus.
func ParseComplaintStatus(value string) (ComplaintStatus, error) {
	for _, candidate := range validComplaintStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid complaint status %q", value)
}

// ComplaintPriority ranks how urgently a complaint needs attention.
type ComplaintPriority string

const (
	ComplaintPriorityLow    ComplaintPriority = "low"
	ComplaintPriorityMedium ComplaintPriority = "medium"
	ComplaintPriorityHigh   ComplaintPriority = "high"
)

var validComplaintPriorities = []ComplaintPriority{
	ComplaintPriorityLow,
	ComplaintPriorityMedium,
	ComplaintPriorityHigh,
}

// String implements fmt.Stringer.
func (p ComplaintPriority) String() string {
	return string(p)
}

// IsValid reports whether the value is a known ComplaintPriority.
func (p ComplaintPriority) IsValid() bool {
	for _, candidate := range validComplaintPriorities {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseComplaintPriority converts raw input into a ComplaintPriority.
func ParseComplaintPriority(value string) (ComplaintPriority, error) {
	for _, candidate := range validComplaintPriorities {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid complaint priority %q", value)
}
