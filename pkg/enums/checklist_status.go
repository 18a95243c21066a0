package enums

import "fmt"

// ChecklistStatus is the lifecycle state of a room inventory checklist.
// The only legal transition is draft -> completed.
type ChecklistStatus string

const (
	ChecklistStatusDraft     ChecklistStatus = "draft"
	ChecklistStatusCompleted ChecklistStatus = "completed"
)

var validChecklistStatuses = []ChecklistStatus{
	ChecklistStatusDraft,
	ChecklistStatusCompleted,
}

// String implements fmt.Stringer.
func (s ChecklistStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ChecklistStatus.
func (s ChecklistStatus) IsValid() bool {
	for _, candidate := range validChecklistStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseChecklistStatus converts raw input into a ChecklistStatus.
func ParseChecklistStatus(value string) (ChecklistStatus, error) {
	for _, candidate := range validChecklistStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid checklist status %q", value)
}
