package enums

import "fmt"

// ChecklistItemStatus records what housekeeping reported for a single line.
type ChecklistItemStatus string

const (
	ChecklistItemStatusExpected ChecklistItemStatus = "expected"
	ChecklistItemStatusUsed     ChecklistItemStatus = "used"
	ChecklistItemStatusNotUsed  ChecklistItemStatus = "not_used"
)

var validChecklistItemStatuses = []ChecklistItemStatus{
	ChecklistItemStatusExpected,
	ChecklistItemStatusUsed,
	ChecklistItemStatusNotUsed,
}

// String implements fmt.Stringer.
func (s ChecklistItemStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ChecklistItemStatus.
func (s ChecklistItemStatus) IsValid() bool {
	for _, candidate := range validChecklistItemStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseChecklistItemStatus converts raw input into a ChecklistItemStatus.
func ParseChecklistItemStatus(value string) (ChecklistItemStatus, error) {
	for _, candidate := range validChecklistItemStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid checklist item status %q", value)
}
