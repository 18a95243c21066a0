package enums

import "fmt"

// TransactionType classifies a stock ledger entry.
type TransactionType string

const (
	TransactionTypeAdd            TransactionType = "add"
	TransactionTypeReduce         TransactionType = "reduce"
	TransactionTypeRoomAllocation TransactionType = "room_allocation"
	TransactionTypeRoomRefill     TransactionType = "room_refill"
	TransactionTypeAdjustment     TransactionType = "adjustment"
)

var validTransactionTypes = []TransactionType{
	TransactionTypeAdd,
	TransactionTypeReduce,
	TransactionTypeRoomAllocation,
	TransactionTypeRoomRefill,
	TransactionTypeAdjustment,
}

// String implements fmt.Stringer.
func (t TransactionType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known TransactionType.
func (t TransactionType) IsValid() bool {
	for _, candidate := range validTransactionTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// IsRoomScoped reports whether the type moves stock between storage and a room.
func (t TransactionType) IsRoomScoped() bool {
	return t == TransactionTypeRoomAllocation || t == TransactionTypeRoomRefill
}

// ParseTransactionType converts raw input into a TransactionType.
func ParseTransactionType(value string) (TransactionType, error) {
	for _, candidate := range validTransactionTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid transaction type %q", value)
}
