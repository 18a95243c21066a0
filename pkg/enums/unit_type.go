package enums

import "fmt"

// UnitType is the measurement unit an item is counted in.
type UnitType string

const (
	UnitTypePiece  UnitType = "pcs"
	UnitTypePack   UnitType = "pack"
	UnitTypeBottle UnitType = "bottle"
	UnitTypeLitre  UnitType = "litre"
	UnitTypeKg     UnitType = "kg"
	UnitTypeGram   UnitType = "gram"
	UnitTypeMeter  UnitType = "meter"
	UnitTypeRoll   UnitType = "roll"
	UnitTypeBox    UnitType = "box"
	UnitTypeSet    UnitType = "set"
)

var validUnitTypes = []UnitType{
	UnitTypePiece,
	UnitTypePack,
	UnitTypeBottle,
	UnitTypeLitre,
	UnitTypeKg,
	UnitTypeGram,
	UnitTypeMeter,
	UnitTypeRoll,
	UnitTypeBox,
	UnitTypeSet,
}

// String implements fmt.Stringer.
func (u UnitType) String() string {
	return string(u)
}

// IsValid reports whether the value is a known UnitType.
func (u UnitType) IsValid() bool {
	for _, candidate := range validUnitTypes {
		if candidate == u {
			return true
		}
	}
	return false
}

// ParseUnitType converts raw input into a UnitType.
func ParseUnitType(value string) (UnitType, error) {
	for _, candidate := range validUnitTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid unit type %q", value)
}
