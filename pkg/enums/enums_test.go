package enums

import "testing"

func TestParseItemCategory(t *testing.T) {
	cat, err := ParseItemCategory("Minibar")
	if err != nil {
		t.Fatalf("expected valid category, got %v", err)
	}
	if cat != ItemCategoryMinibar {
		t.Fatalf("expected minibar, got %s", cat)
	}

	if _, err := ParseItemCategory("minibar"); err == nil {
		t.Fatal("category values are case sensitive, expected error")
	}
	if _, err := ParseItemCategory("Garage"); err == nil {
		t.Fatal("expected error for unknown category")
	}
}

func TestParseUnitType(t *testing.T) {
	unit, err := ParseUnitType("roll")
	if err != nil {
		t.Fatalf("expected valid unit, got %v", err)
	}
	if unit != UnitTypeRoll {
		t.Fatalf("expected roll, got %s", unit)
	}
	if _, err := ParseUnitType("barrel"); err == nil {
		t.Fatal("expected error for unknown unit")
	}
}

func TestTransactionTypeRoomScoped(t *testing.T) {
	tests := []struct {
		tt   TransactionType
		want bool
	}{
		{TransactionTypeAdd, false},
		{TransactionTypeReduce, false},
		{TransactionTypeRoomAllocation, true},
		{TransactionTypeRoomRefill, true},
		{TransactionTypeAdjustment, false},
	}
	for _, tc := range tests {
		if got := tc.tt.IsRoomScoped(); got != tc.want {
			t.Fatalf("%s: expected IsRoomScoped=%v, got %v", tc.tt, tc.want, got)
		}
	}
}

func TestChecklistStatusValidation(t *testing.T) {
	if !ChecklistStatusDraft.IsValid() || !ChecklistStatusCompleted.IsValid() {
		t.Fatal("expected draft and completed to be valid")
	}
	if _, err := ParseChecklistStatus("archived"); err == nil {
		t.Fatal("expected error for unknown checklist status")
	}
	if _, err := ParseChecklistItemStatus("missing"); err == nil {
		t.Fatal("expected error for unknown checklist item status")
	}
}
