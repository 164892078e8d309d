package access

import (
	"testing"
)

func TestAllowList_Unrestricted(t *testing.T) {
	tests := []struct {
		name string
		list *AllowList
	}{
		{"nil list", nil},
		{"zero value", &AllowList{}},
		{"empty ids", NewAllowList(nil)},
		{"only blanks", NewAllowList([]string{"", "  "})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.list.Restricted() {
				t.Error("Restricted() = true, want false")
			}
			for _, id := range []string{"1", "42", "999999999", ""} {
				if !tt.list.IsAllowed(id) {
					t.Errorf("IsAllowed(%q) = false on an unrestricted list", id)
				}
			}
			if !tt.list.IsAllowedID(-1) {
				t.Error("IsAllowedID(-1) = false on an unrestricted list")
			}
		})
	}
}

func TestAllowList_Restricted(t *testing.T) {
	list := NewAllowList([]string{"111", " 222 ", "333"})

	if !list.Restricted() {
		t.Fatal("Restricted() = false, want true")
	}
	if list.Len() != 3 {
		t.Errorf("Len() = %d, want 3", list.Len())
	}

	tests := []struct {
		id   int64
		want bool
	}{
		{111, true},
		{222, true},
		{333, true},
		{444, false},
		{0, false},
		{-111, false},
	}

	for _, tt := range tests {
		if got := list.IsAllowedID(tt.id); got != tt.want {
			t.Errorf("IsAllowedID(%d) = %v, want %v", tt.id, got, tt.want)
		}
	}

	if list.IsAllowed("") {
		t.Error("IsAllowed(\"\") = true on a restricted list")
	}
}
