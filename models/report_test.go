package models

import (
	"testing"
	"time"
)

func TestCategoryValid(t *testing.T) {
	for _, c := range Categories() {
		if !c.Valid() {
			t.Errorf("category %q should be valid", c)
		}
	}
	if Category("pothole").Valid() {
		t.Error("unknown category should not be valid")
	}
	if Category("").Valid() {
		t.Error("empty category should not be valid")
	}
}

func TestCategoryWindow(t *testing.T) {
	if got := CategoryRoadworks.Window(); got != 24*time.Hour {
		t.Errorf("roadworks window = %v, want 24h", got)
	}
	if got := CategoryCheckpoint.Window(); got != 2*time.Hour {
		t.Errorf("checkpoint window = %v, want 2h", got)
	}
	if got := CategoryAccident.Window(); got != 2*time.Hour {
		t.Errorf("accident window = %v, want 2h", got)
	}
}
