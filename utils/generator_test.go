package utils

import (
	"testing"
)

func TestGenerateClassID(t *testing.T) {
	id := GenerateClassID()
	if len(id) != 17 {
		t.Fatalf("class id %q should be 17 digits (millisecond timestamp)", id)
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			t.Fatalf("class id %q must be digits only", id)
		}
	}
}

func TestGenerateInstanceID(t *testing.T) {
	id := GenerateInstanceID()
	if len(id) != 14 {
		t.Fatalf("instance id %q should be 14 digits (second timestamp)", id)
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			t.Fatalf("instance id %q must be digits only", id)
		}
	}
}
