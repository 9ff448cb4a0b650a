package interaction

import (
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Warfarin 5mg Tablet", "warfarin"},
		{"ASPIRIN", "aspirin"},
		{"  Ibuprofen 400mg ", "ibuprofen"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := Tokenize(tt.name); got != tt.want {
			t.Errorf("Tokenize(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestCheckKnownPair(t *testing.T) {
	c := NewChecker()
	warnings := c.Check([]string{"warfarin", "aspirin"})
	if len(warnings) != 1 {
		t.Fatalf("warnings = %d, want 1", len(warnings))
	}
	if warnings[0].Severity != "major" {
		t.Errorf("severity = %s, want major", warnings[0].Severity)
	}
}

func TestCheckOrderIndependent(t *testing.T) {
	c := NewChecker()
	ab := c.Check([]string{"aspirin", "warfarin"})
	ba := c.Check([]string{"warfarin", "aspirin"})
	if len(ab) != 1 || len(ba) != 1 {
		t.Fatalf("pair lookup should not depend on order: %d vs %d", len(ab), len(ba))
	}
}

func TestCheckNoInteraction(t *testing.T) {
	c := NewChecker()
	if w := c.Check([]string{"paracetamol", "cetirizine"}); len(w) != 0 {
		t.Errorf("unexpected warnings: %+v", w)
	}
	if w := c.Check(nil); len(w) != 0 {
		t.Errorf("nil tokens should yield no warnings, got %+v", w)
	}
}

func TestCheckCollapsesDuplicates(t *testing.T) {
	c := NewChecker()
	// Two warfarin lines plus aspirin must report the pair exactly once.
	warnings := c.Check([]string{"warfarin", "warfarin", "aspirin", ""})
	if len(warnings) != 1 {
		t.Fatalf("warnings = %d, want 1", len(warnings))
	}
}

func TestCheckMultiplePairs(t *testing.T) {
	c := NewChecker()
	warnings := c.Check([]string{"warfarin", "aspirin", "ibuprofen"})
	// warfarin+aspirin, warfarin+ibuprofen, aspirin+ibuprofen are all known.
	if len(warnings) != 3 {
		t.Fatalf("warnings = %d, want 3: %+v", len(warnings), warnings)
	}
}
