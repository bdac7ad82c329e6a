package action

import (
	"errors"
	"testing"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		input string
		want  Kind
	}{
		{"DualAxis", KindDualAxis},
		{"dual_axis", KindDualAxis},
		{"single-axis", KindSingleAxis},
		{"Continuous", KindContinuous},
		{"PULSE", KindPulse},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.input)
		if err != nil {
			t.Errorf("ParseKind(%q) error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseKind(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}

	if _, err := ParseKind("trigger"); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("expected ErrUnknownKind, got %v", err)
	}
}

func TestKind_RoundTrip(t *testing.T) {
	for _, k := range Kinds {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseKind(%s) = %v, %v", k, got, err)
		}
		if k.Explain() == "" || k.Example() == "" {
			t.Errorf("%s lacks explanation or example", k)
		}
	}
	if Kind(9).Valid() {
		t.Error("Kind(9) should be invalid")
	}
	if !KindSingleAxis.IsAxis() || KindPulse.IsAxis() {
		t.Error("IsAxis mismatch")
	}
}
