package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/dshills/ineffable/internal/logging"
)

func TestProblem_Location(t *testing.T) {
	tests := []struct {
		p    Problem
		want string
	}{
		{Problem{Group: "Player", Action: "Jump", Index: 2, Path: "steps[0]"}, "Player.Jump[2].steps[0]"},
		{Problem{Group: "Player", Action: "Jump", Index: -1}, "Player.Jump"},
		{Problem{Group: "Player", Index: -1}, "Player"},
		{Problem{Index: -1, Path: "double_click_timing"}, "double_click_timing"},
		{Problem{Index: -1}, ""},
	}
	for _, tt := range tests {
		if got := tt.p.Location(); got != tt.want {
			t.Errorf("Location() = %q, want %q", got, tt.want)
		}
	}
}

func TestReport_Severities(t *testing.T) {
	r := New()
	if r.HasErrors() || !r.Empty() || r.AsError() != nil {
		t.Fatal("new report should be empty")
	}

	r.Warnf(RootBindingIsDummy, "Player", "Jump", 0, "", "binding is a dummy")
	if r.HasErrors() || r.AsError() != nil {
		t.Error("warnings alone must not make the report an error")
	}

	r.Errorf(WrongKind, "Player", "Sprint", 1, "", "expected %s binding", "Continuous")
	r.Errorf(UnknownAction, "Player", "Fly", 0, "", "no such action")
	if !r.HasErrors() {
		t.Fatal("HasErrors() = false")
	}
	if len(r.Errors()) != 2 || len(r.Warnings()) != 1 || r.Len() != 3 {
		t.Errorf("errors=%d warnings=%d len=%d", len(r.Errors()), len(r.Warnings()), r.Len())
	}

	err := r.AsError()
	var rep *Report
	if !errors.As(err, &rep) || rep != r {
		t.Error("AsError should return the report itself")
	}
	if !strings.Contains(err.Error(), "2 configuration errors") {
		t.Errorf("Error() = %q", err.Error())
	}
	if strings.Contains(err.Error(), "dummy") {
		t.Error("Error() should not list warnings")
	}

	got := r.Actions()
	if len(got) != 2 || got[0] != "Player.Fly" || got[1] != "Player.Sprint" {
		t.Errorf("Actions() = %v", got)
	}
	if len(r.WithCode(WrongKind)) != 1 {
		t.Error("WithCode mismatch")
	}
}

func TestReport_Merge(t *testing.T) {
	a := New()
	a.Warnf(SequenceSingleStep, "G", "A", 0, "", "w")
	b := New()
	b.Errorf(Decode, "", "", -1, "bindings", "bad shape")

	a.Merge(b)
	a.Merge(nil)
	if a.Len() != 2 || !a.HasErrors() {
		t.Errorf("merge result: %v", a)
	}
}

func TestReport_NilSafe(t *testing.T) {
	var r *Report
	if r.HasErrors() || !r.Empty() || r.Len() != 0 || r.Errors() != nil {
		t.Error("nil report should behave as empty")
	}
	r.Log(logging.Null)
}

func TestReport_Log(t *testing.T) {
	var buf bytes.Buffer
	l := logging.New(logging.Config{Level: logging.LevelDebug, Output: &buf})

	r := New()
	r.Errorf(UnknownGroup, "Ghost", "", -1, "", "group is not registered")
	r.Warnf(ChordContainsDuplicates, "Player", "Jump", 0, "chord[0]", "duplicate input")
	r.Log(l)

	out := buf.String()
	if !strings.Contains(out, "[ERROR]") || !strings.Contains(out, "code=unknown-group") {
		t.Errorf("missing error line: %q", out)
	}
	if !strings.Contains(out, "[WARN]") || !strings.Contains(out, "at=Player.Jump[0].chord[0]") {
		t.Errorf("missing warning line: %q", out)
	}
}
