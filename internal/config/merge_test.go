package config

import (
	"testing"
	"time"

	"github.com/dshills/ineffable/internal/input/binding"
)

func TestMergeReplace_KeyLocal(t *testing.T) {
	a := NewBuilder().
		Bind("Player", "Jump", jumpSpace).
		Bind("Player", "Sprint", sprint).
		Build()
	b := NewBuilder().
		Bind("Player", "Jump", jumpPad).
		Build()

	merged := a.MergeReplace(b)

	jump := merged.Bindings("Player", "Jump")
	if len(jump) != 1 || !equalBinding(jump[0], jumpPad) {
		t.Errorf("Jump = %v, want B's binding only", jump)
	}
	run := merged.Bindings("Player", "Sprint")
	if len(run) != 1 || !equalBinding(run[0], sprint) {
		t.Errorf("Sprint = %v, want A's binding", run)
	}

	// Inputs are untouched.
	if got := a.Bindings("Player", "Jump"); len(got) != 1 || !equalBinding(got[0], jumpSpace) {
		t.Error("merge modified its receiver")
	}
}

func TestMergeAppend(t *testing.T) {
	a := NewBuilder().Bind("Player", "Jump", jumpSpace).Build()
	b := NewBuilder().Bind("Player", "Jump", jumpPad).Bind("Camera", "Zoom", zoom).Build()

	merged := a.MergeAppend(b)
	jump := merged.Bindings("Player", "Jump")
	if len(jump) != 2 || !equalBinding(jump[0], jumpSpace) || !equalBinding(jump[1], jumpPad) {
		t.Errorf("Jump = %v, want A then B", jump)
	}
	if len(merged.Bindings("Camera", "Zoom")) != 1 {
		t.Error("new key should be added")
	}
	if len(a.Bindings("Player", "Jump")) != 1 {
		t.Error("merge modified its receiver")
	}
}

func TestMerge_Settings(t *testing.T) {
	a := NewBuilder().DoubleClickTiming(300 * time.Millisecond).PostAcceptanceDelay(50 * time.Millisecond).Build()
	b := NewBuilder().PostAcceptanceDelay(200 * time.Millisecond).Build()

	for _, mode := range []MergeMode{MergeReplace, MergeAppend} {
		merged := a.Merge(b, mode)
		if d, _ := merged.DoubleClickTiming(); d != 300*time.Millisecond {
			t.Errorf("%s: unset setting in B should keep A's, got %v", mode, d)
		}
		if d, _ := merged.PostAcceptanceDelay(); d != 200*time.Millisecond {
			t.Errorf("%s: B's setting should win, got %v", mode, d)
		}
	}
}

func TestMerge_Base(t *testing.T) {
	a := NewBuilder().Bind("Player", "Jump", jumpSpace).DoubleClickTiming(time.Second).Build()
	b := NewBuilder().Bind("Player", "Sprint", sprint).Build()

	merged := a.Merge(b, MergeBase)
	if merged.Has("Player", "Jump") {
		t.Error("base merge should discard accumulated keys")
	}
	if _, ok := merged.DoubleClickTiming(); ok {
		t.Error("base merge should discard accumulated settings")
	}
	if !merged.Has("Player", "Sprint") {
		t.Error("base merge should keep incoming keys")
	}
}

func TestMerge_Nil(t *testing.T) {
	a := NewBuilder().Bind("Player", "Jump", jumpSpace).Build()
	if !a.MergeReplace(nil).Equal(a) || !a.MergeAppend(nil).Equal(a) {
		t.Error("merging nil should be identity")
	}
	var none *InputConfig
	if !none.MergeReplace(a).Equal(a) {
		t.Error("merging into nil should yield the other config")
	}
}

func TestFold(t *testing.T) {
	defaults := NewBuilder().Bind("Player", "Jump", jumpSpace).Bind("Player", "Sprint", sprint).Build()
	user := NewBuilder().Bind("Player", "Jump", jumpPad).Build()
	extra := NewBuilder().Bind("Player", "Jump", jumpSpace).Build()

	got := Fold(
		Entry{Mode: MergeBase, Config: defaults},
		Entry{Mode: MergeReplace, Config: user},
		Entry{Mode: MergeAppend, Config: extra},
	)

	jump := got.Bindings("Player", "Jump")
	if len(jump) != 2 || !equalBinding(jump[0], jumpPad) || !equalBinding(jump[1], jumpSpace) {
		t.Errorf("Jump = %v", jump)
	}
	if !got.Has("Player", "Sprint") {
		t.Error("Sprint should survive the fold")
	}
}

func TestParseMergeMode(t *testing.T) {
	tests := []struct {
		in   string
		want MergeMode
	}{
		{"", MergeReplace},
		{"replace", MergeReplace},
		{"Append", MergeAppend},
		{" base ", MergeBase},
	}
	for _, tt := range tests {
		got, err := ParseMergeMode(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseMergeMode(%q) = %v, %v", tt.in, got, err)
		}
		if got.String() == "" {
			t.Error("empty String()")
		}
	}
	if _, err := ParseMergeMode("overlay"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func equalBinding(a, b binding.Binding) bool {
	return NewBuilder().Bind("g", "a", a).Build().Equal(NewBuilder().Bind("g", "a", b).Build())
}
