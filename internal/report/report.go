// Package report collects configuration problems as data.
//
// Validation never stops at the first problem: every problem found while
// scanning a configuration is added to a Report, which the caller can
// display, log, or turn into an error. Errors make a configuration
// unusable; warnings describe bindings that are legal but probably not
// what the author meant.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dshills/ineffable/internal/logging"
)

// Severity ranks a Problem.
type Severity uint8

const (
	// Warning marks a problem that does not prevent the configuration
	// from being applied.
	Warning Severity = iota
	// Error marks a problem that rejects the configuration.
	Error
)

// String returns the severity name.
func (s Severity) String() string {
	if s == Error {
		return "error"
	}
	return "warning"
}

// Code classifies a Problem.
type Code string

// Problem codes.
const (
	UnknownGroup              Code = "unknown-group"
	UnknownAction             Code = "unknown-action"
	WrongKind                 Code = "wrong-kind"
	UnknownSource             Code = "unknown-source"
	NoBindings                Code = "no-bindings"
	RootBindingIsDummy        Code = "root-binding-is-dummy"
	ConvolutedDummy           Code = "convoluted-dummy"
	ChordContainsDuplicates   Code = "chord-contains-duplicates"
	SequenceEmpty             Code = "sequence-empty"
	SequenceSingleStep        Code = "sequence-single-step"
	SequenceUnrealisticTiming Code = "sequence-unrealistic-timing"
	InvalidSensitivity        Code = "invalid-sensitivity"
	ThresholdOnDigital        Code = "threshold-on-digital"
	InvalidSetting            Code = "invalid-setting"
	Decode                    Code = "decode"
)

// Problem is one finding about a configuration.
type Problem struct {
	Severity Severity
	Code     Code
	// Group and Action locate the binding list; either may be empty for
	// problems that are not tied to an action.
	Group  string
	Action string
	// Index is the position of the binding in the action's list, or -1.
	Index int
	// Path locates the problem inside the binding, e.g. "x.negative[1]".
	Path    string
	Message string
}

// Location returns "Group.Action[Index].Path", omitting empty parts.
func (p Problem) Location() string {
	var b strings.Builder
	b.WriteString(p.Group)
	if p.Action != "" {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(p.Action)
	}
	if p.Index >= 0 && (p.Group != "" || p.Action != "") {
		fmt.Fprintf(&b, "[%d]", p.Index)
	}
	if p.Path != "" {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(p.Path)
	}
	return b.String()
}

// String formats the problem on one line.
func (p Problem) String() string {
	loc := p.Location()
	if loc == "" {
		return fmt.Sprintf("%s [%s]: %s", p.Severity, p.Code, p.Message)
	}
	return fmt.Sprintf("%s [%s] %s: %s", p.Severity, p.Code, loc, p.Message)
}

// Report is an ordered collection of problems. The zero value is empty and
// ready to use.
type Report struct {
	Problems []Problem
}

// New creates an empty report.
func New() *Report {
	return &Report{}
}

// Add appends a problem.
func (r *Report) Add(p Problem) {
	r.Problems = append(r.Problems, p)
}

// Errorf appends an error located at group.action[index].
func (r *Report) Errorf(code Code, group, act string, index int, path, format string, args ...any) {
	r.Add(Problem{Severity: Error, Code: code, Group: group, Action: act, Index: index, Path: path, Message: fmt.Sprintf(format, args...)})
}

// Warnf appends a warning located at group.action[index].
func (r *Report) Warnf(code Code, group, act string, index int, path, format string, args ...any) {
	r.Add(Problem{Severity: Warning, Code: code, Group: group, Action: act, Index: index, Path: path, Message: fmt.Sprintf(format, args...)})
}

// Merge appends every problem of other.
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	r.Problems = append(r.Problems, other.Problems...)
}

func (r *Report) filter(s Severity) []Problem {
	if r == nil {
		return nil
	}
	var out []Problem
	for _, p := range r.Problems {
		if p.Severity == s {
			out = append(out, p)
		}
	}
	return out
}

// Errors returns the problems of severity Error.
func (r *Report) Errors() []Problem {
	return r.filter(Error)
}

// Warnings returns the problems of severity Warning.
func (r *Report) Warnings() []Problem {
	return r.filter(Warning)
}

// HasErrors reports whether any problem is an error.
func (r *Report) HasErrors() bool {
	if r == nil {
		return false
	}
	for _, p := range r.Problems {
		if p.Severity == Error {
			return true
		}
	}
	return false
}

// Empty reports whether the report has no problems at all.
func (r *Report) Empty() bool {
	return r == nil || len(r.Problems) == 0
}

// Len returns the number of problems.
func (r *Report) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Problems)
}

// WithCode returns the problems carrying code.
func (r *Report) WithCode(code Code) []Problem {
	if r == nil {
		return nil
	}
	var out []Problem
	for _, p := range r.Problems {
		if p.Code == code {
			out = append(out, p)
		}
	}
	return out
}

// Actions returns the sorted, distinct "Group.Action" names mentioned by
// errors.
func (r *Report) Actions() []string {
	seen := make(map[string]struct{})
	for _, p := range r.Errors() {
		if p.Action == "" {
			continue
		}
		seen[p.Group+"."+p.Action] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Error implements the error interface. It lists the errors only.
func (r *Report) Error() string {
	errs := r.Errors()
	switch len(errs) {
	case 0:
		return "no configuration errors"
	case 1:
		return errs[0].String()
	}
	msgs := make([]string, len(errs))
	for i, p := range errs {
		msgs[i] = p.String()
	}
	return fmt.Sprintf("%d configuration errors:\n  - %s", len(errs), strings.Join(msgs, "\n  - "))
}

// AsError returns nil if the report has no errors, otherwise the report.
func (r *Report) AsError() error {
	if !r.HasErrors() {
		return nil
	}
	return r
}

// String lists every problem, one per line.
func (r *Report) String() string {
	if r.Empty() {
		return "no problems"
	}
	lines := make([]string, len(r.Problems))
	for i, p := range r.Problems {
		lines[i] = p.String()
	}
	return strings.Join(lines, "\n")
}

// Log writes every problem to l, errors at error level and warnings at
// warn level.
func (r *Report) Log(l *logging.Logger) {
	if r == nil || l == nil {
		return
	}
	for _, p := range r.Problems {
		pl := l.WithField("code", string(p.Code))
		if loc := p.Location(); loc != "" {
			pl = pl.WithField("at", loc)
		}
		if p.Severity == Error {
			pl.Error("%s", p.Message)
		} else {
			pl.Warn("%s", p.Message)
		}
	}
}
