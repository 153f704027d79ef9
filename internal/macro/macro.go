// Package macro expands template-style macro calls embedded in markdown.
//
// A call looks like a function call wrapped in double braces:
//
//	{{ code_snippet("examples/vector.cpp", "push_back", language="cpp") }}
//
// Arguments are quoted string literals, positional or keyword. Calls to names
// that are not registered are copied through untouched so that other
// templating layers can still process them.
package macro

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Call delimiters.
const (
	openDelim  = "{{"
	closeDelim = "}}"
)

// Sentinel errors for registration and parsing.
var (
	ErrInvalidName   = errors.New("invalid macro name")
	ErrDuplicateName = errors.New("macro already registered")
	ErrSyntax        = errors.New("macro syntax error")
	ErrArguments     = errors.New("invalid macro arguments")
)

// Args holds the parsed arguments of a call.
type Args struct {
	Positional []string
	Keyword    map[string]string
}

// Get returns the argument at position pos, or the keyword argument key.
// A value given both ways is an error reported by Bind, not here.
func (a Args) Get(pos int, key string) (string, bool) {
	if pos < len(a.Positional) {
		return a.Positional[pos], true
	}
	v, ok := a.Keyword[key]
	return v, ok
}

// Bind maps arguments onto params in order. Positional arguments fill params
// from the left; keyword arguments must name a param not already filled.
// Missing params stay "".
func (a Args) Bind(params ...string) ([]string, error) {
	if len(a.Positional) > len(params) {
		return nil, fmt.Errorf("%w: takes at most %d arguments, got %d", ErrArguments, len(params), len(a.Positional))
	}

	out := make([]string, len(params))
	copy(out, a.Positional)

	for key, val := range a.Keyword {
		idx := indexOf(params, key)
		if idx < 0 {
			return nil, fmt.Errorf("%w: unexpected keyword %q", ErrArguments, key)
		}
		if idx < len(a.Positional) {
			return nil, fmt.Errorf("%w: %q given twice", ErrArguments, key)
		}
		out[idx] = val
	}
	return out, nil
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}

// Call describes one macro invocation found in a document.
type Call struct {
	Name   string
	Args   Args
	Offset int    // byte offset of "{{" in the source
	Line   int    // 1-based line of "{{"
	Raw    string // full "{{ ... }}" text
	Err    error  // syntax error; Args is empty when set
}

// Func produces the replacement text for a call. A returned error is rendered
// inline with ErrorText, or with its own text when it is a *Fallback.
type Func func(call Call) (string, error)

// Registry maps macro names to their implementations.
type Registry struct {
	funcs map[string]Func
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{funcs: make(map[string]Func)}
}

// Register adds fn under name. Names must be identifiers.
func (r *Registry) Register(name string, fn Func) error {
	if !IsIdentifier(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if _, ok := r.funcs[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	r.funcs[name] = fn
	return nil
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ErrorText formats err as the inline markup substituted for a failed call.
func ErrorText(err error) string {
	return "<b>Macro error: " + err.Error() + "</b>"
}

// Fallback is returned by a Func that failed but still has replacement text
// for the document. Expand substitutes Text and records the failure.
type Fallback struct {
	Text string
	Err  error
}

func (f *Fallback) Error() string { return f.Err.Error() }
func (f *Fallback) Unwrap() error { return f.Err }

// Failure records a call that could not be expanded normally.
type Failure struct {
	Call Call
	Err  error
}

// Expand replaces every registered call in content with its expansion.
// Text outside calls is copied unchanged. Failed calls are rendered inline
// and reported; expansion stops early only when ctx is canceled.
func (r *Registry) Expand(ctx context.Context, content string) (string, []Failure, error) {
	var sb strings.Builder
	sb.Grow(len(content))

	var failures []Failure
	pos, line := 0, 1
	for {
		if err := ctx.Err(); err != nil {
			return "", nil, err
		}

		call, end, found := r.next(content, pos, line)
		if !found {
			sb.WriteString(content[pos:])
			return sb.String(), failures, nil
		}
		sb.WriteString(content[pos:call.Offset])

		if call.Err != nil {
			sb.WriteString(ErrorText(call.Err))
			failures = append(failures, Failure{Call: call, Err: call.Err})
		} else {
			out, fnErr := r.funcs[call.Name](call)
			if fnErr != nil {
				var fb *Fallback
				if errors.As(fnErr, &fb) {
					out = fb.Text
				} else {
					out = ErrorText(fnErr)
				}
				failures = append(failures, Failure{Call: call, Err: fnErr})
			}
			sb.WriteString(out)
		}

		line = call.Line + strings.Count(call.Raw, "\n")
		pos = end
	}
}

// Calls lists every registered call in content without expanding it.
// Calls that failed to parse carry the syntax error in Err.
func (r *Registry) Calls(content string) []Call {
	var calls []Call
	pos, line := 0, 1
	for {
		call, end, found := r.next(content, pos, line)
		if !found {
			return calls
		}
		calls = append(calls, call)
		line = call.Line + strings.Count(call.Raw, "\n")
		pos = end
	}
}

// next finds the first registered call at or after pos, where line is the
// line number of pos. end is the index just after the call's "}}".
// A call with a syntax error and no closing "}}" ends the scan: the rest of
// the document is left as text.
func (r *Registry) next(content string, pos, line int) (call Call, end int, found bool) {
	for {
		rel := strings.Index(content[pos:], openDelim)
		if rel < 0 {
			return Call{}, 0, false
		}
		start := pos + rel
		line += strings.Count(content[pos:start], "\n")

		name, nameEnd, ok := r.match(content, start)
		if !ok {
			// not ours: keep scanning after the delimiter
			pos = start + len(openDelim)
			continue
		}

		call = Call{Name: name, Offset: start, Line: line}
		args, callEnd, err := parseCall(content, nameEnd)
		if err != nil {
			callEnd = findClose(content, nameEnd)
			if callEnd < 0 {
				return Call{}, 0, false
			}
			call.Err = err
		} else {
			call.Args = args
		}
		call.Raw = content[start:callEnd]
		return call, callEnd, true
	}
}

// match reads "{{ name" at start and reports whether name is registered.
// end is the index just after the name.
func (r *Registry) match(content string, start int) (name string, end int, ok bool) {
	i := skipSpace(content, start+len(openDelim))
	j := i
	for j < len(content) && isIdentChar(content[j], j == i) {
		j++
	}
	if j == i {
		return "", 0, false
	}
	name = content[i:j]
	if _, registered := r.funcs[name]; !registered {
		return "", 0, false
	}
	return name, j, true
}

// findClose returns the index after the next "}}" at or after from, or -1.
func findClose(content string, from int) int {
	idx := strings.Index(content[from:], closeDelim)
	if idx < 0 {
		return -1
	}
	return from + idx + len(closeDelim)
}

// IsIdentifier reports whether s is a valid macro name.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isIdentChar(s[i], i == 0) {
			return false
		}
	}
	return true
}

func isIdentChar(c byte, first bool) bool {
	switch {
	case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		return true
	case c >= '0' && c <= '9':
		return !first
	}
	return false
}

func skipSpace(s string, i int) int {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n' || s[i] == '\r') {
		i++
	}
	return i
}
