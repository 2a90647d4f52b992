package datapath

import (
	"errors"
	"fmt"
)

var (
	ErrSyntax          = errors.New("datapath syntax error")
	ErrKeyNotFound     = errors.New("key not found")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrFilterNoMatch   = errors.New("filter matched no element")
	ErrStepType        = errors.New("type mismatch")
	ErrMaxDepth        = errors.New("max resolution depth exceeded")
)

// SyntaxError reports a malformed path expression together with the
// byte offset of the offending token.
type SyntaxError struct {
	Pos    int
	Reason string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at offset %d: %s", ErrSyntax.Error(), e.Pos, e.Reason)
}

func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

func syntaxErr(pos int, format string, args ...any) error {
	return &SyntaxError{Pos: pos, Reason: fmt.Sprintf(format, args...)}
}

// ResolveError reports a step that could not be applied; Step is the
// zero-based index of the failing step.
type ResolveError struct {
	Step    int
	Segment string
	Err     error
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("%s: step %d (%s)", e.Err.Error(), e.Step, e.Segment)
}

func (e *ResolveError) Unwrap() error {
	return e.Err
}

func resolveErr(step int, p *Path, err error) error {
	return &ResolveError{Step: step, Segment: p.SegmentString(), Err: err}
}
