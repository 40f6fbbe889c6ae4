package main

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures surfaced by tree building and option parsing.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	// KindIO covers unreadable directories, undeterminable entry types and
	// unreadable metadata.
	KindIO
	// KindInvalidInput covers malformed regexes, extension tokens, sort keys
	// and other configuration values.
	KindInvalidInput
)

func (k ErrorKind) String() string {
	switch k {
	case KindIO:
		return "io error"
	case KindInvalidInput:
		return "invalid input"
	default:
		return "unknown error"
	}
}

// Sentinels for errors.Is matching against a *TreeError of the same kind.
var (
	ErrIO           = &TreeError{Kind: KindIO}
	ErrInvalidInput = &TreeError{Kind: KindInvalidInput}
)

// TreeError carries the kind, the failed operation and the offending path or value.
type TreeError struct {
	Kind ErrorKind
	Op   string
	Path string
	Err  error
}

func (e *TreeError) Error() string {
	msg := e.Op
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Path != "" {
		msg = fmt.Sprintf("%s %s", msg, e.Path)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *TreeError) Unwrap() error {
	return e.Err
}

// Is reports a match when target is a *TreeError sentinel of the same kind.
func (e *TreeError) Is(target error) bool {
	var t *TreeError
	if !errors.As(target, &t) {
		return false
	}
	return t.Op == "" && t.Path == "" && t.Err == nil && t.Kind == e.Kind
}

func ioError(op, path string, err error) error {
	return &TreeError{Kind: KindIO, Op: op, Path: path, Err: err}
}

func invalidInput(op, value string, err error) error {
	return &TreeError{Kind: KindInvalidInput, Op: op, Path: value, Err: err}
}
