package core

import (
	"errors"
	"fmt"
)

// Sentinel errors classifying build failures. Match them with errors.Is.
var (
	ErrFileNotFound    = errors.New("file not found")
	ErrParse           = errors.New("invalid JSON")
	ErrRender          = errors.New("render failed")
	ErrDirectoryCreate = errors.New("cannot create directory")
	ErrWrite           = errors.New("write failed")
	ErrUnknownRequest  = errors.New("unknown request")
)

// OpError records a failed operation together with the path it acted on.
type OpError struct {
	Op   string
	Path string
	Kind error
	Err  error
}

func (e *OpError) Error() string {
	msg := e.Op
	if e.Path != "" {
		msg += " " + e.Path
	}
	msg += ": " + e.Kind.Error()
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is reports whether target is the error's kind.
func (e *OpError) Is(target error) bool {
	return e.Kind == target
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// Errorf builds an OpError of the given kind whose cause is formatted from
// format and args.
func Errorf(kind error, op, path, format string, args ...any) error {
	return &OpError{Op: op, Path: path, Kind: kind, Err: fmt.Errorf(format, args...)}
}

// Wrap builds an OpError of the given kind around err.
func Wrap(kind error, op, path string, err error) error {
	return &OpError{Op: op, Path: path, Kind: kind, Err: err}
}
