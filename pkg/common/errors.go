package common

import (
	"github.com/pkg/errors"
)

// ErrorKind classifies a pipeline failure.
type ErrorKind int

const (
	KindIO ErrorKind = iota + 1
	KindSchema
	KindArithmetic
	KindRender
)

func (k ErrorKind) String() string {
	switch k {
	case KindIO:
		return "IOError"
	case KindSchema:
		return "SchemaError"
	case KindArithmetic:
		return "ArithmeticError"
	case KindRender:
		return "RenderError"
	default:
		return "UnknownError"
	}
}

// Error is returned by every pipeline stage. Match on the kind with
// errors.Is(err, common.ErrSchema) and friends.
type Error struct {
	Kind ErrorKind
	Err  error
}

var (
	ErrIO         = &Error{Kind: KindIO}
	ErrSchema     = &Error{Kind: KindSchema}
	ErrArithmetic = &Error{Kind: KindArithmetic}
	ErrRender     = &Error{Kind: KindRender}
)

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is a sentinel of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Err == nil && t.Kind == e.Kind
}

func IOError(err error, format string, args ...interface{}) error {
	return &Error{Kind: KindIO, Err: errors.Wrapf(err, format, args...)}
}

func SchemaError(format string, args ...interface{}) error {
	return &Error{Kind: KindSchema, Err: errors.Errorf(format, args...)}
}

func WrapSchemaError(err error, format string, args ...interface{}) error {
	return &Error{Kind: KindSchema, Err: errors.Wrapf(err, format, args...)}
}

func ArithmeticError(format string, args ...interface{}) error {
	return &Error{Kind: KindArithmetic, Err: errors.Errorf(format, args...)}
}

func RenderError(err error, format string, args ...interface{}) error {
	return &Error{Kind: KindRender, Err: errors.Wrapf(err, format, args...)}
}
