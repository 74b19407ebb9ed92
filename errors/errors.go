// Package errors defines error handling resources used by the notifier.
// It is based on patterns developed at Upspin:
// https://commandcenter.blogspot.com/2017/12/error-handling-in-upspin.html
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
)

// ClientReporter provides information about an error such that client and
// server errors can be distinguished and handled appropriately.
type ClientReporter interface {
	error
	ClientReport() map[string]string
	StatusCode() int
}

// Error is the type that implements the error interface.
// An Error value may leave some values unset.
type Error struct {
	err      error
	kind     Kind
	code     int
	op       Op
	messages map[string]string
}

// Kind defines the kind of error this is.
type Kind uint8

// Op describes an operation, usually as the package and method,
// such as "digest.Render".
type Op string

// Kinds of errors.
const (
	Other      Kind = iota // Unclassified error
	Validation             // Validation errors are caused by invalid parameters
	NotFound
	Internal // Used for internal server errors
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case NotFound:
		return "not found"
	case Internal:
		return "internal"
	default:
		return "other"
	}
}

// Opf returns an Op built from a format string.
func Opf(format string, args ...interface{}) Op {
	return Op(fmt.Sprintf(format, args...))
}

// E creates a new Error instance. The args can be an error, a Kind, an HTTP
// status code as an int, or a message for the client as map[string]string.
// If one of the args is an error with client messages, they are merged into
// the new error's messages.
func E(op Op, args ...interface{}) error {
	e := &Error{
		op:       op,
		messages: map[string]string{},
	}

	for _, arg := range args {
		switch t := arg.(type) {
		case *Error:
			// Merge client reports. Earlier writes win.
			for k, v := range t.messages {
				if _, has := e.messages[k]; !has {
					e.messages[k] = v
				}
			}

			if e.kind == Other {
				e.kind = t.kind
			}

			if e.code == 0 {
				e.code = t.code
			}

			e.err = t
		case error:
			e.err = t
		case Kind:
			e.kind = t
		case int:
			e.code = t
		case map[string]string:
			// New error messages win.
			for k, v := range t {
				e.messages[k] = v
			}
		}
	}

	return e
}

// Error returns a string with information about the error for debugging purposes.
// This value should not be returned to the user.
func (e *Error) Error() string {
	b := new(strings.Builder)
	b.WriteString(string(e.op))

	if e.kind != Other {
		b.WriteString(":")
		b.WriteString(e.kind.String())
	}

	if e.err != nil {
		b.WriteString(fmt.Sprintf("::%v", e.err))
	}

	return b.String()
}

// Unwrap returns the wrapped error, if any.
func (e *Error) Unwrap() error {
	return e.err
}

// Kind returns the kind of the error.
func (e *Error) Kind() Kind {
	return e.kind
}

// ClientReport returns a map of strings suitable to be returned to the end user.
func (e *Error) ClientReport() map[string]string {
	if len(e.messages) == 0 {
		switch e.StatusCode() {
		case http.StatusBadRequest:
			return map[string]string{"message": "The request was invalid"}
		case http.StatusNotFound:
			return map[string]string{"message": "The requested resource was not found"}
		default:
			return map[string]string{"message": "Something went wrong"}
		}
	}

	return e.messages
}

// StatusCode returns the HTTP status code for the error. An explicit code
// passed to E wins over the one derived from the kind.
func (e *Error) StatusCode() int {
	if e.code != 0 {
		return e.code
	}

	switch e.kind {
	case Validation:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// KindOf returns the kind of the outermost *Error in err's chain that has
// one set, or Other.
func KindOf(err error) Kind {
	var e *Error
	for As(err, &e) {
		if e.kind != Other {
			return e.kind
		}

		err = e.err
	}

	return Other
}

// Errorf is the same things as fmt.Errorf. It is exported for convenience and so that
// this package can handle all errors.
func Errorf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}

// Str returns an error from the given string.
func Str(s string) error {
	return stderrors.New(s)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}
