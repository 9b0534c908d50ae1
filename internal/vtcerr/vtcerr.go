// Package vtcerr defines the error taxonomy shared by the parser, evaluator,
// intrinsic registry, and query layer.
package vtcerr

import "fmt"

// ParseKind enumerates the ways source text can fail to parse.
type ParseKind int

const (
	UnexpectedToken ParseKind = iota
	UnterminatedString
	BadEscape
	BadNumber
	UnexpectedEOF
	DuplicateError
)

func (k ParseKind) String() string {
	switch k {
	case UnexpectedToken:
		return "UnexpectedToken"
	case UnterminatedString:
		return "UnterminatedString"
	case BadEscape:
		return "BadEscape"
	case BadNumber:
		return "BadNumber"
	case UnexpectedEOF:
		return "UnexpectedEof"
	case DuplicateError:
		return "DuplicateError"
	}
	return "UnknownParseKind"
}

// ParseError reports a position-annotated failure raised while loading source.
type ParseError struct {
	Line   int
	Column int
	Kind   ParseKind
	Detail string
}

func (e *ParseError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("parse error at %d:%d: %s", e.Line, e.Column, e.Kind)
	}
	return fmt.Sprintf("parse error at %d:%d: %s: %s", e.Line, e.Column, e.Kind, e.Detail)
}

// UnresolvedReference reports a reference whose namespace or variable does not exist.
type UnresolvedReference struct {
	Namespace string
	Variable  string
}

func (e *UnresolvedReference) Error() string {
	return fmt.Sprintf("unresolved reference %s.%s", e.Namespace, e.Variable)
}

// CyclicReference reports a dependency cycle detected during resolution.
type CyclicReference struct {
	Namespace string
	Variable  string
}

func (e *CyclicReference) Error() string {
	return fmt.Sprintf("cyclic reference at %s.%s", e.Namespace, e.Variable)
}

// BadAccessor reports an accessor applied to a non-indexable value, or a
// bounds violation.
type BadAccessor struct {
	Detail string
}

func (e *BadAccessor) Error() string {
	return fmt.Sprintf("bad accessor: %s", e.Detail)
}

// TypeMismatch reports a getter or intrinsic receiving an incompatible value.
type TypeMismatch struct {
	Expected string
	Got      string
}

func (e *TypeMismatch) Error() string {
	return fmt.Sprintf("type mismatch: expected %s, got %s", e.Expected, e.Got)
}

// UnknownIntrinsic reports a call to an unregistered intrinsic name.
type UnknownIntrinsic struct {
	Name string
}

func (e *UnknownIntrinsic) Error() string {
	return fmt.Sprintf("unknown intrinsic %q", e.Name)
}

// IntrinsicErrorKind enumerates the domain-specific ways an intrinsic can fail.
type IntrinsicErrorKind int

const (
	DivByZero IntrinsicErrorKind = iota
	Overflow
	BadArgument
	Arity
)

func (k IntrinsicErrorKind) String() string {
	switch k {
	case DivByZero:
		return "DivByZero"
	case Overflow:
		return "Overflow"
	case BadArgument:
		return "BadArgument"
	case Arity:
		return "Arity"
	}
	return "UnknownIntrinsicErrorKind"
}

// IntrinsicError carries a domain-specific failure from an intrinsic handler.
type IntrinsicError struct {
	Name   string
	Kind   IntrinsicErrorKind
	Detail string
}

func (e *IntrinsicError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("intrinsic %s failed: %s", e.Name, e.Kind)
	}
	return fmt.Sprintf("intrinsic %s failed: %s: %s", e.Name, e.Kind, e.Detail)
}

// BadDictShape reports as_dict applied to a malformed list.
type BadDictShape struct {
	Detail string
}

func (e *BadDictShape) Error() string {
	return fmt.Sprintf("bad dict shape: %s", e.Detail)
}

// IoError wraps a file read failure encountered during load.
type IoError struct {
	Path string
	Err  error
}

func (e *IoError) Error() string {
	return fmt.Sprintf("io error reading %s: %v", e.Path, e.Err)
}

func (e *IoError) Unwrap() error {
	return e.Err
}

// NotFound reports a missing namespace or variable at the query layer
// (Runtime.Render returns it for an unknown namespace).
type NotFound struct {
	Namespace string
	Variable  string
}

func (e *NotFound) Error() string {
	if e.Variable == "" {
		return fmt.Sprintf("namespace %q not found", e.Namespace)
	}
	return fmt.Sprintf("variable %q not found in namespace %q", e.Variable, e.Namespace)
}
