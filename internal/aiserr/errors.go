// Package aiserr defines the error taxonomy shared by every package in the
// pipeline (geometry, segmenter, clusterer, extrusion, rasteriser, and the
// external-collaborator glue). Each failure kind names the contract that
// was violated; more than one stage may report the same kind.
package aiserr

import "fmt"

// Kind identifies which contract a failure violated. Callers branch on Kind
// via KindOf, or via errors.Is against an *Error of the same Kind, not on
// string matching.
type Kind int

const (
	// KindUnknown is the zero value; never constructed deliberately.
	KindUnknown Kind = iota
	// KindInvalidGeometry covers bad WKB, wrong dimensionality, and
	// empty-where-non-empty geometries.
	KindInvalidGeometry
	// KindNonMonotonicTime means a LineStringM's m-values were not
	// non-decreasing.
	KindNonMonotonicTime
	// KindInvalidLength means a LineStringM was built from exactly one
	// point.
	KindInvalidLength
	// KindTimestampOutOfRange means a measure value could not be
	// represented as an instant.
	KindTimestampOutOfRange
	// KindDegenerateSegment means a zero-length segment was passed to
	// triangle extrusion.
	KindDegenerateSegment
	// KindConfigurationError covers missing/malformed environment
	// configuration. Fatal at startup.
	KindConfigurationError
	// KindDatabaseError covers connect/query/copy failures in the DB
	// collaborator.
	KindDatabaseError
	// KindIoError covers file/CSV read failures.
	KindIoError
)

func (k Kind) String() string {
	switch k {
	case KindInvalidGeometry:
		return "InvalidGeometry"
	case KindNonMonotonicTime:
		return "NonMonotonicTime"
	case KindInvalidLength:
		return "InvalidLength"
	case KindTimestampOutOfRange:
		return "TimestampOutOfRange"
	case KindDegenerateSegment:
		return "DegenerateSegment"
	case KindConfigurationError:
		return "ConfigurationError"
	case KindDatabaseError:
		return "DatabaseError"
	case KindIoError:
		return "IoError"
	default:
		return "Unknown"
	}
}

// Error is the concrete error type used for the failure kinds above across
// this module. It carries the failing Kind plus an optional wrapped cause so
// callers can both branch on Kind and unwrap to the root error.
type Error struct {
	Kind    Kind
	Op      string // the operation that failed, e.g. "LineStringM.From"
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is an *Error with the same Kind, enabling
// errors.Is(err, aiserr.New(aiserr.KindInvalidLength, "", "")) style checks.
// KindOf below reads the Kind directly without building a target.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// New builds an *Error of the given kind.
func New(kind Kind, op, message string) *Error {
	return &Error{Kind: kind, Op: op, Message: message}
}

// Wrap builds an *Error of the given kind around a lower-level cause.
func Wrap(kind Kind, op, message string, cause error) *Error {
	return &Error{Kind: kind, Op: op, Message: message, Cause: cause}
}

// KindOf extracts the Kind from err if it (or something it wraps) is an
// *Error, and KindUnknown otherwise.
func KindOf(err error) Kind {
	var e *Error
	for err != nil {
		if ae, ok := err.(*Error); ok {
			e = ae
			break
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	if e == nil {
		return KindUnknown
	}
	return e.Kind
}
