// Package gelx is the runtime contract imported by code generated with the
// gelx command. Generated query wrappers, scalar wrappers, enumerations and
// the Globals accessor depend only on the interfaces and helpers declared
// here, so any Gel driver can be adapted by implementing Querier and Client.
package gelx

import (
	"context"
	"math/big"
	"time"

	"github.com/google/uuid"
)

// Querier is implemented by clients and transactions. The four methods match
// the four ways a generated wrapper invokes a query, chosen by the result
// cardinality of the query.
type Querier interface {
	// Execute runs a query and discards its result.
	Execute(ctx context.Context, query string, args map[string]any) error
	// Query decodes every returned row into out, which is a pointer to a slice.
	Query(ctx context.Context, query string, out any, args map[string]any) error
	// QuerySingle decodes at most one row into out. It leaves out untouched
	// and reports found=false when nothing was returned.
	QuerySingle(ctx context.Context, query string, out any, args map[string]any) (found bool, err error)
	// QueryRequiredSingle decodes exactly one row into out and returns an
	// error wrapping ErrNoData when nothing was returned.
	QueryRequiredSingle(ctx context.Context, query string, out any, args map[string]any) error
}

// GlobalsModifier receives session global values.
type GlobalsModifier interface {
	Set(name string, value any)
}

// Client is a database session that can be cloned with globals applied.
type Client interface {
	Querier
	WithGlobals(globals map[string]any) Client
}

// Connector opens a new database session.
type Connector func(ctx context.Context) (Client, error)

// Builder is implemented by generated input builders.
type Builder[T any] interface {
	Build() (T, error)
}

// Queryable is implemented by generated records when query binding is enabled.
// GelFields lists the schema names of the record's fields in order.
type Queryable interface {
	GelFields() []string
}

// Enum is implemented by generated enumerations when query binding is enabled.
type Enum interface {
	GelValues() []string
}

// Scalar is implemented by generated scalar wrappers when query binding is
// enabled. CheckDescriptor rejects descriptors of another catalog type.
type Scalar interface {
	CheckDescriptor(id uuid.UUID) error
}

// Dynamic holds a value of a scalar type with no static mapping.
type Dynamic = any

// Range is a range over an ordered scalar type.
type Range[T any] struct {
	Lower    *T   `json:"lower,omitempty"`
	Upper    *T   `json:"upper,omitempty"`
	IncLower bool `json:"inc_lower"`
	IncUpper bool `json:"inc_upper"`
	Empty    bool `json:"empty"`
}

// NewRange returns a range with an inclusive lower and exclusive upper bound,
// the default form used by the database.
func NewRange[T any](lower, upper *T) Range[T] {
	return Range[T]{Lower: lower, Upper: upper, IncLower: lower != nil}
}

// Date and time scalars without a native Go counterpart.
type (
	// DateTime is a timezone aware point in time.
	DateTime = time.Time
	// LocalDateTime is a date and time without a timezone.
	LocalDateTime struct {
		Date LocalDate
		Time LocalTime
	}
	// LocalDate is a calendar date without a timezone.
	LocalDate struct {
		Year  int
		Month time.Month
		Day   int
	}
	// LocalTime is a wall clock time in microseconds since midnight.
	LocalTime struct {
		Microseconds int64
	}
	// Duration is an exact duration.
	Duration = time.Duration
	// RelativeDuration is a calendar aware duration.
	RelativeDuration struct {
		Months       int32
		Days         int32
		Microseconds int64
	}
	// DateDuration is a duration in whole days and months.
	DateDuration struct {
		Months int32
		Days   int32
	}
	// Memory is a configuration memory size in bytes.
	Memory int64
	// BigInt is an arbitrary precision integer.
	BigInt = *big.Int
	// Decimal is an arbitrary precision decimal number.
	Decimal = *big.Rat
	// JSON is a raw JSON document.
	JSON []byte
	// Vector is a pgvector embedding.
	Vector []float32
	// Geometry is an encoded postgis geometry value.
	Geometry []byte
	// Geography is an encoded postgis geography value.
	Geography []byte
)

// CheckScalar verifies that a descriptor bound to a scalar wrapper has the
// catalog id the wrapper was generated for.
func CheckScalar(actual, expected uuid.UUID, name string) error {
	if actual != expected {
		return &ScalarMismatchError{Name: name, Expected: expected, Actual: actual}
	}
	return nil
}
