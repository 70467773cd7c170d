// Package gen turns the schema catalog and compiled query descriptors into Go
// source files.
package gen

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the failure classes of a generation run.
var (
	// ErrProtocol indicates a failed introspection call or an undecodable reply.
	ErrProtocol = errors.New("gelx: introspection failed")
	// ErrInvalidConfig indicates malformed settings or names.
	ErrInvalidConfig = errors.New("gelx: invalid configuration")
	// ErrContract indicates that the introspection contract was broken.
	ErrContract = errors.New("gelx: contract violation")
	// ErrGenerationFailed indicates a code generation failure.
	ErrGenerationFailed = errors.New("gelx: code generation failed")
	// ErrWriteFailed indicates a failure writing generated files.
	ErrWriteFailed = errors.New("gelx: write failed")
)

// ProtocolError represents a failed call to the introspection service.
type ProtocolError struct {
	Op    string // "fetch catalog", "fetch globals", "compile"
	Query string // Query file or text, if applicable
	Cause error
}

// Error implements the error interface.
func (e *ProtocolError) Error() string {
	var b strings.Builder
	b.WriteString("gelx: protocol error")
	if e.Op != "" {
		b.WriteString(" during ")
		b.WriteString(e.Op)
	}
	if e.Query != "" {
		b.WriteString(" (query: ")
		b.WriteString(e.Query)
		b.WriteString(")")
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *ProtocolError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for ProtocolError.
func (e *ProtocolError) Is(target error) bool {
	return target == ErrProtocol
}

// NewProtocolError creates a new ProtocolError.
func NewProtocolError(op, query string, cause error) *ProtocolError {
	return &ProtocolError{Op: op, Query: query, Cause: cause}
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("gelx: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("gelx: config error for %q: %s", e.Option, e.Message)
}

// Is reports whether the target matches the sentinel error for ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{
		Option:  option,
		Value:   value,
		Message: message,
	}
}

// ContractError reports an invariant the introspection service is assumed
// to guarantee, such as a known descriptor variant or a resolvable position.
type ContractError struct {
	Subject string // Descriptor variant, type name or position
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ContractError) Error() string {
	var b strings.Builder
	b.WriteString("gelx: contract violation")
	if e.Subject != "" {
		b.WriteString(" on ")
		b.WriteString(e.Subject)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *ContractError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for ContractError.
func (e *ContractError) Is(target error) bool {
	return target == ErrContract
}

// NewContractError creates a new ContractError.
func NewContractError(subject, message string, cause error) *ContractError {
	return &ContractError{Subject: subject, Message: message, Cause: cause}
}

// GenerationError represents a code generation error.
type GenerationError struct {
	Phase   string // "catalog", "modules", "query", "format"
	File    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	var b strings.Builder
	b.WriteString("gelx: generation error")
	if e.Phase != "" {
		b.WriteString(" in phase ")
		b.WriteString(e.Phase)
	}
	if e.File != "" {
		b.WriteString(" (file: ")
		b.WriteString(e.File)
		b.WriteString(")")
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for GenerationError.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

// NewGenerationError creates a new GenerationError.
func NewGenerationError(phase, file, message string, cause error) *GenerationError {
	return &GenerationError{
		Phase:   phase,
		File:    file,
		Message: message,
		Cause:   cause,
	}
}

// WriteError represents a failure writing one generated file.
type WriteError struct {
	Path  string
	Cause error
}

// Error implements the error interface.
func (e *WriteError) Error() string {
	var b strings.Builder
	b.WriteString("gelx: write ")
	b.WriteString(e.Path)
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *WriteError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for WriteError.
func (e *WriteError) Is(target error) bool {
	return target == ErrWriteFailed
}

// NewWriteError creates a new WriteError.
func NewWriteError(path string, cause error) *WriteError {
	return &WriteError{Path: path, Cause: cause}
}

// IsProtocolError reports whether the error is a ProtocolError.
func IsProtocolError(err error) bool {
	var protoErr *ProtocolError
	return errors.As(err, &protoErr)
}

// IsConfigError reports whether the error is a ConfigError.
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// IsContractError reports whether the error is a ContractError.
func IsContractError(err error) bool {
	var contractErr *ContractError
	return errors.As(err, &contractErr)
}

// IsGenerationError reports whether the error is a GenerationError.
func IsGenerationError(err error) bool {
	var genErr *GenerationError
	return errors.As(err, &genErr)
}

// IsWriteError reports whether the error is a WriteError.
func IsWriteError(err error) bool {
	var writeErr *WriteError
	return errors.As(err, &writeErr)
}
