// Package enums provides type-safe enumeration types used across iqcmaker.
//
// This package uses code generation via go-pkgz/enum to create enum types
// with string conversion, database marshaling, and parsing capabilities.
//
// The enum types are defined as unexported integer types (e.g., jobStatus int) in this file,
// and the go:generate directives invoke the enum generator to create corresponding exported
// types with all necessary methods in separate files (*_enum.go).
//
// For each enum type, the generator creates:
//   - An exported struct type (e.g., JobStatus) with name and value fields
//   - String() method for string representation
//   - Parse functions (e.g., ParseJobStatus) for string-to-enum conversion
//   - Database methods (Scan/Value) for SQL compatibility
//   - Text marshaling methods (MarshalText/UnmarshalText), used by JSON and YAML
//   - Exported constants for each enum value (e.g., JobStatusPending, JobStatusSucceeded)
//
// Usage:
//
//	status := enums.JobStatusPending
//	fmt.Println(status.String()) // "pending"
//
//	parsed, err := enums.ParseJobStatus("succeeded")
//	if err != nil {
//	    // handle invalid input
//	}
//
// To regenerate the enum types after modifications:
//
//	go generate ./app/enums
//
// Note: The unexported type definitions below are only used by the generator.
// All actual code should use the generated exported types.
package enums

//go:generate go run github.com/go-pkgz/enum@latest -type jobStatus -lower
//go:generate go run github.com/go-pkgz/enum@latest -type eventType -lower
//go:generate go run github.com/go-pkgz/enum@latest -type storeType -lower
//go:generate go run github.com/go-pkgz/enum@latest -type outputFormat -lower

// jobStatus represents the lifecycle state of a generation job.
// pending is the only non-terminal state.
type jobStatus int

const (
	jobStatusPending jobStatus = iota
	jobStatusSucceeded
	jobStatusFailed
)

// eventType represents lifecycle events published to subscribers.
type eventType int

const (
	eventTypeSubmitted eventType = iota
	eventTypeSucceeded
	eventTypeFailed
	eventTypeCleared
)

// storeType represents durable key-value backends.
type storeType int

const (
	storeTypeSqlite storeType = iota
	storeTypeFile
	storeTypeRedis
	storeTypeMemory
)

// outputFormat represents console rendering formats.
type outputFormat int

const (
	outputFormatText outputFormat = iota
	outputFormatJson
	outputFormatYaml
)
