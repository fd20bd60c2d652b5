// Package constants provides shared constants used throughout the caseatlas codebase.
// This includes timeouts, limits, file permissions, and schema sizes that should
// be consistent across the application.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the standard timeout for HTTP requests to backend APIs
	DefaultHTTPTimeout = 120 * time.Second

	// DefaultTimeout is the standard timeout for general operations
	DefaultTimeout = 10 * time.Second

	// RetryBackoff is the fixed wait between retried backend calls
	RetryBackoff = 60 * time.Second
)

// Retry constants define per-backend retry ceilings
const (
	// LongFormMaxAttempts is the attempt ceiling for the long-context backend
	LongFormMaxAttempts = 5

	// ShortFormMaxAttempts is the attempt ceiling for the short-context backend
	ShortFormMaxAttempts = 3
)

// Budget constants control the token-budget guard applied before every
// long-form backend call
const (
	// DefaultTokenLimit is the default per-request token ceiling
	DefaultTokenLimit = 2_000_000

	// BudgetSafetyMargin is subtracted from the remaining budget before
	// the minimum-completion check
	BudgetSafetyMargin = 100

	// MaxCompletionTokens caps the completion budget handed to a backend
	MaxCompletionTokens = 500_000

	// MinCompletionTokens is the smallest completion budget worth calling with
	MinCompletionTokens = 1000
)

// Schema constants define the archive layout
const (
	// IdentityColumns is the number of leading identity columns in the archive
	IdentityColumns = 4

	// AnswerColumns is the number of extracted answer columns in the archive
	AnswerColumns = 13

	// SchemaColumns is the total archive width
	SchemaColumns = IdentityColumns + AnswerColumns

	// ShortFormFieldCount is the fixed field count of the short-form backend
	ShortFormFieldCount = 4

	// CheckpointInterval is the number of newly written records between
	// snapshot checkpoints
	CheckpointInterval = 5
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Concurrency constants
const (
	// DefaultWorkers is the default size of the per-case worker pool
	DefaultWorkers = 4
)

// Sentinel values written into archive cells when a true value is missing
// or unobtainable
const (
	// SentinelNA fills fields whose value is absent
	SentinelNA = "NA"

	// SentinelError fills fields whose extraction failed outright
	SentinelError = "Error"
)
