package cli

// Error code constants printed with every CLI error.
const (
	ErrCodeGeneric          = "E001" // Generic/unknown error
	ErrCodeNotFound         = "E005" // G-code file not found
	ErrCodeWriteFailed      = "E007" // File write error
	ErrCodePermissionDenied = "E008" // Permission denied reading the file
	ErrCodeReadFailed       = "E009" // Other read failure
	ErrCodeUsage            = "E010" // Wrong argument count or bad flag
	ErrCodeInvalidMask      = "E011" // Inclusion mask rejected
	ErrCodeInvalidConfig    = "E012" // Config file rejected

	// Transformation errors
	ErrCodeObjectNotFound      = "E020" // First object start not found
	ErrCodeMalformedCoordinate = "E021" // Unparseable object start X
)
