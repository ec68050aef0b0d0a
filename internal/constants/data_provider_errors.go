package constants

// Data Provider Error Codes
// These constants define specific error scenarios for remote table providers

// Credential-related errors
const (
	ErrCodeInvalidAPIKey        = "INVALID_API_KEY"
	ErrCodeInvalidBaseID        = "INVALID_BASE_ID"
	ErrCodeRateLimited          = "RATE_LIMITED"
	ErrCodeNetworkError         = "NETWORK_ERROR"
	ErrCodeAuthenticationFailed = "AUTHENTICATION_FAILED"
)

// Table-related errors
const (
	ErrCodeTableNotFound     = "TABLE_NOT_FOUND"
	ErrCodeTableAccessDenied = "TABLE_ACCESS_DENIED"
	ErrCodeTableNotMapped    = "TABLE_NOT_MAPPED"
	ErrCodeReadOnlyProvider  = "READ_ONLY_PROVIDER"
)

// Data validation errors
const (
	ErrCodeInvalidDataFormat = "INVALID_DATA_FORMAT"
)

// Error Messages
// Human-readable messages corresponding to error codes

var DataProviderErrorMessages = map[string]string{
	// Credentials
	ErrCodeInvalidAPIKey:        "The provider API key is invalid or has been revoked",
	ErrCodeInvalidBaseID:        "The base or sheet id is invalid or you don't have access to it",
	ErrCodeRateLimited:          "Rate limit exceeded. Please try again later",
	ErrCodeNetworkError:         "Unable to reach the remote provider. Please check your internet connection",
	ErrCodeAuthenticationFailed: "Authentication with the remote provider failed",

	// Tables
	ErrCodeTableNotFound:     "The specified table was not found at the remote provider",
	ErrCodeTableAccessDenied: "You don't have permission to access this table",
	ErrCodeTableNotMapped:    "No remote table is mapped for this record table",
	ErrCodeReadOnlyProvider:  "This provider can only pull tables",

	// Data validation
	ErrCodeInvalidDataFormat: "The data format is invalid",
}

// GetErrorMessage returns the human-readable message for an error code
func GetErrorMessage(code string) string {
	if msg, exists := DataProviderErrorMessages[code]; exists {
		return msg
	}
	return "An unknown error occurred"
}
