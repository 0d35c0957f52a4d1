package lead

// Error codes, grouped by category. Users quote the code to support staff.
//
//	VAL001 - Required field is empty          (*ValidationError, "required field")
//	VAL002 - Invalid date                     ("invalid date")
//	VAL003 - Malformed request                ("invalid request")
//	VAL004 - Required column missing from CSV (*SchemaError, "missing required column")
//	FILE001 - File too large                  ("file too large")
//	FILE002 - Invalid CSV                     ("invalid csv")
//	FILE003 - Encoding error                  ("encoding error")
//	FILE004 - No file provided                ("no file provided")
//	FILE005 - No data rows                    ("empty file")
//	STO001 - Saving failed                    (*PersistenceError write)
//	STO002 - Loading failed                   (*PersistenceError read)
//	LEAD404 - Lead not found                  (ErrNotFound)
//	UPL002 - Too many imports                 ("too many imports")
//	UPL004 - Request cancelled                (context.Canceled)
//	UPL005 - Request timed out                (context.DeadlineExceeded)
//	PLC001 - Places search unavailable        ("places search unavailable")
//	RATE001 - Too many requests               ("rate limit")
//	ERR000 - Anything else; check the logs for the technical error.
//
// Typed errors are matched first with errors.As / errors.Is. Remaining
// errors fall through to case-insensitive substring patterns, first match
// wins.

import (
	"context"
	"errors"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

var (
	msgValidation = UserMessage{
		Message: "Required field is empty",
		Action:  "Fill in company name, contact person and industry",
		Code:    "VAL001",
	}
	msgSchema = UserMessage{
		Message: "Required column is missing from CSV",
		Action:  "Include the 会社名, 担当者名 and 業種 columns in the header row",
		Code:    "VAL004",
	}
	msgWriteFailed = UserMessage{
		Message: "Changes could not be saved",
		Action:  "Please try again; your last change was not applied",
		Code:    "STO001",
	}
	msgReadFailed = UserMessage{
		Message: "Saved leads could not be loaded",
		Action:  "Check the storage configuration and restart",
		Code:    "STO002",
	}
	msgNotFound = UserMessage{
		Message: "Lead not found",
		Action:  "Refresh the list; the lead may have been deleted",
		Code:    "LEAD404",
	}
	msgCanceled = UserMessage{
		Message: "Request was cancelled",
		Action:  "Please try again",
		Code:    "UPL004",
	}
	msgTimeout = UserMessage{
		Message: "Request timed out",
		Action:  "Try importing a smaller file or check your connection",
		Code:    "UPL005",
	}
)

type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps technical error text (case-insensitive) to user messages.
// More specific patterns must come before general ones.
var errorPatterns = []errorPattern{
	{"required field", msgValidation},
	{
		pattern: "invalid date",
		msg: UserMessage{
			Message: "Invalid date format detected",
			Action:  "Use YYYY-MM-DD or YYYY/MM/DD",
			Code:    "VAL002",
		},
	},
	{
		pattern: "invalid request",
		msg: UserMessage{
			Message: "Request could not be understood",
			Action:  "Check the submitted fields and parameters",
			Code:    "VAL003",
		},
	},
	{"missing required column", msgSchema},
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "File exceeds maximum size limit",
			Action:  "Split the file into smaller chunks",
			Code:    "FILE001",
		},
	},
	{
		pattern: "invalid csv",
		msg: UserMessage{
			Message: "File is not a valid CSV",
			Action:  "Ensure the file is comma-separated with a header row",
			Code:    "FILE002",
		},
	},
	{
		pattern: "encoding error",
		msg: UserMessage{
			Message: "File contains invalid characters",
			Action:  "Save the file as UTF-8",
			Code:    "FILE003",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "No file was selected",
			Action:  "Please select a CSV file to import",
			Code:    "FILE004",
		},
	},
	{
		pattern: "empty file",
		msg: UserMessage{
			Message: "CSV file has no data",
			Action:  "Please upload a CSV file with a header and at least one data row",
			Code:    "FILE005",
		},
	},
	{
		pattern: "too many imports",
		msg: UserMessage{
			Message: "System is busy processing other imports",
			Action:  "Please wait a moment and try again",
			Code:    "UPL002",
		},
	},
	{
		pattern: "places search unavailable",
		msg: UserMessage{
			Message: "Places search is not available",
			Action:  "Set an API key or wait until next month's quota resets",
			Code:    "PLC001",
		},
	},
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
	{"context canceled", msgCanceled},
	{"context deadline exceeded", msgTimeout},
}

// defaultMessage is returned when nothing matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
//
// Example:
//
//	_, err := store.Update(ctx, "missing", patch)
//	msg := MapError(err)
//	// msg.Code == "LEAD404"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	var ve *ValidationError
	var se *SchemaError
	var pe *PersistenceError
	switch {
	case errors.As(err, &ve):
		return msgValidation
	case errors.As(err, &se):
		return msgSchema
	case errors.Is(err, ErrNotFound):
		return msgNotFound
	case errors.As(err, &pe):
		if pe.Op == OpRead {
			return msgReadFailed
		}
		return msgWriteFailed
	case errors.Is(err, context.DeadlineExceeded):
		return msgTimeout
	case errors.Is(err, context.Canceled):
		return msgCanceled
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// IsUserFacing reports whether err maps to a specific message rather than
// the ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
