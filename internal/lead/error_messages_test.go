package lead

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    string
		wantMessage string
	}{
		{
			name:        "nil error returns empty",
			err:         nil,
			wantCode:    "",
			wantMessage: "",
		},
		{
			name:        "validation error",
			err:         &ValidationError{Fields: []string{"industry"}},
			wantCode:    "VAL001",
			wantMessage: "Required field is empty",
		},
		{
			name:        "wrapped schema error",
			err:         fmt.Errorf("decode: %w", &SchemaError{Missing: []string{"業種"}}),
			wantCode:    "VAL004",
			wantMessage: "Required column is missing from CSV",
		},
		{
			name:        "not found",
			err:         fmt.Errorf("update x: %w", ErrNotFound),
			wantCode:    "LEAD404",
			wantMessage: "Lead not found",
		},
		{
			name:        "write failure",
			err:         &PersistenceError{Op: OpWrite, Err: errors.New("disk full")},
			wantCode:    "STO001",
			wantMessage: "Changes could not be saved",
		},
		{
			name:        "read failure",
			err:         &PersistenceError{Op: OpRead, Err: errors.New("permission denied")},
			wantCode:    "STO002",
			wantMessage: "Saved leads could not be loaded",
		},
		{
			name:        "write failure caused by timeout is still a storage error",
			err:         &PersistenceError{Op: OpWrite, Err: context.DeadlineExceeded},
			wantCode:    "STO001",
			wantMessage: "Changes could not be saved",
		},
		{
			name:        "deadline exceeded",
			err:         fmt.Errorf("import: %w", context.DeadlineExceeded),
			wantCode:    "UPL005",
			wantMessage: "Request timed out",
		},
		{
			name:        "canceled",
			err:         context.Canceled,
			wantCode:    "UPL004",
			wantMessage: "Request was cancelled",
		},
		{
			name:        "file too large pattern",
			err:         errors.New("file too large: 12MB exceeds limit"),
			wantCode:    "FILE001",
			wantMessage: "File exceeds maximum size limit",
		},
		{
			name:        "busy pattern",
			err:         errors.New("too many imports in progress"),
			wantCode:    "UPL002",
			wantMessage: "System is busy processing other imports",
		},
		{
			name:        "places pattern",
			err:         errors.New("places search unavailable: no api key"),
			wantCode:    "PLC001",
			wantMessage: "Places search is not available",
		},
		{
			name:        "case insensitive matching",
			err:         errors.New("RATE LIMIT exceeded"),
			wantCode:    "RATE001",
			wantMessage: "Too many requests",
		},
		{
			name:        "unknown error returns default",
			err:         errors.New("some random internal error"),
			wantCode:    "ERR000",
			wantMessage: "An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError() Code = %q, want %q", got.Code, tt.wantCode)
			}
			if got.Message != tt.wantMessage {
				t.Errorf("MapError() Message = %q, want %q", got.Message, tt.wantMessage)
			}
		})
	}
}

func TestIsUserFacing(t *testing.T) {
	if !IsUserFacing(&SchemaError{Missing: []string{"会社名"}}) {
		t.Error("schema error should be user facing")
	}
	if IsUserFacing(errors.New("segfault")) {
		t.Error("unknown error should not be user facing")
	}
	if IsUserFacing(nil) {
		t.Error("nil should not be user facing")
	}
}
