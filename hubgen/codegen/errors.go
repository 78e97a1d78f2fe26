package codegen

import "fmt"

// ErrorCode represents a machine-readable generation error code.
type ErrorCode string

const (
	CodeUnsupportedTypeKind   ErrorCode = "unsupported_type_kind"
	CodeInvalidOperationShape ErrorCode = "invalid_operation_shape"
	CodeContractNotFound      ErrorCode = "contract_not_found"
	CodeClientAPINotFound     ErrorCode = "client_api_not_found"
	CodeDuplicateDeclaration  ErrorCode = "duplicate_declaration"
	CodeAmbiguousMetadata     ErrorCode = "ambiguous_metadata"
)

// Sentinels for errors.Is. They match any *Error carrying the same code.
var (
	ErrUnsupportedTypeKind   = &Error{Code: CodeUnsupportedTypeKind}
	ErrInvalidOperationShape = &Error{Code: CodeInvalidOperationShape}
	ErrContractNotFound      = &Error{Code: CodeContractNotFound}
	ErrClientAPINotFound     = &Error{Code: CodeClientAPINotFound}
	ErrDuplicateDeclaration  = &Error{Code: CodeDuplicateDeclaration}
	ErrAmbiguousMetadata     = &Error{Code: CodeAmbiguousMetadata}
)

// Error is a fatal generation error.
type Error struct {
	Code ErrorCode

	// Subject names the offending type, operation, or contract.
	Subject string

	Message string
}

func (e *Error) Error() string {
	if e.Subject == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Code, e.Subject, e.Message)
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// Errorf creates a new generation error with a formatted message.
func Errorf(code ErrorCode, subject, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Subject: subject,
		Message: fmt.Sprintf(format, args...),
	}
}
