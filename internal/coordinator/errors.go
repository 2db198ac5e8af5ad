package coordinator

// ErrorCode is one of the socket protocol's fixed error identifiers
// (spec.md §4.7).
type ErrorCode string

const (
	ErrBoxNotFound      ErrorCode = "BOX_NOT_FOUND"
	ErrStreamNotFound   ErrorCode = "STREAM_NOT_FOUND"
	ErrLayoutNotFound   ErrorCode = "LAYOUT_NOT_FOUND"
	ErrInvalidCommand   ErrorCode = "INVALID_COMMAND"
	ErrExecutionError   ErrorCode = "EXECUTION_ERROR"
	ErrPermissionDenied ErrorCode = "PERMISSION_DENIED"
	ErrSocketError      ErrorCode = "SOCKET_ERROR"
)

// CodedError pairs a protocol error code with a message, so the socket
// layer can render it without re-deriving the code from error text.
type CodedError struct {
	Code    ErrorCode
	Message string
}

func (e *CodedError) Error() string { return e.Message }

func notFound(code ErrorCode, what string) error {
	return &CodedError{Code: code, Message: what + " not found"}
}
