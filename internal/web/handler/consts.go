package handler

const (
	// RootPath is the root path the route group.
	RootPath = "/"

	// ErrNilACDFatalLogMsg is used if app or cfg or db var pointer is nil.
	ErrNilACDFatalLogMsg = "app, cfg or db is nil"

	// ErrMsgInternal is the generic message returned for unexpected failures.
	// Internal error details are logged server-side, never returned to the client.
	ErrMsgInternal = "Internal Server Error"

	// ErrMsgInvalidID is returned when a path id parameter is invalid or non-positive.
	ErrMsgInvalidID = "Invalid id"

	// ErrMsgInvalidBody is returned when a request body cannot be parsed.
	ErrMsgInvalidBody = "Invalid request body"
)
