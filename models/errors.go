package models

// ErrorKind classifies a failed chat request so the HTTP layer can pick a
// status code without inspecting error text.
type ErrorKind int

const (
	// KindBadRequest is a client-input problem (empty question).
	KindBadRequest ErrorKind = iota
	// KindUnavailable means the completion backend never initialized.
	KindUnavailable
	// KindUpstream is a failure from the similarity or completion call. The
	// message is generic; upstream internals never reach the caller.
	KindUpstream
)

// RequestError is the result type returned by the chat service when a
// request cannot be answered.
type RequestError struct {
	Kind    ErrorKind
	Message string
}

func (e *RequestError) Error() string {
	return e.Message
}

func BadRequest(msg string) *RequestError {
	return &RequestError{Kind: KindBadRequest, Message: msg}
}

func Unavailable(msg string) *RequestError {
	return &RequestError{Kind: KindUnavailable, Message: msg}
}

func Upstream(msg string) *RequestError {
	return &RequestError{Kind: KindUpstream, Message: msg}
}
