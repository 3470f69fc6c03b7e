package sendpulse

import (
	"context"
	"errors"
	"net"
	"syscall"
)

const (
	msgInvalidToken       = "Invalid token"
	msgInvalidResponse    = "Bad response from server"
	msgInvalidCredentials = "Invalid credentials"
)

// ErrorKind classifies failures the client reports itself. Non-2xx payloads
// returned by the API are not errors; they come back as a Result.
type ErrorKind int

const (
	KindTransport ErrorKind = iota + 1
	KindInvalidResponse
	KindInvalidCredentials
	KindTokenRefresh
	KindValidation
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindInvalidResponse:
		return "invalid response"
	case KindInvalidCredentials:
		return "invalid credentials"
	case KindTokenRefresh:
		return "token refresh"
	case KindValidation:
		return "validation"
	}
	return "unknown"
}

// Error is the structured failure every operation reports. It marshals to
// {"is_error":1,"message":"..."}.
type Error struct {
	IsError int    `json:"is_error"`
	Message string `json:"message,omitempty"`

	Kind ErrorKind `json:"-"`
	Err  error     `json:"-"`
}

// Sentinels for errors.Is.
var (
	ErrTransport          = &Error{IsError: 1, Kind: KindTransport}
	ErrInvalidResponse    = &Error{IsError: 1, Kind: KindInvalidResponse}
	ErrInvalidCredentials = &Error{IsError: 1, Kind: KindInvalidCredentials}
	ErrTokenRefresh       = &Error{IsError: 1, Kind: KindTokenRefresh}
	ErrValidation         = &Error{IsError: 1, Kind: KindValidation}
)

func (e *Error) Error() string {
	msg := "sendpulse: " + e.Kind.String()
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil && (e.Message == "" || e.Err.Error() != e.Message) {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches on kind, so errors.Is(err, ErrTransport) holds for any
// transport failure.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func newError(kind ErrorKind, message string, cause error) *Error {
	return &Error{IsError: 1, Message: message, Kind: kind, Err: cause}
}

func validationError(message string) *Error {
	return newError(KindValidation, message, nil)
}

func invalidResponseError() *Error {
	return newError(KindInvalidResponse, msgInvalidResponse, nil)
}

func invalidCredentialsError() *Error {
	return newError(KindInvalidCredentials, msgInvalidCredentials, nil)
}

// refreshError wraps a failed token fetch, keeping the cause's message.
func refreshError(cause error) *Error {
	var apiErr *Error
	if errors.As(cause, &apiErr) {
		if apiErr.Kind == KindInvalidCredentials || apiErr.Kind == KindTokenRefresh {
			return apiErr
		}
		return newError(KindTokenRefresh, apiErr.Message, cause)
	}
	return newError(KindTokenRefresh, cause.Error(), cause)
}

// transportError reports a failed round trip with the closest socket error
// code as its message.
func transportError(cause error) *Error {
	return newError(KindTransport, transportCode(cause), cause)
}

func transportCode(err error) string {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return "ENOTFOUND"
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case syscall.ECONNREFUSED:
			return "ECONNREFUSED"
		case syscall.ECONNRESET:
			return "ECONNRESET"
		case syscall.ETIMEDOUT:
			return "ETIMEDOUT"
		case syscall.EHOSTUNREACH:
			return "EHOSTUNREACH"
		case syscall.ENETUNREACH:
			return "ENETUNREACH"
		case syscall.EPIPE:
			return "EPIPE"
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return "ETIMEDOUT"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "ETIMEDOUT"
	}

	return err.Error()
}
