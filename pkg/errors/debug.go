package errors

import (
	"errors"
	"fmt"
)

type ErrorDump struct {
	TopMessage string `json:"top_message"`
	Code       Code   `json:"code,omitempty"`

	Chain []string `json:"chain,omitempty"`

	BackendStatus  int    `json:"backend_status,omitempty"`
	BackendMessage string `json:"backend_message,omitempty"`
	BackendPath    string `json:"backend_path,omitempty"`
}

// BackendFailure is implemented by errors that carry a backend response.
type BackendFailure interface {
	error
	StatusCode() int
	BackendMessage() string
	Path() string
}

func Dump(err error) ErrorDump {
	if err == nil {
		return ErrorDump{}
	}

	d := ErrorDump{
		TopMessage: err.Error(),
	}

	if te := As(err); te != nil {
		d.Code = te.Code()
	}

	for e := err; e != nil; e = errors.Unwrap(e) {
		d.Chain = append(d.Chain, fmt.Sprintf("%T: %v", e, e))
	}

	var backendErr BackendFailure
	if errors.As(err, &backendErr) {
		d.BackendStatus = backendErr.StatusCode()
		d.BackendMessage = backendErr.BackendMessage()
		d.BackendPath = backendErr.Path()
	}

	return d
}

// UserMessage picks the text shown to a visitor for a failed action: the backend's
// own message when it sent one, the message of a client-side validation error, or
// fallback.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	var backendErr BackendFailure
	if errors.As(err, &backendErr) && backendErr.BackendMessage() != "" {
		return backendErr.BackendMessage()
	}
	if te := As(err); te != nil && te.Code() == CodeValidation && te.Message() != "" {
		return te.Message()
	}
	return fallback
}
