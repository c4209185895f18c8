package types

// SuccessEnvelope is what the storefront API returns on success. Notices are drained from the
// visitor's queue and Redirect names the next view when an action navigates.
type SuccessEnvelope struct {
	Data     any      `json:"data"`
	Notices  []Notice `json:"notices,omitempty"`
	Redirect string   `json:"redirect,omitempty"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error    APIError `json:"error"`
	Notices  []Notice `json:"notices,omitempty"`
	Redirect string   `json:"redirect,omitempty"`
}
