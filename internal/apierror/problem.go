// Package apierror provides RFC 9457 Problem Details responses for the
// driftwell API.
package apierror

// ProblemDetails is an RFC 9457 Problem Details body.
// See https://www.rfc-editor.org/rfc/rfc9457.html
type ProblemDetails struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`

	// Extension fields.
	RequestID   string       `json:"request_id,omitempty"`
	UserMessage string       `json:"user_message,omitempty"`
	RetryAfter  *int         `json:"retry_after,omitempty"`
	Errors      []FieldError `json:"errors,omitempty"`
}

// FieldError reports a validation failure for one field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Error implements the error interface.
func (p *ProblemDetails) Error() string {
	if p.Detail != "" {
		return p.Detail
	}
	return p.Title
}
