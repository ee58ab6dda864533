package submit

// Outcome is the settled result of one submission attempt: either a
// success payload or a normalized failure message, never both.
type Outcome struct {
	ok      bool
	payload any
	message string
}

// Success wraps a successful submission payload.
func Success(payload any) Outcome {
	return Outcome{ok: true, payload: payload}
}

// Failure wraps a normalized user-facing failure message.
func Failure(message string) Outcome {
	return Outcome{message: message}
}

// OK reports whether the submission succeeded.
func (o Outcome) OK() bool { return o.ok }

// Payload returns the success payload, nil on failure.
func (o Outcome) Payload() any { return o.payload }

// Message returns the failure message, empty on success.
func (o Outcome) Message() string { return o.message }
