package submit

import "errors"

// FallbackMessage is shown when a failure carries no recognizable body.
const FallbackMessage = "An error occurred."

// BodyCarrier is implemented by remote errors that carry a decoded
// response body with the backend's error/message fields.
type BodyCarrier interface {
	RemoteBody() (errField, msgField string)
}

// Normalize maps a failed remote call of unknown shape onto a single
// user-facing message. Precedence: body error field, then body message
// field, then the fixed fallback. Pure; never panics.
func Normalize(err error) string {
	if err == nil {
		return FallbackMessage
	}
	var carrier BodyCarrier
	if errors.As(err, &carrier) {
		errField, msgField := carrier.RemoteBody()
		if errField != "" {
			return errField
		}
		if msgField != "" {
			return msgField
		}
	}
	return FallbackMessage
}
