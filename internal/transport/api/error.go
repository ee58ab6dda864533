package api

import "fmt"

// RemoteError carries a failed call's status and whatever the backend
// put in the response body. The backend is inconsistent about failure
// shapes: some endpoints answer {"error": …}, others {"message": …},
// and network faults carry neither.
type RemoteError struct {
	Status   int
	ErrField string
	MsgField string
}

func (e *RemoteError) Error() string {
	switch {
	case e.ErrField != "":
		return fmt.Sprintf("backend returned status %d: %s", e.Status, e.ErrField)
	case e.MsgField != "":
		return fmt.Sprintf("backend returned status %d: %s", e.Status, e.MsgField)
	default:
		return fmt.Sprintf("backend returned status %d", e.Status)
	}
}

// RemoteBody exposes the decoded body fields for error normalization.
func (e *RemoteError) RemoteBody() (string, string) {
	return e.ErrField, e.MsgField
}
