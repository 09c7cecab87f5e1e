package client

import "fmt"

// FetchError reports a failure to retrieve data from the backend.
// The grid keeps its last known rows visible when it sees one.
type FetchError struct {
	// StatusCode is the HTTP status, zero when the request never completed.
	StatusCode int

	Message string
	Err     error
}

func (e *FetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("backend request failed (%d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("backend unreachable: %s", e.Message)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ActionError reports a pod action the backend accepted but could not
// complete, such as a delete refused by the phase guard.
type ActionError struct {
	// Action names the operation: "delete" or "script".
	Action string

	Message string
	Detail  string
}

func (e *ActionError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s action failed: %s", e.Action, e.Detail)
	}
	return fmt.Sprintf("%s action failed: %s", e.Action, e.Message)
}
