package secrets

import "fmt"

// FormatError reports a reference missing required parameters or combining
// incompatible ones. Never retried.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return "invalid secret format: " + e.Reason
}

// BackendError reports a failed call to the remote secrets backend. It wraps
// the transport/service error and carries the secret coordinates for
// diagnostics.
type BackendError struct {
	Name   string
	Region string
	Err    error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("secret backend fetch failed [secretName: %s, secretRegion: %s]: %v",
		e.Name, e.Region, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }

// ParseError reports a fetched payload that should have been a JSON object of
// strings but was not.
type ParseError struct {
	Name   string
	Region string
	Key    string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse secret [secretName: %s, secretRegion: %s, secretKey: %s]: %v",
		e.Name, e.Region, e.Key, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// NotFoundError reports a key absent from a successfully parsed secret.
// Distinct from ParseError: the payload was well-formed, the key was not in it.
type NotFoundError struct {
	Name   string
	Region string
	Key    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("key not found in secret [secretName: %s, secretRegion: %s, secretKey: %s]",
		e.Name, e.Region, e.Key)
}
