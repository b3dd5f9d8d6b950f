package treasury

import (
	"errors"
	"fmt"
)

// Kind classifies a fetch failure so the caller can map it to a user-facing
// state instead of crashing.
type Kind int

const (
	KindUnknown Kind = iota
	// KindUnavailable covers transport errors, timeouts and non-2xx statuses.
	KindUnavailable
	// KindUnexpectedFormat means the payload is missing its expected structure.
	KindUnexpectedFormat
	// KindParseError means a record field could not be converted to its type.
	KindParseError
)

func (k Kind) String() string {
	switch k {
	case KindUnavailable:
		return "unavailable"
	case KindUnexpectedFormat:
		return "unexpected_format"
	case KindParseError:
		return "parse_error"
	}
	return "unknown"
}

// FetchError is the tagged failure returned by Client.Fetch.
type FetchError struct {
	Kind  Kind
	Cause string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Cause)
}

// KindOf extracts the failure kind from an error chain, or KindUnknown if the
// error did not originate from a fetch.
func KindOf(err error) Kind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindUnknown
}
