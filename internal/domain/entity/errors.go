package entity

import "errors"

// Fetch failures surfaced to callers form a closed set: either the transport
// produced no usable bytes, or the bytes did not decode into the expected
// feed envelope. Wrapped causes stay inspectable via errors.Is.
var (
	ErrInvalidData = errors.New("feed: invalid data")
	ErrInvalidJSON = errors.New("feed: invalid json")
)
