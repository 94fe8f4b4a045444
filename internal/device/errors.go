package device

import (
	"errors"
	"fmt"
)

// Domain errors for the device package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, device.ErrDeviceNotFound) {
//	    // handle not found case
//	}
var (
	// ErrDeviceNotFound is returned when a device ID does not exist.
	ErrDeviceNotFound = errors.New("device: not found")

	// ErrInvalidDevice is returned when device validation fails.
	// The more specific errors below all wrap it.
	ErrInvalidDevice = errors.New("device: invalid")

	// ErrInvalidName is returned when a device name is empty or too long.
	ErrInvalidName = fmt.Errorf("%w name", ErrInvalidDevice)

	// ErrInvalidCategory is returned when a category is not in the closed set.
	ErrInvalidCategory = fmt.Errorf("%w category", ErrInvalidDevice)

	// ErrInvalidYear is returned when the start year is outside [MinYear, now].
	ErrInvalidYear = fmt.Errorf("%w year", ErrInvalidDevice)

	// ErrInvalidPeriod is returned when the end year precedes the start year.
	ErrInvalidPeriod = fmt.Errorf("%w period", ErrInvalidDevice)

	// ErrInvalidImport is returned when an import payload is rejected.
	// The concrete error is an *ImportError.
	ErrInvalidImport = errors.New("device: invalid import")
)

// ImportError describes why an import payload was rejected.
// Index is the position of the offending object, or -1 for the payload itself.
type ImportError struct {
	Index  int
	Field  string
	Reason string
}

func (e *ImportError) Error() string {
	switch {
	case e.Index < 0:
		return fmt.Sprintf("invalid import: %s", e.Reason)
	case e.Field == "":
		return fmt.Sprintf("invalid import: device %d: %s", e.Index, e.Reason)
	default:
		return fmt.Sprintf("invalid import: device %d: %s %s", e.Index, e.Field, e.Reason)
	}
}

// Unwrap lets errors.Is match ErrInvalidImport.
func (e *ImportError) Unwrap() error {
	return ErrInvalidImport
}
