package export

import "errors"

var (
	// ErrNoDevices is returned by exports that need at least one device.
	ErrNoDevices = errors.New("export: no devices")

	// ErrNoImage is returned by an ImageLoader for an empty URL.
	ErrNoImage = errors.New("export: no image url")

	// ErrImageFetch is returned when an image cannot be downloaded or decoded.
	ErrImageFetch = errors.New("export: image fetch failed")
)
